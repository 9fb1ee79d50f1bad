// Package calendar resolves Buddhist observance days (Wan Phra) and fixed-date
// Thai holidays for a given month.
package calendar

import (
	"errors"
	"time"
)

// DateLayout is the wire and display format of observance and holiday dates.
const DateLayout = "2006-01-02"

// ThaiTime is Indochina Time (UTC+7). Lunar days are counted on Thai civil dates.
var ThaiTime = time.FixedZone("ICT", 7*60*60)

var (
	// ErrNoObservances is returned by a source that ran but found nothing.
	ErrNoObservances = errors.New("calendar: no observances")
	// ErrCalculatorUnavailable is returned when no lunar calculator is configured.
	ErrCalculatorUnavailable = errors.New("calendar: lunar calculator unavailable")
)

// Observance is one lunar holy day.
type Observance struct {
	Date  string `json:"date" yaml:"date"`
	Label string `json:"label" yaml:"label"`
}

// HolidayType classifies a holiday.
type HolidayType string

const (
	HolidayPublic     HolidayType = "public"
	HolidayCultural   HolidayType = "cultural"
	HolidayObservance HolidayType = "observance"
)

// Holiday is a fixed-date holiday projected onto a year.
type Holiday struct {
	Date   string      `json:"date" yaml:"date"`
	Name   string      `json:"name" yaml:"name"`
	NameEn string      `json:"name_en" yaml:"name_en"`
	Type   HolidayType `json:"type" yaml:"type"`
}

func validMonth(year, month int) bool {
	return year > 0 && month >= 1 && month <= 12
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
