package calendar

import (
	"context"
	"fmt"
	"time"
)

// Phase is the half of the lunar month a day falls in.
type Phase int

const (
	Waxing Phase = iota + 1
	Waning
)

func (p Phase) String() string {
	switch p {
	case Waxing:
		return "ขึ้น"
	case Waning:
		return "แรม"
	}
	return "?"
}

// LunarDate is a day's position in the Thai lunar month.
type LunarDate struct {
	Phase Phase
	Day   int
	// LastDay marks the final waning day, the day of the new moon.
	LastDay bool
}

// HolyDay reports whether the day is Wan Phra: waxing 8 and 15, waning 8 and
// the last waning day.
func (d LunarDate) HolyDay() bool {
	switch d.Phase {
	case Waxing:
		return d.Day == 8 || d.Day == 15
	case Waning:
		return d.LastDay || d.Day == 8
	}
	return false
}

// Label is the Thai name of the day, e.g. "วันพระ ขึ้น 15 ค่ำ".
func (d LunarDate) Label() string {
	s := fmt.Sprintf("%s %d ค่ำ", d.Phase, d.Day)
	if d.HolyDay() {
		return "วันพระ " + s
	}
	return s
}

// Calculator maps a civil date to its lunar date.
type Calculator interface {
	LunarDate(day time.Time) (LunarDate, error)
}

// UnavailableCalculator stands in for deployments without lunar arithmetic.
type UnavailableCalculator struct{}

func (UnavailableCalculator) LunarDate(time.Time) (LunarDate, error) {
	return LunarDate{}, ErrCalculatorUnavailable
}

// AstronomicalCalculator derives lunar days from computed new and full moons:
// the day after the new moon is waxing 1, the full-moon day is waxing 15, and
// the new-moon day closes the waning half.
type AstronomicalCalculator struct {
	Location *time.Location
	MinYear  int
	MaxYear  int
}

// NewAstronomicalCalculator returns a calculator on Thai civil dates.
func NewAstronomicalCalculator() *AstronomicalCalculator {
	return &AstronomicalCalculator{Location: ThaiTime, MinYear: 1800, MaxYear: 2200}
}

func (c *AstronomicalCalculator) LunarDate(day time.Time) (LunarDate, error) {
	loc := c.Location
	if loc == nil {
		loc = ThaiTime
	}
	if y := day.In(loc).Year(); (c.MinYear != 0 && y < c.MinYear) || (c.MaxYear != 0 && y > c.MaxYear) {
		return LunarDate{}, fmt.Errorf("year %d outside supported range %d-%d", y, c.MinYear, c.MaxYear)
	}
	target := civilDay(day, loc)

	// Latest new moon on a date strictly before target.
	k := lunationNear(day) + 1
	found := false
	for i := 0; i < 4; i++ {
		if civilDay(phaseTime(k, newMoon), loc) < target {
			found = true
			break
		}
		k--
	}
	if !found {
		return LunarDate{}, fmt.Errorf("no new moon found before %s", day.Format(DateLayout))
	}

	nm := civilDay(phaseTime(k, newMoon), loc)
	fm := civilDay(phaseTime(k, fullMoon), loc)
	next := civilDay(phaseTime(k+1, newMoon), loc)

	if target <= fm {
		if target == fm {
			return LunarDate{Phase: Waxing, Day: 15}, nil
		}
		return LunarDate{Phase: Waxing, Day: min(target-nm, 14)}, nil
	}
	n := target - fm
	if target == next {
		return LunarDate{Phase: Waning, Day: max(min(n, 15), 14), LastDay: true}, nil
	}
	return LunarDate{Phase: Waning, Day: min(n, 14)}, nil
}

// LunarSource computes observances day by day. Any calculator error fails the
// whole month.
type LunarSource struct {
	Calculator Calculator
}

func (s *LunarSource) Name() string { return "lunar" }

func (s *LunarSource) Observances(ctx context.Context, year, month int) ([]Observance, error) {
	if s.Calculator == nil {
		return nil, ErrCalculatorUnavailable
	}
	var out []Observance
	for d := 1; d <= daysIn(year, month); d++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		day := time.Date(year, time.Month(month), d, 12, 0, 0, 0, ThaiTime)
		ld, err := s.Calculator.LunarDate(day)
		if err != nil {
			return nil, fmt.Errorf("lunar date for %s: %w", day.Format(DateLayout), err)
		}
		if ld.HolyDay() {
			out = append(out, Observance{Date: day.Format(DateLayout), Label: ld.Label()})
		}
	}
	return out, nil
}
