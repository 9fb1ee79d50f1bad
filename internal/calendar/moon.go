package calendar

import (
	"math"
	"time"
)

// Lunar phase instants from the periodic terms in Meeus, Astronomical
// Algorithms (2nd ed.), chapter 49. Accurate to a few minutes for 1800-2200,
// which is well inside a civil day.

const (
	synodicMonth = 29.530588861
	jdeK0        = 2451550.09766
	unixEpochJD  = 2440587.5
	// deltaT approximates TT-UT for the 21st century.
	deltaT = 69 * time.Second
)

type moonPhase int

const (
	newMoon moonPhase = iota
	fullMoon
)

func rad(deg float64) float64 { return deg * math.Pi / 180 }

// phaseJDE returns the Julian Ephemeris Day of lunation k's new or full moon.
// k = 0 is the new moon of 2000-01-06.
func phaseJDE(k float64, phase moonPhase) float64 {
	if phase == fullMoon {
		k += 0.5
	}
	t := k / 1236.85
	t2, t3, t4 := t*t, t*t*t, t*t*t*t

	jde := jdeK0 + synodicMonth*k + 0.00015437*t2 - 0.000000150*t3 + 0.00000000073*t4

	e := 1 - 0.002516*t - 0.0000074*t2
	m := rad(2.5534 + 29.10535670*k - 0.0000014*t2 - 0.00000011*t3)
	mp := rad(201.5643 + 385.81693528*k + 0.0107582*t2 + 0.00001238*t3 - 0.000000058*t4)
	f := rad(160.7108 + 390.67050284*k - 0.0016118*t2 - 0.00000227*t3 + 0.000000011*t4)
	om := rad(124.7746 - 1.56375588*k + 0.0020672*t2 + 0.00000215*t3)

	var c float64
	if phase == newMoon {
		c = -0.40720*math.Sin(mp) +
			0.17241*e*math.Sin(m) +
			0.01608*math.Sin(2*mp) +
			0.01039*math.Sin(2*f) +
			0.00739*e*math.Sin(mp-m) -
			0.00514*e*math.Sin(mp+m) +
			0.00208*e*e*math.Sin(2*m)
	} else {
		c = -0.40614*math.Sin(mp) +
			0.17302*e*math.Sin(m) +
			0.01614*math.Sin(2*mp) +
			0.01043*math.Sin(2*f) +
			0.00734*e*math.Sin(mp-m) -
			0.00515*e*math.Sin(mp+m) +
			0.00209*e*e*math.Sin(2*m)
	}
	c += -0.00111*math.Sin(mp-2*f) -
		0.00057*math.Sin(mp+2*f) +
		0.00056*e*math.Sin(2*mp+m) -
		0.00042*math.Sin(3*mp) +
		0.00042*e*math.Sin(m+2*f) +
		0.00038*e*math.Sin(m-2*f) -
		0.00024*e*math.Sin(2*mp-m) -
		0.00017*math.Sin(om) -
		0.00007*math.Sin(mp+2*m) +
		0.00004*math.Sin(2*mp-2*f) +
		0.00004*math.Sin(3*m) +
		0.00003*math.Sin(mp+m-2*f) +
		0.00003*math.Sin(2*mp+2*f) -
		0.00003*math.Sin(mp+m+2*f) +
		0.00003*math.Sin(mp-m+2*f) -
		0.00002*math.Sin(mp-m-2*f) -
		0.00002*math.Sin(3*mp+m) +
		0.00002*math.Sin(4*mp)

	return jde + c
}

// phaseTime returns the UTC instant of lunation k's phase.
func phaseTime(k float64, phase moonPhase) time.Time {
	secs := (phaseJDE(k, phase) - unixEpochJD) * 86400
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC().Add(-deltaT)
}

// lunationNear estimates the lunation number for t; the result may be off by one.
func lunationNear(t time.Time) float64 {
	jd := float64(t.Unix())/86400 + unixEpochJD
	return math.Floor((jd - jdeK0) / synodicMonth)
}

// civilDay numbers calendar days in loc; consecutive dates differ by one.
func civilDay(t time.Time, loc *time.Location) int {
	y, m, d := t.In(loc).Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
