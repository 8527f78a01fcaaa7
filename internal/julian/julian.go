// Package julian converts between Unix epoch seconds, time.Time and Julian
// dates, and holds the small angle helpers shared by the solar models.
package julian

import (
	"math"
	"time"
)

const (
	// SecondsPerDay is the length of a Julian day in seconds.
	SecondsPerDay = 86400.0

	// UnixEpoch is the Julian date of 1970-01-01 00:00:00 UTC.
	UnixEpoch = 2440587.5

	// J2000 is the Julian date of the J2000.0 epoch (2000-01-01 12:00 TT).
	J2000 = 2451545.0
)

// FromEpoch converts seconds since the Unix epoch to a Julian date.
func FromEpoch(ts float64) float64 {
	return ts/SecondsPerDay + UnixEpoch
}

// ToEpoch converts a Julian date to seconds since the Unix epoch.
func ToEpoch(j float64) float64 {
	return (j - UnixEpoch) * SecondsPerDay
}

// EpochSeconds returns t as fractional seconds since the Unix epoch.
func EpochSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

// Time converts fractional epoch seconds to a UTC time.Time, rounded to the
// nearest microsecond to keep float noise out of the nanosecond field.
func Time(ts float64) time.Time {
	sec, frac := math.Modf(ts)
	nsec := math.Round(frac*1e6) * 1e3
	return time.Unix(int64(sec), int64(nsec)).UTC()
}

// FromTime returns the Julian date of t.
func FromTime(t time.Time) float64 {
	return FromEpoch(EpochSeconds(t))
}

// DaysSinceJ2000 returns the number of (UTC) days since the J2000.0 epoch.
//
// UTC is used in place of TT; the ~69 s difference is below the accuracy of
// the approximate models that consume this.
func DaysSinceJ2000(ts float64) float64 {
	return FromEpoch(ts) - J2000
}

// -----------------------------
// Degree/radian helpers.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func SinD(deg float64) float64 {
	return math.Sin(Deg2Rad(deg))
}

// Normalize360 reduces d into [0, 360).
func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}
