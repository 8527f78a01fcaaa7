// Package report renders calculator results for people and machines.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/thurmanmarka/daybreak/internal/julian"
)

// TimestampLayout is the layout used for human-readable instants.
const TimestampLayout = "2006-01-02 15:04:05 -07:00"

// Degrees renders an angle three ways: radians, degrees/minutes/seconds and
// decimal degrees, e.g. "∠0.483rad = ∠27°40′14″ = ∠27.671°".
func Degrees(deg float64) string {
	sign := ""
	if deg < 0 {
		sign = "-"
	}
	seconds := int(math.Floor(math.Abs(deg) * 3600))
	d := seconds / 3600
	m := (seconds / 60) % 60
	s := seconds % 60
	return fmt.Sprintf("∠%.3frad = ∠%s%d°%d′%d″ = ∠%.3f°", julian.Deg2Rad(deg), sign, d, m, s, deg)
}

// Timestamp renders epoch seconds (truncated to whole seconds) in loc.
func Timestamp(ts float64, loc *time.Location) string {
	return Time(ts, loc).Format(TimestampLayout)
}

// Time converts epoch seconds (truncated to whole seconds) to loc.
func Time(ts float64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(int64(ts), 0).In(loc)
}

// Duration renders a number of seconds as e.g. "13h53m".
func Duration(seconds float64) string {
	d := time.Duration(math.Round(seconds)) * time.Second
	h := d / time.Hour
	m := (d - h*time.Hour) / time.Minute
	return fmt.Sprintf("%dh%02dm", h, m)
}
