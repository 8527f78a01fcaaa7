// Package crosscheck validates the closed-form calculator against independent
// sunrise/sunset sources.
package crosscheck

import (
	"fmt"
	"math"

	"github.com/sixdouglas/suncalc"

	"github.com/thurmanmarka/daybreak/internal/julian"
	"github.com/thurmanmarka/daybreak/internal/solver"
	"github.com/thurmanmarka/daybreak/internal/sun"
)

const halfDay = julian.SecondsPerDay / 2

// Reference produces rise and set instants (epoch seconds) for the solar day
// whose transit is near the given instant.
type Reference interface {
	Name() string
	RiseSet(transit, lat, lon, elevation float64) (rise, set float64, err error)
}

// Numeric searches the approximate solar altitude curve for crossings of the
// elevation-adjusted horizon within half a day either side of transit.
type Numeric struct {
	// Horizon is the sea-level rise/set altitude in degrees; zero means
	// sun.ApparentHorizonAltitude.
	Horizon float64
	// Steps and Tol tune the solver; zero values pick 48 samples and 1 s.
	Steps int
	Tol   float64
}

func (Numeric) Name() string { return "numeric" }

func (n Numeric) RiseSet(transit, lat, lon, elevation float64) (float64, float64, error) {
	horizon := n.Horizon
	if horizon == 0 {
		horizon = sun.ApparentHorizonAltitude
	}
	steps := n.Steps
	if steps == 0 {
		steps = 48
	}
	tol := n.Tol
	if tol == 0 {
		tol = 1
	}

	target := sun.HorizonAltitude(horizon, elevation)
	alt := func(ts float64) float64 {
		return sun.Altitude(lat, lon, ts)
	}

	rise := solver.FindAltitudeEvent(alt,
		solver.Search{Start: transit - halfDay, End: transit, Steps: steps, Tol: tol},
		target, solver.CrossingUp)
	set := solver.FindAltitudeEvent(alt,
		solver.Search{Start: transit, End: transit + halfDay, Steps: steps, Tol: tol},
		target, solver.CrossingDown)

	if !rise.OK || !set.OK {
		return 0, 0, sun.ErrSunNeverRisesOrSets
	}
	return rise.Time, set.Time, nil
}

// SunCalc asks github.com/sixdouglas/suncalc for the day around transit.
// suncalc has no notion of observer elevation, so elevation is ignored.
type SunCalc struct{}

func (SunCalc) Name() string { return "suncalc" }

func (SunCalc) RiseSet(transit, lat, lon, _ float64) (float64, float64, error) {
	times := suncalc.GetTimes(julian.Time(transit), lat, lon)

	riseT := times["sunrise"].Value
	setT := times["sunset"].Value
	if riseT.IsZero() || setT.IsZero() {
		return 0, 0, sun.ErrSunNeverRisesOrSets
	}

	rise := julian.EpochSeconds(riseT)
	set := julian.EpochSeconds(setT)
	if math.IsNaN(rise) || math.IsNaN(set) || !(rise < set) {
		return 0, 0, sun.ErrSunNeverRisesOrSets
	}
	return rise, set, nil
}

// Delta is the signed difference (ours minus reference, seconds) for one
// reference.
type Delta struct {
	Reference string  `json:"reference" yaml:"reference"`
	Rise      float64 `json:"rise_seconds" yaml:"rise_seconds"`
	Set       float64 `json:"set_seconds" yaml:"set_seconds"`
	Err       error   `json:"-" yaml:"-"`
}

func (d Delta) String() string {
	if d.Err != nil {
		return fmt.Sprintf("%s: %v", d.Reference, d.Err)
	}
	return fmt.Sprintf("%s: rise %+.1fs, set %+.1fs", d.Reference, d.Rise, d.Set)
}

// Compare measures r against every reference. Each reference is evaluated
// around r.Transit.
func Compare(r sun.Result, lat, lon, elevation float64, refs ...Reference) []Delta {
	out := make([]Delta, 0, len(refs))
	for _, ref := range refs {
		d := Delta{Reference: ref.Name()}
		rise, set, err := ref.RiseSet(r.Transit, lat, lon, elevation)
		if err != nil {
			d.Err = err
		} else {
			d.Rise = r.Sunrise - rise
			d.Set = r.Sunset - set
		}
		out = append(out, d)
	}
	return out
}

// Stats accumulates min/max/mean of a series, ignoring NaNs.
type Stats struct {
	Count int
	Sum   float64
	Min   float64
	Max   float64
}

func (s *Stats) Add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.Count == 0 {
		s.Min, s.Max = v, v
	} else {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Sum += v
	s.Count++
}

func (s *Stats) Mean() float64 {
	if s.Count == 0 {
		return math.NaN()
	}
	return s.Sum / float64(s.Count)
}
