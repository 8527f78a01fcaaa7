// Package solver locates the instants at which an altitude function crosses
// a target value.
package solver

// AltitudeFunc returns altitude in degrees at ts (seconds since the Unix epoch).
type AltitudeFunc func(ts float64) float64

// EventType describes whether we are looking for a rising or setting event.
type EventType int

const (
	// CrossingUp means altitude is increasing through the target value (rise).
	CrossingUp EventType = iota
	// CrossingDown means altitude is decreasing through the target value (set).
	CrossingDown
)

// Result holds the output of an altitude event search.
type Result struct {
	Time float64 // approximate epoch seconds of the event
	OK   bool    // true if an event was found
}

// Search bounds a crossing search. Steps is the number of samples taken
// across [Start, End]; Tol is the bracket width (seconds) at which bisection
// stops.
type Search struct {
	Start, End float64
	Steps      int
	Tol        float64
}

// FindAltitudeEvent returns the first crossing of targetDeg in direction
// eventType inside the search window, using a bracket-then-bisect strategy.
func FindAltitudeEvent(f AltitudeFunc, s Search, targetDeg float64, eventType EventType) Result {
	if !(s.Start < s.End) {
		return Result{}
	}
	steps := s.Steps
	if steps < 2 {
		steps = 2
	}
	tol := s.Tol
	if tol <= 0 {
		tol = 1
	}

	interval := (s.End - s.Start) / float64(steps-1)

	prevT := s.Start
	prevAlt := f(prevT) - targetDeg

	for i := 1; i < steps; i++ {
		t := s.Start + float64(i)*interval
		alt := f(t) - targetDeg

		if hasCrossing(prevAlt, alt, eventType) {
			return bisect(f, prevT, t, prevAlt, targetDeg, eventType, tol)
		}

		prevT, prevAlt = t, alt
	}

	return Result{}
}

func hasCrossing(a1, a2 float64, eventType EventType) bool {
	switch eventType {
	case CrossingUp:
		return a1 < 0 && a2 >= 0
	case CrossingDown:
		return a1 > 0 && a2 <= 0
	default:
		return a1*a2 <= 0
	}
}

func bisect(f AltitudeFunc, a, b, altA, targetDeg float64, eventType EventType, tol float64) Result {
	for b-a > tol {
		mid := a + (b-a)/2
		altM := f(mid) - targetDeg

		if hasCrossing(altA, altM, eventType) {
			b = mid
		} else {
			a, altA = mid, altM
		}
	}

	return Result{Time: a + (b-a)/2, OK: true}
}
