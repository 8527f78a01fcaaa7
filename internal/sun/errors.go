package sun

import (
	"errors"
	"fmt"
)

// ErrSunNeverRisesOrSets is returned when the hour-angle cosine falls outside
// [-1, 1]: the Sun stays above (polar day) or below (polar night) the
// adjusted horizon for the whole solar day.
var ErrSunNeverRisesOrSets = errors.New("sun never rises or sets on this date")

// InputError reports an observer or instant value the calculator refuses
// to work with.
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}
