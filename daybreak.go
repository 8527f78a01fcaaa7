// Package daybreak computes sunrise and sunset for an observer and an
// instant with a closed-form solar model (Julian day, mean anomaly,
// equation of center, ecliptic longitude, declination and the hour angle of
// an elevation-adjusted horizon).
//
// The core entry point is SunriseSunset, which works on plain epoch seconds.
// The time.Time helpers (SlideIntoSunset, DaylightHours, TwilightFor,
// GoldenHourFor, BlueHourFor) wrap it and return times in the caller's zone.
//
// All functions are pure and safe for concurrent use.
package daybreak

import (
	"errors"
	"fmt"
	"time"

	"github.com/thurmanmarka/daybreak/internal/julian"
	"github.com/thurmanmarka/daybreak/internal/sun"
)

// TwilightKind identifies the type of twilight based on the Sun's altitude
// below the horizon.
type TwilightKind int

const (
	// TwilightCivil corresponds to the Sun's center at -6 degrees altitude.
	TwilightCivil TwilightKind = iota

	// TwilightNautical corresponds to the Sun's center at -12 degrees altitude.
	TwilightNautical

	// TwilightAstronomical corresponds to the Sun's center at -18 degrees altitude.
	TwilightAstronomical
)

func (k TwilightKind) altitude() (float64, error) {
	switch k {
	case TwilightCivil:
		return -6.0, nil
	case TwilightNautical:
		return -12.0, nil
	case TwilightAstronomical:
		return -18.0, nil
	default:
		return 0, fmt.Errorf("unknown TwilightKind: %d", k)
	}
}

// Coordinates represent an observer's location.
type Coordinates struct {
	Lat       float64 // degrees, north positive, strictly inside (-90, 90)
	Lon       float64 // degrees, east positive (west negative, e.g. -105 for 105°W)
	Elevation float64 // meters above sea level, >= 0
}

// RiseSet holds rise and set times of the Sun for one solar day.
type RiseSet struct {
	Rise time.Time
	Set  time.Time
}

// PhaseWindow represents a continuous time interval where the Sun's altitude
// stays within a particular range (e.g. golden hour or blue hour).
type PhaseWindow struct {
	Start time.Time
	End   time.Time
}

// DaylightPhases holds the morning and evening windows for a given phase
// (e.g. golden hour or blue hour).
type DaylightPhases struct {
	// Morning is the interval after dawn / sunrise.
	Morning PhaseWindow
	// Evening is the interval before dusk / sunset.
	Evening PhaseWindow

	// HasMorning / HasEvening indicate whether the corresponding window
	// exists on this date at this location (high latitudes can be weird).
	HasMorning bool
	HasEvening bool
}

type (
	// Result carries event times (epoch seconds) and every intermediate
	// quantity of one computation.
	Result = sun.Result

	// Quantities are the intermediate values of one computation.
	Quantities = sun.Quantities

	// InputError reports a latitude, longitude, elevation or instant
	// outside the calculator's domain.
	InputError = sun.InputError

	// Option tweaks a single computation (observer hook, transit variant,
	// horizon altitude).
	Option = sun.Option

	// Observer receives labelled intermediate values.
	Observer = sun.Observer

	// Transit selects the solar transit correction variant.
	Transit = sun.Transit
)

const (
	TransitReference = sun.TransitReference
	TransitCorrected = sun.TransitCorrected
)

var (
	// ErrNoRiseNoSet is returned when the Sun does not cross the horizon on
	// the selected day at that location (polar day or polar night).
	ErrNoRiseNoSet = sun.ErrSunNeverRisesOrSets

	WithObserver = sun.WithObserver
	WithTransit  = sun.WithTransit
	WithHorizon  = sun.WithHorizon
)

// SunriseSunset returns sunrise and sunset, in seconds since the Unix epoch,
// for the solar day selected by instant (seconds since the Unix epoch).
//
// It fails with an *InputError when latitude is not strictly inside
// (-90, 90), elevation is negative, or any input is not finite, and with
// ErrNoRiseNoSet during polar day or night.
func SunriseSunset(instant, latitude, longitude, elevation float64) (sunrise, sunset float64, err error) {
	return sun.RiseSet(instant, latitude, longitude, elevation)
}

// Calculate is SunriseSunset with options and the full intermediate record.
func Calculate(loc Coordinates, t time.Time, opts ...Option) (Result, error) {
	return sun.Calculate(julian.EpochSeconds(t), loc.Lat, loc.Lon, loc.Elevation, opts...)
}

// SlideIntoSunset is your glorious convenience helper:
// it returns sunrise and sunset for the solar day selected by t, expressed
// in t's location.
//
// The day is chosen by the Julian day containing t, so for a local calendar
// date pass local midnight.
func SlideIntoSunset(loc Coordinates, t time.Time, opts ...Option) (RiseSet, error) {
	r, err := Calculate(loc, t, opts...)
	if err != nil {
		return RiseSet{}, err
	}
	return RiseSet{
		Rise: julian.Time(r.Sunrise).In(t.Location()),
		Set:  julian.Time(r.Sunset).In(t.Location()),
	}, nil
}

// DaylightHours calculates the duration of daylight (time between sunrise and
// sunset) at the given location for the solar day selected by t. Returns the
// duration in hours as a float64.
//
// If the sun does not rise or set (e.g., polar regions), it returns 0 and
// ErrNoRiseNoSet.
func DaylightHours(loc Coordinates, t time.Time) (float64, error) {
	r, err := Calculate(loc, t)
	if err != nil {
		return 0, err
	}
	return r.DayLength() / 3600.0, nil
}

// TwilightFor computes twilight times (dawn and dusk) of the given kind.
// The returned RiseSet uses Rise as the "dawn" time (upward crossing of the
// twilight altitude) and Set as the "dusk" time (downward crossing).
//
// For example, TwilightCivil returns civil dawn (Rise) and civil dusk (Set)
// where the Sun's altitude crosses -6 degrees.
func TwilightFor(loc Coordinates, t time.Time, kind TwilightKind, opts ...Option) (RiseSet, error) {
	alt, err := kind.altitude()
	if err != nil {
		return RiseSet{}, err
	}
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	return SlideIntoSunset(loc, t, append(all, WithHorizon(alt))...)
}

// GoldenHourFor computes the golden hour intervals for the solar day selected
// by t. Golden hour is (approximately) defined as the period when the Sun's
// center altitude is between -4° and +6°.
//
// Morning is the interval after dawn (Sun climbing from -4° up to +6°) and
// Evening is the interval before dusk (Sun descending from +6° down to -4°).
//
// If neither window exists, ErrNoRiseNoSet is returned.
func GoldenHourFor(loc Coordinates, t time.Time) (DaylightPhases, error) {
	return phasesBetween(loc, t, -4.0, 6.0)
}

// BlueHourFor computes the blue hour intervals for the solar day selected by
// t. Blue hour here is defined as the period when the Sun's center altitude
// is between -6° and -4°.
//
// If neither window exists, ErrNoRiseNoSet is returned.
func BlueHourFor(loc Coordinates, t time.Time) (DaylightPhases, error) {
	return phasesBetween(loc, t, -6.0, -4.0)
}

// phasesBetween returns the windows where the Sun climbs from lowAlt to
// highAlt (morning) and descends from highAlt to lowAlt (evening). Both
// crossings share a transit, so a window exists exactly when both altitudes
// are reached.
func phasesBetween(loc Coordinates, t time.Time, lowAlt, highAlt float64) (DaylightPhases, error) {
	low, errLow := SlideIntoSunset(loc, t, WithHorizon(lowAlt))
	high, errHigh := SlideIntoSunset(loc, t, WithHorizon(highAlt))

	for _, err := range []error{errLow, errHigh} {
		if err != nil && !errors.Is(err, ErrNoRiseNoSet) {
			return DaylightPhases{}, err
		}
	}
	if errLow != nil || errHigh != nil {
		return DaylightPhases{}, ErrNoRiseNoSet
	}

	var phases DaylightPhases

	if high.Rise.After(low.Rise) {
		phases.Morning = PhaseWindow{Start: low.Rise, End: high.Rise}
		phases.HasMorning = true
	}
	if low.Set.After(high.Set) {
		phases.Evening = PhaseWindow{Start: high.Set, End: low.Set}
		phases.HasEvening = true
	}

	if !phases.HasMorning && !phases.HasEvening {
		return DaylightPhases{}, ErrNoRiseNoSet
	}
	return phases, nil
}
