// Package sun implements the closed-form sunrise/sunset calculator and an
// approximate solar position model.
//
// The calculator is a pure function of an instant (seconds since the Unix
// epoch) and an observer (latitude, longitude, elevation). It performs no
// I/O; callers that want to see the intermediate quantities pass an Observer.
package sun

import (
	"math"

	"github.com/thurmanmarka/daybreak/internal/julian"
)

const (
	// fractionalLeapDay is the fractional Julian day correction applied to
	// the J2000 epoch when counting days.
	fractionalLeapDay = 0.0008

	// terrestrialOffset is TT-UTC (69.184 s) expressed in days.
	terrestrialOffset = 69.184 / julian.SecondsPerDay

	// ObliquityDeg is the obliquity of the ecliptic used for declination.
	ObliquityDeg = 23.4397

	// ApparentHorizonAltitude is the altitude (degrees) of the Sun's centre
	// when its upper limb touches a sea-level horizon under standard
	// refraction.
	ApparentHorizonAltitude = -0.833

	// dipCoefficient scales sqrt(elevation in metres) into arcminutes of
	// horizon dip.
	dipCoefficient = 2.076
)

// Transit selects how the solar transit correction evaluates sin(2L).
type Transit int

const (
	// TransitReference passes 2L (a value in degrees) straight to the radian
	// sine. This reproduces the reference numbers exactly.
	TransitReference Transit = iota

	// TransitCorrected converts 2L to radians first.
	TransitCorrected
)

func (t Transit) String() string {
	switch t {
	case TransitReference:
		return "reference"
	case TransitCorrected:
		return "corrected"
	default:
		return "unknown"
	}
}

// Observer receives labelled intermediate values in computation order.
type Observer func(label string, value float64)

// Labels passed to an Observer.
const (
	LabelJulianDate        = "j_date"
	LabelJulianDay         = "n"
	LabelMeanSolarTime     = "J_"
	LabelMeanAnomaly       = "M"
	LabelEquationOfCenter  = "C"
	LabelEclipticLongitude = "L"
	LabelTransit           = "J_transit"
	LabelSinDeclination    = "sin_d"
	LabelCosDeclination    = "cos_d"
	LabelCosHourAngle      = "cos_w0"
	LabelHourAngle         = "w0"
	LabelJulianRise        = "j_rise"
	LabelJulianSet         = "j_set"
)

// Quantities holds every intermediate value of one computation. Angles are in
// degrees, Julian values in days.
type Quantities struct {
	JulianDate        float64 `json:"julian_date" yaml:"julian_date"`
	JulianDay         float64 `json:"julian_day" yaml:"julian_day"`
	MeanSolarTime     float64 `json:"mean_solar_time" yaml:"mean_solar_time"`
	MeanAnomaly       float64 `json:"mean_anomaly" yaml:"mean_anomaly"`
	EquationOfCenter  float64 `json:"equation_of_center" yaml:"equation_of_center"`
	EclipticLongitude float64 `json:"ecliptic_longitude" yaml:"ecliptic_longitude"`
	JulianTransit     float64 `json:"julian_transit" yaml:"julian_transit"`
	SinDeclination    float64 `json:"sin_declination" yaml:"sin_declination"`
	CosDeclination    float64 `json:"cos_declination" yaml:"cos_declination"`
	CosHourAngle      float64 `json:"cos_hour_angle" yaml:"cos_hour_angle"`
	HourAngle         float64 `json:"hour_angle" yaml:"hour_angle"`
	JulianRise        float64 `json:"julian_rise" yaml:"julian_rise"`
	JulianSet         float64 `json:"julian_set" yaml:"julian_set"`
}

// Declination returns the solar declination in degrees.
func (q Quantities) Declination() float64 {
	return julian.Rad2Deg(math.Asin(q.SinDeclination))
}

// Result is the outcome of a successful computation. Times are seconds since
// the Unix epoch.
type Result struct {
	Sunrise    float64    `json:"sunrise" yaml:"sunrise"`
	Sunset     float64    `json:"sunset" yaml:"sunset"`
	Transit    float64    `json:"transit" yaml:"transit"`
	Quantities Quantities `json:"quantities" yaml:"quantities"`
}

// DayLength returns sunset minus sunrise in seconds.
func (r Result) DayLength() float64 {
	return r.Sunset - r.Sunrise
}

type settings struct {
	observer Observer
	transit  Transit
	horizon  float64
}

// Option tweaks a single computation.
type Option func(*settings)

// WithObserver registers fn to receive every intermediate quantity.
func WithObserver(fn Observer) Option {
	return func(s *settings) { s.observer = fn }
}

// WithTransit selects the transit correction variant.
func WithTransit(t Transit) Option {
	return func(s *settings) { s.transit = t }
}

// WithHorizon sets the altitude (degrees) of the Sun's centre that counts as
// rise/set. Elevation dip is still applied on top of it.
func WithHorizon(altitudeDeg float64) Option {
	return func(s *settings) { s.horizon = altitudeDeg }
}

// RiseSet returns sunrise and sunset (epoch seconds) for the solar day
// selected by instant at the given observer.
func RiseSet(instant, lat, lon, elevation float64) (sunrise, sunset float64, err error) {
	r, err := Calculate(instant, lat, lon, elevation)
	if err != nil {
		return 0, 0, err
	}
	return r.Sunrise, r.Sunset, nil
}

// Calculate runs the full computation and returns the event times together
// with every intermediate quantity.
//
// On ErrSunNeverRisesOrSets the returned Result still carries the quantities
// up to and including the hour-angle cosine; its event times are zero.
func Calculate(instant, lat, lon, elevation float64, opts ...Option) (Result, error) {
	s := settings{horizon: ApparentHorizonAltitude}
	for _, opt := range opts {
		opt(&s)
	}

	if err := validate(instant, lat, lon, elevation, s.horizon); err != nil {
		return Result{}, err
	}

	emit := func(label string, v float64) float64 {
		if s.observer != nil {
			s.observer(label, v)
		}
		return v
	}

	var q Quantities

	q.JulianDate = emit(LabelJulianDate, julian.FromEpoch(instant))

	// ceil, not round: selects this calendar day's transit.
	q.JulianDay = emit(LabelJulianDay,
		math.Ceil(q.JulianDate-(julian.J2000+fractionalLeapDay)+terrestrialOffset))

	q.MeanSolarTime = emit(LabelMeanSolarTime, q.JulianDay-lon/360.0)

	q.MeanAnomaly = emit(LabelMeanAnomaly,
		julian.Normalize360(357.5291+0.98560028*q.MeanSolarTime))
	m := julian.Deg2Rad(q.MeanAnomaly)

	q.EquationOfCenter = emit(LabelEquationOfCenter,
		1.9148*math.Sin(m)+0.02*math.Sin(2*m)+0.0003*math.Sin(3*m))

	q.EclipticLongitude = emit(LabelEclipticLongitude,
		julian.Normalize360(q.MeanAnomaly+q.EquationOfCenter+180.0+102.9372))

	twoL := 2 * q.EclipticLongitude
	if s.transit == TransitCorrected {
		twoL = julian.Deg2Rad(twoL)
	}
	q.JulianTransit = emit(LabelTransit,
		julian.J2000+q.MeanSolarTime+0.0053*math.Sin(m)-0.0069*math.Sin(twoL))

	q.SinDeclination = emit(LabelSinDeclination,
		julian.SinD(q.EclipticLongitude)*julian.SinD(ObliquityDeg))
	q.CosDeclination = emit(LabelCosDeclination, math.Cos(math.Asin(q.SinDeclination)))

	latRad := julian.Deg2Rad(lat)
	altitude := HorizonAltitude(s.horizon, elevation)
	q.CosHourAngle = emit(LabelCosHourAngle,
		(julian.SinD(altitude)-math.Sin(latRad)*q.SinDeclination)/(math.Cos(latRad)*q.CosDeclination))

	if q.CosHourAngle < -1 || q.CosHourAngle > 1 {
		return Result{Quantities: q}, ErrSunNeverRisesOrSets
	}

	q.HourAngle = emit(LabelHourAngle, julian.Rad2Deg(math.Acos(q.CosHourAngle)))
	q.JulianRise = emit(LabelJulianRise, q.JulianTransit-q.HourAngle/360.0)
	q.JulianSet = emit(LabelJulianSet, q.JulianTransit+q.HourAngle/360.0)

	return Result{
		Sunrise:    julian.ToEpoch(q.JulianRise),
		Sunset:     julian.ToEpoch(q.JulianSet),
		Transit:    julian.ToEpoch(q.JulianTransit),
		Quantities: q,
	}, nil
}

func validate(instant, lat, lon, elevation, horizon float64) error {
	switch {
	case !finite(instant):
		return &InputError{Field: "instant", Value: instant, Reason: "must be finite"}
	case !finite(lat) || lat <= -90 || lat >= 90:
		return &InputError{Field: "latitude", Value: lat, Reason: "must be strictly between -90 and 90 degrees"}
	case !finite(lon):
		return &InputError{Field: "longitude", Value: lon, Reason: "must be finite"}
	case !finite(elevation) || elevation < 0:
		return &InputError{Field: "elevation", Value: elevation, Reason: "must be a finite number of metres >= 0"}
	case !finite(horizon) || horizon <= -90 || horizon >= 90:
		return &InputError{Field: "horizon", Value: horizon, Reason: "must be strictly between -90 and 90 degrees"}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
