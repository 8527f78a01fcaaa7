package sun

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	bharatpurLat = 27.6706
	bharatpurLon = 84.4385
)

// 2023-06-21T00:00:00Z
var solstice2023 = float64(time.Date(2023, time.June, 21, 0, 0, 0, 0, time.UTC).Unix())

func TestCalculate_ReferenceScenario(t *testing.T) {
	r, err := Calculate(solstice2023, bharatpurLat, bharatpurLon, 0)
	require.NoError(t, err)

	q := r.Quantities
	assert.InDelta(t, 2460116.5, q.JulianDate, 1e-9)
	assert.Equal(t, 8572.0, q.JulianDay)
	assert.InDelta(t, 8571.765448611111, q.MeanSolarTime, 1e-9)
	assert.InDelta(t, 165.86352624543724, q.MeanAnomaly, 1e-8)
	assert.InDelta(t, 0.4583850213022478, q.EquationOfCenter, 1e-9)
	assert.InDelta(t, 89.25911126673947, q.EclipticLongitude, 1e-8)
	assert.InDelta(t, 2460116.7631214615, q.JulianTransit, 1e-9)
	assert.InDelta(t, 0.3977504473675072, q.SinDeclination, 1e-9)
	assert.InDelta(t, 0.9174936411872008, q.CosDeclination, 1e-9)
	assert.InDelta(t, -0.24521026274721874, q.CosHourAngle, 1e-9)
	assert.InDelta(t, 104.1942599394489, q.HourAngle, 1e-7)

	assert.InDelta(t, 1687303327.071874, r.Sunrise, 1e-3)
	assert.InDelta(t, 1687353340.3166726, r.Sunset, 1e-3)
	assert.InDelta(t, 1687328333.6942732, r.Transit, 1e-3)
}

// NOAA solar calculator: sunrise 2023-06-20T23:27:07Z, sunset 2023-06-21T13:20:48Z.
func TestCalculate_AgainstNOAA(t *testing.T) {
	const (
		noaaRise = 1687303626.88
		noaaSet  = 1687353647.71
	)

	ref, err := Calculate(solstice2023, bharatpurLat, bharatpurLon, 0)
	require.NoError(t, err)
	assert.InDelta(t, noaaRise, ref.Sunrise, 6*60, "reference sunrise")
	assert.InDelta(t, noaaSet, ref.Sunset, 6*60, "reference sunset")

	cor, err := Calculate(solstice2023, bharatpurLat, bharatpurLon, 0, WithTransit(TransitCorrected))
	require.NoError(t, err)
	assert.InDelta(t, noaaRise, cor.Sunrise, 15, "corrected sunrise")
	assert.InDelta(t, noaaSet, cor.Sunset, 15, "corrected sunset")

	t.Logf("reference: rise %+.1fs set %+.1fs", ref.Sunrise-noaaRise, ref.Sunset-noaaSet)
	t.Logf("corrected: rise %+.1fs set %+.1fs", cor.Sunrise-noaaRise, cor.Sunset-noaaSet)
}

func TestCalculate_VariantsShareEverythingButTransit(t *testing.T) {
	ref, err := Calculate(solstice2023, bharatpurLat, bharatpurLon, 0)
	require.NoError(t, err)
	cor, err := Calculate(solstice2023, bharatpurLat, bharatpurLon, 0, WithTransit(TransitCorrected))
	require.NoError(t, err)

	assert.Equal(t, ref.Quantities.EclipticLongitude, cor.Quantities.EclipticLongitude)
	assert.Equal(t, ref.Quantities.HourAngle, cor.Quantities.HourAngle)
	assert.NotEqual(t, ref.Transit, cor.Transit)
	assert.InDelta(t, ref.DayLength(), cor.DayLength(), 1e-3)
}

func TestRiseSet_Deterministic(t *testing.T) {
	rise1, set1, err := RiseSet(solstice2023, bharatpurLat, bharatpurLon, 120)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		rise, set, err := RiseSet(solstice2023, bharatpurLat, bharatpurLon, 120)
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(rise1), math.Float64bits(rise))
		assert.Equal(t, math.Float64bits(set1), math.Float64bits(set))
	}
}

func TestCalculate_Ordering(t *testing.T) {
	locations := []struct {
		name     string
		lat, lon float64
	}{
		{"Bharatpur", bharatpurLat, bharatpurLon},
		{"Phoenix", 33.4484, -112.0740},
		{"London", 51.5, -0.1},
		{"Sydney", -33.87, 151.21},
		{"Quito", -0.1807, -78.4678},
	}

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	for _, loc := range locations {
		t.Run(loc.name, func(t *testing.T) {
			for day := 0; day < 366; day += 7 {
				ts := float64(start.AddDate(0, 0, day).Unix())

				r, err := Calculate(ts, loc.lat, loc.lon, 0)
				require.NoError(t, err, "day %d", day)

				assert.Less(t, r.Sunrise, r.Transit)
				assert.Less(t, r.Transit, r.Sunset)
				assert.Less(t, r.Sunset-r.Transit, 43200.0)
				assert.Less(t, r.Transit-r.Sunrise, 43200.0)
			}
		})
	}
}

func TestCalculate_EquatorAlwaysSucceeds(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

	for day := 0; day < 365; day++ {
		ts := float64(start.AddDate(0, 0, day).Unix())
		for _, lon := range []float64{-179.9, -90, 0, 45, 180} {
			_, _, err := RiseSet(ts, 0, lon, 0)
			require.NoError(t, err, "day %d lon %v", day, lon)
		}
	}
}

func TestCalculate_PolarDayAndNight(t *testing.T) {
	decSolstice := float64(time.Date(2023, time.December, 21, 0, 0, 0, 0, time.UTC).Unix())

	tests := []struct {
		name    string
		instant float64
		lat     float64
	}{
		{"north pole region in June", solstice2023, 89.5},
		{"south pole region in June", solstice2023, -89.5},
		{"arctic midnight sun", solstice2023, 70},
		{"arctic polar night", decSolstice, 70},
		{"antarctic midnight sun", decSolstice, -70},
		{"near pole in December", decSolstice, 89},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Calculate(tt.instant, tt.lat, 25, 0)
			require.ErrorIs(t, err, ErrSunNeverRisesOrSets)
			assert.Zero(t, r.Sunrise)
			assert.Zero(t, r.Sunset)
			assert.True(t, r.Quantities.CosHourAngle < -1 || r.Quantities.CosHourAngle > 1)
		})
	}
}

func TestCalculate_ElevationWidensDay(t *testing.T) {
	prevRise, prevSet, err := RiseSet(solstice2023, bharatpurLat, bharatpurLon, 0)
	require.NoError(t, err)

	for _, elev := range []float64{1, 10, 100, 1000, 8848} {
		rise, set, err := RiseSet(solstice2023, bharatpurLat, bharatpurLon, elev)
		require.NoError(t, err)

		assert.Less(t, rise, prevRise, "elevation %v", elev)
		assert.Greater(t, set, prevSet, "elevation %v", elev)
		prevRise, prevSet = rise, set
	}

	// 1000 m: hour angle grows to ~105.587 degrees.
	rise, set, err := RiseSet(solstice2023, bharatpurLat, bharatpurLon, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 1687302992.7658617, rise, 1e-3)
	assert.InDelta(t, 1687353674.6226847, set, 1e-3)
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		instant   float64
		lat, lon  float64
		elevation float64
		field     string
	}{
		{"north pole", solstice2023, 90, 0, 0, "latitude"},
		{"south pole", solstice2023, -90, 0, 0, "latitude"},
		{"beyond pole", solstice2023, 123, 0, 0, "latitude"},
		{"negative elevation", solstice2023, 10, 0, -5, "elevation"},
		{"NaN latitude", solstice2023, math.NaN(), 0, 0, "latitude"},
		{"infinite longitude", solstice2023, 10, math.Inf(1), 0, "longitude"},
		{"NaN instant", math.NaN(), 10, 0, 0, "instant"},
		{"infinite elevation", solstice2023, 10, 0, math.Inf(1), "elevation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := RiseSet(tt.instant, tt.lat, tt.lon, tt.elevation)
			require.Error(t, err)

			var inErr *InputError
			require.True(t, errors.As(err, &inErr), "want *InputError, got %T", err)
			assert.Equal(t, tt.field, inErr.Field)
			assert.False(t, errors.Is(err, ErrSunNeverRisesOrSets))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestCalculate_Observer(t *testing.T) {
	var labels []string
	values := map[string]float64{}

	r, err := Calculate(solstice2023, bharatpurLat, bharatpurLon, 0, WithObserver(func(label string, v float64) {
		labels = append(labels, label)
		values[label] = v
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{
		LabelJulianDate, LabelJulianDay, LabelMeanSolarTime, LabelMeanAnomaly,
		LabelEquationOfCenter, LabelEclipticLongitude, LabelTransit,
		LabelSinDeclination, LabelCosDeclination, LabelCosHourAngle,
		LabelHourAngle, LabelJulianRise, LabelJulianSet,
	}, labels)
	assert.Equal(t, r.Quantities.JulianTransit, values[LabelTransit])
	assert.Equal(t, r.Quantities.JulianSet, values[LabelJulianSet])
}

func TestCalculate_ObserverQuietOnInvalidInput(t *testing.T) {
	calls := 0
	_, err := Calculate(solstice2023, 90, 0, 0, WithObserver(func(string, float64) { calls++ }))
	require.Error(t, err)
	assert.Zero(t, calls)
}

func TestCalculate_ObserverStopsAtPolarFailure(t *testing.T) {
	var last string
	_, err := Calculate(solstice2023, 80, 0, 0, WithObserver(func(label string, _ float64) { last = label }))
	require.ErrorIs(t, err, ErrSunNeverRisesOrSets)
	assert.Equal(t, LabelCosHourAngle, last)
}

func TestCalculate_Horizon(t *testing.T) {
	std, err := Calculate(solstice2023, bharatpurLat, bharatpurLon, 0)
	require.NoError(t, err)

	civil, err := Calculate(solstice2023, bharatpurLat, bharatpurLon, 0, WithHorizon(-6))
	require.NoError(t, err)
	assert.Less(t, civil.Sunrise, std.Sunrise)
	assert.Greater(t, civil.Sunset, std.Sunset)
	assert.Equal(t, std.Transit, civil.Transit)

	golden, err := Calculate(solstice2023, bharatpurLat, bharatpurLon, 0, WithHorizon(6))
	require.NoError(t, err)
	assert.Greater(t, golden.Sunrise, std.Sunrise)

	_, err = Calculate(solstice2023, bharatpurLat, bharatpurLon, 0, WithHorizon(math.NaN()))
	var inErr *InputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, "horizon", inErr.Field)
}

func TestTransitString(t *testing.T) {
	assert.Equal(t, "reference", TransitReference.String())
	assert.Equal(t, "corrected", TransitCorrected.String())
	assert.Equal(t, "unknown", Transit(7).String())
}
