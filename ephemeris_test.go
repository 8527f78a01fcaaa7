package daybreak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper: absolute difference in minutes
func diffMinutes(a, b time.Time) float64 {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d.Minutes()
}

// TestEphemeris compares both transit variants with published sunrise and
// sunset times. The reference variant keeps the degree-valued sin(2L) term
// and drifts by a few minutes; the corrected variant should land within
// about a minute.
func TestEphemeris(t *testing.T) {
	locPHX := time.FixedZone("MST", -7*3600)
	locNY := time.FixedZone("EST", -5*3600)
	locNPT := time.FixedZone("NPT", 5*3600+45*60)

	type ephemCase struct {
		name         string
		coords       Coordinates
		date         time.Time // local midnight of the date
		expectedRise time.Time
		expectedSet  time.Time
	}

	cases := []ephemCase{
		// Sun reference: sunrise ≈ 07:13, sunset ≈ 17:21 (local, America/Phoenix)
		{
			name:         "Phoenix 2025-11-30",
			coords:       Coordinates{Lat: 33.4484, Lon: -112.0740},
			date:         time.Date(2025, time.November, 30, 0, 0, 0, 0, locPHX),
			expectedRise: time.Date(2025, time.November, 30, 7, 13, 0, 0, locPHX),
			expectedSet:  time.Date(2025, time.November, 30, 17, 21, 0, 0, locPHX),
		},
		// Sun reference: sunrise ≈ 06:59, sunset ≈ 16:31 (local, America/New_York)
		{
			name:         "NewYork 2025-11-30",
			coords:       Coordinates{Lat: 40.7128, Lon: -74.0060},
			date:         time.Date(2025, time.November, 30, 0, 0, 0, 0, locNY),
			expectedRise: time.Date(2025, time.November, 30, 6, 59, 0, 0, locNY),
			expectedSet:  time.Date(2025, time.November, 30, 16, 31, 0, 0, locNY),
		},
		// NOAA: sunrise 05:12:07, sunset 19:05:48 (local, Asia/Kathmandu)
		{
			name:         "Bharatpur 2023-06-21",
			coords:       Coordinates{Lat: 27.6706, Lon: 84.4385},
			date:         time.Date(2023, time.June, 21, 0, 0, 0, 0, locNPT),
			expectedRise: time.Date(2023, time.June, 21, 5, 12, 7, 0, locNPT),
			expectedSet:  time.Date(2023, time.June, 21, 19, 5, 48, 0, locNPT),
		},
	}

	variants := []struct {
		transit Transit
		maxErr  float64 // minutes
	}{
		{TransitReference, 6},
		{TransitCorrected, 2},
	}

	for _, tc := range cases {
		for _, v := range variants {
			t.Run(tc.name+"/"+v.transit.String(), func(t *testing.T) {
				rs, err := SlideIntoSunset(tc.coords, tc.date, WithTransit(v.transit))
				require.NoError(t, err)

				loc := tc.date.Location()
				assert.Equal(t, loc, rs.Rise.Location())

				riseErr := diffMinutes(rs.Rise, tc.expectedRise)
				setErr := diffMinutes(rs.Set, tc.expectedSet)

				t.Logf("rise: expected %s, got %s (err=%.2f min)",
					tc.expectedRise.Format(time.RFC3339), rs.Rise.Format(time.RFC3339), riseErr)
				t.Logf("set:  expected %s, got %s (err=%.2f min)",
					tc.expectedSet.Format(time.RFC3339), rs.Set.Format(time.RFC3339), setErr)

				assert.LessOrEqual(t, riseErr, v.maxErr)
				assert.LessOrEqual(t, setErr, v.maxErr)
			})
		}
	}
}
