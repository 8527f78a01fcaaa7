package sun

import (
	"math"

	"github.com/thurmanmarka/daybreak/internal/julian"
)

// Equatorial represents equatorial coordinates in degrees. RA is in [0, 360).
type Equatorial struct {
	RA  float64 // right ascension, degrees
	Dec float64 // declination, degrees
}

// GeocentricEquatorialApprox returns an approximate geocentric RA/Dec for the
// Sun at ts (seconds since the Unix epoch).
//
// Low-precision NOAA / Meeus-style model, good to about an arcminute:
//
//	g   = mean anomaly of the Sun
//	q   = mean longitude of the Sun
//	L   = ecliptic longitude of the Sun
//	eps = obliquity of the ecliptic
func GeocentricEquatorialApprox(ts float64) Equatorial {
	d := julian.DaysSinceJ2000(ts)

	g := julian.Deg2Rad(357.529 + 0.98560028*d)
	q := julian.Deg2Rad(280.459 + 0.98564736*d)

	L := q +
		julian.Deg2Rad(1.915)*math.Sin(g) +
		julian.Deg2Rad(0.020)*math.Sin(2*g)

	eps := julian.Deg2Rad(23.439 - 0.00000036*d)

	x := math.Cos(L)
	y := math.Cos(eps) * math.Sin(L)
	z := math.Sin(eps) * math.Sin(L)

	ra := math.Atan2(y, x)
	if ra < 0 {
		ra += 2 * math.Pi
	}

	return Equatorial{
		RA:  julian.Rad2Deg(ra),
		Dec: julian.Rad2Deg(math.Asin(z)),
	}
}

// Altitude returns the geometric altitude (degrees) of the Sun's centre seen
// from (lat, lon) at ts.
func Altitude(lat, lon, ts float64) float64 {
	eq := GeocentricEquatorialApprox(ts)

	decRad := julian.Deg2Rad(eq.Dec)
	latRad := julian.Deg2Rad(lat)

	d := julian.DaysSinceJ2000(ts)
	gmst := 280.46061837 + 360.98564736629*d
	lst := julian.Normalize360(gmst + lon)

	H := julian.Deg2Rad(lst - eq.RA)
	for H > math.Pi {
		H -= 2 * math.Pi
	}
	for H < -math.Pi {
		H += 2 * math.Pi
	}

	sinAlt := math.Sin(latRad)*math.Sin(decRad) + math.Cos(latRad)*math.Cos(decRad)*math.Cos(H)
	return julian.Rad2Deg(math.Asin(sinAlt))
}

// HorizonAltitude returns the Sun-centre altitude that counts as rise/set
// for an observer at elevation metres, given the sea-level horizon altitude.
func HorizonAltitude(horizon, elevation float64) float64 {
	return horizon - dipCoefficient*math.Sqrt(elevation)/60.0
}
