package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ansel1/merry"
	"gopkg.in/yaml.v3"

	"github.com/thurmanmarka/daybreak/internal/crosscheck"
	"github.com/thurmanmarka/daybreak/internal/julian"
	"github.com/thurmanmarka/daybreak/internal/sun"
)

// Format selects the output encoding.
type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHuman, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatHuman, nil
	default:
		return "", merry.Errorf("unknown output format %q (use human, json or yaml)", s)
	}
}

// Report is everything one CLI run prints. Event fields are nil when the Sun
// does not rise or set. Human output renders in Instant's location.
type Report struct {
	Latitude   float64            `json:"latitude" yaml:"latitude"`
	Longitude  float64            `json:"longitude" yaml:"longitude"`
	Elevation  float64            `json:"elevation" yaml:"elevation"`
	Instant    time.Time          `json:"instant" yaml:"instant"`
	Timezone   string             `json:"timezone" yaml:"timezone"`
	Variant    string             `json:"variant" yaml:"variant"`
	Sunrise    *time.Time         `json:"sunrise,omitempty" yaml:"sunrise,omitempty"`
	Sunset     *time.Time         `json:"sunset,omitempty" yaml:"sunset,omitempty"`
	Transit    *time.Time         `json:"transit,omitempty" yaml:"transit,omitempty"`
	DayLength  string             `json:"day_length,omitempty" yaml:"day_length,omitempty"`
	Error      string             `json:"error,omitempty" yaml:"error,omitempty"`
	Quantities *sun.Quantities    `json:"quantities,omitempty" yaml:"quantities,omitempty"`
	CrossCheck []crosscheck.Delta `json:"crosscheck,omitempty" yaml:"crosscheck,omitempty"`
}

// New builds a Report for one computation. err is the error Calculate
// returned, if any; r is consulted only when err is nil.
func New(lat, lon, elevation float64, instant time.Time, loc *time.Location, variant sun.Transit, r sun.Result, err error) Report {
	if loc == nil {
		loc = time.UTC
	}
	rep := Report{
		Latitude:  lat,
		Longitude: lon,
		Elevation: elevation,
		Instant:   instant.In(loc),
		Timezone:  loc.String(),
		Variant:   variant.String(),
	}
	if err != nil {
		rep.Error = err.Error()
		return rep
	}

	rise, set, transit := Time(r.Sunrise, loc), Time(r.Sunset, loc), Time(r.Transit, loc)
	rep.Sunrise, rep.Sunset, rep.Transit = &rise, &set, &transit
	rep.DayLength = Duration(r.DayLength())
	return rep
}

// Write encodes rep to w in the requested format.
func Write(w io.Writer, f Format, rep Report) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeHuman(w, rep)
	}
}

func writeHuman(w io.Writer, rep Report) error {
	p := &printer{w: w}
	loc := rep.Instant.Location()

	p.printf("Latitude               f       = %s\n", Degrees(rep.Latitude))
	p.printf("Longitude              l_w     = %s\n", Degrees(rep.Longitude))
	p.printf("Elevation              h       = %.1f m\n", rep.Elevation)
	p.printf("Now                    ts      = %s\n", rep.Instant.Format(TimestampLayout))

	if rep.Quantities != nil {
		writeQuantities(p, *rep.Quantities, loc)
	}

	if rep.Error != "" {
		p.printf("Error: %s\n", rep.Error)
	} else {
		p.printf("Sunrise: %s\n", rep.Sunrise.Format(TimestampLayout))
		p.printf("Sunset: %s\n", rep.Sunset.Format(TimestampLayout))
		p.printf("Day length: %s\n", rep.DayLength)
	}

	for _, d := range rep.CrossCheck {
		p.printf("Cross-check %s\n", d)
	}
	return p.err
}

func writeQuantities(p *printer, q sun.Quantities, loc *time.Location) {
	p.printf("Julian date            j_date  = %.3f days\n", q.JulianDate)
	p.printf("Julian day             n       = %.3f days\n", q.JulianDay)
	p.printf("Mean solar time        J_      = %.9f days\n", q.MeanSolarTime)
	p.printf("Solar mean anomaly     M       = %s\n", Degrees(q.MeanAnomaly))
	p.printf("Equation of the center C       = %s\n", Degrees(q.EquationOfCenter))
	p.printf("Ecliptic longitude     L       = %s\n", Degrees(q.EclipticLongitude))
	p.printf("Solar transit time     J_trans = %s\n", Timestamp(julian.ToEpoch(q.JulianTransit), loc))
	p.printf("Declination            d       = %s\n", Degrees(q.Declination()))
	p.printf("Hour angle cosine      cos_w0  = %.6f\n", q.CosHourAngle)
	if q.JulianRise != 0 {
		p.printf("Hour angle             w0      = %s\n", Degrees(q.HourAngle))
		p.printf("Sunrise                j_rise  = %.3f\n", julian.ToEpoch(q.JulianRise))
		p.printf("Sunset                 j_set   = %.3f\n", julian.ToEpoch(q.JulianSet))
	}
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
