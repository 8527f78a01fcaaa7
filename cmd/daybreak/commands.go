package main

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/ansel1/merry"
	"github.com/spf13/cobra"

	"github.com/thurmanmarka/daybreak"
	"github.com/thurmanmarka/daybreak/internal/config"
	"github.com/thurmanmarka/daybreak/internal/crosscheck"
	"github.com/thurmanmarka/daybreak/internal/julian"
	"github.com/thurmanmarka/daybreak/internal/logging"
	"github.com/thurmanmarka/daybreak/internal/report"
	"github.com/thurmanmarka/daybreak/internal/sun"
)

// errNoEvent is returned after the report has been printed so the process
// exits non-zero during polar day or night.
var errNoEvent = errors.New("sun does not rise or set on this date")

type flags struct {
	configFile string
	lat        float64
	lon        float64
	elevation  float64
	timeStr    string
	tz         string
	format     string
	variant    string
	logLevel   string
}

// run is the resolved input of one invocation.
type run struct {
	coords  daybreak.Coordinates
	instant time.Time
	loc     *time.Location
	format  report.Format
	transit sun.Transit
	out     io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	f := &flags{}
	r := &run{out: out}

	root := &cobra.Command{
		Use:   "daybreak",
		Short: "Sunrise and sunset for an observer",
		Long: `daybreak computes sunrise and sunset with a closed-form solar model.

Location, time zone and output format come from daybreak.yaml, DAYBREAK_*
environment variables, or flags (highest priority).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.resolve(cmd, f)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.riseSet(false)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configFile, "config", "c", "", "config file path")
	pf.Float64Var(&f.lat, "lat", 0, "latitude in degrees (north positive)")
	pf.Float64Var(&f.lon, "lon", 0, "longitude in degrees (east positive, west negative)")
	pf.Float64Var(&f.elevation, "elevation", 0, "elevation in metres above sea level")
	pf.StringVarP(&f.timeStr, "time", "t", "", "instant in RFC3339, 'YYYY-MM-DDTHH:MM' or 'YYYY-MM-DD' (defaults to now)")
	pf.StringVar(&f.tz, "tz", "", "IANA time zone or ±HH:MM offset for input and output")
	pf.StringVarP(&f.format, "format", "o", "", "output format: human, json or yaml")
	pf.StringVar(&f.variant, "variant", "", "transit variant: reference or corrected")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: dbg, inf, wrn, err")

	root.AddCommand(
		riseCmd(r),
		traceCmd(r),
		twilightCmd(r),
		compareCmd(r),
	)
	return root
}

func riseCmd(r *run) *cobra.Command {
	return &cobra.Command{
		Use:   "rise",
		Short: "Print sunrise and sunset (default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.riseSet(false)
		},
	}
}

func traceCmd(r *run) *cobra.Command {
	return &cobra.Command{
		Use:   "trace",
		Short: "Print sunrise and sunset with every intermediate quantity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.riseSet(true)
		},
	}
}

func twilightCmd(r *run) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "twilight",
		Short: "Print dawn and dusk for civil, nautical or astronomical twilight",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseTwilight(kind)
			if err != nil {
				return err
			}
			rs, err := daybreak.TwilightFor(r.coords, r.instant.In(r.loc), k, daybreak.WithTransit(r.transit))
			if errors.Is(err, daybreak.ErrNoRiseNoSet) {
				return merry.Prepend(errNoEvent, kind+" twilight")
			}
			if err != nil {
				return err
			}
			return r.write(report.Report{
				Latitude:  r.coords.Lat,
				Longitude: r.coords.Lon,
				Elevation: r.coords.Elevation,
				Instant:   r.instant.In(r.loc),
				Timezone:  r.loc.String(),
				Variant:   r.transit.String(),
				Sunrise:   &rs.Rise,
				Sunset:    &rs.Set,
				DayLength: report.Duration(rs.Set.Sub(rs.Rise).Seconds()),
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "civil", "twilight kind: civil, nautical or astronomical")
	return cmd
}

func compareCmd(r *run) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare the closed-form result with a numeric solver and suncalc",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := r.calculate()
			rep := report.New(r.coords.Lat, r.coords.Lon, r.coords.Elevation, r.instant, r.loc, r.transit, res, err)
			if err == nil {
				rep.CrossCheck = crosscheck.Compare(res, r.coords.Lat, r.coords.Lon, r.coords.Elevation,
					crosscheck.Numeric{}, crosscheck.SunCalc{})
				for _, d := range rep.CrossCheck {
					if d.Err != nil {
						log.Warn("cross-check failed", "reference", d.Reference, "err", d.Err)
					}
				}
			}
			return r.finish(rep, err)
		},
	}
}

func (r *run) riseSet(trace bool) error {
	res, err := r.calculate()
	rep := report.New(r.coords.Lat, r.coords.Lon, r.coords.Elevation, r.instant, r.loc, r.transit, res, err)
	if trace && !isInputError(err) {
		rep.Quantities = &res.Quantities
	}
	return r.finish(rep, err)
}

func (r *run) calculate() (sun.Result, error) {
	return daybreak.Calculate(r.coords, r.instant,
		daybreak.WithTransit(r.transit),
		daybreak.WithObserver(logging.Observer(log)),
	)
}

func (r *run) finish(rep report.Report, err error) error {
	if isInputError(err) {
		return err
	}
	if werr := r.write(rep); werr != nil {
		return werr
	}
	if errors.Is(err, daybreak.ErrNoRiseNoSet) {
		return errNoEvent
	}
	return err
}

func (r *run) write(rep report.Report) error {
	return merry.Prepend(report.Write(r.out, r.format, rep), "write report")
}

// resolve merges config file, environment and explicitly set flags.
func (r *run) resolve(cmd *cobra.Command, f *flags) error {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return err
	}

	changed := cmd.Flags().Changed
	if changed("lat") {
		cfg.Observer.Latitude = f.lat
	}
	if changed("lon") {
		cfg.Observer.Longitude = f.lon
	}
	if changed("elevation") {
		cfg.Observer.Elevation = f.elevation
	}
	if changed("tz") {
		cfg.Output.Timezone = f.tz
	}
	if changed("format") {
		cfg.Output.Format = f.format
	}
	if changed("variant") {
		cfg.Calculation.Variant = f.variant
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log = logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level)

	r.coords = daybreak.Coordinates{
		Lat:       cfg.Observer.Latitude,
		Lon:       cfg.Observer.Longitude,
		Elevation: cfg.Observer.Elevation,
	}
	r.loc = cfg.Location()
	if r.format, err = report.ParseFormat(cfg.Output.Format); err != nil {
		return err
	}
	r.transit = sun.TransitReference
	if strings.EqualFold(cfg.Calculation.Variant, "corrected") {
		r.transit = sun.TransitCorrected
	}

	r.instant, err = parseInstant(f.timeStr, r.loc)
	if err != nil {
		return err
	}

	log.Debug("resolved",
		"lat", r.coords.Lat, "lon", r.coords.Lon, "elevation", r.coords.Elevation,
		"instant", r.instant.Format(time.RFC3339), "jd", julian.FromTime(r.instant),
		"tz", r.loc, "variant", r.transit)
	return nil
}

func parseInstant(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Now().In(loc), nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, merry.Errorf("could not parse --time %q", s)
}

func parseTwilight(s string) (daybreak.TwilightKind, error) {
	switch strings.ToLower(s) {
	case "civil":
		return daybreak.TwilightCivil, nil
	case "nautical":
		return daybreak.TwilightNautical, nil
	case "astronomical":
		return daybreak.TwilightAstronomical, nil
	default:
		return 0, merry.Errorf("unknown twilight kind %q (use civil, nautical, or astronomical)", s)
	}
}

func isInputError(err error) bool {
	var inErr *daybreak.InputError
	return errors.As(err, &inErr)
}
