package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
	"github.com/spf13/cobra"

	"github.com/thurmanmarka/daybreak"
	"github.com/thurmanmarka/daybreak/internal/config"
	"github.com/thurmanmarka/daybreak/internal/crosscheck"
	"github.com/thurmanmarka/daybreak/internal/julian"
	"github.com/thurmanmarka/daybreak/internal/logging"
	"github.com/thurmanmarka/daybreak/internal/sun"
)

var log = structlog.New()

type options struct {
	lat, lon  float64
	elevation float64
	tzName    string
	year      int
	refCSV    string
	outCSV    string
	twilight  string
	variant   string
	verbose   bool
}

// row is one day's comparison; errors are in minutes, ours minus reference.
type row struct {
	date       string
	riseSigned float64
	setSigned  float64
}

type summary struct {
	mode      string
	processed int
	skipped   int
	rise      crosscheck.Stats
	set       crosscheck.Stats
	riseAbs   crosscheck.Stats
	setAbs    crosscheck.Stats
}

func main() {
	logging.Configure()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "daybreak-profiler",
		Short: "Measure daybreak against reference sunrise/sunset tables",
		Long: `Compares daybreak with a reference CSV (date,rise,set as local
YYYY-MM-DD,HH:MM[:SS]) or, without --refcsv, with suncalc for every day of --year.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "inf"
			if o.verbose {
				level = "dbg"
			}
			log = logging.Setup(cmd.ErrOrStderr(), level)

			s, err := profile(o)
			if err != nil {
				return err
			}
			return printSummary(out, o, s)
		},
	}

	fs := cmd.Flags()
	fs.Float64Var(&o.lat, "lat", 0, "latitude in degrees (north positive)")
	fs.Float64Var(&o.lon, "lon", 0, "longitude in degrees (east positive, west negative)")
	fs.Float64Var(&o.elevation, "elevation", 0, "elevation in metres")
	fs.StringVar(&o.tzName, "tz", "UTC", "IANA time zone or ±HH:MM offset of the reference times")
	fs.IntVar(&o.year, "year", time.Now().Year(), "year to sweep when no --refcsv is given")
	fs.StringVar(&o.refCSV, "refcsv", "", "path to reference CSV file (date,rise,set)")
	fs.StringVar(&o.outCSV, "outcsv", "", "optional path to write per-row error CSV")
	fs.StringVar(&o.twilight, "twilight", "", "twilight kind: civil, nautical, astronomical")
	fs.StringVar(&o.variant, "variant", "reference", "transit variant: reference or corrected")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log per-day errors")
	return cmd
}

func profile(o *options) (summary, error) {
	var s summary

	loc, err := config.ParseLocation(o.tzName)
	if err != nil {
		return s, err
	}

	transit := sun.TransitReference
	switch strings.ToLower(o.variant) {
	case "reference":
	case "corrected":
		transit = sun.TransitCorrected
	default:
		return s, merry.Errorf("unknown variant %q (use reference or corrected)", o.variant)
	}

	opts := []daybreak.Option{daybreak.WithTransit(transit)}
	s.mode = "SUN (" + transit.String() + ")"

	if o.twilight != "" {
		alt, name, err := twilightAltitude(o.twilight)
		if err != nil {
			return s, err
		}
		opts = append(opts, daybreak.WithHorizon(alt))
		s.mode = fmt.Sprintf("SUN (%s TWILIGHT, %s)", strings.ToUpper(name), transit)
	}

	if o.lat == 0 && o.lon == 0 {
		log.Warn("lat=0 lon=0 (Gulf of Guinea). Did you mean to set --lat/--lon?")
	}

	coords := daybreak.Coordinates{Lat: o.lat, Lon: o.lon, Elevation: o.elevation}

	var ref func(date time.Time, r daybreak.Result) (time.Time, time.Time, error)
	var dates []time.Time

	if o.refCSV != "" {
		table, err := readReference(o.refCSV, loc)
		if err != nil {
			return s, err
		}
		s.skipped += table.skipped
		for _, e := range table.entries {
			dates = append(dates, e.date)
		}
		byDate := table.byDate()
		ref = func(date time.Time, _ daybreak.Result) (time.Time, time.Time, error) {
			e := byDate[date.Format("2006-01-02")]
			return e.rise, e.set, nil
		}
	} else {
		if o.twilight != "" {
			return s, merry.New("--twilight needs a --refcsv; suncalc is only used for sunrise/sunset")
		}
		for d := time.Date(o.year, time.January, 1, 0, 0, 0, 0, loc); d.Year() == o.year; d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
		ref = func(_ time.Time, r daybreak.Result) (time.Time, time.Time, error) {
			rise, set, err := crosscheck.SunCalc{}.RiseSet(r.Transit, o.lat, o.lon, o.elevation)
			return julian.Time(rise), julian.Time(set), err
		}
	}

	var rows []row
	for _, date := range dates {
		r, err := daybreak.Calculate(coords, date, opts...)
		if err != nil {
			log.Info("skipping", "date", date.Format("2006-01-02"), "err", err)
			s.skipped++
			continue
		}
		refRise, refSet, err := ref(date, r)
		if err != nil {
			log.Info("skipping", "date", date.Format("2006-01-02"), "reference", err)
			s.skipped++
			continue
		}

		rw := row{
			date:       date.Format("2006-01-02"),
			riseSigned: julian.Time(r.Sunrise).Sub(refRise).Minutes(),
			setSigned:  julian.Time(r.Sunset).Sub(refSet).Minutes(),
		}
		s.add(rw)

		log.Debug("row", "date", rw.date, "rise_err", rw.riseSigned, "set_err", rw.setSigned)

		rows = append(rows, rw)
	}

	if o.outCSV != "" {
		if err := writeRows(o.outCSV, s.mode, rows); err != nil {
			return s, err
		}
	}

	return s, nil
}

// writeRows writes the per-day errors as CSV. Write, flush and close
// errors are all returned.
func writeRows(path, mode string, rows []row) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return merry.Prepend(err, "create outcsv")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = merry.Prepend(cerr, "close outcsv")
		}
	}()

	w := csv.NewWriter(f)
	_ = w.Write([]string{"date", "mode", "rise_err", "set_err", "rise_signed", "set_signed"})
	for _, r := range rows {
		_ = w.Write([]string{
			r.date,
			mode,
			fmt.Sprintf("%.6f", math.Abs(r.riseSigned)),
			fmt.Sprintf("%.6f", math.Abs(r.setSigned)),
			fmt.Sprintf("%.6f", r.riseSigned),
			fmt.Sprintf("%.6f", r.setSigned),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return merry.Prepend(err, "write outcsv")
	}
	return nil
}

func (s *summary) add(r row) {
	s.processed++
	s.rise.Add(r.riseSigned)
	s.set.Add(r.setSigned)
	s.riseAbs.Add(math.Abs(r.riseSigned))
	s.setAbs.Add(math.Abs(r.setSigned))
}

func twilightAltitude(kind string) (float64, string, error) {
	switch strings.ToLower(kind) {
	case "civil":
		return -6, "civil", nil
	case "nautical":
		return -12, "nautical", nil
	case "astronomical":
		return -18, "astronomical", nil
	default:
		return 0, "", merry.Errorf("unknown twilight kind %q (use civil, nautical, or astronomical)", kind)
	}
}

func printSummary(w io.Writer, o *options, s summary) error {
	p := func(format string, args ...any) {
		fmt.Fprintf(w, format, args...)
	}

	p("=== daybreak profiler summary ===\n")
	p("Mode:    %s\n", s.mode)
	p("Lat/Lon: %.4f / %.4f\n", o.lat, o.lon)
	p("TZ:      %s\n", o.tzName)
	p("Rows:    %d (processed), %d skipped\n", s.processed, s.skipped)

	if s.processed == 0 {
		p("No valid rows to compute stats.\n")
		return nil
	}

	block := func(title string, st crosscheck.Stats) {
		p("\n%s:\n", title)
		p("  count: %d\n", st.Count)
		p("  min:   %.3f\n", st.Min)
		p("  max:   %.3f\n", st.Max)
		p("  mean:  %.3f\n", st.Mean())
	}
	block("Rise error (minutes)", s.riseAbs)
	block("Set error (minutes)", s.setAbs)
	block("Rise signed error (minutes, ours - ref)", s.rise)
	block("Set signed error (minutes, ours - ref)", s.set)
	return nil
}
