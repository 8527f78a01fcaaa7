package main

import (
	"encoding/csv"
	"os"
	"strings"
	"time"

	"github.com/ansel1/merry"
)

type refEntry struct {
	date      time.Time
	rise, set time.Time
}

type refTable struct {
	entries []refEntry
	skipped int
}

func (t refTable) byDate() map[string]refEntry {
	m := make(map[string]refEntry, len(t.entries))
	for _, e := range t.entries {
		m[e.date.Format("2006-01-02")] = e
	}
	return m
}

// readReference loads a date,rise,set CSV. A leading "date" header row is
// skipped; malformed rows are logged and counted as skipped.
//
//	date,rise,set
//	2025-01-01,07:32,17:12
func readReference(path string, loc *time.Location) (refTable, error) {
	var t refTable

	f, err := os.Open(path)
	if err != nil {
		return t, merry.Prepend(err, "open refcsv")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return t, merry.Prepend(err, "read refcsv")
	}
	if len(records) == 0 {
		return t, merry.New("empty CSV file")
	}

	start := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		start = 1
	}

	for i := start; i < len(records); i++ {
		row := records[i]
		if len(row) < 3 {
			log.Warn("row has fewer than 3 columns, skipping", "row", i+1, "columns", len(row))
			t.skipped++
			continue
		}

		date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(row[0]), loc)
		if err != nil {
			log.Warn("invalid date, skipping", "row", i+1, "err", err)
			t.skipped++
			continue
		}
		rise, err := parseLocalTime(date, strings.TrimSpace(row[1]), loc)
		if err != nil {
			log.Warn("invalid rise time, skipping", "row", i+1, "err", err)
			t.skipped++
			continue
		}
		set, err := parseLocalTime(date, strings.TrimSpace(row[2]), loc)
		if err != nil {
			log.Warn("invalid set time, skipping", "row", i+1, "err", err)
			t.skipped++
			continue
		}

		t.entries = append(t.entries, refEntry{date: date, rise: rise, set: set})
	}
	return t, nil
}

func parseLocalTime(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	layout := "15:04"
	if strings.Count(hhmm, ":") == 2 {
		layout = "15:04:05"
	}

	parsed, err := time.ParseInLocation(layout, hhmm, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, loc), nil
}
