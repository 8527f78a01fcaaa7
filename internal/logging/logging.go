// Package logging configures structlog for the daybreak commands.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/powerman/structlog"

	"github.com/thurmanmarka/daybreak/internal/sun"
)

// Levels lists the level names Setup accepts.
var Levels = []string{"dbg", "debug", "inf", "info", "wrn", "warn", "err", "error"}

// ValidLevel reports whether name is one of Levels (case-insensitive).
func ValidLevel(name string) bool {
	name = strings.ToLower(name)
	for _, l := range Levels {
		if l == name {
			return true
		}
	}
	return false
}

// Configure sets the layout of structlog.DefaultLogger. Call it once from
// main, before anything is logged: structlog panics on a late reconfigure.
func Configure() {
	structlog.DefaultLogger.
		SetPrefixKeys(
			structlog.KeyApp, structlog.KeyLevel, structlog.KeyUnit,
		).
		SetDefaultKeyvals(
			structlog.KeyApp, filepath.Base(os.Args[0]),
		).
		SetKeysFormat(map[string]string{
			structlog.KeyUnit: " %6[2]s:",
		})
}

// Setup points structlog.DefaultLogger at w with the given level and returns
// a fresh logger for the command. It may be called any number of times.
// Validate level with ValidLevel first; an unknown name falls back to inf.
func Setup(w io.Writer, level string) *structlog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if !ValidLevel(level) {
		level = "inf"
	}

	structlog.DefaultLogger.
		SetOutput(w).
		SetLogLevel(structlog.ParseLevel(level))

	return structlog.New()
}

// Observer returns a sun.Observer that logs each intermediate quantity at
// debug level under the "calc" unit.
func Observer(log *structlog.Logger) sun.Observer {
	log = log.New(structlog.KeyUnit, "calc")
	return func(label string, value float64) {
		log.Debug("quantity", "name", label, "value", value)
	}
}
