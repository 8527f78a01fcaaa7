// Package config loads observer and output settings for the daybreak tools.
package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ansel1/merry"
	"github.com/spf13/viper"

	"github.com/thurmanmarka/daybreak/internal/logging"
)

// EnvPrefix prefixes environment overrides, e.g. DAYBREAK_OBSERVER_LATITUDE.
const EnvPrefix = "DAYBREAK"

type Config struct {
	Observer    ObserverConfig    `mapstructure:"observer"`
	Output      OutputConfig      `mapstructure:"output"`
	Calculation CalculationConfig `mapstructure:"calculation"`
	Log         LogConfig         `mapstructure:"log"`
}

type ObserverConfig struct {
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	Elevation float64 `mapstructure:"elevation"`
}

type OutputConfig struct {
	// Timezone is an IANA name ("Asia/Kathmandu") or a fixed offset ("+05:45").
	Timezone string `mapstructure:"timezone"`
	Format   string `mapstructure:"format"`
}

type CalculationConfig struct {
	// Variant is "reference" or "corrected".
	Variant string `mapstructure:"variant"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("observer.latitude", 27.6706)
	v.SetDefault("observer.longitude", 84.4385)
	v.SetDefault("observer.elevation", 0)
	v.SetDefault("output.timezone", "+05:45")
	v.SetDefault("output.format", "human")
	v.SetDefault("calculation.variant", "reference")
	v.SetDefault("log.level", "inf")
}

// Load reads configuration from configPath, or when empty from
// daybreak.yaml in the working directory or $HOME/.config/daybreak.
// A missing default file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("daybreak")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "daybreak"))
		}
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, merry.Prepend(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, merry.Prepend(err, "decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the observer against the calculator's input domain and
// the remaining fields against their allowed values.
func (c *Config) Validate() error {
	o := c.Observer
	if math.IsNaN(o.Latitude) || o.Latitude <= -90 || o.Latitude >= 90 {
		return merry.Errorf("observer.latitude=%v: must be strictly between -90 and 90", o.Latitude)
	}
	if math.IsNaN(o.Longitude) || math.IsInf(o.Longitude, 0) {
		return merry.Errorf("observer.longitude=%v: must be finite", o.Longitude)
	}
	if math.IsNaN(o.Elevation) || math.IsInf(o.Elevation, 0) || o.Elevation < 0 {
		return merry.Errorf("observer.elevation=%v: must be a finite number of metres >= 0", o.Elevation)
	}

	switch strings.ToLower(c.Calculation.Variant) {
	case "reference", "corrected":
	default:
		return merry.Errorf("calculation.variant=%q: must be reference or corrected", c.Calculation.Variant)
	}

	switch strings.ToLower(c.Output.Format) {
	case "human", "json", "yaml":
	default:
		return merry.Errorf("output.format=%q: must be human, json or yaml", c.Output.Format)
	}

	if !logging.ValidLevel(c.Log.Level) {
		return merry.Errorf("log.level=%q: must be one of %s", c.Log.Level, strings.Join(logging.Levels, ", "))
	}

	if _, err := ParseLocation(c.Output.Timezone); err != nil {
		return err
	}
	return nil
}

// Location returns the configured output time zone.
func (c *Config) Location() *time.Location {
	loc, err := ParseLocation(c.Output.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseLocation accepts an IANA zone name, "UTC", "Local", or a fixed offset
// of the form ±HH:MM.
func ParseLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}
	if name[0] == '+' || name[0] == '-' {
		t, err := time.Parse("-07:00", name)
		if err != nil {
			return nil, merry.Errorf("timezone %q: want ±HH:MM", name)
		}
		_, offset := t.Zone()
		return time.FixedZone(name, offset), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, merry.Prepend(err, "timezone")
	}
	return loc, nil
}
