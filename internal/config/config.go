// Package config loads and saves the viewer's settings and its curves as
// TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/irfansharif/spirograph/internal/spiro"
	"github.com/irfansharif/spirograph/internal/trochoid"
)

// Config holds the viewer's settings and the curves on the canvas.
type Config struct {
	TickInterval Duration `toml:"tick_interval"` // time between animation steps

	// Screensaver keeps regenerating curves as they complete, with up to
	// four on screen at a time.
	Screensaver bool `toml:"screensaver"`

	// MaxRandomDiameter bounds randomly generated curves; 0 derives it from
	// the visible canvas.
	MaxRandomDiameter int `toml:"max_random_diameter"`

	Sound bool `toml:"sound"` // chime when a curve completes a cycle

	Spiro []spiro.Record `toml:"spiro"`
}

// Default returns the default settings: a single default inner curve.
func Default() *Config {
	return &Config{
		TickInterval: Duration{20 * time.Millisecond},
		Spiro:        []spiro.Record{spiro.New(trochoid.Inner).Record()},
	}
}

// Duration is a time.Duration written as a string ("20ms") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Validate checks the settings and every curve record.
func (c *Config) Validate() error {
	if c.TickInterval.Duration <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.MaxRandomDiameter < 0 {
		return fmt.Errorf("max_random_diameter must not be negative, got %d", c.MaxRandomDiameter)
	}
	for i, rec := range c.Spiro {
		if _, err := spiro.FromRecord(rec); err != nil {
			return fmt.Errorf("spiro %d: %w", i, err)
		}
	}
	return nil
}

// Load parses the TOML file at path. Settings missing from the file keep
// their defaults; a file without curves keeps the default curve.
func Load(path string) (*Config, error) {
	conf := Default()
	conf.Spiro = nil
	md, err := toml.DecodeFile(path, conf)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if !md.IsDefined("spiro") {
		conf.Spiro = Default().Spiro
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("loading config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return conf, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	conf, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return conf, err
}

// Save writes conf to path as TOML, replacing the file atomically.
func Save(path string, conf *Config) error {
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("saving config %s: %w", path, err)
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("saving config %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(conf); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encoding config %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("saving config %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("saving config %s: %w", path, err)
	}
	return nil
}
