// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads actstore settings from a TOML file under the XDG
// config directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/janderssonse/actstore/internal/download"
)

// ErrInvalidConfig is returned when the config file cannot be parsed or
// holds an invalid value.
var ErrInvalidConfig = errors.New("invalid configuration")

// Log levels accepted in the config file.
var logLevels = []string{"debug", "info", "warn", "error"}

// Duration is a time.Duration written as a Go duration string ("150ms").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = parsed

	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DownloadConfig tunes the staged downloader.
type DownloadConfig struct {
	StepDelay Duration `toml:"step_delay"`
	Steps     int      `toml:"steps"`
}

// Config represents the structure of config.toml.
type Config struct {
	Catalog  string         `toml:"catalog"`   // catalog TOML; empty selects the bundled one
	LogLevel string         `toml:"log_level"` // debug, info, warn or error
	LogFile  string         `toml:"log_file"`  // log destination while the TUI runs
	Download DownloadConfig `toml:"download"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		LogFile:  DefaultLogFile(),
		Download: DownloadConfig{
			StepDelay: Duration{download.DefaultStepDelay},
			Steps:     download.DefaultSteps,
		},
	}
}

// Load reads the config at path over the defaults. A missing file is not an
// error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	cfg.Catalog = ExpandPath(cfg.Catalog)
	cfg.LogFile = ExpandPath(cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("%w: log_level %q (want one of %v)", ErrInvalidConfig, c.LogLevel, logLevels)
	}

	if c.Download.Steps < 0 {
		return fmt.Errorf("%w: download.steps must not be negative", ErrInvalidConfig)
	}

	if c.Download.StepDelay.Duration < 0 {
		return fmt.Errorf("%w: download.step_delay must not be negative", ErrInvalidConfig)
	}

	return nil
}
