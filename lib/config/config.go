// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/varscope/varscope/lib/distance"
	"github.com/varscope/varscope/lib/rcsb"
	"github.com/varscope/varscope/lib/render"
	"github.com/varscope/varscope/lib/tui"
)

// Config is the master configuration for a varscope session.
type Config struct {
	// Structure selects which atomic model to load and how.
	Structure StructureConfig `yaml:"structure"`

	// Dataset locates the variant dataset file.
	Dataset DatasetConfig `yaml:"dataset"`

	// Display configures the initial representation settings.
	Display DisplayConfig `yaml:"display"`

	// Measurement configures distance computation.
	Measurement MeasurementConfig `yaml:"measurement"`

	// Logging configures the session log.
	Logging LoggingConfig `yaml:"logging"`
}

// StructureConfig selects the structure to view.
type StructureConfig struct {
	// ID is the four-character archive identifier (e.g. 2H8R).
	ID string `yaml:"id"`

	// Chain is the protein chain variants map onto. Default: A.
	Chain string `yaml:"chain"`

	// Source is the archive base URL. Default: the RCSB file server.
	Source string `yaml:"source"`

	// CacheDir is where parsed structures are cached on disk.
	// Default: the user cache directory under varscope/structures.
	CacheDir string `yaml:"cache_dir"`

	// Cache enables the on-disk structure cache. Default: true.
	Cache bool `yaml:"cache"`
}

// DatasetConfig locates the variant dataset.
type DatasetConfig struct {
	// Path is the JSONC dataset file.
	Path string `yaml:"path"`
}

// DisplayConfig holds the initial representation settings. All values
// use the same names the in-session controls cycle through.
type DisplayConfig struct {
	// Geometry is the initial representation type. Default: cartoon.
	Geometry string `yaml:"geometry"`

	// ColorScheme is the initial coloring. Default: chain.
	ColorScheme string `yaml:"color_scheme"`

	// Opacity is the initial opacity fraction in [0, 1]. Default: 1.0.
	Opacity float64 `yaml:"opacity"`

	// Sidechains shows sidechains initially. Default: false.
	Sidechains bool `yaml:"sidechains"`

	// Theme selects the interface accent palette. Default: default.
	Theme string `yaml:"theme"`
}

// MeasurementConfig configures the distance calculator.
type MeasurementConfig struct {
	// Mode is the initial measurement mode: closest-atom or
	// backbone-only. Default: closest-atom.
	Mode string `yaml:"mode"`
}

// LoggingConfig configures the session log.
type LoggingConfig struct {
	// Level is the minimum record level: debug, info, warn, error.
	// Default: info.
	Level string `yaml:"level"`

	// File appends structured log records to a file in addition to
	// the in-session status line. Empty disables the file.
	File string `yaml:"file"`
}

// Default returns the default configuration. Structure ID and dataset
// path have no defaults — a session cannot guess which gene it is
// looking at — so a usable config needs at least those two from the
// file or flags.
func Default() *Config {
	cacheRoot, err := os.UserCacheDir()
	if err != nil {
		cacheRoot = os.TempDir()
	}

	return &Config{
		Structure: StructureConfig{
			Chain:    "A",
			Source:   rcsb.DefaultBaseURL,
			CacheDir: filepath.Join(cacheRoot, "varscope", "structures"),
			Cache:    true,
		},
		Display: DisplayConfig{
			Geometry:    render.Cartoon.String(),
			ColorScheme: render.ColorByChain.String(),
			Opacity:     1.0,
			Sidechains:  false,
			Theme:       tui.DefaultThemeName,
		},
		Measurement: MeasurementConfig{
			Mode: distance.ModeClosestAtom.String(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFile loads configuration from path, merging the file's values
// over the defaults. Unknown keys are rejected. An empty file yields
// the defaults unchanged.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration and returns every problem found,
// joined. A Config that passes Validate will not fail any of the
// typed accessors below.
func (c *Config) Validate() error {
	var errs []error

	if c.Structure.ID != "" {
		if err := rcsb.ValidateID(c.Structure.ID); err != nil {
			errs = append(errs, fmt.Errorf("structure.id: %w", err))
		}
	}
	if len(c.Structure.Chain) != 1 {
		errs = append(errs, fmt.Errorf("structure.chain must be a single chain identifier, got %q", c.Structure.Chain))
	}
	if c.Structure.Source == "" {
		errs = append(errs, errors.New("structure.source is required"))
	}
	if c.Structure.Cache && c.Structure.CacheDir == "" {
		errs = append(errs, errors.New("structure.cache_dir is required when the cache is enabled"))
	}

	if _, err := render.ParseGeometryType(c.Display.Geometry); err != nil {
		errs = append(errs, fmt.Errorf("display.geometry: %w", err))
	}
	if _, err := render.ParseColorScheme(c.Display.ColorScheme); err != nil {
		errs = append(errs, fmt.Errorf("display.color_scheme: %w", err))
	}
	if c.Display.Opacity < 0 || c.Display.Opacity > 1 {
		errs = append(errs, fmt.Errorf("display.opacity must be within [0, 1], got %g", c.Display.Opacity))
	}
	if _, ok := tui.NamedTheme(c.Display.Theme); !ok {
		errs = append(errs, fmt.Errorf("display.theme: unknown theme %q (available: %v)", c.Display.Theme, tui.ThemeNames()))
	}

	if _, err := distance.ParseMode(c.Measurement.Mode); err != nil {
		errs = append(errs, fmt.Errorf("measurement.mode: %w", err))
	}

	if _, err := parseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}

	return errors.Join(errs...)
}

// GeometryType returns the parsed initial geometry.
func (c *Config) GeometryType() (render.GeometryType, error) {
	return render.ParseGeometryType(c.Display.Geometry)
}

// ColorScheme returns the parsed initial color scheme.
func (c *Config) ColorScheme() (render.ColorScheme, error) {
	return render.ParseColorScheme(c.Display.ColorScheme)
}

// MeasurementMode returns the parsed measurement mode.
func (c *Config) MeasurementMode() (distance.Mode, error) {
	return distance.ParseMode(c.Measurement.Mode)
}

// Theme returns the configured interface theme.
func (c *Config) Theme() tui.Theme {
	theme, ok := tui.NamedTheme(c.Display.Theme)
	if !ok {
		return tui.DefaultTheme()
	}
	return theme
}

// LogLevel returns the parsed minimum log level.
func (c *Config) LogLevel() (slog.Level, error) {
	return parseLevel(c.Logging.Level)
}

func parseLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown level %q (debug, info, warn, error)", name)
	}
}
