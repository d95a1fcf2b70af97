// Package config loads and validates the viewer configuration from
// TOML, and manages the nucleotide color palette stored as JSON
// alongside it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Validation sentinels, matched with errors.Is.
var (
	ErrBadCharWidth  = errors.New("base char width must be positive")
	ErrBadCharHeight = errors.New("char height must be positive")
	ErrBadZoomFactor = errors.New("zoom factors must be greater than 1.0")
	ErrBadMaxWidth   = errors.New("max char width must be positive")
	ErrBadMode       = errors.New("unknown display mode")
	ErrBadLogLevel   = errors.New("unknown log level")
)

// Config is the root viewer configuration.
type Config struct {
	View    View    `toml:"view"`
	Zoom    Zoom    `toml:"zoom"`
	Palette Palette `toml:"palette"`
	Log     Log     `toml:"log"`
}

// View holds canvas geometry and the display mode ceiling.
type View struct {
	BaseCharWidth float64 `toml:"base_char_width"`
	CharHeight    float64 `toml:"char_height"`
	// MaxMode caps rendering detail: "text", "box", or "line".
	MaxMode string `toml:"max_mode"`
}

// Zoom holds the wheel zoom tuning.
type Zoom struct {
	BaseFactor   float64 `toml:"base_factor"`
	AccelFactor  float64 `toml:"accel_factor"`
	MaxCharWidth float64 `toml:"max_char_width"`
	DurationMs   int     `toml:"duration_ms"`
}

// Palette points at the JSON color palette file.
type Palette struct {
	Path string `toml:"path"`
	// Watch reloads the palette when the file changes on disk.
	Watch bool `toml:"watch"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		View: View{
			BaseCharWidth: 12.0,
			CharHeight:    18.0,
			MaxMode:       "text",
		},
		Zoom: Zoom{
			BaseFactor:   1.22,
			AccelFactor:  1.06,
			MaxCharWidth: 90.0,
			DurationMs:   180,
		},
		Palette: Palette{Path: "", Watch: false},
		Log:     Log{Level: "info"},
	}
}

// Load reads a TOML config file. A missing file is not an error: the
// defaults apply. Values absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as TOML, creating parent directories.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.View.BaseCharWidth <= 0 {
		return ErrBadCharWidth
	}
	if c.View.CharHeight <= 0 {
		return ErrBadCharHeight
	}
	switch c.View.MaxMode {
	case "text", "box", "line":
	default:
		return fmt.Errorf("%w: %q", ErrBadMode, c.View.MaxMode)
	}
	if c.Zoom.BaseFactor <= 1.0 || c.Zoom.AccelFactor < 1.0 {
		return ErrBadZoomFactor
	}
	if c.Zoom.MaxCharWidth <= 0 {
		return ErrBadMaxWidth
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrBadLogLevel, c.Log.Level)
	}
	return nil
}
