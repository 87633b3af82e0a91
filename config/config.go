// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads tilehost settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/surfacehost"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Surface kinds accepted in surface.kind.
const (
	KindDirect  = "direct"
	KindTexture = "texture"
	KindHolder  = "holder"
)

// Config is the complete tilehost configuration.
type Config struct {
	// Engine is the registered engine name. Empty selects the best one.
	Engine string `yaml:"engine"`

	// ErrorPolicy is "check" or "dont_check".
	ErrorPolicy string `yaml:"error_policy"`

	Surface Surface `yaml:"surface"`
	Window  Window  `yaml:"window"`
	Frame   Frame   `yaml:"frame"`
	Log     Log     `yaml:"log"`
}

// Surface selects and configures the surface source.
type Surface struct {
	Kind          string `yaml:"kind"`
	Opaque        bool   `yaml:"opaque"`
	MediaOverlay  bool   `yaml:"media_overlay"`
	DesiredWidth  int    `yaml:"desired_width"`
	DesiredHeight int    `yaml:"desired_height"`
}

// Window describes the simulated display in pixels.
type Window struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	ChromeHeight int `yaml:"chrome_height"`
}

// Frame controls the frame loop.
type Frame struct {
	Interval time.Duration `yaml:"interval"`

	// Count is the number of frames to run; 0 runs until interrupted.
	Count int `yaml:"count"`
}

// Log controls logging.
type Log struct {
	Level string `yaml:"level"`
}

// ValidationError reports the offending key.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrInvalidConfig, e.Path, e.Err)
}

// Unwrap returns ErrInvalidConfig and the cause.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidConfig, e.Err}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine:      "software",
		ErrorPolicy: "check",
		Surface: Surface{
			Kind:   KindDirect,
			Opaque: true,
		},
		Window: Window{
			Width:        1080,
			Height:       1920,
			ChromeHeight: 48,
		},
		Frame: Frame{
			Interval: 16 * time.Millisecond,
			Count:    120,
		},
		Log: Log{Level: "info"},
	}
}

// Parse decodes data over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the file at path. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, err := c.Policy(); err != nil {
		return &ValidationError{Path: "error_policy", Err: err}
	}
	switch c.Surface.Kind {
	case KindDirect, KindTexture, KindHolder:
	default:
		return &ValidationError{Path: "surface.kind", Err: fmt.Errorf("must be one of: direct, texture, holder; got %q", c.Surface.Kind)}
	}
	if c.Surface.DesiredWidth < 0 || c.Surface.DesiredHeight < 0 {
		return &ValidationError{Path: "surface.desired_width", Err: errors.New("desired size must be >= 0")}
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return &ValidationError{Path: "window", Err: errors.New("width and height must be > 0")}
	}
	if c.Window.ChromeHeight < 0 || c.Window.ChromeHeight >= c.Window.Height {
		return &ValidationError{Path: "window.chrome_height", Err: errors.New("must be >= 0 and less than the height")}
	}
	if c.Frame.Interval <= 0 {
		return &ValidationError{Path: "frame.interval", Err: errors.New("must be > 0")}
	}
	if c.Frame.Count < 0 {
		return &ValidationError{Path: "frame.count", Err: errors.New("must be >= 0")}
	}
	if _, err := c.LogLevel(); err != nil {
		return &ValidationError{Path: "log.level", Err: err}
	}
	return nil
}

// Policy returns the parsed error policy.
func (c *Config) Policy() (surfacehost.ErrorPolicy, error) {
	switch strings.ToLower(c.ErrorPolicy) {
	case "", "check":
		return surfacehost.PolicyCheck, nil
	case "dont_check":
		return surfacehost.PolicyDontCheck, nil
	default:
		return 0, fmt.Errorf("must be check or dont_check; got %q", c.ErrorPolicy)
	}
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("must be debug, info, warn or error; got %q", c.Log.Level)
	}
	return level, nil
}

// SurfaceOptions returns the coordinator options for this configuration.
func (c *Config) SurfaceOptions() []surfacehost.Option {
	policy, _ := c.Policy()
	return []surfacehost.Option{
		surfacehost.WithErrorPolicy(policy),
		surfacehost.WithOpaque(c.Surface.Opaque),
		surfacehost.WithMediaOverlay(c.Surface.MediaOverlay),
		surfacehost.WithDesiredSize(c.Surface.DesiredWidth, c.Surface.DesiredHeight),
	}
}
