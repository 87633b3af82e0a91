// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/surfacehost"
)

// TestDefaultIsValid tests the built-in configuration.
func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Frame.Interval != 16*time.Millisecond {
		t.Errorf("Frame.Interval = %v, want 16ms", cfg.Frame.Interval)
	}
	if cfg.Window.ChromeHeight != 48 {
		t.Errorf("Window.ChromeHeight = %d, want 48", cfg.Window.ChromeHeight)
	}
}

// TestParse tests decoding over the defaults.
func TestParse(t *testing.T) {
	data := []byte(`
engine: software
error_policy: dont_check
surface:
  kind: texture
  opaque: false
  desired_width: 540
  desired_height: 960
frame:
  interval: 8ms
log:
  level: debug
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if cfg.Surface.Kind != KindTexture || cfg.Surface.Opaque {
		t.Errorf("Surface = %+v", cfg.Surface)
	}
	if cfg.Frame.Interval != 8*time.Millisecond {
		t.Errorf("Frame.Interval = %v, want 8ms", cfg.Frame.Interval)
	}
	if cfg.Frame.Count != 120 {
		t.Errorf("Frame.Count = %d, want default 120", cfg.Frame.Count)
	}
	if cfg.Window.Width != 1080 {
		t.Errorf("Window.Width = %d, want default 1080", cfg.Window.Width)
	}
	if p, _ := cfg.Policy(); p != surfacehost.PolicyDontCheck {
		t.Errorf("Policy() = %v, want DontCheck", p)
	}
	if l, _ := cfg.LogLevel(); l != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, want debug", l)
	}

	c := surfacehost.New(cfg.SurfaceOptions()...)
	if c.IsOpaque() || c.DesiredWidth() != 540 || c.ErrorPolicy() != surfacehost.PolicyDontCheck {
		t.Error("SurfaceOptions() not applied")
	}
}

// TestParseEmpty tests that an empty document yields the defaults.
func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) = %v", err)
	}
	if cfg.Engine != "software" {
		t.Errorf("Engine = %q, want software", cfg.Engine)
	}
}

// TestParseUnknownKey tests strict decoding.
func TestParseUnknownKey(t *testing.T) {
	if _, err := Parse([]byte("surfaces:\n  kind: direct\n")); err == nil {
		t.Error("Parse() with unknown key = nil, want error")
	}
}

// TestValidate tests every validation rule.
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"policy", func(c *Config) { c.ErrorPolicy = "sometimes" }, "error_policy"},
		{"kind", func(c *Config) { c.Surface.Kind = "canvas" }, "surface.kind"},
		{"desired", func(c *Config) { c.Surface.DesiredHeight = -1 }, "surface.desired_width"},
		{"window", func(c *Config) { c.Window.Width = 0 }, "window"},
		{"chrome", func(c *Config) { c.Window.ChromeHeight = 1920 }, "window.chrome_height"},
		{"interval", func(c *Config) { c.Frame.Interval = 0 }, "frame.interval"},
		{"count", func(c *Config) { c.Frame.Count = -1 }, "frame.count"},
		{"log", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Path != tt.path {
				t.Errorf("Validate() path = %v, want %q", err, tt.path)
			}
		})
	}
}

// TestLoad tests reading from disk.
func TestLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg.Surface.Kind != KindDirect {
		t.Fatalf("Load(\"\") = %v, %v", cfg, err)
	}

	path := filepath.Join(t.TempDir(), "tilehost.yaml")
	if err := os.WriteFile(path, []byte("surface:\n  kind: holder\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Surface.Kind != KindHolder {
		t.Errorf("Surface.Kind = %q, want holder", cfg.Surface.Kind)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() missing file = %v, want ErrNotExist", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(bad, []byte("frame:\n  count: -3\n"), 0o600)
	if _, err := Load(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() invalid = %v, want ErrInvalidConfig", err)
	}
}
