package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patchwork.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
fps = 24
background = "#102030"

[patch]
resolution = 4
show_control_net = true

[marble]
light_position = [1.0, 3.0, -2.0]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.FPS != 24 || cfg.Patch.Resolution != 4 || !cfg.Patch.ShowControlNet {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Marble.LightPosition != [3]float64{1, 3, -2} {
		t.Errorf("light = %v", cfg.Marble.LightPosition)
	}
	// Untouched keys keep their defaults.
	if cfg.Patch.TextureSize != 512 || cfg.Picking.MaxTargetSize != 8192 || !cfg.Smooth {
		t.Errorf("defaults lost: %+v", cfg)
	}
	bg, err := cfg.BackgroundColor()
	if err != nil || bg != (color.RGBA{0x10, 0x20, 0x30, 255}) {
		t.Errorf("background = %v, %v", bg, err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[patch]\nresolutoin = 4\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "resolutoin") {
		t.Errorf("err = %v, want a mention of the unknown key", err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := Load(writeConfig(t, "fps = \"fast\"\n")); err == nil {
		t.Error("expected a type error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero fps", func(c *Config) { c.FPS = 0 }, "fps"},
		{"bad background", func(c *Config) { c.Background = "red" }, "color"},
		{"zero resolution", func(c *Config) { c.Patch.Resolution = 0 }, "patch.resolution"},
		{"zero texture", func(c *Config) { c.Patch.TextureSize = 0 }, "patch.texture_size"},
		{"negative target", func(c *Config) { c.Picking.MaxTargetSize = -1 }, "picking.max_target_size"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %v, want mention of %q", err, tc.want)
			}
		})
	}

	cfg := Default()
	cfg.FPS = -1
	cfg.Patch.Resolution = -1
	if err := cfg.Validate(); strings.Count(err.Error(), "\n") != 1 {
		t.Errorf("want both problems reported, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"30,30,40", color.RGBA{30, 30, 40, 255}, false},
		{" 255, 0 ,7 ", color.RGBA{255, 0, 7, 255}, false},
		{"#ff8000", color.RGBA{255, 128, 0, 255}, false},
		{"#FFFFFF", color.RGBA{255, 255, 255, 255}, false},
		{"256,0,0", color.RGBA{}, true},
		{"1,2", color.RGBA{}, true},
		{"#12", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("err = %v, want ErrInvalid", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("ParseColor(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
			}
		})
	}
}
