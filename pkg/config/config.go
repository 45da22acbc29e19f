// Package config loads the demo settings: built-in defaults, overlaid by an
// optional TOML file, overlaid by command-line flags.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid wraps every validation and color parsing failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds the settings shared by all demos plus one section per demo.
type Config struct {
	FPS        int    `toml:"fps"`
	Background string `toml:"background"`
	Smooth     bool   `toml:"smooth"`
	LogFile    string `toml:"log_file"`
	LogLevel   string `toml:"log_level"`

	Patch   PatchConfig   `toml:"patch"`
	Marble  MarbleConfig  `toml:"marble"`
	Picking PickingConfig `toml:"picking"`
}

// PatchConfig configures the Bézier patch demo.
type PatchConfig struct {
	Resolution     int    `toml:"resolution"`
	Texture        string `toml:"texture"` // image file; empty for the plasma
	TextureSize    int    `toml:"texture_size"`
	ShowControlNet bool   `toml:"show_control_net"`
}

// MarbleConfig configures the marble shader demo.
type MarbleConfig struct {
	Model         string     `toml:"model"` // glTF/GLB; empty for the cube
	LightPosition [3]float64 `toml:"light_position"`
}

// PickingConfig configures the picking demo.
type PickingConfig struct {
	// MaxTargetSize bounds offscreen targets; 0 disables them.
	MaxTargetSize int `toml:"max_target_size"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		FPS:        30,
		Background: "25,25,25",
		Smooth:     true,
		LogLevel:   "info",
		Patch: PatchConfig{
			Resolution:  12,
			TextureSize: 512,
		},
		Marble: MarbleConfig{
			LightPosition: [3]float64{2, 2, 2},
		},
		Picking: PickingConfig{
			MaxTargetSize: 8192,
		},
	}
}

// Load reads the TOML file at path over Default. Unknown keys are an error.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("decode config %s: %s", path, strict.String())
		}
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every out-of-range setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS))
	}
	if _, err := ParseColor(c.Background); err != nil {
		errs = append(errs, err)
	}
	if c.Patch.Resolution < 1 {
		errs = append(errs, fmt.Errorf("%w: patch.resolution must be at least 1, got %d", ErrInvalid, c.Patch.Resolution))
	}
	if c.Patch.TextureSize < 1 {
		errs = append(errs, fmt.Errorf("%w: patch.texture_size must be at least 1, got %d", ErrInvalid, c.Patch.TextureSize))
	}
	if c.Picking.MaxTargetSize < 0 {
		errs = append(errs, fmt.Errorf("%w: picking.max_target_size must not be negative, got %d", ErrInvalid, c.Picking.MaxTargetSize))
	}
	return errors.Join(errs...)
}

// BackgroundColor parses Background.
func (c Config) BackgroundColor() (color.RGBA, error) {
	return ParseColor(c.Background)
}

// ParseColor accepts "R,G,B" with 0-255 channels or a "#rrggbb" hex string.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: color %q: %w", ErrInvalid, s, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{r, g, b, 255}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("%w: color %q: want R,G,B or #rrggbb", ErrInvalid, s)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: color %q: channel %d: %w", ErrInvalid, s, i, err)
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{ch[0], ch[1], ch[2], 255}, nil
}
