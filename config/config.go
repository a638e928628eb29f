// Package config holds the YAML configuration for pixelcube and the presets for each entry variant.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/Carmen-Shannon/pixelcube/engine/orientation"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/material"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type Lattice struct {
	Size    int      `yaml:"size"`
	Spacing float64  `yaml:"spacing"`
	Scale   float64  `yaml:"scale"`
	Colors  []string `yaml:"colors"` // hex, face order +X -X +Y -Y +Z -Z
}

type Compositor struct {
	Resolution int     `yaml:"resolution"`  // offscreen divisor
	ClearColor string  `yaml:"clear_color"` // hex
	QuadDepth  float64 `yaml:"quad_depth"`
}

type Camera struct {
	FovDegrees float64 `yaml:"fov_degrees"`
	Near       float64 `yaml:"near"`
	Far        float64 `yaml:"far"`
	Distance   float64 `yaml:"distance"`
}

type Light struct {
	Color     string  `yaml:"color"`
	Intensity float64 `yaml:"intensity"`
}

type Rotation struct {
	AutoDelta [3]float64 `yaml:"auto_delta"`
	KeyStep   float64    `yaml:"key_step"`
}

type Orbit struct {
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
	ZoomSpeed        float64 `yaml:"zoom_speed"`
}

type Config struct {
	Mode string `yaml:"mode"` // "auto" | "keystep" | "drag"

	Window     Window     `yaml:"window"`
	Lattice    Lattice    `yaml:"lattice"`
	Compositor Compositor `yaml:"compositor"`
	Camera     Camera     `yaml:"camera"`
	Light      Light      `yaml:"light"`
	Rotation   Rotation   `yaml:"rotation"`
	Orbit      Orbit      `yaml:"orbit"`

	Profiling bool `yaml:"profiling"`
	Debug     bool `yaml:"debug"`
}

// Default returns the configuration of the standard entry point.
func Default() *Config {
	return &Config{
		Mode:   "auto",
		Window: Window{Title: "pixelcube", Width: 1280, Height: 720},
		Lattice: Lattice{
			Size:    3,
			Spacing: 0.05,
			Scale:   50,
			Colors:  []string{"#C41E3A", "#009E60", "#0051BA", "#FF5800", "#FFD500", "#FFFFFF"},
		},
		Compositor: Compositor{Resolution: 8, ClearColor: "#FFFFFF", QuadDepth: -100},
		Camera:     Camera{FovDegrees: 60, Near: 1, Far: 10000, Distance: 600},
		Light:      Light{Color: "#FFFFFF", Intensity: 2},
		Rotation:   Rotation{AutoDelta: [3]float64{0.005, 0.005, 0.01}, KeyStep: 0.4},
		Orbit:      Orbit{MouseSensitivity: 0.005, ZoomSpeed: 15},
	}
}

// Preset returns a named variant of the default configuration.
//
//   - classic: the larger, more widely spaced lattice with a coarser pixel grid
//   - auto, keystep, drag: the default configuration in the matching orientation mode
func Preset(name string) (*Config, error) {
	c := Default()
	switch name {
	case "classic":
		c.Lattice.Scale = 60
		c.Lattice.Spacing = 0.1
		c.Compositor.Resolution = 10
	case "auto", "keystep", "drag":
		c.Mode = name
	default:
		return nil, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, name)
	}
	return c, nil
}

// Load reads a YAML file over the defaults. Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// OrientationMode parses the configured mode.
func (c *Config) OrientationMode() (orientation.Mode, error) {
	m, err := orientation.ParseMode(c.Mode)
	if err != nil {
		return m, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return m, nil
}

// FaceColors parses the six lattice face colors.
func (c *Config) FaceColors() ([material.FaceCount]common.Color, error) {
	var out [material.FaceCount]common.Color
	if len(c.Lattice.Colors) != material.FaceCount {
		return out, fmt.Errorf("%w: lattice.colors needs %d entries, got %d", ErrInvalidConfig, material.FaceCount, len(c.Lattice.Colors))
	}
	for i, s := range c.Lattice.Colors {
		col, err := common.ParseHexColor(s)
		if err != nil {
			return out, fmt.Errorf("%w: lattice.colors[%d]: %w", ErrInvalidConfig, i, err)
		}
		out[i] = col
	}
	return out, nil
}

// ClearColor parses the compositor clear color.
func (c *Config) ClearColor() (common.Color, error) {
	col, err := common.ParseHexColor(c.Compositor.ClearColor)
	if err != nil {
		return col, fmt.Errorf("%w: compositor.clear_color: %w", ErrInvalidConfig, err)
	}
	return col, nil
}

// LightColor parses the light color.
func (c *Config) LightColor() (common.Color, error) {
	col, err := common.ParseHexColor(c.Light.Color)
	if err != nil {
		return col, fmt.Errorf("%w: light.color: %w", ErrInvalidConfig, err)
	}
	return col, nil
}

// Validate checks the values the renderer cannot work with.
func (c *Config) Validate() error {
	if _, err := c.OrientationMode(); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Lattice.Size < 1 {
		return fmt.Errorf("%w: lattice.size %d", ErrInvalidConfig, c.Lattice.Size)
	}
	if c.Compositor.Resolution < 1 {
		return fmt.Errorf("%w: compositor.resolution %d", ErrInvalidConfig, c.Compositor.Resolution)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera near %g far %g", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	if _, err := c.FaceColors(); err != nil {
		return err
	}
	if _, err := c.ClearColor(); err != nil {
		return err
	}
	if _, err := c.LightColor(); err != nil {
		return err
	}
	return nil
}
