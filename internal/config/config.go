package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied before a file, preset or flag overrides them.
const (
	DefaultWidth     = 160
	DefaultHeight    = 96
	DefaultThreshold = 0.5
	DefaultResample  = "lanczos"
	DefaultFPS       = 30
	DefaultTheme     = "cyberpunk"
	DefaultScene     = "wave"
	DefaultScale     = 4.0
)

// ErrInvalid indicates a configuration value outside its valid range.
var ErrInvalid = errors.New("config: invalid value")

// Config holds every tunable of the renderer and viewer.
type Config struct {
	Canvas CanvasConfig `yaml:"canvas"`
	Raster RasterConfig `yaml:"raster"`
	View   ViewConfig   `yaml:"view"`
	Export ExportConfig `yaml:"export"`
}

// CanvasConfig is the nominal pixel area of the canvas.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RasterConfig maps onto raster.Options.
type RasterConfig struct {
	Threshold float64 `yaml:"threshold"`
	Invert    bool    `yaml:"invert"`
	Dither    bool    `yaml:"dither"`
	Contrast  float64 `yaml:"contrast"`
	Resample  string  `yaml:"resample"`
}

// ViewConfig drives the interactive viewer.
type ViewConfig struct {
	FPS   int    `yaml:"fps"`
	Theme string `yaml:"theme"`
	Scene string `yaml:"scene"`
}

// ExportConfig sets the SVG dot pitch in user units.
type ExportConfig struct {
	Scale float64 `yaml:"scale"`
}

// DefaultConfig returns a config filled with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Raster: RasterConfig{
			Threshold: DefaultThreshold,
			Resample:  DefaultResample,
		},
		View: ViewConfig{
			FPS:   DefaultFPS,
			Theme: DefaultTheme,
			Scene: DefaultScene,
		},
		Export: ExportConfig{
			Scale: DefaultScale,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the canvas or rasteriser cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Canvas.Width < 2:
		return fmt.Errorf("%w: canvas width %d (need at least 2)", ErrInvalid, c.Canvas.Width)
	case c.Canvas.Height < 4:
		return fmt.Errorf("%w: canvas height %d (need at least 4)", ErrInvalid, c.Canvas.Height)
	case c.Raster.Threshold < 0 || c.Raster.Threshold > 1:
		return fmt.Errorf("%w: threshold %.2f (need 0..1)", ErrInvalid, c.Raster.Threshold)
	case c.Raster.Contrast < -100 || c.Raster.Contrast > 100:
		return fmt.Errorf("%w: contrast %.0f (need -100..100)", ErrInvalid, c.Raster.Contrast)
	case c.View.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.View.FPS)
	case c.Export.Scale <= 0:
		return fmt.Errorf("%w: export scale %.2f", ErrInvalid, c.Export.Scale)
	}
	return nil
}
