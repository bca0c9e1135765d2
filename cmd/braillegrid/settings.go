package main

import (
	"fmt"

	"github.com/san-kum/braillegrid/internal/config"
	"github.com/san-kum/braillegrid/internal/raster"
	"github.com/spf13/cobra"
)

// resolveConfig layers defaults, preset, config file and explicit flags, in
// that order, and validates the result.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Canvas.Width = width
	}
	if flags.Changed("height") {
		cfg.Canvas.Height = height
	}
	if flags.Changed("threshold") {
		cfg.Raster.Threshold = threshold
	}
	if flags.Changed("invert") {
		cfg.Raster.Invert = invert
	}
	if flags.Changed("dither") {
		cfg.Raster.Dither = dither
	}
	if flags.Changed("contrast") {
		cfg.Raster.Contrast = contrast
	}
	if flags.Changed("resample") {
		cfg.Raster.Resample = resample
	}
	if flags.Changed("fps") {
		cfg.View.FPS = fps
	}
	if flags.Changed("theme") {
		cfg.View.Theme = theme
	}
	if flags.Changed("scene") {
		cfg.View.Scene = scene
	}
	if flags.Changed("scale") {
		cfg.Export.Scale = scale
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := raster.ParseResample(cfg.Raster.Resample); err != nil {
		return nil, err
	}
	return cfg, nil
}

func rasterOptions(cfg *config.Config) raster.Options {
	return raster.Options{
		Threshold: cfg.Raster.Threshold,
		Invert:    cfg.Raster.Invert,
		Dither:    cfg.Raster.Dither,
		Contrast:  cfg.Raster.Contrast,
		Resample:  cfg.Raster.Resample,
	}
}
