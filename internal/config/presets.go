package config

import "sort"

// Presets are named starting points tuned for common inputs.
var Presets = map[string]*Config{
	"small": {
		Canvas: CanvasConfig{Width: 80, Height: 48},
		Raster: RasterConfig{Threshold: 0.5, Resample: "box"},
		View:   ViewConfig{FPS: 30, Theme: "minimal", Scene: "wave"},
		Export: ExportConfig{Scale: 4},
	},
	"terminal": {
		Canvas: CanvasConfig{Width: 160, Height: 96},
		Raster: RasterConfig{Threshold: 0.5, Resample: "lanczos"},
		View:   ViewConfig{FPS: 30, Theme: "cyberpunk", Scene: "wave"},
		Export: ExportConfig{Scale: 4},
	},
	"photo": {
		Canvas: CanvasConfig{Width: 200, Height: 160},
		Raster: RasterConfig{Threshold: 0.5, Dither: true, Contrast: 20, Resample: "lanczos"},
		View:   ViewConfig{FPS: 15, Theme: "minimal", Scene: "rings"},
		Export: ExportConfig{Scale: 3},
	},
	"lineart": {
		Canvas: CanvasConfig{Width: 160, Height: 96},
		Raster: RasterConfig{Threshold: 0.35, Invert: true, Contrast: 40, Resample: "cubic"},
		View:   ViewConfig{FPS: 30, Theme: "retro", Scene: "life"},
		Export: ExportConfig{Scale: 4},
	},
	"retro": {
		Canvas: CanvasConfig{Width: 120, Height: 72},
		Raster: RasterConfig{Threshold: 0.45, Dither: true, Resample: "nearest"},
		View:   ViewConfig{FPS: 20, Theme: "retro", Scene: "life"},
		Export: ExportConfig{Scale: 5},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for k := range Presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
