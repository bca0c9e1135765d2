package raster

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/disintegration/gift"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/braillegrid/internal/braille"
)

// Defaults used when Options leave a field unset.
const (
	DefaultThreshold = 0.5
	DefaultResample  = "lanczos"
)

var resamplers = map[string]gift.Resampling{
	"nearest": gift.NearestNeighborResampling,
	"box":     gift.BoxResampling,
	"linear":  gift.LinearResampling,
	"cubic":   gift.CubicResampling,
	"lanczos": gift.LanczosResampling,
}

// Options controls how pixels become dots.
type Options struct {
	// Threshold is the CIE L* lightness in [0, 1] at or above which a dot is lit.
	Threshold float64
	// Invert lights dark pixels instead of bright ones.
	Invert bool
	// Dither diffuses the quantisation error to neighbouring pixels.
	Dither bool
	// Contrast in percent, [-100, 100]. Zero leaves the image alone.
	Contrast float64
	// Resample names the scaling filter, see Resamplers.
	Resample string
}

// DefaultOptions thresholds at mid lightness with lanczos resampling.
func DefaultOptions() Options {
	return Options{
		Threshold: DefaultThreshold,
		Resample:  DefaultResample,
	}
}

// Resamplers lists the accepted filter names.
func Resamplers() []string {
	names := make([]string, 0, len(resamplers))
	for k := range resamplers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ParseResample maps a filter name to its gift resampling.
func ParseResample(name string) (gift.Resampling, error) {
	if name == "" {
		name = DefaultResample
	}
	r, ok := resamplers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownResample, name, Resamplers())
	}
	return r, nil
}

// Luminance returns the perceptual lightness of c in [0, 1]. Fully
// transparent colours are black.
func Luminance(c color.Color) float64 {
	col, ok := colorful.MakeColor(c)
	if !ok {
		return 0
	}
	l, _, _ := col.Lab()
	switch {
	case l < 0:
		return 0
	case l > 1:
		return 1
	}
	return l
}

// Prepare fits img inside w x h pixels, keeping its aspect ratio, and
// converts it to grayscale.
func Prepare(img image.Image, w, h int, opts Options) (*image.Gray, error) {
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	resample, err := ParseResample(opts.Resample)
	if err != nil {
		return nil, err
	}
	filters := []gift.Filter{gift.ResizeToFit(w, h, resample)}
	if opts.Contrast != 0 {
		filters = append(filters, gift.Contrast(float32(opts.Contrast)))
	}
	filters = append(filters, gift.Grayscale())

	g := gift.New(filters...)
	dst := image.NewGray(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst, nil
}

// Lightness computes the L* value of every pixel of a prepared image,
// indexed [y][x].
func Lightness(gray *image.Gray) [][]float64 {
	b := gray.Bounds()
	out := make([][]float64, b.Dy())
	for y := range out {
		out[y] = make([]float64, b.Dx())
		for x := range out[y] {
			out[y][x] = Luminance(gray.GrayAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

// Mask decides which pixels light up. Dithering mutates lum in place.
func Mask(lum [][]float64, opts Options) [][]bool {
	out := make([][]bool, len(lum))
	for y := range lum {
		out[y] = make([]bool, len(lum[y]))
		for x := range lum[y] {
			v := lum[y][x]
			lit := v >= opts.Threshold
			if opts.Dither {
				q := 0.0
				if lit {
					q = 1
				}
				diffuse(lum, x, y, v-q)
			}
			out[y][x] = lit != opts.Invert
		}
	}
	return out
}

// diffuse spreads err with the Floyd-Steinberg kernel.
func diffuse(lum [][]float64, x, y int, err float64) {
	add := func(dx, dy int, w float64) {
		yy, xx := y+dy, x+dx
		if yy < 0 || yy >= len(lum) || xx < 0 || xx >= len(lum[yy]) {
			return
		}
		lum[yy][xx] += err * w
	}
	add(1, 0, 7.0/16)
	add(-1, 1, 3.0/16)
	add(0, 1, 5.0/16)
	add(1, 1, 1.0/16)
}

// Rasterize draws img onto c, scaled to fit the canvas's nominal area.
// Existing dots are kept; callers clear the canvas for a fresh frame.
func Rasterize(img image.Image, c *braille.Canvas, opts Options) error {
	w, h := c.Width()*2, c.Height()*4
	if w == 0 || h == 0 {
		return ErrNoArea
	}
	gray, err := Prepare(img, w, h, opts)
	if err != nil {
		return err
	}
	mask := Mask(Lightness(gray), opts)
	for sy, row := range mask {
		for sx, lit := range row {
			if lit {
				c.Set(braille.Upright(sx, sy))
			}
		}
	}
	return nil
}
