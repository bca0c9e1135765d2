package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"

	"github.com/san-kum/braillegrid/internal/braille"
)

const (
	charW, charH = 8, 16
)

// ErrNoFrames indicates a GIF save with nothing recorded.
var ErrNoFrames = errors.New("viz: no frames recorded")

// CaptureFrame paints the canvas into a two-colour image, one charW x charH
// block per cell.
func CaptureFrame(c *braille.Canvas) *image.Paletted {
	cols, rows := c.Width(), c.Rows()
	imgW, imgH := cols*charW, rows*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	dotW, dotH := charW/2, charH/4
	for i, pattern := range c.Cells() {
		if pattern == 0 {
			continue
		}
		baseX, baseY := (i%cols)*charW, (i/cols)*charH
		for dy := 0; dy < 4; dy++ {
			for dx := 0; dx < 2; dx++ {
				if pattern&braille.Bit(dx, dy) == 0 {
					continue
				}
				for py := 0; py < dotH; py++ {
					for px := 0; px < dotW; px++ {
						img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
					}
				}
			}
		}
	}
	return img
}

// SaveGIF writes frames as a looping animation.
func SaveGIF(path string, frames []*image.Paletted) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
