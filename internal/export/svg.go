package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/braillegrid/internal/braille"
)

const (
	DefaultBackground = "#0a0a0a"
	DefaultForeground = "#00ff00"
)

// Style sets the colours of an exported canvas.
type Style struct {
	Background string
	Foreground string
}

func DefaultStyle() Style {
	return Style{Background: DefaultBackground, Foreground: DefaultForeground}
}

// CanvasToSVG converts a Braille canvas to SVG format, one circle per lit dot.
func CanvasToSVG(canvas *braille.Canvas, scale float64, style Style) string {
	if canvas == nil {
		return ""
	}
	if style.Background == "" {
		style.Background = DefaultBackground
	}
	if style.Foreground == "" {
		style.Foreground = DefaultForeground
	}

	cols, rows := canvas.Width(), canvas.Rows()
	width := float64(cols) * scale * 2  // 2 sub-pixels per char
	height := float64(rows) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, style.Background, style.Foreground))

	dotRadius := scale * 0.4

	for i, pattern := range canvas.Cells() {
		if pattern == 0 {
			continue
		}
		baseX := float64(i%cols) * scale * 2
		baseY := float64(i/cols) * scale * 4

		for dy := 0; dy < 4; dy++ {
			for dx := 0; dx < 2; dx++ {
				if pattern&braille.Bit(dx, dy) != 0 {
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// WriteSVG writes the SVG form of canvas to w.
func WriteSVG(w io.Writer, canvas *braille.Canvas, scale float64, style Style) error {
	_, err := io.WriteString(w, CanvasToSVG(canvas, scale, style))
	return err
}
