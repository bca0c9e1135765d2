// Package raster turns decoded images into lit Braille dots.
//
// Images are fitted to the canvas's nominal dot area with gift, reduced to
// perceptual lightness (CIE L*) and thresholded, optionally with
// Floyd-Steinberg error diffusion. Dots are written through
// [braille.Upright] so the rendered text shows the picture the right way up.
package raster
