package raster

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrEmptyImage indicates an image with no pixels.
	ErrEmptyImage = errors.New("raster: empty image")

	// ErrNoArea indicates a canvas whose nominal dot area is empty.
	ErrNoArea = errors.New("raster: canvas has no drawable area")

	// ErrUnknownResample indicates an unsupported resampling filter name.
	ErrUnknownResample = errors.New("raster: unknown resampling filter")
)

// Load decodes the image stored at path. PNG, JPEG, GIF, BMP, TIFF and WebP
// are recognised.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	img, format, err := Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("raster: decode %s: %w", path, err)
	}
	return img, format, nil
}

// Decode reads one image from r.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	if img.Bounds().Empty() {
		return nil, format, ErrEmptyImage
	}
	return img, format, nil
}
