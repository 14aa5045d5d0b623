// Package raster handles the figure rasters that get inserted into slides:
// temporary file naming, pixel-dimension probing, and format detection.
package raster

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	// Register decoders so PixelSize can probe any raster a plotting
	// library is likely to produce.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TempFileName returns a fresh path with the given extension (e.g. ".png")
// for a temporary raster in the OS temp directory. The file itself is not
// created; only the name is reserved by uniqueness of the pattern.
func TempFileName(ext string) (string, error) {
	f, err := os.CreateTemp("", "slidefig-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	name := f.Name()
	f.Close()
	if err := os.Remove(name); err != nil {
		return "", fmt.Errorf("removing temp file: %w", err)
	}
	return name + ext, nil
}

// PixelSize returns the pixel dimensions of a raster file without decoding
// the full image.
func PixelSize(path string) (width, height float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening raster: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decoding raster header %s: %w", filepath.Base(path), err)
	}
	return float64(cfg.Width), float64(cfg.Height), nil
}
