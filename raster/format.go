package raster

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported raster format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PNG indicates a PNG image.
	PNG
	// JPEG indicates a JPEG image.
	JPEG
	// GIF indicates a GIF image.
	GIF
	// BMP indicates a Windows bitmap.
	BMP
	// TIFF indicates a TIFF image.
	TIFF
	// WebP indicates a WebP image.
	WebP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case GIF:
		return "GIF"
	case BMP:
		return "BMP"
	case TIFF:
		return "TIFF"
	case WebP:
		return "WebP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case GIF:
		return ".gif"
	case BMP:
		return ".bmp"
	case TIFF:
		return ".tiff"
	case WebP:
		return ".webp"
	default:
		return ""
	}
}

// Detect determines the raster format from a filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".gif":
		return GIF
	case ".bmp":
		return BMP
	case ".tif", ".tiff":
		return TIFF
	case ".webp":
		return WebP
	default:
		return Unknown
	}
}

// DetectHeader determines the raster format from the first bytes of the
// file content. At least 12 bytes should be supplied.
func DetectHeader(header []byte) Format {
	switch {
	case bytes.HasPrefix(header, []byte("\x89PNG\r\n\x1a\n")):
		return PNG
	case bytes.HasPrefix(header, []byte("\xff\xd8\xff")):
		return JPEG
	case bytes.HasPrefix(header, []byte("GIF87a")) || bytes.HasPrefix(header, []byte("GIF89a")):
		return GIF
	case bytes.HasPrefix(header, []byte("BM")):
		return BMP
	case bytes.HasPrefix(header, []byte("II*\x00")) || bytes.HasPrefix(header, []byte("MM\x00*")):
		return TIFF
	case len(header) >= 12 && bytes.Equal(header[0:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WEBP")):
		return WebP
	default:
		return Unknown
	}
}

// DetectReader sniffs the raster format from a reader. It consumes up to 12
// bytes; callers that need the full stream should buffer it first.
func DetectReader(r io.Reader) (Format, error) {
	header := make([]byte, 12)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectHeader(header[:n]), nil
}
