package output

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned for image formats the writer cannot produce
var ErrUnknownFormat = errors.New("unknown image format")

// Format names an output image encoding
type Format string

const (
	FormatPPM  Format = "ppm"  // Plain-text P3 portable pixmap
	FormatPNG  Format = "png"  // Lossless PNG
	FormatBMP  Format = "bmp"  // Uncompressed Windows bitmap
	FormatTIFF Format = "tiff" // Uncompressed TIFF
)

// Formats lists every supported format
func Formats() []Format {
	return []Format{FormatPPM, FormatPNG, FormatBMP, FormatTIFF}
}

// ParseFormat maps a format name or file extension to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks the format from a file name's extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}
