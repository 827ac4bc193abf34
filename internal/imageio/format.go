// Package imageio serializes composed canvases and glyph bitmaps into
// standard image files.
package imageio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output image encoding.
type Format uint8

const (
	// FormatPNG is lossless PNG. It is the default.
	FormatPNG Format = iota

	// FormatJPEG is lossy JPEG. Alpha is dropped by the encoder.
	FormatJPEG

	// FormatTIFF is uncompressed TIFF.
	FormatTIFF

	// FormatBMP is Windows bitmap.
	FormatBMP
)

// formatInfo describes a Format.
type formatInfo struct {
	name string
	exts []string
}

// formatTable contains metadata for each format.
var formatTable = [...]formatInfo{
	FormatPNG:  {"png", []string{".png"}},
	FormatJPEG: {"jpeg", []string{".jpg", ".jpeg"}},
	FormatTIFF: {"tiff", []string{".tif", ".tiff"}},
	FormatBMP:  {"bmp", []string{".bmp"}},
}

// String returns the format name.
func (f Format) String() string {
	if int(f) < len(formatTable) {
		return formatTable[f].name
	}
	return "unknown"
}

// Ext returns the canonical file extension, including the dot.
func (f Format) Ext() string {
	if int(f) < len(formatTable) {
		return formatTable[f].exts[0]
	}
	return ""
}

// FormatFromPath picks the format from the file extension.
// A path without an extension is PNG.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return FormatPNG, nil
	}
	for i := range formatTable {
		for _, e := range formatTable[i].exts {
			if e == ext {
				return Format(i), nil //nolint:gosec // i < len(formatTable)
			}
		}
	}
	return FormatPNG, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
}
