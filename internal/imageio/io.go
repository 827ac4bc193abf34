package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/glyphline/compose"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned for unknown output formats.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyCanvas is returned when a canvas without pixels is saved.
	ErrEmptyCanvas = errors.New("imageio: canvas has no pixels")

	// ErrBufferSize is returned when pixel data does not match the
	// declared geometry.
	ErrBufferSize = errors.New("imageio: buffer size mismatch")
)

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 90

// Option configures encoding.
type Option func(*options)

type options struct {
	quality int
}

// WithJPEGQuality sets the JPEG quality (1-100). Values outside the range
// are clamped.
func WithJPEGQuality(q int) Option {
	return func(o *options) {
		o.quality = min(max(q, 1), 100)
	}
}

// ToImage copies a canvas into a standard library image.
//
// Single-channel canvases become *image.Gray, four-channel canvases
// *image.NRGBA. The canvas buffer is checked against its geometry and
// copied row by row.
func ToImage(c *compose.Canvas) (image.Image, error) {
	if c == nil || c.Empty() {
		return nil, ErrEmptyCanvas
	}
	if len(c.Pix) != c.Width*c.Height*c.Channels {
		return nil, fmt.Errorf("%w: have %d bytes, want %dx%dx%d",
			ErrBufferSize, len(c.Pix), c.Width, c.Height, c.Channels)
	}

	rect := image.Rect(0, 0, c.Width, c.Height)
	switch c.Channels {
	case 1:
		gray := image.NewGray(rect)
		for y := range c.Height {
			copy(gray.Pix[y*gray.Stride:], c.Row(y))
		}
		return gray, nil

	case 4:
		nrgba := image.NewNRGBA(rect)
		for y := range c.Height {
			row := c.Row(y)
			dst := nrgba.Pix[y*nrgba.Stride:]
			for x := range c.Width {
				off := x * 4
				dst[off] = row[off]
				dst[off+1] = row[off+1]
				dst[off+2] = row[off+2]
				dst[off+3] = row[off+3]
			}
		}
		return nrgba, nil

	default:
		return nil, fmt.Errorf("%w: %d channels", ErrBufferSize, c.Channels)
	}
}

// BitmapImage copies a glyph bitmap into an *image.Gray, using the alpha of
// RGBA bitmaps.
func BitmapImage(bm *compose.Bitmap) (*image.Gray, error) {
	if bm.Empty() {
		return nil, ErrEmptyCanvas
	}
	if bm.Channels != 1 && bm.Channels != 4 {
		return nil, fmt.Errorf("%w: %d channels", ErrBufferSize, bm.Channels)
	}
	if len(bm.Data) < bm.Width*bm.Height*bm.Channels {
		return nil, fmt.Errorf("%w: have %d bytes, want %dx%dx%d",
			ErrBufferSize, len(bm.Data), bm.Width, bm.Height, bm.Channels)
	}

	gray := image.NewGray(image.Rect(0, 0, bm.Width, bm.Height))
	for y := range bm.Height {
		for x := range bm.Width {
			off := (y*bm.Width + x) * bm.Channels
			if bm.Channels == 4 {
				off += 3
			}
			gray.Pix[y*gray.Stride+x] = bm.Data[off]
		}
	}
	return gray, nil
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format, opts ...Option) error {
	o := options{quality: DefaultJPEGQuality}
	for _, opt := range opts {
		opt(&o)
	}

	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: o.quality})
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Uncompressed})
	case FormatBMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", format, err)
	}
	return nil
}

// Save encodes the canvas into path, choosing the format by extension.
// Parent directories are created as needed.
func Save(path string, c *compose.Canvas, opts ...Option) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	img, err := ToImage(c)
	if err != nil {
		return err
	}
	return writeFile(path, img, format, opts...)
}

// SaveGlyphs writes every non-empty glyph bitmap in items to dir as a
// grayscale PNG named after its index in items ("0000.png", "0001.png", ...).
// It returns the number of files written.
func SaveGlyphs(dir string, items []compose.Item) (int, error) {
	if err := os.MkdirAll(filepath.Clean(dir), 0o750); err != nil {
		return 0, fmt.Errorf("imageio: create glyph dir: %w", err)
	}

	written := 0
	for i := range items {
		bm := items[i].Bitmap
		if items[i].Failed || bm.Empty() {
			continue
		}
		img, err := BitmapImage(bm)
		if err != nil {
			return written, fmt.Errorf("imageio: glyph %d: %w", i, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%04d.png", i))
		if err := writeFile(path, img, FormatPNG); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// writeFile creates path and encodes img into it.
func writeFile(path string, img image.Image, format Format, opts ...Option) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("imageio: create dir: %w", err)
		}
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}

	if err := Encode(f, img, format, opts...); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
