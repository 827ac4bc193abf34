package compose

import "math"

// Bitmap is a rasterized glyph coverage image.
type Bitmap struct {
	// Width and Height of the image in pixels.
	Width, Height int

	// Left is the horizontal offset from the glyph origin to the left edge.
	Left int

	// Top is the vertical offset from the baseline to the top edge,
	// positive upwards. Glyphs extending below the baseline may have a
	// Top smaller than Height, or even negative.
	Top int

	// Channels is 1 for alpha coverage or 4 for RGBA.
	Channels int

	// Data holds Width*Height*Channels bytes in row-major order.
	Data []uint8
}

// Empty reports whether the bitmap contributes no pixels.
func (b *Bitmap) Empty() bool {
	return b == nil || b.Width <= 0 || b.Height <= 0
}

// valid reports whether Data is large enough for the declared geometry.
func (b *Bitmap) valid() bool {
	ch := b.Channels
	if ch != 1 && ch != 4 {
		return false
	}
	return len(b.Data) >= b.Width*b.Height*ch
}

// coverage returns the source value feeding destination channel ch.
// Single-channel coverage feeds every destination channel; an RGBA source
// drawn onto a single-channel canvas contributes its alpha.
func (b *Bitmap) coverage(off, ch, dstChannels int) uint8 {
	if b.Channels == 1 {
		return b.Data[off]
	}
	if dstChannels == 1 {
		return b.Data[off+3]
	}
	return b.Data[off+ch]
}

// Scale converts font design units to pixels.
type Scale struct {
	// UnitsPerEm of the font the advance was measured in.
	// Zero means advances are already in pixels.
	UnitsPerEm int

	// PPEM is the number of pixels per em at the requested size.
	PPEM float64
}

// Pixels converts a design-unit distance to pixels.
func (s Scale) Pixels(units float64) float64 {
	if s.UnitsPerEm <= 0 {
		return units
	}
	return units * s.PPEM / float64(s.UnitsPerEm)
}

// DefaultDPI is the resolution at which one point equals one pixel.
const DefaultDPI = 72

// PPEM returns the pixels per em for a point size at the given resolution.
// A non-positive dpi is treated as DefaultDPI.
func PPEM(pointSize, dpi float64) float64 {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return pointSize * dpi / DefaultDPI
}

// roundAdvance is the single rounding policy used for both canvas width and
// pen movement: half away from zero, negative advances clamped to zero.
func roundAdvance(px float64) int {
	if px <= 0 || math.IsNaN(px) {
		return 0
	}
	return int(math.Round(px))
}
