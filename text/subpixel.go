package text

import "fmt"

// noneStr is the string returned for disabled modes.
const noneStr = "None"

// SubpixelMode controls subpixel glyph positioning.
// Rendering a glyph at a fractional pen position keeps the spacing of small
// text even; the fraction is quantized so rendered bitmaps can be cached.
type SubpixelMode int

const (
	// SubpixelNone disables subpixel positioning.
	// Glyphs snap to whole pixels. Fastest but lower quality.
	SubpixelNone SubpixelMode = 0

	// Subpixel4 uses 4 subpixel positions (0.0, 0.25, 0.5, 0.75).
	Subpixel4 SubpixelMode = 4

	// Subpixel10 uses 10 subpixel positions (0.0, 0.1, ..., 0.9).
	Subpixel10 SubpixelMode = 10
)

// String returns the string representation of the subpixel mode.
func (m SubpixelMode) String() string {
	switch m {
	case SubpixelNone:
		return noneStr
	case Subpixel4:
		return "Subpixel4"
	case Subpixel10:
		return "Subpixel10"
	default:
		return unknownStr
	}
}

// IsEnabled returns true if subpixel positioning is enabled.
func (m SubpixelMode) IsEnabled() bool {
	return m > 0
}

// Divisions returns the number of subpixel divisions.
// Returns 1 for SubpixelNone (no divisions).
func (m SubpixelMode) Divisions() int {
	if m <= 0 {
		return 1
	}
	return int(m)
}

// ParseSubpixelMode converts a division count (0, 4 or 10) to a mode.
func ParseSubpixelMode(n int) (SubpixelMode, error) {
	switch SubpixelMode(n) {
	case SubpixelNone, Subpixel4, Subpixel10:
		return SubpixelMode(n), nil
	default:
		return SubpixelNone, fmt.Errorf("text: unsupported subpixel mode %d (want 0, 4 or 10)", n)
	}
}

// Quantize splits a position into its integer part and quantized subpixel
// index.
//
// For example, with Subpixel4 mode:
//   - pos=10.0 returns (10, 0)
//   - pos=10.25 returns (10, 1)
//   - pos=10.5 returns (10, 2)
//   - pos=10.99 returns (10, 3)
//   - pos=-0.25 returns (-1, 3)
func Quantize(pos float64, mode SubpixelMode) (intPos int, subPos uint8) {
	if !mode.IsEnabled() {
		// No subpixel positioning - round to nearest integer
		return int(pos + 0.5), 0
	}

	// Compute floor (integer part that is <= pos)
	intPart := int(pos)
	if pos < 0 && pos != float64(intPart) {
		intPart--
	}

	frac := pos - float64(intPart)
	sub := int(frac * float64(mode.Divisions()))
	sub = min(max(sub, 0), mode.Divisions()-1)

	return intPart, uint8(sub) //nolint:gosec // sub is bounded [0, mode-1]
}

// SubpixelOffset returns the rendering offset for a subpixel index.
// For Subpixel4 mode: 0 -> 0.0, 1 -> 0.25, 2 -> 0.5, 3 -> 0.75
func SubpixelOffset(subPos uint8, mode SubpixelMode) float64 {
	if !mode.IsEnabled() {
		return 0
	}
	return float64(subPos) / float64(mode.Divisions())
}
