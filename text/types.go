package text

import (
	"fmt"
	"strings"
)

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// GlyphID is a glyph index within a font.
type GlyphID uint16

// Direction specifies the direction of a horizontal text run.
type Direction int

const (
	// DirectionAuto resolves the direction from the text with the Unicode
	// bidirectional algorithm.
	DirectionAuto Direction = iota
	// DirectionLTR is left-to-right text (English, Japanese, etc.)
	DirectionLTR
	// DirectionRTL is right-to-left text (Arabic, Hebrew)
	DirectionRTL
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionAuto:
		return "Auto"
	case DirectionLTR:
		return "LTR"
	case DirectionRTL:
		return "RTL"
	default:
		return unknownStr
	}
}

// ParseDirection parses "ltr", "rtl" or "auto" (case-insensitive).
// An empty string means DirectionAuto.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DirectionAuto, nil
	case "ltr":
		return DirectionLTR, nil
	case "rtl":
		return DirectionRTL, nil
	default:
		return DirectionAuto, fmt.Errorf("text: unknown direction %q", s)
	}
}

// Hinting specifies font hinting mode.
//
// Outlines are never hinted. HintingFull snaps glyph origins to whole
// pixels, which disables subpixel positioning.
type Hinting int

const (
	// HintingNone keeps fractional glyph origins.
	HintingNone Hinting = iota
	// HintingFull snaps glyph origins to the pixel grid.
	HintingFull
)

// String returns the string representation of the hinting.
func (h Hinting) String() string {
	switch h {
	case HintingNone:
		return "None"
	case HintingFull:
		return "Full"
	default:
		return unknownStr
	}
}
