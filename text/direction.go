package text

import (
	"github.com/go-text/typesetting/di"
	"golang.org/x/text/unicode/bidi"
)

// DetectDirection returns the paragraph direction of s following rule P2
// of the Unicode bidirectional algorithm: the first strong character
// decides. Text without strong characters is LTR.
func DetectDirection(s string) Direction {
	for len(s) > 0 {
		props, size := bidi.LookupString(s)
		if size == 0 {
			break
		}
		switch props.Class() {
		case bidi.L:
			return DirectionLTR
		case bidi.R, bidi.AL:
			return DirectionRTL
		}
		s = s[size:]
	}
	return DirectionLTR
}

// resolveDirection replaces DirectionAuto with the detected direction.
func resolveDirection(d Direction, s string) Direction {
	if d == DirectionAuto {
		return DetectDirection(s)
	}
	return d
}

// mapDirection converts a resolved Direction to go-text's di.Direction.
func mapDirection(d Direction) di.Direction {
	if d == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}
