package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrFontClosed is returned when a FontRef outlives its FontSource.
	ErrFontClosed = errors.New("text: font source is closed")

	// ErrContextClosed is returned when a closed context is used.
	ErrContextClosed = errors.New("text: context is closed")

	// ErrGlyphUnavailable is returned when a glyph has no renderable
	// outline, e.g. a color glyph or an out-of-range glyph index.
	ErrGlyphUnavailable = errors.New("text: glyph unavailable")

	// ErrInvalidFeature is returned for malformed OpenType feature settings.
	ErrInvalidFeature = errors.New("text: invalid feature")
)

// FaceIndexError is returned when a face index is outside the font file.
type FaceIndexError struct {
	Index    int
	NumFaces int
}

func (e *FaceIndexError) Error() string {
	return fmt.Sprintf("text: face index %d out of range (file has %d faces)", e.Index, e.NumFaces)
}
