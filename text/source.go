package text

import (
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/image/font/sfnt"
)

// CacheKey identifies a loaded font face for the lifetime of the process.
// Shape and scale contexts key their caches by it.
type CacheKey uint64

// lastKey is the most recently issued CacheKey.
var lastKey atomic.Uint64

func newCacheKey() CacheKey {
	return CacheKey(lastKey.Add(1))
}

// FontSource is a loaded font resource: the full file contents plus the
// selected face within it.
//
// FontSource validates the face once at load time. It is heavyweight and
// should be created once per font file and face; Ref hands out lightweight
// references to it.
//
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection.
	// It must point to the FontSource itself.
	addr *FontSource

	data  []byte
	index int
	key   CacheKey

	font *sfnt.Font
	upem int
	name string
	path string
}

// NewFontSource creates a FontSource from font data (TTF, OTF, TTC or OTC)
// selecting the face at index. The data slice is copied internally and can
// be reused after this call.
func NewFontSource(data []byte, index int, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	// ParseCollection also accepts single-font files and returns a
	// one-element collection for them.
	coll, err := sfnt.ParseCollection(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	if index < 0 || index >= coll.NumFonts() {
		return nil, &FaceIndexError{Index: index, NumFaces: coll.NumFonts()}
	}
	f, err := coll.Font(index)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse face %d: %w", index, err)
	}

	s := &FontSource{
		data:  dataCopy,
		index: index,
		key:   newCacheKey(),
		font:  f,
		upem:  int(f.UnitsPerEm()),
		path:  config.path,
	}
	s.addr = s // Self-reference for copy detection
	s.name = extractFontName(f)

	return s, nil
}

// LoadFont reads a font file and selects the face at index.
func LoadFont(path string, index int, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}

	opts = append([]SourceOption{WithPath(path)}, opts...)
	return NewFontSource(data, index, opts...)
}

// Ref returns a reference to the loaded face.
//
// Ref is cheap and may be called any number of times: every reference carries
// the CacheKey issued at load time, so caches keyed by it stay valid.
func (s *FontSource) Ref() FontRef {
	s.copyCheck()
	return FontRef{source: s, key: s.key}
}

// Key returns the CacheKey of the source.
func (s *FontSource) Key() CacheKey {
	s.copyCheck()
	return s.key
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Path returns the file path the source was loaded from, if any.
func (s *FontSource) Path() string {
	s.copyCheck()
	return s.path
}

// Close releases the font data. References created by Ref report
// ErrFontClosed afterwards.
func (s *FontSource) Close() error {
	s.copyCheck()
	s.data = nil
	s.font = nil
	return nil
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

// extractFontName returns the family name, the full name, or a placeholder.
func extractFontName(f *sfnt.Font) string {
	var buf sfnt.Buffer
	for _, id := range []sfnt.NameID{sfnt.NameIDFamily, sfnt.NameIDFull} {
		if name, err := f.Name(&buf, id); err == nil && name != "" {
			return name
		}
	}
	return "Unknown Font"
}

// FontRef is a lightweight reference to a FontSource face.
// The zero value refers to no font.
type FontRef struct {
	source *FontSource
	key    CacheKey
}

// Key returns the cache key shared by all references to the same source.
func (r FontRef) Key() CacheKey {
	return r.key
}

// Valid reports whether the referenced source is still open.
func (r FontRef) Valid() bool {
	return r.source != nil && r.source.data != nil
}

// Data returns the font file bytes, or nil after Close.
func (r FontRef) Data() []byte {
	if r.source == nil {
		return nil
	}
	return r.source.data
}

// Index returns the face index within the font file.
func (r FontRef) Index() int {
	if r.source == nil {
		return 0
	}
	return r.source.index
}

// UnitsPerEm returns the design units per em of the face.
func (r FontRef) UnitsPerEm() int {
	if r.source == nil {
		return 0
	}
	return r.source.upem
}

// Name returns the family name of the face.
func (r FontRef) Name() string {
	if r.source == nil {
		return ""
	}
	return r.source.name
}

// NumGlyphs returns the number of glyphs in the face.
func (r FontRef) NumGlyphs() int {
	if !r.Valid() {
		return 0
	}
	return r.source.font.NumGlyphs()
}

// outlines returns the parsed face used for outline extraction.
func (r FontRef) outlines() (*sfnt.Font, error) {
	if !r.Valid() {
		return nil, ErrFontClosed
	}
	return r.source.font, nil
}
