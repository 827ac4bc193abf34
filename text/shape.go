package text

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"unicode/utf8"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/glyphline/compose"
	"github.com/gogpu/glyphline/internal/cache"
)

// Run describes one piece of text shaped with a single font, script and
// direction.
type Run struct {
	// Text is the UTF-8 text of the run.
	Text string

	// Script selects the shaping rules. ScriptAuto detects it from Text.
	Script Script

	// Direction of the run. DirectionAuto detects it from Text.
	Direction Direction

	// Language is a BCP 47 tag such as "en", "ja" or "ar". Empty means
	// the default language of the script.
	Language string

	// Features are OpenType feature settings applied to the whole run.
	Features []Feature

	// Size is the font size in points.
	Size float64

	// DPI is the output resolution. Zero means compose.DefaultDPI.
	DPI float64
}

// ShapedGlyph is a glyph positioned by the shaper.
type ShapedGlyph struct {
	// ID is the glyph index in the font.
	ID GlyphID

	// Cluster is the rune index in the run text where the glyph's
	// cluster starts.
	Cluster int

	// X and Y are the pen position in pixels relative to the run origin,
	// before XOffset and YOffset are applied.
	X, Y float64

	// XOffset and YOffset adjust the glyph position in pixels.
	// YOffset is positive upwards.
	XOffset, YOffset float64

	// Advance is the horizontal advance in font design units.
	Advance float64
}

// Cluster is a group of glyphs produced from the same characters.
// A ligature is one cluster holding one glyph for several runes; a
// decomposed character is one cluster holding several glyphs.
type Cluster struct {
	// Index is the rune index of the first character in the run text.
	Index int

	// Runes is the number of characters in the cluster.
	Runes int

	// Glyphs in visual order.
	Glyphs []ShapedGlyph
}

// ShapedRun is the result of shaping a Run.
// A ShapedRun may be shared through the shaping cache and must not be
// modified.
type ShapedRun struct {
	// Clusters in visual order: for RTL runs the first cluster holds the
	// last characters of the text.
	Clusters []Cluster

	// Direction and Script the run was shaped with.
	Direction Direction
	Script    language.Script

	// Runes is the number of characters in the shaped text.
	Runes int

	// PPEM is the pixel size the positions were computed for.
	PPEM float64

	// Scale converts design-unit advances to pixels.
	Scale compose.Scale

	// Advance is the total advance in design units.
	Advance float64
}

// Glyphs returns all glyphs in visual order.
func (r *ShapedRun) Glyphs() []ShapedGlyph {
	n := 0
	for i := range r.Clusters {
		n += len(r.Clusters[i].Glyphs)
	}
	out := make([]ShapedGlyph, 0, n)
	for i := range r.Clusters {
		out = append(out, r.Clusters[i].Glyphs...)
	}
	return out
}

// NumGlyphs returns the number of glyphs in the run.
func (r *ShapedRun) NumGlyphs() int {
	n := 0
	for i := range r.Clusters {
		n += len(r.Clusters[i].Glyphs)
	}
	return n
}

// shapeKey identifies a shaped run in the shaping cache.
type shapeKey struct {
	font      CacheKey
	text      string
	direction Direction
	script    language.Script
	language  string
	features  string
	ppemBits  uint64
}

// ShapeContext shapes runs with go-text/typesetting.
//
// A ShapeContext owns one HarfBuzz shaper, a parsed go-text face per font
// (keyed by CacheKey) and a cache of shaped runs. Create it once per
// pipeline run and Close it at the end. ShapeContext is not safe for
// concurrent use.
type ShapeContext struct {
	shaper shaping.HarfbuzzShaper
	faces  map[CacheKey]*font.Face
	runs   *cache.Cache[shapeKey, *ShapedRun]
	config shapeConfig
	closed bool
}

// NewShapeContext creates a shaping context.
func NewShapeContext(opts ...ShapeOption) *ShapeContext {
	config := defaultShapeConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &ShapeContext{
		faces:  make(map[CacheKey]*font.Face),
		runs:   cache.New[shapeKey, *ShapedRun](config.cacheLimit),
		config: config,
	}
}

// Shape shapes run with the referenced font.
//
// The returned clusters are in visual order with pen positions already
// resolved for the run direction. Errors are returned for closed fonts or
// contexts, fonts go-text cannot parse and malformed features.
func (c *ShapeContext) Shape(ref FontRef, run Run) (*ShapedRun, error) {
	if c.closed {
		return nil, ErrContextClosed
	}
	if !ref.Valid() {
		return nil, ErrFontClosed
	}
	for _, f := range run.Features {
		if len(f.Tag) != 4 {
			return nil, fmt.Errorf("%w: tag %q must be four bytes", ErrInvalidFeature, f.Tag)
		}
	}

	txt := run.Text
	if c.config.normalize {
		txt = norm.NFC.String(txt)
	}
	runes := []rune(txt)
	dir := resolveDirection(run.Direction, txt)
	script := resolveScript(run.Script, runes)
	ppem := compose.PPEM(run.Size, run.DPI)

	key := shapeKey{
		font:      ref.Key(),
		text:      txt,
		direction: dir,
		script:    script,
		language:  run.Language,
		features:  featureKey(run.Features),
		ppemBits:  math.Float64bits(ppem),
	}
	if out, ok := c.runs.Get(key); ok {
		c.config.logger.Debug("shape cache hit", slog.String("font", ref.Name()), slog.Int("chars", out.Runes))
		return out, nil
	}

	face, err := c.face(ref)
	if err != nil {
		return nil, err
	}

	upem := ref.UnitsPerEm()
	result := &ShapedRun{
		Direction: dir,
		Script:    script,
		Runes:     utf8.RuneCountInString(txt),
		PPEM:      ppem,
		Scale:     compose.Scale{UnitsPerEm: upem, PPEM: ppem},
	}

	if len(runes) > 0 {
		// Shaping at size == upem yields positions in design units.
		input := shaping.Input{
			Text:         runes,
			RunStart:     0,
			RunEnd:       len(runes),
			Direction:    mapDirection(dir),
			Face:         face,
			Size:         fixed.I(upem),
			Script:       script,
			Language:     language.NewLanguage(run.Language),
			FontFeatures: shapingFeatures(run.Features),
		}
		output := c.shaper.Shape(input)
		result.Clusters, result.Advance = groupClusters(output.Glyphs, result.Scale)
	}

	for i := range result.Clusters {
		cl := &result.Clusters[i]
		c.config.logger.Debug("shaped cluster",
			slog.Int("cluster", cl.Index),
			slog.Int("runes", cl.Runes),
			slog.Int("glyphs", len(cl.Glyphs)))
	}
	c.config.logger.Debug("shaped run",
		slog.String("font", ref.Name()),
		slog.Int("chars", result.Runes),
		slog.Int("clusters", len(result.Clusters)),
		slog.Int("glyphs", result.NumGlyphs()),
		slog.String("direction", dir.String()))

	c.runs.Set(key, result)
	return result, nil
}

// face returns the parsed go-text face for ref, parsing it on first use.
func (c *ShapeContext) face(ref FontRef) (*font.Face, error) {
	if f, ok := c.faces[ref.Key()]; ok {
		return f, nil
	}

	faces, err := font.ParseTTC(bytes.NewReader(ref.Data()))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font for shaping: %w", err)
	}
	if ref.Index() >= len(faces) {
		return nil, &FaceIndexError{Index: ref.Index(), NumFaces: len(faces)}
	}

	f := faces[ref.Index()]
	c.faces[ref.Key()] = f
	return f, nil
}

// Forget drops the cached face and the shaped runs of the font identified by
// key. Runs of other fonts stay cached.
func (c *ShapeContext) Forget(key CacheKey) {
	delete(c.faces, key)
	c.runs.DeleteFunc(func(k shapeKey) bool { return k.font == key })
}

// CacheStats returns statistics of the shaped run cache.
func (c *ShapeContext) CacheStats() cache.Stats {
	return c.runs.Stats()
}

// Close releases all cached faces and runs. The context cannot be used
// afterwards.
func (c *ShapeContext) Close() error {
	c.faces = nil
	c.runs.Clear()
	c.closed = true
	return nil
}

// groupClusters converts go-text glyphs, positioned in design units, into
// clusters of ShapedGlyph with pixel positions.
func groupClusters(glyphs []shaping.Glyph, scale compose.Scale) ([]Cluster, float64) {
	var (
		clusters []Cluster
		penUnits float64
	)
	for i := range glyphs {
		g := &glyphs[i]
		adv := fixedToFloat(g.XAdvance)

		sg := ShapedGlyph{
			ID:      GlyphID(g.GlyphID), //nolint:gosec // glyph indices fit uint16 in sfnt fonts
			Cluster: g.ClusterIndex,
			X:       scale.Pixels(penUnits),
			XOffset: scale.Pixels(fixedToFloat(g.XOffset)),
			YOffset: scale.Pixels(fixedToFloat(g.YOffset)),
			Advance: adv,
		}
		penUnits += adv

		if n := len(clusters); n > 0 && clusters[n-1].Index == g.ClusterIndex {
			clusters[n-1].Glyphs = append(clusters[n-1].Glyphs, sg)
			continue
		}
		clusters = append(clusters, Cluster{
			Index:  g.ClusterIndex,
			Runes:  g.RuneCount,
			Glyphs: []ShapedGlyph{sg},
		})
	}
	return clusters, penUnits
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
