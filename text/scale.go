package text

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/glyphline/compose"
	"github.com/gogpu/glyphline/internal/cache"
)

// bitmapKey identifies a rendered glyph in the bitmap cache.
type bitmapKey struct {
	font     CacheKey
	glyph    GlyphID
	ppemBits uint64
	hinting  Hinting
	subPos   uint8
	offX     int32 // fixed 26.6 glyph offset
	offY     int32
}

// ScaleContext converts glyph outlines to coverage bitmaps.
//
// A ScaleContext owns the outline buffer shared by all scalers it creates and
// a cache of rendered bitmaps keyed by font, glyph, size and subpixel
// position. It is not safe for concurrent use.
type ScaleContext struct {
	buf     sfnt.Buffer
	bitmaps *cache.Cache[bitmapKey, *compose.Bitmap]
	config  scaleConfig
	closed  bool
}

// NewScaleContext creates a rasterization context.
func NewScaleContext(opts ...ScaleOption) *ScaleContext {
	config := defaultScaleConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &ScaleContext{
		bitmaps: cache.New[bitmapKey, *compose.Bitmap](config.cacheLimit),
		config:  config,
	}
}

// Scaler returns a scaler rendering glyphs of ref at ppem pixels per em.
//
// With HintingFull the size is rounded to whole pixels and glyphs are
// snapped to whole-pixel origins regardless of the subpixel mode.
func (c *ScaleContext) Scaler(ref FontRef, ppem float64, hinting Hinting) *Scaler {
	mode := c.config.subpixel
	if hinting == HintingFull {
		ppem = math.Round(ppem)
		mode = SubpixelNone
	}
	return &Scaler{
		ctx:     c,
		ref:     ref,
		ppem:    ppem,
		hinting: hinting,
		mode:    mode,
	}
}

// CacheStats returns statistics of the bitmap cache.
func (c *ScaleContext) CacheStats() cache.Stats {
	return c.bitmaps.Stats()
}

// Close releases cached bitmaps. The context cannot be used afterwards.
func (c *ScaleContext) Close() error {
	c.bitmaps.Clear()
	c.closed = true
	return nil
}

// Scaler renders glyphs of one face at one size.
type Scaler struct {
	ctx     *ScaleContext
	ref     FontRef
	ppem    float64
	hinting Hinting
	mode    SubpixelMode
}

// PPEM returns the effective pixels per em.
func (s *Scaler) PPEM() float64 {
	return s.ppem
}

// Render rasterizes g into a single-channel coverage bitmap.
//
// The bitmap origin is the glyph's pen position: Left and Top locate the
// image relative to it, including the glyph's shaping offsets and the
// fractional part of its pen X. Glyphs without an outline, such as spaces,
// yield a nil bitmap and no error. Glyphs the face cannot provide as an
// outline (missing indices, color glyphs) wrap ErrGlyphUnavailable.
func (s *Scaler) Render(g ShapedGlyph) (*compose.Bitmap, error) {
	if s.ctx.closed {
		return nil, ErrContextClosed
	}
	f, err := s.ref.outlines()
	if err != nil {
		return nil, err
	}

	_, subPos := Quantize(g.X, s.mode)
	offX := SubpixelOffset(subPos, s.mode) + g.XOffset
	offY := -g.YOffset
	if s.hinting == HintingFull {
		offX = math.Round(offX)
		offY = math.Round(offY)
	}

	key := bitmapKey{
		font:     s.ref.Key(),
		glyph:    g.ID,
		ppemBits: math.Float64bits(s.ppem),
		hinting:  s.hinting,
		subPos:   subPos,
		offX:     int32(math.Round(offX * 64)),
		offY:     int32(math.Round(offY * 64)),
	}
	return s.ctx.bitmaps.GetOrCreate(key, func() (*compose.Bitmap, error) {
		return s.rasterize(f, g.ID, offX, offY)
	})
}

// rasterize loads the outline of gid and scan-converts it with the origin
// shifted by (dx, dy) pixels, y down.
func (s *Scaler) rasterize(f *sfnt.Font, gid GlyphID, dx, dy float64) (*compose.Bitmap, error) {
	ppem := fixed.Int26_6(math.Round(s.ppem * 64))
	segs, err := f.LoadGlyph(&s.ctx.buf, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrColoredGlyph) || errors.Is(err, sfnt.ErrNotFound) {
			return nil, fmt.Errorf("%w: glyph %d: %w", ErrGlyphUnavailable, gid, err)
		}
		return nil, fmt.Errorf("text: failed to load glyph %d: %w", gid, err)
	}
	if len(segs) == 0 {
		return nil, nil
	}

	b := segs.Bounds()
	minX := int(math.Floor(fixedToFloat(b.Min.X) + dx))
	minY := int(math.Floor(fixedToFloat(b.Min.Y) + dy))
	maxX := int(math.Ceil(fixedToFloat(b.Max.X) + dx))
	maxY := int(math.Ceil(fixedToFloat(b.Max.Y) + dy))
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return nil, nil
	}

	ox := float32(dx - float64(minX))
	oy := float32(dy - float64(minY))
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 + ox, float32(p.Y)/64 + oy
	}

	r := vector.NewRasterizer(w, h)
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				r.ClosePath()
			}
			r.MoveTo(pt(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			r.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			r.QuadTo(x1, y1, x2, y2)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			x3, y3 := pt(seg.Args[2])
			r.CubeTo(x1, y1, x2, y2, x3, y3)
		}
	}
	if open {
		r.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	s.ctx.config.logger.Debug("rasterized glyph",
		slog.Int("glyph", int(gid)),
		slog.Int("width", w),
		slog.Int("height", h),
		slog.Int("left", minX),
		slog.Int("top", -minY))

	return &compose.Bitmap{
		Width:    w,
		Height:   h,
		Left:     minX,
		Top:      -minY,
		Channels: 1,
		Data:     mask.Pix,
	}, nil
}
