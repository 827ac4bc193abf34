package compose

import "log/slog"

// Item is one shaped glyph paired with its optional bitmap.
type Item struct {
	// GlyphID is the glyph index in its font, kept for diagnostics.
	GlyphID uint16

	// Advance is the horizontal advance in font design units.
	Advance float64

	// Scale converts Advance to pixels.
	Scale Scale

	// Bitmap is the rasterized glyph. Nil or empty for glyphs without
	// visible pixels.
	Bitmap *Bitmap

	// Failed marks a glyph whose rasterization failed. The glyph is treated
	// like an empty one but counted separately.
	Failed bool
}

// PixelAdvance returns the rounded pixel advance used for layout.
func (it *Item) PixelAdvance() int {
	return roundAdvance(it.Scale.Pixels(it.Advance))
}

// drawable reports whether the item contributes pixels to the canvas.
func (it *Item) drawable() bool {
	return !it.Failed && !it.Bitmap.Empty() && it.Bitmap.valid()
}

// Metrics describes the canvas geometry computed from a glyph sequence.
type Metrics struct {
	Width    int
	Height   int
	Baseline int
}

// Stats reports what happened during a composition pass.
type Stats struct {
	// Glyphs is the number of items processed.
	Glyphs int

	// Blitted is the number of items whose bitmap was drawn.
	Blitted int

	// Empty is the number of items without a bitmap or with zero height.
	Empty int

	// Failed is the number of items flagged as rasterization failures or
	// carrying a malformed bitmap.
	Failed int

	// Skipped lists the indices of all empty and failed items.
	Skipped []int
}

// Measure computes canvas width, height, and baseline without allocating.
func Measure(items []Item) Metrics {
	var m Metrics
	for i := range items {
		m.Width += items[i].PixelAdvance()
		if items[i].drawable() {
			m.Baseline = max(m.Baseline, items[i].Bitmap.Height)
		}
	}
	for i := range items {
		if !items[i].drawable() {
			continue
		}
		bm := items[i].Bitmap
		m.Height = max(m.Height, bm.Height+topOffset(m.Baseline, bm.Top))
	}
	return m
}

// topOffset is the number of rows between the canvas top and a glyph's top
// edge. It saturates at zero for glyphs reaching above the baseline height.
func topOffset(baseline, top int) int {
	return max(baseline-top, 0)
}

// Compose lays out items in order and accumulates their bitmaps into a new
// canvas.
//
// Compose never fails: coordinates outside the canvas are clamped or
// clipped, and malformed bitmaps are skipped and counted in Stats.Failed.
func Compose(items []Item, opts ...Option) (*Canvas, Stats) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	m := Measure(items)
	c := NewCanvas(m.Width, m.Height, o.channels)
	c.Baseline = m.Baseline

	stats := Stats{Glyphs: len(items)}
	pen := 0
	for i := range items {
		it := &items[i]
		bm := it.Bitmap

		switch {
		case it.Failed:
			stats.Failed++
			stats.Skipped = append(stats.Skipped, i)
		case bm.Empty():
			stats.Empty++
			stats.Skipped = append(stats.Skipped, i)
			o.logger.Debug("glyph has no pixels, probably a space",
				slog.Int("index", i),
				slog.Int("glyph", int(it.GlyphID)))
		case !bm.valid():
			stats.Failed++
			stats.Skipped = append(stats.Skipped, i)
			o.logger.Warn("glyph bitmap is malformed",
				slog.Int("index", i),
				slog.Int("glyph", int(it.GlyphID)),
				slog.Int("channels", bm.Channels),
				slog.Int("len", len(bm.Data)))
		default:
			var mask uint8
			if o.tint && c.Channels == 4 {
				mask = uint8(i % 8) //nolint:gosec // i%8 < 8
			}
			blit(c, bm, pen, mask)
			stats.Blitted++
		}

		pen += it.PixelAdvance()
	}

	return c, stats
}

// blit accumulates bm into c with its origin at pen on the baseline.
// Bit b of hold keeps destination channel b unchanged.
func blit(c *Canvas, bm *Bitmap, pen int, hold uint8) {
	if c.Empty() {
		return
	}
	yOff := topOffset(c.Baseline, bm.Top)
	rows := min(bm.Height, c.Height)

	for y := range rows {
		dy := min(y+yOff, c.Height-1)
		dst := c.Row(dy)
		for x := range bm.Width {
			dx := max(x+bm.Left+pen, 0)
			if dx >= c.Width {
				continue
			}
			src := (y*bm.Width + x) * bm.Channels
			px := dst[dx*c.Channels : (dx+1)*c.Channels]
			for ch := range px {
				if ch < 3 && hold&(1<<ch) != 0 {
					continue
				}
				px[ch] = addSat(px[ch], bm.coverage(src, ch, c.Channels))
			}
		}
	}
}

// addSat adds two channel values, saturating at 255.
func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 0xff {
		return 0xff
	}
	return uint8(s)
}
