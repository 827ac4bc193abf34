// Package compose lays pre-rasterized glyph bitmaps out along a single text
// line and accumulates them into one pixel buffer.
//
// The compositor is a pure, single-pass transformation:
//
//	items := []compose.Item{
//	    {Advance: 1229, Scale: compose.Scale{UnitsPerEm: 2048, PPEM: 64}, Bitmap: a},
//	    {Advance: 512, Scale: compose.Scale{UnitsPerEm: 2048, PPEM: 64}}, // space
//	}
//	canvas, stats := compose.Compose(items, compose.WithChannels(4))
//
// # Layout
//
// Canvas width is the sum of the glyph advances, each converted to pixels and
// rounded half away from zero. The same rounded advance moves the pen, so the
// pen always ends exactly at the right canvas edge.
//
// The baseline is the tallest bitmap height in the line. A glyph is placed
// max(0, baseline-Top) rows below the canvas top, and the canvas height is the
// largest bottom edge reached by any glyph.
//
// # Accumulation
//
// Coverage is added, not copied: every destination channel saturates at 255,
// so overlapping glyphs blend instead of clipping one another.
//
// Glyphs without a bitmap (typically whitespace) still move the pen. They are
// counted in [Stats.Empty] and logged at debug level.
package compose
