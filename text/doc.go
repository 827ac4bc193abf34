// Package text turns text runs into positioned glyphs and glyph bitmaps.
//
// The package wraps three external engines and exposes them through
// explicitly owned contexts:
//
//   - FontSource: a loaded font file (TTF, OTF, TTC) with one selected face.
//     It owns the font bytes and hands out cheap FontRef values that keep the
//     same CacheKey for the lifetime of the source.
//   - ShapeContext: go-text/typesetting HarfBuzz shaping, with parsed faces
//     and shaped runs cached per CacheKey.
//   - ScaleContext: outline loading via golang.org/x/image/font/sfnt and
//     scan conversion via golang.org/x/image/vector into coverage bitmaps.
//
// # Lifecycle
//
// Contexts are created once per pipeline run, passed to every call that
// needs them and closed at the end of the run:
//
//	src, err := text.LoadFont("Roboto-Regular.ttf", 0)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	shaper := text.NewShapeContext()
//	defer shaper.Close()
//	scaler := text.NewScaleContext()
//	defer scaler.Close()
//
//	run, err := shaper.Shape(src.Ref(), text.Run{Text: "a quick brown fox", Size: 64})
//	if err != nil {
//	    return err
//	}
//	sc := scaler.Scaler(src.Ref(), run.PPEM, text.HintingNone)
//	for _, g := range run.Glyphs() {
//	    bm, err := sc.Render(g)
//	    ...
//	}
//
// Contexts are not safe for concurrent use.
package text
