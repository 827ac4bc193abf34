// Package glyphline renders one line of mixed-script text into an image.
//
// # Overview
//
// A job lists text runs, each with its own font, script and direction.
// The pipeline shapes every run with go-text/typesetting, rasterizes each
// glyph into a coverage bitmap, composites the bitmaps left to right on a
// shared baseline and writes the canvas to a PNG, JPEG, TIFF or BMP file.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/glyphline"
//	    "github.com/gogpu/glyphline/config"
//	)
//
//	cfg := config.Default()
//	cfg.Runs = []config.Run{{Font: "DejaVuSans.ttf", Text: "hello"}}
//
//	res, err := glyphline.New(cfg).Run()
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.OutputPath, res.Canvas.Width, res.Canvas.Height)
//
// # Architecture
//
// The module is organized into:
//   - compose: the glyph compositor (canvas sizing, baseline alignment,
//     saturating blits, tint cycling)
//   - text: font loading, shaping and glyph rasterization contexts
//   - config: YAML job files and font lookup
//   - internal/imageio: canvas to image conversion and encoders
//   - internal/cache: the LRU cache behind the shaping and bitmap caches
//
// # Errors
//
// Fonts that cannot be loaded and runs that cannot be shaped abort the job
// with a *RunError. Glyphs that cannot be rasterized are logged, counted in
// compose.Stats and still advance the pen. Output errors are returned after
// composition.
//
// # Logging
//
// glyphline is silent by default. See SetLogger.
package glyphline
