package glyphline

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gogpu/glyphline/compose"
	"github.com/gogpu/glyphline/config"
	"github.com/gogpu/glyphline/internal/imageio"
	"github.com/gogpu/glyphline/text"
)

// Pipeline renders one job. It is not safe for concurrent use; create one
// Pipeline per goroutine.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	loader FontLoader
}

// RunReport summarizes one shaped run.
type RunReport struct {
	Font      string
	Script    string
	Direction text.Direction
	Chars     int
	Clusters  int
	Glyphs    int
	// Width is the run's share of the canvas width in pixels.
	Width     int
}

// Result is the outcome of a successful Pipeline.Run.
type Result struct {
	Canvas *compose.Canvas
	Items  []compose.Item
	Stats  compose.Stats
	Runs   []RunReport

	// OutputPath is the image written, empty if no output was configured.
	OutputPath string

	// GlyphFiles is the number of per-glyph images written to the glyph
	// directory.
	GlyphFiles int
}

// New creates a pipeline for cfg. The configuration is used as is; call
// cfg.Validate first when it did not come from config.Load.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pipeline{cfg: cfg, logger: o.logger, loader: o.loader}
	if p.logger == nil {
		p.logger = Logger()
	}
	if p.loader == nil {
		p.loader = diskLoader(o.fontDir)
	}
	return p
}

// Run composes the job and writes its outputs.
//
// Load and shaping failures abort before anything is written and are
// reported as *RunError. Output failures are returned after composition.
func (p *Pipeline) Run() (*Result, error) {
	res, err := p.compose()
	if err != nil {
		return nil, err
	}

	if out := p.cfg.Output; out != "" {
		var opts []imageio.Option
		if p.cfg.JPEGQuality > 0 {
			opts = append(opts, imageio.WithJPEGQuality(p.cfg.JPEGQuality))
		}
		if err := imageio.Save(out, res.Canvas, opts...); err != nil {
			return res, fmt.Errorf("glyphline: write %s: %w", out, err)
		}
		res.OutputPath = out
		p.logger.Info("wrote image",
			slog.String("path", out),
			slog.Int("width", res.Canvas.Width),
			slog.Int("height", res.Canvas.Height),
			slog.Int("channels", res.Canvas.Channels))
	}

	if dir := p.cfg.GlyphDir; dir != "" {
		n, err := imageio.SaveGlyphs(dir, res.Items)
		res.GlyphFiles = n
		if err != nil {
			return res, fmt.Errorf("glyphline: write glyphs: %w", err)
		}
		p.logger.Info("wrote glyph images", slog.String("dir", dir), slog.Int("files", n))
	}

	return res, nil
}

// Compose shapes, rasterizes and composes the job without writing files.
func (p *Pipeline) Compose() (*compose.Canvas, []compose.Item, compose.Stats, error) {
	res, err := p.compose()
	if err != nil {
		return nil, nil, compose.Stats{}, err
	}
	return res.Canvas, res.Items, res.Stats, nil
}

func (p *Pipeline) compose() (*Result, error) {
	if len(p.cfg.Runs) == 0 {
		return nil, ErrNoRuns
	}

	sources, err := p.loadFonts()
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, src := range sources {
			_ = src.Close()
		}
	}()

	shaper := text.NewShapeContext(
		text.WithNormalization(p.cfg.Normalize),
		text.WithShapeLogger(p.logger),
	)
	defer func() { _ = shaper.Close() }()

	scaler := text.NewScaleContext(
		text.WithSubpixel(p.cfg.SubpixelMode()),
		text.WithScaleLogger(p.logger),
	)
	defer func() { _ = scaler.Close() }()

	res := &Result{Runs: make([]RunReport, 0, len(p.cfg.Runs))}
	for i := range p.cfg.Runs {
		rc := &p.cfg.Runs[i]
		src := sources[fontKey(rc)]

		items, report, err := p.renderRun(i, rc, src, shaper, scaler)
		if err != nil {
			return nil, err
		}
		res.Items = append(res.Items, items...)
		res.Runs = append(res.Runs, report)
	}

	res.Canvas, res.Stats = compose.Compose(res.Items,
		compose.WithChannels(p.cfg.Channels),
		compose.WithTint(p.cfg.Tint),
		compose.WithLogger(p.logger),
	)

	p.logger.Debug("composed",
		slog.Int("width", res.Canvas.Width),
		slog.Int("height", res.Canvas.Height),
		slog.Int("baseline", res.Canvas.Baseline),
		slog.Int("glyphs", res.Stats.Glyphs),
		slog.Int("empty", res.Stats.Empty),
		slog.Int("failed", res.Stats.Failed),
		slog.Any("shape_cache", shaper.CacheStats()),
		slog.Any("bitmap_cache", scaler.CacheStats()))

	return res, nil
}

// renderRun shapes one run and rasterizes its glyphs into compositor items.
func (p *Pipeline) renderRun(i int, rc *config.Run, src *text.FontSource,
	shaper *text.ShapeContext, scaler *text.ScaleContext,
) ([]compose.Item, RunReport, error) {
	fail := func(err error) ([]compose.Item, RunReport, error) {
		return nil, RunReport{}, &RunError{Run: i, Font: rc.Font, Op: "shape", Err: err}
	}

	tr, err := rc.TextRun(p.cfg.Size, p.cfg.DPI)
	if err != nil {
		return fail(err)
	}
	shaped, err := shaper.Shape(src.Ref(), tr)
	if err != nil {
		return fail(err)
	}

	sc := scaler.Scaler(src.Ref(), shaped.PPEM, p.cfg.HintingMode())
	// Hinting may snap the size; advances must use the size bitmaps are drawn at.
	scale := compose.Scale{UnitsPerEm: shaped.Scale.UnitsPerEm, PPEM: sc.PPEM()}
	glyphs := shaped.Glyphs()
	items := make([]compose.Item, 0, len(glyphs))
	width := 0
	for gi, g := range glyphs {
		item := compose.Item{
			GlyphID: uint16(g.ID),
			Advance: g.Advance,
			Scale:   scale,
		}
		bm, err := sc.Render(g)
		if err != nil {
			p.logger.Warn("glyph rasterization failed",
				slog.Int("run", i),
				slog.Int("glyph", gi),
				slog.Int("id", int(g.ID)),
				slog.String("error", err.Error()))
			item.Failed = true
		} else {
			item.Bitmap = bm
		}
		width += item.PixelAdvance()
		items = append(items, item)
	}

	report := RunReport{
		Font:      src.Name(),
		Script:    shaped.Script.String(),
		Direction: shaped.Direction,
		Chars:     shaped.Runes,
		Clusters:  len(shaped.Clusters),
		Glyphs:    len(glyphs),
		Width:     width,
	}
	p.logger.Debug("run shaped",
		slog.Int("run", i),
		slog.String("font", report.Font),
		slog.String("script", report.Script),
		slog.String("direction", report.Direction.String()),
		slog.Int("chars", report.Chars),
		slog.Int("clusters", report.Clusters),
		slog.Int("glyphs", report.Glyphs))

	return items, report, nil
}

// loadFonts opens every distinct font of the job once.
func (p *Pipeline) loadFonts() (map[string]*text.FontSource, error) {
	sources := make(map[string]*text.FontSource)
	for i := range p.cfg.Runs {
		rc := &p.cfg.Runs[i]
		key := fontKey(rc)
		if _, ok := sources[key]; ok {
			continue
		}

		src, err := p.loader(rc.Font, rc.Index)
		if err != nil {
			for _, s := range sources {
				_ = s.Close()
			}
			return nil, &RunError{Run: i, Font: rc.Font, Op: "load", Err: err}
		}
		p.logger.Debug("font loaded",
			slog.String("font", rc.Font),
			slog.Int("index", rc.Index),
			slog.String("family", src.Name()),
			slog.Int("units_per_em", src.Ref().UnitsPerEm()))
		sources[key] = src
	}
	return sources, nil
}

func fontKey(rc *config.Run) string {
	return rc.Font + "#" + strconv.Itoa(rc.Index)
}
