package compose

import "log/slog"

// Option configures a composition pass.
type Option func(*options)

// options holds optional configuration for Compose.
type options struct {
	channels int
	tint     bool
	logger   *slog.Logger
}

// defaultOptions returns single-channel coverage output without tinting.
func defaultOptions() options {
	return options{
		channels: 1,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// WithChannels sets the canvas channel depth: 1 (gray coverage) or 4 (RGBA).
// Other values are ignored.
func WithChannels(n int) Option {
	return func(o *options) {
		if n == 1 || n == 4 {
			o.channels = n
		}
	}
}

// WithTint enables per-glyph color cycling on RGBA canvases.
//
// Glyph i uses the mask i%8: when bit b is set, destination channel b
// (R, G, B for b = 0, 1, 2) keeps its value instead of accumulating coverage.
// Neighbouring glyphs therefore come out in different colors, which makes
// glyph boundaries visible. Tinting has no effect on single-channel canvases.
func WithTint(enabled bool) Option {
	return func(o *options) {
		o.tint = enabled
	}
}

// WithLogger sets the logger used to report degenerate glyphs.
// A nil logger discards all output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.logger = l
	}
}
