package text

import "log/slog"

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontSource.
type sourceConfig struct {
	path string
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{}
}

// WithPath records the file path a source was read from, for diagnostics.
func WithPath(path string) SourceOption {
	return func(c *sourceConfig) {
		c.path = path
	}
}

// ShapeOption configures a ShapeContext.
type ShapeOption func(*shapeConfig)

// shapeConfig holds configuration for ShapeContext.
type shapeConfig struct {
	cacheLimit int
	normalize  bool
	logger     *slog.Logger
}

// defaultShapeConfig returns the default shaping configuration.
func defaultShapeConfig() shapeConfig {
	return shapeConfig{
		cacheLimit: 64,
		normalize:  true,
		logger:     slog.New(slog.DiscardHandler),
	}
}

// WithShapeCacheLimit sets the maximum number of cached shaped runs.
// A value of 0 means unlimited, a negative value disables the cache.
func WithShapeCacheLimit(n int) ShapeOption {
	return func(c *shapeConfig) {
		c.cacheLimit = n
	}
}

// WithNormalization enables or disables NFC normalization of run text
// before shaping. Enabled by default.
func WithNormalization(enabled bool) ShapeOption {
	return func(c *shapeConfig) {
		c.normalize = enabled
	}
}

// WithShapeLogger sets the logger for shaping diagnostics.
func WithShapeLogger(l *slog.Logger) ShapeOption {
	return func(c *shapeConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ScaleOption configures a ScaleContext.
type ScaleOption func(*scaleConfig)

// scaleConfig holds configuration for ScaleContext.
type scaleConfig struct {
	cacheLimit int
	subpixel   SubpixelMode
	logger     *slog.Logger
}

// defaultScaleConfig returns the default rasterization configuration.
func defaultScaleConfig() scaleConfig {
	return scaleConfig{
		cacheLimit: 512,
		subpixel:   Subpixel4,
		logger:     slog.New(slog.DiscardHandler),
	}
}

// WithScaleCacheLimit sets the maximum number of cached glyph bitmaps.
// A value of 0 means unlimited, a negative value disables the cache.
func WithScaleCacheLimit(n int) ScaleOption {
	return func(c *scaleConfig) {
		c.cacheLimit = n
	}
}

// WithSubpixel sets the horizontal subpixel positioning mode.
func WithSubpixel(mode SubpixelMode) ScaleOption {
	return func(c *scaleConfig) {
		c.subpixel = mode
	}
}

// WithScaleLogger sets the logger for rasterization diagnostics.
func WithScaleLogger(l *slog.Logger) ScaleOption {
	return func(c *scaleConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
