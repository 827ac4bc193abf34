package glyphline

import (
	"log/slog"

	"github.com/gogpu/glyphline/config"
	"github.com/gogpu/glyphline/text"
)

// FontLoader opens the face at index of the named font.
// The name is taken verbatim from the job's run.
type FontLoader func(name string, index int) (*text.FontSource, error)

// Option configures a Pipeline.
//
// Example:
//
//	p := glyphline.New(cfg,
//	    glyphline.WithLogger(logger),
//	    glyphline.WithFontDir("testdata/fonts"),
//	)
type Option func(*pipelineOptions)

// pipelineOptions holds optional configuration for a Pipeline.
type pipelineOptions struct {
	logger  *slog.Logger
	loader  FontLoader
	fontDir string
}

// defaultOptions resolves fonts on disk and logs through the package logger.
func defaultOptions() pipelineOptions {
	return pipelineOptions{}
}

// WithLogger sets the logger for this pipeline, overriding the package
// logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *pipelineOptions) {
		o.logger = l
	}
}

// WithFontLoader replaces font lookup. Tests use it to serve embedded fonts.
func WithFontLoader(fn FontLoader) Option {
	return func(o *pipelineOptions) {
		o.loader = fn
	}
}

// WithFontDir sets the directory relative font names are resolved against
// before falling back to the system fonts.
func WithFontDir(dir string) Option {
	return func(o *pipelineOptions) {
		o.fontDir = dir
	}
}

// diskLoader returns the default loader: resolve the name, then read it.
func diskLoader(dir string) FontLoader {
	return func(name string, index int) (*text.FontSource, error) {
		path, err := config.ResolveFont(name, dir)
		if err != nil {
			return nil, err
		}
		return text.LoadFont(path, index)
	}
}
