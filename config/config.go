// Package config loads and validates glyphline job files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/glyphline/internal/imageio"
	"github.com/gogpu/glyphline/text"
)

// ErrInvalidConfig is wrapped by every validation and decoding failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is a composition job: global rendering settings plus the runs to
// lay out left to right on one baseline.
type Config struct {
	Output      string  `yaml:"output"`
	GlyphDir    string  `yaml:"glyph_dir,omitempty"`
	Size        float64 `yaml:"size"`
	DPI         float64 `yaml:"dpi"`
	Hinting     bool    `yaml:"hinting"`
	Subpixel    int     `yaml:"subpixel"`
	Channels    int     `yaml:"channels"`
	Tint        bool    `yaml:"tint"`
	Normalize   bool    `yaml:"normalize"`
	JPEGQuality int     `yaml:"jpeg_quality"`
	Runs        []Run   `yaml:"runs"`
}

// Run is one text run shaped with a single font.
type Run struct {
	// Font is a file path, or a file or family name looked up among the
	// system fonts.
	Font      string   `yaml:"font"`
	Index     int      `yaml:"index,omitempty"`
	Script    string   `yaml:"script,omitempty"`
	Direction string   `yaml:"direction,omitempty"`
	Language  string   `yaml:"language,omitempty"`
	Features  []string `yaml:"features,omitempty"`
	Text      string   `yaml:"text"`
}

// Default returns the demo job: a Latin, a Japanese and an Arabic run at
// 64pt, unhinted, composed in RGBA with per-glyph tinting.
func Default() *Config {
	return &Config{
		Output:      "swash-text.png",
		Size:        64,
		DPI:         72,
		Subpixel:    4,
		Channels:    4,
		Tint:        true,
		Normalize:   true,
		JPEGQuality: imageio.DefaultJPEGQuality,
		Runs: []Run{
			{
				Font:      "Roboto-Regular.ttf",
				Script:    "Latin",
				Direction: "ltr",
				Language:  "en",
				Text:      "a quick brown fox?   ",
			},
			{
				Font:      "NotoSansCJK-Regular.ttc",
				Script:    "Hiragana",
				Direction: "ltr",
				Language:  "ja",
				Text:      "怠惰な犬の上にジャンプするのだ！  ",
			},
			{
				Font:      "NotoNaskhArabic-Regular.ttf",
				Script:    "Arabic",
				Direction: "rtl",
				Language:  "ar",
				Text:      "لكن لا بد أن أوضح لك أن كل    ",
			},
		},
	}
}

// Load reads a YAML job file. Missing keys keep their Default values,
// except runs: a file that lists runs replaces the demo runs.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML job and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	runs := cfg.Runs
	cfg.Runs = nil

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cfg.Runs == nil {
		cfg.Runs = runs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting and run. All problems are reported
// together.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Size <= 0 {
		add("size must be positive, got %v", c.Size)
	}
	if c.DPI < 0 {
		add("dpi must not be negative, got %v", c.DPI)
	}
	if _, err := text.ParseSubpixelMode(c.Subpixel); err != nil {
		add("subpixel: %w", err)
	}
	if c.Channels != 1 && c.Channels != 4 {
		add("channels must be 1 or 4, got %d", c.Channels)
	}
	if c.JPEGQuality < 0 || c.JPEGQuality > 100 {
		add("jpeg_quality must be within 0..100, got %d", c.JPEGQuality)
	}
	if strings.TrimSpace(c.Output) == "" && c.GlyphDir == "" {
		add("output or glyph_dir is required")
	}
	if c.Output != "" {
		if _, err := imageio.FormatFromPath(c.Output); err != nil {
			add("output: %w", err)
		}
	}
	if len(c.Runs) == 0 {
		add("at least one run is required")
	}

	for i := range c.Runs {
		if err := c.Runs[i].validate(); err != nil {
			add("run %d: %w", i, err)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func (r *Run) validate() error {
	if strings.TrimSpace(r.Font) == "" {
		return errors.New("font is required")
	}
	if r.Index < 0 {
		return fmt.Errorf("index must not be negative, got %d", r.Index)
	}
	if _, err := r.TextRun(1, 0); err != nil {
		return err
	}
	return nil
}

// TextRun converts the run into a shaping request at the given size.
// An empty or "auto" script or direction is detected from the text.
func (r *Run) TextRun(size, dpi float64) (text.Run, error) {
	script := text.ScriptAuto
	if s := strings.TrimSpace(r.Script); s != "" && !strings.EqualFold(s, "auto") {
		var err error
		if script, err = text.ParseScript(s); err != nil {
			return text.Run{}, err
		}
	}

	dir, err := text.ParseDirection(r.Direction)
	if err != nil {
		return text.Run{}, err
	}

	features := make([]text.Feature, 0, len(r.Features))
	for _, s := range r.Features {
		f, err := text.ParseFeature(s)
		if err != nil {
			return text.Run{}, err
		}
		features = append(features, f)
	}

	return text.Run{
		Text:      r.Text,
		Script:    script,
		Direction: dir,
		Language:  r.Language,
		Features:  features,
		Size:      size,
		DPI:       dpi,
	}, nil
}

// HintingMode returns the hinting mode selected by the job.
func (c *Config) HintingMode() text.Hinting {
	if c.Hinting {
		return text.HintingFull
	}
	return text.HintingNone
}

// SubpixelMode returns the validated subpixel mode.
func (c *Config) SubpixelMode() text.SubpixelMode {
	m, err := text.ParseSubpixelMode(c.Subpixel)
	if err != nil {
		return text.Subpixel4
	}
	return m
}
