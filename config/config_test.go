package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/glyphline/text"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}

	if cfg.Size != 64 || cfg.Channels != 4 || !cfg.Tint || cfg.Hinting {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.Runs) != 3 {
		t.Fatalf("len(Runs) = %d, want 3", len(cfg.Runs))
	}

	run, err := cfg.Runs[2].TextRun(cfg.Size, cfg.DPI)
	if err != nil {
		t.Fatal(err)
	}
	if run.Direction != text.DirectionRTL || run.Script != text.ScriptArabic {
		t.Errorf("third run = %v %v, want RTL Arabic", run.Direction, run.Script)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
output: out/result.tiff
size: 32
channels: 1
tint: false
subpixel: 10
runs:
  - font: Go-Regular.ttf
    script: auto
    features: ["-kern", "liga"]
    text: "hello"
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Output != "out/result.tiff" || cfg.Size != 32 || cfg.Channels != 1 || cfg.Tint {
		t.Errorf("decoded %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.DPI != 72 || !cfg.Normalize {
		t.Errorf("defaults lost: dpi=%v normalize=%v", cfg.DPI, cfg.Normalize)
	}
	if cfg.SubpixelMode() != text.Subpixel10 {
		t.Errorf("SubpixelMode() = %v", cfg.SubpixelMode())
	}
	if len(cfg.Runs) != 1 {
		t.Fatalf("len(Runs) = %d, want 1", len(cfg.Runs))
	}

	run, err := cfg.Runs[0].TextRun(cfg.Size, cfg.DPI)
	if err != nil {
		t.Fatal(err)
	}
	if run.Script != text.ScriptAuto || run.Direction != text.DirectionAuto {
		t.Errorf("script/direction = %v/%v, want auto", run.Script, run.Direction)
	}
	if len(run.Features) != 2 || run.Features[0] != (text.Feature{Tag: "kern", Value: 0}) {
		t.Errorf("features = %v", run.Features)
	}
}

func TestParseKeepsDefaultRuns(t *testing.T) {
	cfg, err := Parse([]byte("size: 48\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Runs) != 3 || cfg.Size != 48 {
		t.Errorf("runs=%d size=%v", len(cfg.Runs), cfg.Size)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown key", "colour: red\n", "colour"},
		{"bad size", "size: -1\n", "size must be positive"},
		{"bad channels", "channels: 3\n", "channels must be 1 or 4"},
		{"bad subpixel", "subpixel: 3\n", "subpixel"},
		{"bad format", "output: out.gif\n", "unsupported format"},
		{"no output", "output: \"\"\n", "output or glyph_dir"},
		{"bad script", "runs: [{font: a.ttf, script: Elvish, text: x}]\n", "Elvish"},
		{"bad direction", "runs: [{font: a.ttf, direction: up, text: x}]\n", "direction"},
		{"bad feature", "runs: [{font: a.ttf, features: [kerning], text: x}]\n", "kerning"},
		{"no font", "runs: [{text: x}]\n", "font is required"},
		{"empty runs", "runs: []\n", "at least one run"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("error = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Size = 0
	cfg.Channels = 2

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() succeeded")
	}
	if !strings.Contains(err.Error(), "size") || !strings.Contains(err.Error(), "channels") {
		t.Errorf("error = %v, want both problems", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	if err := os.WriteFile(path, []byte("hinting: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HintingMode() != text.HintingFull {
		t.Errorf("HintingMode() = %v, want Full", cfg.HintingMode())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) succeeded")
	}
}

func TestResolveFont(t *testing.T) {
	dir := t.TempDir()
	font := filepath.Join(dir, "face.ttf")
	if err := os.WriteFile(font, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveFont(font, "")
	if err != nil || got != font {
		t.Errorf("ResolveFont(abs) = %q, %v", got, err)
	}

	got, err = ResolveFont("face.ttf", dir)
	if err != nil || got != font {
		t.Errorf("ResolveFont(rel, dir) = %q, %v", got, err)
	}

	if _, err := ResolveFont("no-such-font-anywhere-4f1c.ttf", dir); err == nil {
		t.Error("ResolveFont(missing) succeeded")
	}
}
