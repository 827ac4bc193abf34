// Command glyphline renders one line of mixed-script text into an image.
//
// Without arguments it renders the built-in demo job (Latin, Japanese and
// Arabic runs) into swash-text.png. A YAML job file replaces the demo; flags
// override individual settings:
//
//	glyphline -config job.yaml -output line.tiff -size 48 -v
//	glyphline -font DejaVuSans.ttf -text "hello" -channels 1
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/gogpu/glyphline"
	"github.com/gogpu/glyphline/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// options are the command-line settings before they are merged into a job.
type options struct {
	configPath string
	verbose    bool
	set        map[string]bool

	output    string
	glyphDir  string
	size      float64
	dpi       float64
	hint      bool
	channels  int
	tint      bool
	subpixel  int
	text      string
	font      string
	script    string
	direction string
}

func run(args []string, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	glyphline.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := buildConfig(opts)
	if err != nil {
		pterm.Error.Println(err)
		return 1
	}

	res, err := glyphline.New(cfg).Run()
	if err != nil {
		pterm.Error.Println(err)
		return 1
	}

	printReport(res)
	return 0
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("glyphline", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	def := config.Default()
	fs.StringVar(&o.configPath, "config", "", "YAML job file (default: built-in demo)")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	fs.StringVar(&o.output, "output", def.Output, "output image (.png, .jpg, .tiff, .bmp)")
	fs.StringVar(&o.glyphDir, "glyph-dir", "", "also write each glyph bitmap into this directory")
	fs.Float64Var(&o.size, "size", def.Size, "font size in points")
	fs.Float64Var(&o.dpi, "dpi", def.DPI, "output resolution")
	fs.BoolVar(&o.hint, "hint", def.Hinting, "snap glyphs to whole pixels")
	fs.IntVar(&o.channels, "channels", def.Channels, "canvas channels: 1 (gray) or 4 (RGBA)")
	fs.BoolVar(&o.tint, "tint", def.Tint, "cycle glyph colors on RGBA canvases")
	fs.IntVar(&o.subpixel, "subpixel", def.Subpixel, "subpixel positions: 0, 4 or 10")
	fs.StringVar(&o.text, "text", "", "render this text as a single run (requires -font)")
	fs.StringVar(&o.font, "font", "", "font file or system font name for -text")
	fs.StringVar(&o.script, "script", "auto", "script of the -text run")
	fs.StringVar(&o.direction, "dir", "auto", "direction of the -text run: ltr, rtl or auto")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %v", fs.Args())
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return nil, err
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// buildConfig loads the job and applies the flags that were given
// explicitly.
func buildConfig(o *options) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}

	if o.set["output"] {
		cfg.Output = o.output
	}
	if o.set["glyph-dir"] {
		cfg.GlyphDir = o.glyphDir
	}
	if o.set["size"] {
		cfg.Size = o.size
	}
	if o.set["dpi"] {
		cfg.DPI = o.dpi
	}
	if o.set["hint"] {
		cfg.Hinting = o.hint
	}
	if o.set["channels"] {
		cfg.Channels = o.channels
	}
	if o.set["tint"] {
		cfg.Tint = o.tint
	}
	if o.set["subpixel"] {
		cfg.Subpixel = o.subpixel
	}

	if o.set["text"] || o.set["font"] {
		if o.font == "" {
			return nil, fmt.Errorf("%w: -text requires -font", config.ErrInvalidConfig)
		}
		if o.text == "" {
			return nil, fmt.Errorf("%w: -font requires -text", config.ErrInvalidConfig)
		}
		cfg.Runs = []config.Run{{
			Font:      o.font,
			Script:    o.script,
			Direction: o.direction,
			Text:      o.text,
		}}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printReport(res *glyphline.Result) {
	data := pterm.TableData{{"Run", "Font", "Script", "Dir", "Chars", "Clusters", "Glyphs", "Width"}}
	for i, r := range res.Runs {
		data = append(data, []string{
			strconv.Itoa(i),
			r.Font,
			r.Script,
			r.Direction.String(),
			strconv.Itoa(r.Chars),
			strconv.Itoa(r.Clusters),
			strconv.Itoa(r.Glyphs),
			strconv.Itoa(r.Width),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	s := res.Stats
	pterm.Info.Printf("canvas %dx%d, baseline %d: %d glyphs, %d blitted, %d empty, %d failed\n",
		res.Canvas.Width, res.Canvas.Height, res.Canvas.Baseline, s.Glyphs, s.Blitted, s.Empty, s.Failed)
	if res.OutputPath != "" {
		pterm.Success.Printf("wrote %s\n", res.OutputPath)
	}
	if res.GlyphFiles > 0 {
		pterm.Success.Printf("wrote %d glyph images\n", res.GlyphFiles)
	}
}
