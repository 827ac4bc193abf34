package compose

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// solid returns a single-channel bitmap filled with v.
func solid(w, h, left, top int, v uint8) *Bitmap {
	return &Bitmap{
		Width:    w,
		Height:   h,
		Left:     left,
		Top:      top,
		Channels: 1,
		Data:     bytes.Repeat([]byte{v}, w*h),
	}
}

// px returns an item whose advance is already in pixels.
func px(advance float64, bm *Bitmap) Item {
	return Item{Advance: advance, Bitmap: bm}
}

func TestMeasure(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  Metrics
	}{
		{"empty", nil, Metrics{}},
		{
			"whitespace only",
			[]Item{px(7, nil), px(7.4, &Bitmap{Channels: 1}), px(3, nil)},
			Metrics{Width: 17},
		},
		{
			"single glyph",
			[]Item{px(10, solid(6, 8, 1, 8, 1))},
			Metrics{Width: 10, Height: 8, Baseline: 8},
		},
		{
			"descender",
			// Baseline is 10. The second glyph starts 10-3=7 rows down
			// and is 9 rows tall, so the canvas is 16 rows.
			[]Item{px(10, solid(5, 10, 0, 10, 1)), px(10, solid(5, 9, 0, 3, 1))},
			Metrics{Width: 20, Height: 16, Baseline: 10},
		},
		{
			"top above baseline saturates",
			[]Item{px(4, solid(2, 4, 0, 4, 1)), px(4, solid(2, 2, 0, 9, 1))},
			Metrics{Width: 8, Height: 4, Baseline: 4},
		},
		{
			"negative top",
			[]Item{px(4, solid(2, 3, 0, -2, 1))},
			Metrics{Width: 4, Height: 8, Baseline: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Measure(tt.items); got != tt.want {
				t.Errorf("Measure() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRoundingPolicy(t *testing.T) {
	// Each advance is rounded on its own: 3 * round(2.5) = 9, not round(7.5) = 8.
	items := []Item{px(2.5, nil), px(2.5, nil), px(2.5, nil)}
	if got := Measure(items).Width; got != 9 {
		t.Errorf("Width = %d, want 9", got)
	}

	// 0.4 rounds down per glyph, negative advances clamp to zero.
	items = []Item{px(0.4, nil), px(0.4, nil), px(-3, nil)}
	if got := Measure(items).Width; got != 0 {
		t.Errorf("Width = %d, want 0", got)
	}
}

func TestScale(t *testing.T) {
	s := Scale{UnitsPerEm: 2048, PPEM: 64}
	if got := s.Pixels(1024); got != 32 {
		t.Errorf("Pixels(1024) = %v, want 32", got)
	}
	if got := (Scale{}).Pixels(12.5); got != 12.5 {
		t.Errorf("identity Pixels(12.5) = %v, want 12.5", got)
	}

	tests := []struct {
		size, dpi, want float64
	}{
		{64, 72, 64},
		{12, 96, 16},
		{10, 0, 10},
	}
	for _, tt := range tests {
		if got := PPEM(tt.size, tt.dpi); got != tt.want {
			t.Errorf("PPEM(%v, %v) = %v, want %v", tt.size, tt.dpi, got, tt.want)
		}
	}
}

func TestComposeWhitespaceOnly(t *testing.T) {
	items := []Item{px(9, nil), px(11, &Bitmap{Width: 5, Channels: 1})}
	c, stats := Compose(items)

	if c.Width != 20 || c.Height != 0 {
		t.Fatalf("canvas = %dx%d, want 20x0", c.Width, c.Height)
	}
	if len(c.Pix) != 0 {
		t.Errorf("len(Pix) = %d, want 0", len(c.Pix))
	}
	if stats.Blitted != 0 || stats.Empty != 2 {
		t.Errorf("stats = %+v, want 0 blitted and 2 empty", stats)
	}
}

func TestComposeTwoGlyphScenario(t *testing.T) {
	a := solid(10, 8, 0, 8, 100)
	b := solid(12, 6, 0, 6, 50)
	c, stats := Compose([]Item{px(10, a), px(12, b)})

	if c.Width != 22 || c.Height != 8 || c.Baseline != 8 {
		t.Fatalf("canvas = %dx%d baseline %d, want 22x8 baseline 8", c.Width, c.Height, c.Baseline)
	}
	if stats.Blitted != 2 {
		t.Errorf("Blitted = %d, want 2", stats.Blitted)
	}

	// A covers columns 0..9, rows 0..7.
	for y := range 8 {
		if got := c.At(0, y)[0]; got != 100 {
			t.Errorf("A pixel (0,%d) = %d, want 100", y, got)
		}
	}
	// B starts at (10, 2).
	if got := c.At(10, 1)[0]; got != 0 {
		t.Errorf("pixel (10,1) = %d, want 0 above B", got)
	}
	if got := c.At(10, 2)[0]; got != 50 {
		t.Errorf("pixel (10,2) = %d, want 50 (B origin)", got)
	}
	if got := c.At(21, 7)[0]; got != 50 {
		t.Errorf("pixel (21,7) = %d, want 50 (B corner)", got)
	}
}

func TestComposeVerticalOffset(t *testing.T) {
	tall := solid(1, 10, 0, 10, 1)
	tests := []struct {
		name    string
		top     int
		wantRow int
	}{
		{"on baseline top", 10, 0},
		{"lower", 4, 6},
		{"above baseline clamps to zero", 14, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := solid(1, 3, 0, tt.top, 200)
			c, _ := Compose([]Item{px(1, tall), px(1, g)})

			if got := c.At(1, tt.wantRow)[0]; got != 200 {
				t.Errorf("first row of glyph at %d = %d, want 200", tt.wantRow, got)
			}
			if tt.wantRow > 0 {
				if got := c.At(1, tt.wantRow-1)[0]; got != 0 {
					t.Errorf("row above glyph = %d, want 0", got)
				}
			}
			if bottom := tt.wantRow + g.Height; bottom > c.Height {
				t.Errorf("glyph bottom %d exceeds canvas height %d", bottom, c.Height)
			}
		})
	}
}

func TestComposeSaturates(t *testing.T) {
	a := solid(4, 4, 0, 4, 200)
	b := solid(4, 4, 0, 4, 100)
	// Zero advance on the first glyph makes both overlap completely.
	c, _ := Compose([]Item{px(0, a), px(4, b)})

	for i, v := range c.Pix {
		if v != 255 {
			t.Fatalf("Pix[%d] = %d, want 255", i, v)
		}
	}
}

func TestComposeNegativeBearingBlends(t *testing.T) {
	a := solid(4, 2, 0, 2, 100)
	b := solid(4, 2, -2, 2, 100)
	c, _ := Compose([]Item{px(4, a), px(4, b)})

	// Columns 2 and 3 are covered by both glyphs.
	want := []uint8{100, 100, 200, 200, 100, 100, 0, 0}
	for x, w := range want {
		if got := c.At(x, 0)[0]; got != w {
			t.Errorf("pixel (%d,0) = %d, want %d", x, got, w)
		}
	}
}

func TestComposeClampsOutOfRange(t *testing.T) {
	// Bitmap wider than the advance and with a large negative bearing: the
	// compositor must stay inside the canvas.
	bm := solid(30, 5, -40, 5, 10)
	c, stats := Compose([]Item{px(3, bm)})

	if c.Width != 3 || c.Height != 5 {
		t.Fatalf("canvas = %dx%d, want 3x5", c.Width, c.Height)
	}
	if stats.Blitted != 1 {
		t.Errorf("Blitted = %d, want 1", stats.Blitted)
	}
	if got := c.At(0, 0)[0]; got == 0 {
		t.Error("clamped column 0 received no coverage")
	}
}

func TestComposeMissingBitmapAdvances(t *testing.T) {
	a := solid(5, 5, 0, 5, 80)
	items := []Item{px(5, a), px(7, nil), px(5, a)}
	c, stats := Compose(items)

	if c.Width != 17 {
		t.Fatalf("Width = %d, want 17", c.Width)
	}
	for x := 5; x < 12; x++ {
		if got := c.At(x, 0)[0]; got != 0 {
			t.Errorf("pixel (%d,0) = %d, want 0 in the space", x, got)
		}
	}
	if got := c.At(12, 0)[0]; got != 80 {
		t.Errorf("pixel (12,0) = %d, want 80 (third glyph)", got)
	}
	if stats.Empty != 1 || len(stats.Skipped) != 1 || stats.Skipped[0] != 1 {
		t.Errorf("stats = %+v, want item 1 reported empty", stats)
	}
}

func TestComposeFailedAndMalformed(t *testing.T) {
	bad := &Bitmap{Width: 4, Height: 4, Top: 4, Channels: 1, Data: make([]uint8, 3)}
	items := []Item{
		{Advance: 4, Bitmap: solid(4, 4, 0, 4, 1), Failed: true},
		{Advance: 4, Bitmap: bad},
		{Advance: 4, Bitmap: solid(4, 4, 0, 4, 1)},
	}
	c, stats := Compose(items)

	if stats.Failed != 2 || stats.Blitted != 1 {
		t.Errorf("stats = %+v, want 2 failed and 1 blitted", stats)
	}
	if got := c.At(0, 0)[0]; got != 0 {
		t.Errorf("failed glyph was drawn: %d", got)
	}
	if got := c.At(8, 0)[0]; got != 1 {
		t.Errorf("pixel (8,0) = %d, want 1", got)
	}
}

func TestComposeIdempotent(t *testing.T) {
	items := []Item{
		px(6.6, solid(5, 7, 1, 7, 90)),
		px(3.2, nil),
		px(8.5, solid(7, 9, -1, 4, 170)),
		px(6.6, solid(5, 7, 1, 7, 90)),
	}

	c1, _ := Compose(items, WithChannels(4), WithTint(true))
	c2, _ := Compose(items, WithChannels(4), WithTint(true))

	if !bytes.Equal(c1.Pix, c2.Pix) {
		t.Error("two passes over the same input produced different buffers")
	}
}

func TestComposeTintMask(t *testing.T) {
	items := make([]Item, 8)
	for i := range items {
		items[i] = px(1, solid(1, 1, 0, 1, 60))
	}
	c, _ := Compose(items, WithChannels(4), WithTint(true))

	for i := range items {
		got := c.At(i, 0)
		mask := i % 8
		for ch := range 3 {
			want := uint8(60)
			if mask&(1<<ch) != 0 {
				want = 0
			}
			if got[ch] != want {
				t.Errorf("glyph %d channel %d = %d, want %d", i, ch, got[ch], want)
			}
		}
		if got[3] != 60 {
			t.Errorf("glyph %d alpha = %d, want 60", i, got[3])
		}
	}
}

func TestComposeTintKeepsPreviousValue(t *testing.T) {
	// Glyph 1 (mask 0b001) overlaps glyph 0: red must keep glyph 0's value.
	items := []Item{px(0, solid(1, 1, 0, 1, 40)), px(1, solid(1, 1, 0, 1, 40))}
	c, _ := Compose(items, WithChannels(4), WithTint(true))

	got := c.At(0, 0)
	want := []uint8{40, 80, 80, 80}
	if !bytes.Equal(got, want) {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestComposeChannelConversion(t *testing.T) {
	rgba := &Bitmap{Width: 1, Height: 1, Top: 1, Channels: 4, Data: []uint8{10, 20, 30, 40}}

	gray, _ := Compose([]Item{px(1, rgba)})
	if got := gray.At(0, 0)[0]; got != 40 {
		t.Errorf("gray canvas from RGBA bitmap = %d, want alpha 40", got)
	}

	color, _ := Compose([]Item{px(1, rgba)}, WithChannels(4))
	if got := color.At(0, 0); !bytes.Equal(got, rgba.Data) {
		t.Errorf("RGBA canvas = %v, want %v", got, rgba.Data)
	}

	mono, _ := Compose([]Item{px(1, solid(1, 1, 0, 1, 7))}, WithChannels(4))
	if got := mono.At(0, 0); !bytes.Equal(got, []uint8{7, 7, 7, 7}) {
		t.Errorf("RGBA canvas from coverage = %v, want all 7", got)
	}
}

func TestComposeLogsEmptyGlyphs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Compose([]Item{{GlyphID: 3, Advance: 4}}, WithLogger(l))

	out := buf.String()
	if !strings.Contains(out, "index=0") || !strings.Contains(out, "glyph=3") {
		t.Errorf("log output %q does not identify the empty glyph", out)
	}
}

func TestCanvasAccessors(t *testing.T) {
	c := NewCanvas(3, 2, 4)
	if c.Stride() != 12 || len(c.Pix) != 24 {
		t.Fatalf("stride %d len %d, want 12 and 24", c.Stride(), len(c.Pix))
	}
	if c.Offset(-1, 0) != -1 || c.Offset(3, 0) != -1 || c.Offset(0, 2) != -1 {
		t.Error("Offset outside canvas must be -1")
	}
	if c.At(2, 1) == nil || len(c.At(2, 1)) != 4 {
		t.Error("At(2,1) should return 4 channels")
	}
	if c.Row(2) != nil {
		t.Error("Row(2) should be nil")
	}
	if NewCanvas(-1, 5, 3).Channels != 1 {
		t.Error("invalid channel count should fall back to 1")
	}
}
