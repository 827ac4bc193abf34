package text

import "testing"

func TestSubpixelModeProperties(t *testing.T) {
	tests := []struct {
		mode      SubpixelMode
		name      string
		enabled   bool
		divisions int
	}{
		{SubpixelNone, "None", false, 1},
		{Subpixel4, "Subpixel4", true, 4},
		{Subpixel10, "Subpixel10", true, 10},
		{SubpixelMode(99), "Unknown", true, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mode.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.mode.IsEnabled(); got != tt.enabled {
				t.Errorf("IsEnabled() = %v, want %v", got, tt.enabled)
			}
			if got := tt.mode.Divisions(); got != tt.divisions {
				t.Errorf("Divisions() = %d, want %d", got, tt.divisions)
			}
		})
	}
}

func TestParseSubpixelMode(t *testing.T) {
	for _, n := range []int{0, 4, 10} {
		if m, err := ParseSubpixelMode(n); err != nil || int(m) != n {
			t.Errorf("ParseSubpixelMode(%d) = %v, %v", n, m, err)
		}
	}
	for _, n := range []int{-1, 2, 16} {
		if _, err := ParseSubpixelMode(n); err == nil {
			t.Errorf("ParseSubpixelMode(%d) succeeded", n)
		}
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		pos     float64
		mode    SubpixelMode
		wantInt int
		wantSub uint8
	}{
		{0.0, Subpixel4, 0, 0},
		{0.1, Subpixel4, 0, 0},
		{0.25, Subpixel4, 0, 1},
		{0.99, Subpixel4, 0, 3},
		{10.3, Subpixel4, 10, 1},
		{10.8, Subpixel4, 10, 3},
		{-0.25, Subpixel4, -1, 3},
		{-1.0, Subpixel4, -1, 0},
		{-1.25, Subpixel4, -2, 3},
		{0.1, Subpixel10, 0, 1},
		{5.35, Subpixel10, 5, 3},
		{0.99, Subpixel10, 0, 9},
		{0.3, SubpixelNone, 0, 0},
		{0.5, SubpixelNone, 1, 0},
		{10.7, SubpixelNone, 11, 0},
	}

	for _, tt := range tests {
		gotInt, gotSub := Quantize(tt.pos, tt.mode)
		if gotInt != tt.wantInt || gotSub != tt.wantSub {
			t.Errorf("Quantize(%v, %v) = (%d, %d), want (%d, %d)",
				tt.pos, tt.mode, gotInt, gotSub, tt.wantInt, tt.wantSub)
		}
	}
}

func TestSubpixelOffset(t *testing.T) {
	tests := []struct {
		subPos uint8
		mode   SubpixelMode
		want   float64
	}{
		{0, Subpixel4, 0.0},
		{3, Subpixel4, 0.75},
		{5, Subpixel10, 0.5},
		{5, SubpixelNone, 0.0},
	}

	for _, tt := range tests {
		if got := SubpixelOffset(tt.subPos, tt.mode); got != tt.want {
			t.Errorf("SubpixelOffset(%d, %v) = %f, want %f", tt.subPos, tt.mode, got, tt.want)
		}
	}
}
