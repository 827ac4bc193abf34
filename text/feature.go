package text

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/shaping"
)

// Feature is an OpenType feature setting applied to a whole run.
type Feature struct {
	// Tag is the four-letter feature tag, e.g. "liga" or "dlig".
	Tag string
	// Value is 0 to disable, 1 to enable, or an alternate index.
	Value uint32
}

// String formats the feature as "tag=value".
func (f Feature) String() string {
	return f.Tag + "=" + strconv.FormatUint(uint64(f.Value), 10)
}

// ParseFeature parses a feature setting. Accepted forms:
//
//	dlig      enable
//	+dlig     enable
//	-kern     disable
//	salt=2    set value
func ParseFeature(s string) (Feature, error) {
	s = strings.TrimSpace(s)
	f := Feature{Value: 1}

	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		s = s[1:]
		f.Value = 0
	}

	if tag, val, ok := strings.Cut(s, "="); ok {
		v, err := strconv.ParseUint(strings.TrimSpace(val), 10, 32)
		if err != nil {
			return Feature{}, fmt.Errorf("%w: %q: %w", ErrInvalidFeature, s, err)
		}
		s = strings.TrimSpace(tag)
		f.Value = uint32(v)
	}

	if len(s) != 4 {
		return Feature{}, fmt.Errorf("%w: tag %q must be four bytes", ErrInvalidFeature, s)
	}
	f.Tag = s
	return f, nil
}

// shapingFeatures converts features to go-text settings.
// Callers must have validated the tags with ParseFeature.
func shapingFeatures(fs []Feature) []shaping.FontFeature {
	if len(fs) == 0 {
		return nil
	}
	out := make([]shaping.FontFeature, 0, len(fs))
	for _, f := range fs {
		if len(f.Tag) != 4 {
			continue
		}
		out = append(out, shaping.FontFeature{Tag: opentype.MustNewTag(f.Tag), Value: f.Value})
	}
	return out
}

// featureKey renders features into a cache key component.
func featureKey(fs []Feature) string {
	if len(fs) == 0 {
		return ""
	}
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String()
	}
	return strings.Join(parts, ",")
}
