package analyzer

import (
	"fmt"
	"strings"
)

// Mode names a density normalization formula.
type Mode string

// Supported density modes.
const (
	ModeCount    Mode = "count"    // raw record count
	ModeShare    Mode = "share"    // count / total
	ModeRelative Mode = "relative" // count / peak * 100
	ModeSpan     Mode = "span"     // count / expected region span
	ModeScript   Mode = "script"   // Lua density(region, count, total, peak)
)

const (
	percentScale      = 100
	defaultRegionSpan = 1.0
)

// ParseMode validates a mode name. The empty string selects ModeCount.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeCount, nil
	case ModeCount, ModeShare, ModeRelative, ModeSpan, ModeScript:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownNormalizer, s)
	}
}

// Normalizer turns a region's raw count into a density score.
// total is the input size and peak the largest region count.
type Normalizer interface {
	Normalize(region string, count, total, peak int) (float64, error)
}

// Session is implemented by normalizers that keep interpreter or other state.
// The analyzer calls Begin once per analysis and uses the returned Normalizer
// for every region of that analysis only.
type Session interface {
	Begin() (Normalizer, error)
}

// CountNormalizer reports the raw count.
type CountNormalizer struct{}

func (CountNormalizer) Normalize(_ string, count, _, _ int) (float64, error) {
	return float64(count), nil
}

// ShareNormalizer reports the fraction of all records in the region.
type ShareNormalizer struct{}

func (ShareNormalizer) Normalize(_ string, count, total, _ int) (float64, error) {
	if total <= 0 {
		return 0, nil
	}
	return float64(count) / float64(total), nil
}

// RelativeNormalizer scales counts to a percentage of the busiest region.
type RelativeNormalizer struct{}

func (RelativeNormalizer) Normalize(_ string, count, _, peak int) (float64, error) {
	if peak <= 0 {
		return 0, nil
	}
	return float64(count) / float64(peak) * percentScale, nil
}

// SpanNormalizer divides counts by each region's expected span
// (years covered, area, or any other weight the caller chooses).
type SpanNormalizer struct {
	spans       map[string]float64
	defaultSpan float64
}

// NewSpanNormalizer copies spans; non-positive entries fall back to defaultSpan,
// and a non-positive defaultSpan falls back to 1.
func NewSpanNormalizer(spans map[string]float64, defaultSpan float64) *SpanNormalizer {
	n := &SpanNormalizer{
		spans:       make(map[string]float64, len(spans)),
		defaultSpan: defaultRegionSpan,
	}
	if defaultSpan > 0 {
		n.defaultSpan = defaultSpan
	}
	for region, span := range spans {
		if span > 0 {
			n.spans[strings.TrimSpace(region)] = span
		}
	}
	return n
}

func (n *SpanNormalizer) Normalize(region string, count, _, _ int) (float64, error) {
	span, ok := n.spans[region]
	if !ok {
		span = n.defaultSpan
	}
	return float64(count) / span, nil
}

// NormalizerConfig carries the settings needed to build any Normalizer.
type NormalizerConfig struct {
	Mode        Mode
	Spans       map[string]float64
	DefaultSpan float64
	Script      string
}

// NewNormalizer builds the Normalizer selected by cfg.Mode.
func NewNormalizer(cfg NormalizerConfig) (Normalizer, error) {
	mode, err := ParseMode(string(cfg.Mode))
	if err != nil {
		return nil, err
	}
	switch mode {
	case ModeShare:
		return ShareNormalizer{}, nil
	case ModeRelative:
		return RelativeNormalizer{}, nil
	case ModeSpan:
		return NewSpanNormalizer(cfg.Spans, cfg.DefaultSpan), nil
	case ModeScript:
		return NewScriptNormalizer(cfg.Script)
	default:
		return CountNormalizer{}, nil
	}
}
