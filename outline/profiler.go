package outline

import (
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/tsawler/rubric/model"
)

// ErrNoBodySize indicates that no font size above the noise floor appears in
// the document, so no body size or heading ladder can be derived
var ErrNoBodySize = errors.New("outline: no font size above noise floor")

// FontProfile describes a document's font-size usage: the dominant body text
// size and the ladder of larger sizes mapped to heading levels
type FontProfile struct {
	// BodySize is the most frequent font size above the noise floor
	BodySize float64

	// Levels maps candidate heading sizes to levels, largest size to H1
	Levels model.SizeLevelMap
}

// ProfilerConfig holds configuration for font profiling
type ProfilerConfig struct {
	// NoiseFloor excludes tiny sizes from statistics; sizes at or below it
	// are ignored (default: 5 points). Catches superscripts and page
	// furniture.
	NoiseFloor float64

	// CandidateRatio scales the body size into the minimum size a heading
	// candidate must exceed (default: 1.05)
	CandidateRatio float64

	// MaxHeadingSize excludes decorative display sizes from the ladder
	// (default: 40 points)
	MaxHeadingSize float64

	// MaxLevels caps how many distinct sizes receive levels, clamped to the
	// five heading levels (default: 5)
	MaxLevels int

	// Logger receives the computed profile at debug level (default: no-op)
	Logger *zap.Logger
}

// DefaultProfilerConfig returns sensible default configuration
func DefaultProfilerConfig() ProfilerConfig {
	return ProfilerConfig{
		NoiseFloor:     5.0,
		CandidateRatio: 1.05,
		MaxHeadingSize: 40.0,
		MaxLevels:      5,
	}
}

// Profiler derives a FontProfile from merged lines
type Profiler struct {
	config ProfilerConfig
	log    *zap.Logger
}

// NewProfiler creates a new profiler with default configuration
func NewProfiler() *Profiler {
	return NewProfilerWithConfig(DefaultProfilerConfig())
}

// NewProfilerWithConfig creates a profiler with custom configuration
func NewProfilerWithConfig(config ProfilerConfig) *Profiler {
	if config.MaxLevels <= 0 || config.MaxLevels > 5 {
		config.MaxLevels = 5
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Profiler{
		config: config,
		log:    log,
	}
}

// Profile counts line font sizes above the noise floor, picks the most
// frequent as the body size (first-encountered wins a tie), and assigns
// heading levels to the sizes above BodySize*CandidateRatio and at most
// MaxHeadingSize, in descending size order. Returns ErrNoBodySize when no
// size clears the floor.
func (p *Profiler) Profile(lines []model.MergedLine) (FontProfile, error) {
	counts := make(map[float64]int)
	var seen []float64
	for _, line := range lines {
		if line.FontSize <= p.config.NoiseFloor {
			continue
		}
		if counts[line.FontSize] == 0 {
			seen = append(seen, line.FontSize)
		}
		counts[line.FontSize]++
	}
	if len(seen) == 0 {
		return FontProfile{}, ErrNoBodySize
	}

	// seen preserves first-appearance order, so a strict comparison keeps
	// the earliest size on equal counts
	body := seen[0]
	for _, size := range seen[1:] {
		if counts[size] > counts[body] {
			body = size
		}
	}

	threshold := body * p.config.CandidateRatio
	var candidates []float64
	for _, size := range seen {
		if size > threshold && size <= p.config.MaxHeadingSize {
			candidates = append(candidates, size)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(candidates)))
	if len(candidates) > p.config.MaxLevels {
		candidates = candidates[:p.config.MaxLevels]
	}

	levels := make(model.SizeLevelMap, len(candidates))
	for i, size := range candidates {
		levels[size] = model.HeadingLevel(i + 1)
	}

	p.log.Debug("font profile computed",
		zap.Float64("body_size", body),
		zap.Int("distinct_sizes", len(seen)),
		zap.Int("heading_sizes", len(levels)),
	)
	return FontProfile{BodySize: body, Levels: levels}, nil
}
