package outline

import (
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/rubric/model"
)

// MergerConfig holds configuration for fragment merging
type MergerConfig struct {
	// YTolerance is the maximum vertical distance between a fragment's top
	// edge and the open line's top edge for the two to share a line
	// (default: 3 points)
	YTolerance float64

	// XTolerance is the maximum horizontal gap between the open line's right
	// edge and a fragment's left edge (default: 5 points). Negative gaps,
	// meaning slight overlap, always qualify.
	XTolerance float64

	// Logger receives merge statistics at debug level (default: no-op)
	Logger *zap.Logger
}

// DefaultMergerConfig returns sensible default configuration
func DefaultMergerConfig() MergerConfig {
	return MergerConfig{
		YTolerance: 3.0,
		XTolerance: 5.0,
	}
}

// Merger reassembles raw positioned text fragments into logical lines in
// reading order
type Merger struct {
	config MergerConfig
	log    *zap.Logger
}

// NewMerger creates a new merger with default configuration
func NewMerger() *Merger {
	return NewMergerWithConfig(DefaultMergerConfig())
}

// NewMergerWithConfig creates a merger with custom configuration
func NewMergerWithConfig(config MergerConfig) *Merger {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Merger{
		config: config,
		log:    log,
	}
}

// Merge sorts fragments into reading order (page, then top edge, then left
// edge) and walks them, extending an open line while consecutive fragments
// share the page, sit within the vertical tolerance, leave at most a small
// horizontal gap, and use the same font size, weight, and family. Fragment
// texts are joined with single spaces; bounding boxes are unioned. Fragments
// that are empty after trimming are skipped. Empty input yields nil.
func (m *Merger) Merge(fragments []model.TextFragment) []model.MergedLine {
	kept := make([]model.TextFragment, 0, len(fragments))
	for _, f := range fragments {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return nil
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Rect.Y0 != b.Rect.Y0 {
			return a.Rect.Y0 < b.Rect.Y0
		}
		return a.Rect.X0 < b.Rect.X0
	})

	lines := make([]model.MergedLine, 0, len(kept))
	open := lineFromFragment(kept[0])
	for _, frag := range kept[1:] {
		if m.extends(open, frag) {
			open.Text += " " + frag.Text
			open.Rect = open.Rect.Union(frag.Rect)
			continue
		}
		lines = append(lines, open)
		open = lineFromFragment(frag)
	}
	lines = append(lines, open)

	m.log.Debug("merged fragments into lines",
		zap.Int("fragments", len(kept)),
		zap.Int("lines", len(lines)),
	)
	return lines
}

// extends reports whether frag continues the open line. The vertical check
// compares against the line's current top edge, which after unions is the
// minimum top edge of everything merged so far.
func (m *Merger) extends(line model.MergedLine, frag model.TextFragment) bool {
	return frag.Page == line.Page &&
		math.Abs(frag.Rect.Y0-line.Rect.Y0) < m.config.YTolerance &&
		frag.Rect.X0-line.Rect.X1 < m.config.XTolerance &&
		frag.FontSize == line.FontSize &&
		frag.Bold == line.Bold &&
		frag.FontName == line.FontName
}

// lineFromFragment opens a new line seeded with a fragment's text and font
// properties
func lineFromFragment(f model.TextFragment) model.MergedLine {
	return model.MergedLine{
		Page:     f.Page,
		Text:     f.Text,
		FontName: f.FontName,
		FontSize: f.FontSize,
		Bold:     f.Bold,
		Italic:   f.Italic,
		Rect:     f.Rect,
	}
}
