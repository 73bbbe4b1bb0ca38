package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// HeadingLevel represents the hierarchical level of a heading (H1-H5).
type HeadingLevel int

const (
	LevelUnknown HeadingLevel = iota
	H1                        // main title / chapter
	H2                        // major section
	H3                        // subsection
	H4                        // sub-subsection
	H5                        // minor heading
)

// String returns the canonical string form of the heading level.
func (l HeadingLevel) String() string {
	switch l {
	case H1:
		return "H1"
	case H2:
		return "H2"
	case H3:
		return "H3"
	case H4:
		return "H4"
	case H5:
		return "H5"
	default:
		return "unknown"
	}
}

// IsValid returns true for levels H1 through H5.
func (l HeadingLevel) IsValid() bool {
	return l >= H1 && l <= H5
}

// Deeper returns true if l sits lower in the hierarchy than other
// (H3 is deeper than H1).
func (l HeadingLevel) Deeper(other HeadingLevel) bool {
	return l > other
}

// ParseHeadingLevel converts a string such as "H2" (case-insensitive) into a
// HeadingLevel.
func ParseHeadingLevel(s string) (HeadingLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "H1":
		return H1, nil
	case "H2":
		return H2, nil
	case "H3":
		return H3, nil
	case "H4":
		return H4, nil
	case "H5":
		return H5, nil
	default:
		return LevelUnknown, fmt.Errorf("unknown heading level %q", s)
	}
}

// MarshalJSON encodes the level as its string form ("H1".."H5").
func (l HeadingLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a string form heading level.
func (l *HeadingLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseHeadingLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Heading is one entry of a document outline. Headings have no identity
// beyond their three fields; equality is structural.
type Heading struct {
	Level HeadingLevel `json:"level"`
	Text  string       `json:"text"`
	Page  int          `json:"page"`
}

// Outline is the ordered sequence of headings accepted for a document.
// Order is document order: page ascending, then line order within a page.
type Outline []Heading

// Levels returns the distinct levels present in the outline, in first-seen
// order.
func (o Outline) Levels() []HeadingLevel {
	seen := make(map[HeadingLevel]bool)
	var levels []HeadingLevel
	for _, h := range o {
		if !seen[h.Level] {
			seen[h.Level] = true
			levels = append(levels, h.Level)
		}
	}
	return levels
}

// PageRange returns the first and last page carrying a heading, or (0, 0)
// for an empty outline.
func (o Outline) PageRange() (first, last int) {
	if len(o) == 0 {
		return 0, 0
	}
	first, last = o[0].Page, o[0].Page
	for _, h := range o[1:] {
		if h.Page < first {
			first = h.Page
		}
		if h.Page > last {
			last = h.Page
		}
	}
	return first, last
}

// SizeLevelMap maps a font size to the heading level assigned to it by the
// font profiler. Sizes are rounded to 2 decimals upstream, so exact float
// keys are safe. The mapping is strictly monotonic: a larger size never maps
// to a deeper level than a smaller one.
type SizeLevelMap map[float64]HeadingLevel

// LevelFor looks up the level assigned to a font size.
func (m SizeLevelMap) LevelFor(size float64) (HeadingLevel, bool) {
	l, ok := m[size]
	return l, ok
}
