// Package pdftext extracts positioned text fragments from PDF files,
// producing the input the outline pipeline consumes.
package pdftext

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/rubric/model"
)

// ErrTooManyPages indicates a document over the configured page limit
var ErrTooManyPages = errors.New("pdftext: page count exceeds maximum")

// Config holds configuration for fragment extraction
type Config struct {
	// MaxPages rejects documents with more pages before any extraction
	// work; zero means no limit (default: 0)
	MaxPages int

	// YTolerance is the maximum baseline distance between glyphs of one
	// span (default: 2 points)
	YTolerance float64

	// SpaceRatio scales the font size into the horizontal gap that becomes
	// a space inside a span (default: 0.3)
	SpaceRatio float64

	// SpanBreakRatio scales the font size into the horizontal gap that
	// closes a span (default: 1.5)
	SpanBreakRatio float64

	// Logger receives per-page extraction statistics at debug level
	// (default: no-op)
	Logger *zap.Logger
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		MaxPages:       0,
		YTolerance:     2.0,
		SpaceRatio:     0.3,
		SpanBreakRatio: 1.5,
	}
}

// DocumentText is the extraction result for one document
type DocumentText struct {
	// Name is the base name of the source file, used as the document
	// identifier downstream
	Name string

	// PageCount is the total page count reported by the file
	PageCount int

	// Fragments holds every extracted text span across all pages
	Fragments []model.TextFragment
}

// Extractor pulls positioned text fragments out of PDF files
type Extractor struct {
	config Config
	log    *zap.Logger
}

// NewExtractor creates a new extractor with default configuration
func NewExtractor() *Extractor {
	return NewExtractorWithConfig(DefaultConfig())
}

// NewExtractorWithConfig creates an extractor with custom configuration
func NewExtractorWithConfig(config Config) *Extractor {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{
		config: config,
		log:    log,
	}
}

// Extract opens a PDF file and returns its text fragments. Glyphs are
// assembled into spans per page; coordinates arrive in the top-left-origin
// form the outline pipeline expects.
func (e *Extractor) Extract(path string) (*DocumentText, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	total := r.NumPage()
	if e.config.MaxPages > 0 && total > e.config.MaxPages {
		return nil, fmt.Errorf("%s has %d pages, maximum is %d: %w",
			filepath.Base(path), total, e.config.MaxPages, ErrTooManyPages)
	}

	doc := &DocumentText{
		Name:      filepath.Base(path),
		PageCount: total,
	}
	for pageNum := 1; pageNum <= total; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		glyphs := page.Content().Text
		frags := e.assemble(glyphs, pageNum, pageHeight(page))
		doc.Fragments = append(doc.Fragments, frags...)
		e.log.Debug("page extracted",
			zap.Int("page", pageNum),
			zap.Int("glyphs", len(glyphs)),
			zap.Int("fragments", len(frags)),
		)
	}
	e.log.Debug("document extracted",
		zap.String("name", doc.Name),
		zap.Int("pages", doc.PageCount),
		zap.Int("fragments", len(doc.Fragments)),
	)
	return doc, nil
}

// Extract extracts a document with the given configuration
func Extract(path string, config Config) (*DocumentText, error) {
	return NewExtractorWithConfig(config).Extract(path)
}

// ExtractFragments extracts a document's fragments with default
// configuration
func ExtractFragments(path string) ([]model.TextFragment, error) {
	doc, err := NewExtractor().Extract(path)
	if err != nil {
		return nil, err
	}
	return doc.Fragments, nil
}

// span accumulates consecutive glyphs sharing font, size, and baseline
type span struct {
	page      int
	font      string
	size      float64
	baseline  float64
	buf       strings.Builder
	x0        float64
	x1        float64
	lastRight float64
}

// assemble walks page glyphs in content order and groups them into spans.
// A style change, a baseline shift beyond the tolerance, or a large
// horizontal jump closes the open span; a moderate gap becomes a space
// inside it.
func (e *Extractor) assemble(glyphs []pdf.Text, page int, pageHeight float64) []model.TextFragment {
	var frags []model.TextFragment
	var cur *span
	flush := func() {
		if cur == nil {
			return
		}
		if f, ok := cur.fragment(pageHeight); ok {
			frags = append(frags, f)
		}
		cur = nil
	}

	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		size := math.Round(g.FontSize*100) / 100
		if cur != nil {
			gap := g.X - cur.lastRight
			switch {
			case g.Font != cur.font || size != cur.size:
				flush()
			case math.Abs(g.Y-cur.baseline) > e.config.YTolerance:
				flush()
			case gap >= e.config.SpanBreakRatio*size || gap < -size:
				// far forward jump or a carriage back to the left
				flush()
			case gap >= e.config.SpaceRatio*size:
				cur.buf.WriteString(" ")
			}
		}
		if cur == nil {
			cur = &span{
				page:     page,
				font:     g.Font,
				size:     size,
				baseline: g.Y,
				x0:       g.X,
			}
		}
		cur.buf.WriteString(g.S)
		if right := g.X + g.W; right > cur.x1 {
			cur.x1 = right
		}
		cur.lastRight = g.X + g.W
	}
	flush()
	return frags
}

// fragment finalizes a span: normalized, trimmed text and a rect flipped to
// the top-left origin. ok is false for spans that are empty after trimming.
func (s *span) fragment(pageHeight float64) (model.TextFragment, bool) {
	text := strings.TrimSpace(norm.NFC.String(s.buf.String()))
	if text == "" {
		return model.TextFragment{}, false
	}
	bold, italic := fontStyles(s.font)
	// The baseline sits below the glyph body, so the span occupies roughly
	// one font size of height above it
	rect := model.NewRect(s.x0, pageHeight-s.baseline-s.size, s.x1, pageHeight-s.baseline)
	return model.TextFragment{
		Page:     s.page,
		Text:     text,
		FontName: s.font,
		FontSize: s.size,
		Bold:     bold,
		Italic:   italic,
		Rect:     rect,
		LineRect: rect,
	}, true
}

// fontStyles derives weight and slant from the font name
func fontStyles(fontName string) (bold, italic bool) {
	lower := strings.ToLower(fontName)
	bold = strings.Contains(lower, "bold") ||
		strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy") ||
		strings.Contains(lower, "semibold") ||
		strings.Contains(lower, "demibold")
	italic = strings.Contains(lower, "italic") ||
		strings.Contains(lower, "oblique")
	return bold, italic
}

// pageHeight reads the MediaBox height, defaulting to US Letter when the
// entry is missing or malformed
func pageHeight(page pdf.Page) float64 {
	h := page.V.Key("MediaBox").Index(3).Float64()
	if h <= 0 {
		return 792
	}
	return h
}
