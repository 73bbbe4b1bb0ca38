package pdftext

import (
	"testing"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// glyph creates a test glyph in bottom-origin page coordinates
func glyph(s string, x, y, w, size float64) pdf.Text {
	return pdf.Text{Font: "Helvetica", FontSize: size, X: x, Y: y, W: w, S: s}
}

func TestAssemble_WordSpacing(t *testing.T) {
	e := NewExtractor()
	// Gap of 4 points at 12-point type clears the 0.3 ratio: a space.
	// Zero gap joins without one.
	glyphs := []pdf.Text{
		glyph("Hel", 72, 700, 18, 12),
		glyph("lo", 90, 700, 12, 12),
		glyph("World", 106, 700, 30, 12),
	}

	frags := e.assemble(glyphs, 1, 792)

	if len(frags) != 1 {
		t.Fatalf("Got %d fragments, want 1", len(frags))
	}
	if frags[0].Text != "Hello World" {
		t.Errorf("Text = %q, want 'Hello World'", frags[0].Text)
	}
	if frags[0].Page != 1 {
		t.Errorf("Page = %d, want 1", frags[0].Page)
	}
}

func TestAssemble_SpanBreak(t *testing.T) {
	e := NewExtractor()
	// An 18-point gap at 12-point type reaches the 1.5 break ratio
	glyphs := []pdf.Text{
		glyph("left", 72, 700, 20, 12),
		glyph("right", 110, 700, 25, 12),
	}

	frags := e.assemble(glyphs, 1, 792)

	if len(frags) != 2 {
		t.Fatalf("Got %d fragments, want 2", len(frags))
	}
	if frags[0].Text != "left" || frags[1].Text != "right" {
		t.Errorf("Got %q / %q", frags[0].Text, frags[1].Text)
	}
}

func TestAssemble_BackwardJumpBreaks(t *testing.T) {
	e := NewExtractor()
	glyphs := []pdf.Text{
		glyph("right column", 300, 700, 70, 12),
		glyph("left column", 72, 700, 65, 12),
	}

	frags := e.assemble(glyphs, 1, 792)

	if len(frags) != 2 {
		t.Fatalf("Got %d fragments, want 2", len(frags))
	}
}

func TestAssemble_StyleChangeBreaks(t *testing.T) {
	e := NewExtractor()

	// Size change
	frags := e.assemble([]pdf.Text{
		glyph("Big", 72, 700, 25, 16),
		glyph("small", 97, 700, 28, 12),
	}, 1, 792)
	if len(frags) != 2 {
		t.Fatalf("Size change: got %d fragments, want 2", len(frags))
	}
	if frags[0].FontSize != 16 || frags[1].FontSize != 12 {
		t.Errorf("Sizes = %v / %v", frags[0].FontSize, frags[1].FontSize)
	}

	// Font change
	boldRun := glyph("Bold", 72, 680, 28, 12)
	boldRun.Font = "Helvetica-Bold"
	frags = e.assemble([]pdf.Text{boldRun, glyph("plain", 100, 680, 30, 12)}, 1, 792)
	if len(frags) != 2 {
		t.Fatalf("Font change: got %d fragments, want 2", len(frags))
	}
	if !frags[0].Bold || frags[1].Bold {
		t.Errorf("Bold flags = %v / %v", frags[0].Bold, frags[1].Bold)
	}
}

func TestAssemble_BaselineBreaks(t *testing.T) {
	e := NewExtractor()

	// Ten points apart: separate lines
	frags := e.assemble([]pdf.Text{
		glyph("upper", 72, 700, 30, 12),
		glyph("lower", 72, 690, 30, 12),
	}, 1, 792)
	if len(frags) != 2 {
		t.Fatalf("Got %d fragments, want 2", len(frags))
	}

	// Within the 2-point tolerance: one span
	frags = e.assemble([]pdf.Text{
		glyph("slightly", 72, 700, 45, 12),
		glyph("wobbly", 121, 701.5, 40, 12),
	}, 1, 792)
	if len(frags) != 1 {
		t.Fatalf("Got %d fragments, want 1", len(frags))
	}
}

func TestAssemble_FlipsToTopOrigin(t *testing.T) {
	e := NewExtractor()
	// Baseline 700 near the top of a 792-point page; 600 sits below it
	glyphs := []pdf.Text{
		glyph("heading", 72, 700, 50, 12),
		glyph("body", 72, 600, 28, 12),
	}

	frags := e.assemble(glyphs, 1, 792)

	if len(frags) != 2 {
		t.Fatalf("Got %d fragments, want 2", len(frags))
	}
	h := frags[0].Rect
	if h.Y0 != 80 || h.Y1 != 92 {
		t.Errorf("Heading rect Y = (%v, %v), want (80, 92)", h.Y0, h.Y1)
	}
	if frags[0].Rect.Y0 >= frags[1].Rect.Y0 {
		t.Error("Higher text on the page must get the smaller Y0")
	}
	if h.X0 != 72 || h.X1 != 122 {
		t.Errorf("Heading rect X = (%v, %v), want (72, 122)", h.X0, h.X1)
	}
}

func TestAssemble_SizeRounding(t *testing.T) {
	e := NewExtractor()
	// Float noise in reported sizes must not split the span
	a := glyph("to", 72, 700, 12, 12)
	a.FontSize = 11.999999
	b := glyph("gether", 84, 700, 35, 12)

	frags := e.assemble([]pdf.Text{a, b}, 1, 792)

	if len(frags) != 1 {
		t.Fatalf("Got %d fragments, want 1", len(frags))
	}
	if frags[0].FontSize != 12 {
		t.Errorf("FontSize = %v, want 12", frags[0].FontSize)
	}
}

func TestAssemble_NormalizesToNFC(t *testing.T) {
	e := NewExtractor()
	// Combining acute accent folds into the precomposed form
	frags := e.assemble([]pdf.Text{glyph("caf", 72, 700, 20, 12), glyph("é", 92, 700, 7, 12)}, 1, 792)

	if len(frags) != 1 {
		t.Fatalf("Got %d fragments, want 1", len(frags))
	}
	if frags[0].Text != "café" {
		t.Errorf("Text = %q, want %q", frags[0].Text, "café")
	}
	if utf8.RuneCountInString(frags[0].Text) != 4 {
		t.Errorf("Rune count = %d, want 4", utf8.RuneCountInString(frags[0].Text))
	}
}

func TestAssemble_DropsBlankSpans(t *testing.T) {
	e := NewExtractor()
	frags := e.assemble([]pdf.Text{
		glyph("", 72, 700, 0, 12),
		glyph("   ", 80, 700, 9, 12),
		glyph("kept", 120, 700, 25, 12),
	}, 1, 792)

	if len(frags) != 1 {
		t.Fatalf("Got %d fragments, want 1", len(frags))
	}
	if frags[0].Text != "kept" {
		t.Errorf("Text = %q, want 'kept'", frags[0].Text)
	}
}

func TestFontStyles(t *testing.T) {
	tests := []struct {
		font       string
		wantBold   bool
		wantItalic bool
	}{
		{"Helvetica", false, false},
		{"Times-Roman", false, false},
		{"Helvetica-Bold", true, false},
		{"Arial-Black", true, false},
		{"SourceSans-Heavy", true, false},
		{"Georgia-SemiBold", true, false},
		{"Futura-DemiBold", true, false},
		{"Times-Italic", false, true},
		{"Courier-Oblique", false, true},
		{"Helvetica-BoldOblique", true, true},
		{"ABCDEF+TimesNewRomanPS-BoldMT", true, false},
	}

	for _, tt := range tests {
		bold, italic := fontStyles(tt.font)
		if bold != tt.wantBold || italic != tt.wantItalic {
			t.Errorf("fontStyles(%q) = (%v, %v), want (%v, %v)",
				tt.font, bold, italic, tt.wantBold, tt.wantItalic)
		}
	}
}

func TestPageHeight_Fallback(t *testing.T) {
	if h := pageHeight(pdf.Page{}); h != 792 {
		t.Errorf("pageHeight(empty page) = %v, want 792", h)
	}
}

func TestExtract_MissingFile(t *testing.T) {
	if _, err := NewExtractor().Extract("testdata/absent.pdf"); err == nil {
		t.Error("Expected error for missing file")
	}
}
