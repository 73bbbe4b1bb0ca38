package model

// TextFragment is a single positioned run of text sharing one font, size, and
// style, as produced by the extraction layer. Fragments arrive in stream
// order, not reading order; the line merger is responsible for sorting and
// reassembly.
type TextFragment struct {
	Page     int     // 1-based page number
	Text     string  // trimmed text, never empty
	FontName string  // font family name as reported by the document
	FontSize float64 // points, rounded to 2 decimals
	Bold     bool
	Italic   bool
	Rect     Rect // fragment bounds
	LineRect Rect // bounds of the enclosing visual line, used only as a merge hint
}

// MergedLine is one visually continuous line of text assembled from one or
// more fragments. Font properties come from the first constituent fragment;
// Rect is the union of all constituent bounds and therefore contains each of
// them.
type MergedLine struct {
	Page     int
	Text     string
	FontName string
	FontSize float64
	Bold     bool
	Italic   bool
	Rect     Rect
}
