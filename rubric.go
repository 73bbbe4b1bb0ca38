// Package rubric extracts a heading outline from PDF documents: the ordered
// sequence of (level, text, page) entries that reconstructs the document's
// section hierarchy from its typography and numbering.
//
// Basic usage:
//
//	outline, err := rubric.Open("report.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	for _, h := range outline {
//	    fmt.Println(h.Level, h.Text, h.Page)
//	}
//
// With options:
//
//	outline, err := rubric.Open("report.pdf").
//	    WithRulesFile("rules.yaml").
//	    WithMaxPages(50).
//	    Outline()
//
// For pre-extracted input, or to drive the pipeline stages individually, the
// lower-level pdftext and outline packages are also available.
package rubric

import (
	"github.com/tsawler/rubric/model"
)

// Open prepares an Extractor for a PDF file. No file access happens until a
// terminal operation such as Outline or Fragments runs.
//
// Example:
//
//	outline, err := rubric.Open("report.pdf").Outline()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromFragments prepares an Extractor over already-extracted fragments. The
// name identifies the document to the filter's override rules and in logs.
//
// Example:
//
//	outline, err := rubric.FromFragments(frags, "report.pdf").Outline()
func FromFragments(fragments []model.TextFragment, name string) *Extractor {
	return &Extractor{
		fragments:     fragments,
		name:          name,
		fromFragments: true,
		options:       defaultOptions(),
	}
}

// Must wraps a call returning (T, error) and panics on a non-nil error. It
// is intended for scripts and tests where error handling would be
// cumbersome.
//
// Example:
//
//	outline := rubric.Must(rubric.Open("report.pdf").Outline())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
