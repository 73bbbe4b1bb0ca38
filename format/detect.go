// Package format sniffs whether an input is a PDF before the pipeline
// commits to a full parse.
package format

import (
	"path/filepath"
	"strings"
)

// Format represents a recognized document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
)

// String returns the string representation of the format.
func (f Format) String() string {
	if f == PDF {
		return "PDF"
	}
	return "Unknown"
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	if f == PDF {
		return ".pdf"
	}
	return ""
}

// Detect determines the format from the filename extension.
func Detect(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return PDF
	}
	return Unknown
}

// DetectFromMagic checks leading magic bytes. More reliable than the
// extension for uploads, where the client controls the filename.
func DetectFromMagic(data []byte) Format {
	// PDF magic: %PDF
	if len(data) >= 4 && data[0] == '%' && data[1] == 'P' && data[2] == 'D' && data[3] == 'F' {
		return PDF
	}
	return Unknown
}
