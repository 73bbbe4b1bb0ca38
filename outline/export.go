package outline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/rubric/model"
)

// ExportFormat defines the available outline export formats
type ExportFormat int

const (
	// ExportFormatJSON exports as a JSON array of heading objects
	ExportFormatJSON ExportFormat = iota
	// ExportFormatMarkdown exports as Markdown headings
	ExportFormatMarkdown
	// ExportFormatHTML exports as an HTML nav element
	ExportFormatHTML
)

// String returns a human-readable representation of the export format
func (ef ExportFormat) String() string {
	switch ef {
	case ExportFormatJSON:
		return "json"
	case ExportFormatMarkdown:
		return "markdown"
	case ExportFormatHTML:
		return "html"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (ef ExportFormat) FileExtension() string {
	switch ef {
	case ExportFormatJSON:
		return ".json"
	case ExportFormatMarkdown:
		return ".md"
	case ExportFormatHTML:
		return ".html"
	default:
		return ".txt"
	}
}

// ParseExportFormat converts a format name such as "markdown" into an
// ExportFormat
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return ExportFormatJSON, nil
	case "markdown", "md":
		return ExportFormatMarkdown, nil
	case "html":
		return ExportFormatHTML, nil
	default:
		return ExportFormatJSON, fmt.Errorf("unknown export format %q", s)
	}
}

// ExportConfig holds configuration options for outline export
type ExportConfig struct {
	// Format specifies the export format
	Format ExportFormat

	// Indent is the indentation unit for JSON output (default: four spaces)
	Indent string

	// IncludePages adds page references to Markdown entries and data-page
	// attributes to HTML entries (default: true)
	IncludePages bool

	// Title heads the Markdown and HTML output when non-empty
	Title string
}

// DefaultExportConfig returns sensible defaults for export configuration
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Format:       ExportFormatJSON,
		Indent:       "    ",
		IncludePages: true,
	}
}

// MarkdownExportConfig returns config for Markdown export
func MarkdownExportConfig() ExportConfig {
	config := DefaultExportConfig()
	config.Format = ExportFormatMarkdown
	return config
}

// HTMLExportConfig returns config for HTML export
func HTMLExportConfig() ExportConfig {
	config := DefaultExportConfig()
	config.Format = ExportFormatHTML
	return config
}

// Exporter writes outlines in the configured format
type Exporter struct {
	config ExportConfig
}

// NewExporter creates a new exporter with default configuration
func NewExporter() *Exporter {
	return &Exporter{
		config: DefaultExportConfig(),
	}
}

// NewExporterWithConfig creates an exporter with custom configuration
func NewExporterWithConfig(config ExportConfig) *Exporter {
	if config.Indent == "" {
		config.Indent = "    "
	}
	return &Exporter{
		config: config,
	}
}

// Export writes the outline to the specified writer
func (e *Exporter) Export(outline model.Outline, w io.Writer) error {
	switch e.config.Format {
	case ExportFormatJSON:
		return e.exportJSON(outline, w)
	case ExportFormatMarkdown:
		return e.exportMarkdown(outline, w)
	case ExportFormatHTML:
		return e.exportHTML(outline, w)
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// ExportToFile writes the outline to a file
func (e *Exporter) ExportToFile(outline model.Outline, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	return e.Export(outline, f)
}

// ExportToString writes the outline to a string
func (e *Exporter) ExportToString(outline model.Outline) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(outline, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// exportJSON writes the outline as a JSON array. An empty outline encodes
// as [], never null.
func (e *Exporter) exportJSON(outline model.Outline, w io.Writer) error {
	if outline == nil {
		outline = model.Outline{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", e.config.Indent)
	if err := encoder.Encode(outline); err != nil {
		return fmt.Errorf("encoding outline: %w", err)
	}
	return nil
}

// exportMarkdown writes one Markdown heading per outline entry, the heading
// marker depth matching the entry's level
func (e *Exporter) exportMarkdown(outline model.Outline, w io.Writer) error {
	if e.config.Title != "" {
		if _, err := fmt.Fprintf(w, "# %s\n\n", e.config.Title); err != nil {
			return err
		}
	}
	for _, h := range outline {
		marker := strings.Repeat("#", int(h.Level))
		var err error
		if e.config.IncludePages {
			_, err = fmt.Fprintf(w, "%s %s (p. %d)\n\n", marker, h.Text, h.Page)
		} else {
			_, err = fmt.Fprintf(w, "%s %s\n\n", marker, h.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// exportHTML renders the outline as a nav element holding an ordered list,
// one item per heading with its level as a class
func (e *Exporter) exportHTML(outline model.Outline, w io.Writer) error {
	nav := &html.Node{
		Type:     html.ElementNode,
		Data:     "nav",
		DataAtom: atom.Nav,
		Attr:     []html.Attribute{{Key: "class", Val: "outline"}},
	}
	if e.config.Title != "" {
		h1 := &html.Node{Type: html.ElementNode, Data: "h1", DataAtom: atom.H1}
		h1.AppendChild(&html.Node{Type: html.TextNode, Data: e.config.Title})
		nav.AppendChild(h1)
	}
	list := &html.Node{Type: html.ElementNode, Data: "ol", DataAtom: atom.Ol}
	nav.AppendChild(list)
	for _, h := range outline {
		attrs := []html.Attribute{
			{Key: "class", Val: "level-" + strings.ToLower(h.Level.String())},
		}
		if e.config.IncludePages {
			attrs = append(attrs, html.Attribute{Key: "data-page", Val: strconv.Itoa(h.Page)})
		}
		li := &html.Node{Type: html.ElementNode, Data: "li", DataAtom: atom.Li, Attr: attrs}
		li.AppendChild(&html.Node{Type: html.TextNode, Data: h.Text})
		list.AppendChild(li)
	}

	if err := html.Render(w, nav); err != nil {
		return fmt.Errorf("rendering outline: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return nil
}
