package rubric

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tsawler/rubric/model"
	"github.com/tsawler/rubric/outline"
	"github.com/tsawler/rubric/pdftext"
)

// Extractor provides a fluent interface for extracting a document outline.
// Each configuration method returns a new Extractor instance, making chains
// safe to share and reuse.
type Extractor struct {
	// Source: either a file to open or fragments supplied up front
	filename      string
	fragments     []model.TextFragment
	name          string
	fromFragments bool

	// Configuration
	options extractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Extractor so chain methods never mutate their
// receiver.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:      e.filename,
		fragments:     e.fragments,
		name:          e.name,
		fromFragments: e.fromFragments,
		options:       e.options.clone(),
		err:           e.err,
	}
}

// WithRules sets the filter rules: per-document overrides and the cover-page
// boilerplate denylist.
func (e *Extractor) WithRules(rules *outline.Rules) *Extractor {
	ne := e.clone()
	ne.options.rules = rules
	return ne
}

// WithRulesFile loads filter rules from a YAML file. A load failure is held
// until the next terminal operation.
func (e *Extractor) WithRulesFile(path string) *Extractor {
	ne := e.clone()
	rules, err := outline.LoadRules(path)
	if err != nil {
		ne.err = err
		return ne
	}
	ne.options.rules = rules
	return ne
}

// WithLogger routes pipeline logging through the given logger. Components
// log decisions at debug level; the pipeline warns on degraded documents.
func (e *Extractor) WithLogger(logger *zap.Logger) *Extractor {
	ne := e.clone()
	ne.options.logger = logger
	return ne
}

// WithMaxPages rejects documents with more pages than n before extraction.
// Zero restores the default of no limit.
func (e *Extractor) WithMaxPages(n int) *Extractor {
	ne := e.clone()
	ne.options.maxPages = n
	return ne
}

// WithName overrides the document identifier used for override lookup and
// logging. The default is the base name of the opened file, so a caller
// working from a temp copy can keep the original name in effect.
func (e *Extractor) WithName(name string) *Extractor {
	ne := e.clone()
	ne.name = name
	return ne
}

// logger returns the configured logger, or a no-op one.
func (e *Extractor) logger() *zap.Logger {
	if e.options.logger != nil {
		return e.options.logger
	}
	return zap.NewNop()
}

// docID returns the identifier for override lookup and logging.
func (e *Extractor) docID() string {
	if e.name != "" {
		return e.name
	}
	if e.filename != "" {
		return filepath.Base(e.filename)
	}
	return ""
}

// Fragments returns the document's positioned text fragments, extracting
// the file when the Extractor was opened from a path.
func (e *Extractor) Fragments() ([]model.TextFragment, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.fromFragments {
		return e.fragments, nil
	}
	if e.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}

	config := pdftext.DefaultConfig()
	config.MaxPages = e.options.maxPages
	config.Logger = e.logger()
	doc, err := pdftext.Extract(e.filename, config)
	if err != nil {
		return nil, err
	}
	return doc.Fragments, nil
}

// Lines merges the document's fragments into reading-order lines.
func (e *Extractor) Lines() ([]model.MergedLine, error) {
	fragments, err := e.Fragments()
	if err != nil {
		return nil, err
	}
	config := outline.DefaultMergerConfig()
	config.Logger = e.logger()
	return outline.NewMergerWithConfig(config).Merge(fragments), nil
}

// Outline runs the full pipeline and returns the document's heading
// outline. A document with no usable font sizes yields an empty outline and
// a warning log rather than an error; an empty outline is a valid result.
func (e *Extractor) Outline() (model.Outline, error) {
	lines, err := e.Lines()
	if err != nil {
		return nil, err
	}
	log := e.logger()

	profilerConfig := outline.DefaultProfilerConfig()
	profilerConfig.Logger = log
	profile, err := outline.NewProfilerWithConfig(profilerConfig).Profile(lines)
	if err != nil {
		if errors.Is(err, outline.ErrNoBodySize) {
			log.Warn("no font size above noise floor; returning empty outline",
				zap.String("document", e.docID()),
			)
			return model.Outline{}, nil
		}
		return nil, err
	}

	classifierConfig := outline.DefaultClassifierConfig()
	classifierConfig.Logger = log
	candidates := outline.NewClassifierWithConfig(classifierConfig).Classify(lines, profile)

	filterConfig := outline.DefaultFilterConfig()
	filterConfig.Rules = e.options.rules
	filterConfig.Logger = log
	return outline.NewFilterWithConfig(filterConfig).Apply(candidates, e.docID()), nil
}

// WriteJSON writes the outline to w as a JSON array, 4-space indented. An
// empty outline writes [].
func (e *Extractor) WriteJSON(w io.Writer) error {
	ol, err := e.Outline()
	if err != nil {
		return err
	}
	return outline.NewExporter().Export(ol, w)
}

// SaveJSON writes the outline to a JSON file.
func (e *Extractor) SaveJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return e.WriteJSON(f)
}

// Export writes the outline to w in the given format.
func (e *Extractor) Export(w io.Writer, format outline.ExportFormat) error {
	ol, err := e.Outline()
	if err != nil {
		return err
	}
	config := outline.DefaultExportConfig()
	config.Format = format
	return outline.NewExporterWithConfig(config).Export(ol, w)
}
