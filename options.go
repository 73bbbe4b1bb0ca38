package rubric

import (
	"go.uber.org/zap"

	"github.com/tsawler/rubric/outline"
)

// extractOptions holds the configuration an Extractor chain accumulates.
type extractOptions struct {
	// rules supplies the filter's override table and boilerplate denylist
	rules *outline.Rules

	// logger feeds every pipeline component; nil means no-op
	logger *zap.Logger

	// maxPages rejects documents with more pages; 0 means no limit
	maxPages int
}

// defaultOptions returns the default extraction options.
func defaultOptions() extractOptions {
	return extractOptions{
		rules:    nil, // no overrides, no denylist
		logger:   nil, // no-op logging
		maxPages: 0,   // no page limit
	}
}

// clone creates a copy of extractOptions. Rules and logger are shared by
// pointer; both are read-only to the pipeline.
func (o extractOptions) clone() extractOptions {
	return extractOptions{
		rules:    o.rules,
		logger:   o.logger,
		maxPages: o.maxPages,
	}
}
