package outline

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/tsawler/rubric/model"
)

// FilterConfig holds configuration for hierarchy filtering
type FilterConfig struct {
	// CoverPages is the page count, from page 1, that receives boilerplate
	// suppression and the stricter short-heading drop (default: 2)
	CoverPages int

	// MinLength is the text length below which a heading needs a numbering
	// prefix, a trailing colon, or to be a bare numbering token to survive
	// (default: 10)
	MinLength int

	// Rules supplies the override table and boilerplate denylist; nil
	// applies neither
	Rules *Rules

	// Logger receives one debug record per dropped candidate (default: no-op)
	Logger *zap.Logger
}

// DefaultFilterConfig returns sensible default configuration
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		CoverPages: 2,
		MinLength:  10,
	}
}

// Filter removes duplicate, fragmentary, and residual candidates and applies
// per-document overrides, producing the final outline
type Filter struct {
	config FilterConfig
	log    *zap.Logger
}

// NewFilter creates a new filter with default configuration
func NewFilter() *Filter {
	return NewFilterWithConfig(DefaultFilterConfig())
}

// NewFilterWithConfig creates a filter with custom configuration
func NewFilterWithConfig(config FilterConfig) *Filter {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Filter{
		config: config,
		log:    log,
	}
}

// foldState carries the last emitted heading across candidates. It advances
// only when a heading is emitted; dropped candidates leave it untouched.
type foldState struct {
	text  string
	level model.HeadingLevel
	page  int
}

// Apply folds the candidates in order, deciding each one against the state
// left by the previous emission. docID selects the override table; the
// filter itself never inspects file contents.
func (f *Filter) Apply(candidates []model.Heading, docID string) model.Outline {
	outline := make(model.Outline, 0, len(candidates))
	var state foldState
	for _, cand := range candidates {
		h, emit := f.step(state, cand, docID)
		if !emit {
			continue
		}
		outline = append(outline, h)
		state = foldState{text: h.Text, level: h.Level, page: h.Page}
	}
	f.log.Debug("filtered candidates",
		zap.String("doc_id", docID),
		zap.Int("candidates", len(candidates)),
		zap.Int("headings", len(outline)),
	)
	return outline
}

// step decides one candidate. The checks run in a fixed order: override
// lookup first, then cover-page suppression, duplicate and fragment
// elimination against the state, and last the residual short-heading drop.
func (f *Filter) step(state foldState, cand model.Heading, docID string) (model.Heading, bool) {
	text := strings.TrimSpace(cand.Text)

	if o, ok := f.config.Rules.lookup(docID, cand.Page, text); ok {
		f.log.Debug("override applied",
			zap.String("doc_id", docID),
			zap.String("match", text),
			zap.String("text", o.Text),
			zap.String("level", o.Level.String()),
		)
		return model.Heading{Level: o.Level, Text: o.Text, Page: o.Page}, true
	}

	if cand.Page <= f.config.CoverPages {
		if f.config.Rules.isBoilerplate(text) {
			f.drop("cover boilerplate", cand)
			return model.Heading{}, false
		}
		if utf8.RuneCountInString(text) < f.config.MinLength && !hasNumberPrefix(text) {
			f.drop("short cover heading", cand)
			return model.Heading{}, false
		}
	}

	if text == state.text && cand.Level == state.level && cand.Page == state.page {
		f.drop("duplicate", cand)
		return model.Heading{}, false
	}

	if state.text != "" && strings.HasPrefix(text, state.text) &&
		cand.Level == state.level && cand.Page == state.page {
		f.drop("fragment of previous", cand)
		return model.Heading{}, false
	}

	if utf8.RuneCountInString(text) < f.config.MinLength &&
		!strings.HasSuffix(text, ":") && !isNumberToken(text) {
		f.drop("short residual", cand)
		return model.Heading{}, false
	}

	return cand, true
}

func (f *Filter) drop(reason string, cand model.Heading) {
	f.log.Debug("candidate dropped",
		zap.String("reason", reason),
		zap.String("text", cand.Text),
		zap.String("level", cand.Level.String()),
		zap.Int("page", cand.Page),
	)
}
