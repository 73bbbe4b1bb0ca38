package outline

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/rubric/model"
)

// Rules carries document-specific filtering knowledge for the hierarchy
// filter: a cover-page boilerplate denylist and per-document override
// tables. The zero value applies nothing.
type Rules struct {
	// Boilerplate lists substrings that disqualify candidates on cover pages
	Boilerplate []string

	// Documents holds override tables keyed by document identifier
	Documents []DocumentRules
}

// DocumentRules is the override table for one document
type DocumentRules struct {
	// ID matches the document identifier passed to the filter, usually the
	// source file name
	ID string

	// Overrides replace specific misclassified candidates
	Overrides []Override
}

// Override replaces one candidate heading with a corrected one. A candidate
// matches when its page equals Page and its trimmed text equals Match,
// compared case-insensitively.
type Override struct {
	Page  int
	Match string
	Level model.HeadingLevel

	// Text is the emitted heading text; empty means emit Match unchanged
	Text string
}

// rulesFile mirrors the YAML layout; levels arrive as strings and are
// parsed during conversion
type rulesFile struct {
	Boilerplate []string `yaml:"boilerplate"`
	Documents   []struct {
		ID        string `yaml:"id"`
		Overrides []struct {
			Page  int    `yaml:"page"`
			Match string `yaml:"match"`
			Level string `yaml:"level"`
			Text  string `yaml:"text"`
		} `yaml:"overrides"`
	} `yaml:"documents"`
}

// LoadRules reads and validates a rules file in YAML format
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules parses and validates YAML rules data
func ParseRules(data []byte) (*Rules, error) {
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}

	rules := &Rules{Boilerplate: file.Boilerplate}
	for i, doc := range file.Documents {
		if doc.ID == "" {
			return nil, fmt.Errorf("documents[%d]: missing id", i)
		}
		dr := DocumentRules{ID: doc.ID}
		for j, o := range doc.Overrides {
			if o.Match == "" {
				return nil, fmt.Errorf("documents[%d] (%s): overrides[%d]: missing match", i, doc.ID, j)
			}
			if o.Page < 1 {
				return nil, fmt.Errorf("documents[%d] (%s): overrides[%d]: page must be positive", i, doc.ID, j)
			}
			level, err := model.ParseHeadingLevel(o.Level)
			if err != nil {
				return nil, fmt.Errorf("documents[%d] (%s): overrides[%d]: %w", i, doc.ID, j, err)
			}
			text := o.Text
			if text == "" {
				text = o.Match
			}
			dr.Overrides = append(dr.Overrides, Override{
				Page:  o.Page,
				Match: o.Match,
				Level: level,
				Text:  text,
			})
		}
		rules.Documents = append(rules.Documents, dr)
	}
	return rules, nil
}

// lookup finds the override matching a candidate, if any. Safe on a nil
// receiver.
func (r *Rules) lookup(docID string, page int, text string) (Override, bool) {
	if r == nil {
		return Override{}, false
	}
	norm := strings.ToLower(text)
	for _, doc := range r.Documents {
		if doc.ID != docID {
			continue
		}
		for _, o := range doc.Overrides {
			if o.Page == page && strings.ToLower(o.Match) == norm {
				return o, true
			}
		}
	}
	return Override{}, false
}

// isBoilerplate reports whether text contains any denylisted substring.
// Safe on a nil receiver.
func (r *Rules) isBoilerplate(text string) bool {
	if r == nil {
		return false
	}
	for _, s := range r.Boilerplate {
		if s != "" && strings.Contains(text, s) {
			return true
		}
	}
	return false
}
