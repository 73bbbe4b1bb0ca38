package outline

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/tsawler/rubric/model"
)

// ClassifierConfig holds configuration for heading classification
type ClassifierConfig struct {
	// MinLineLength drops lines shorter than this before any rule runs,
	// unless the line is exactly a digit-group numbering token (default: 3)
	MinLineLength int

	// MinRemainder is the length the text after a numbering token must
	// exceed for the numbering rule to accept (default: 3)
	MinRemainder int

	// MaxRemainder rejects any numbering-matched line whose remaining text
	// is longer than this; long matches are numbered paragraphs (default: 80)
	MaxRemainder int

	// MaxLength caps the text length of headings accepted on typography
	// alone (default: 100)
	MaxLength int

	// MaxLeftEdge is the largest left-edge X coordinate a heading may start
	// at; headings sit at or near the margin (default: 150 points)
	MaxLeftEdge float64

	// NumberedSizeRatio scales the body size into the minimum size a
	// numbered heading needs when it is not bold (default: 1.1)
	NumberedSizeRatio float64

	// DowngradeRatio demotes numbered H1 and H2 candidates to H3 when their
	// size is below BodySize times this ratio (default: 1.2)
	DowngradeRatio float64

	// BoldSizeRatio is the size ratio above which bold text classifies as
	// H3 (default: 1.05)
	BoldSizeRatio float64

	// TitleSizeRatio is the size ratio at or above which text classifies as
	// H1 (default: 1.5)
	TitleSizeRatio float64

	// SectionSizeRatio is the size ratio at or above which text classifies
	// as H2 (default: 1.2)
	SectionSizeRatio float64

	// Logger receives one debug record per rule decision (default: no-op)
	Logger *zap.Logger
}

// DefaultClassifierConfig returns sensible default configuration
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		MinLineLength:     3,
		MinRemainder:      3,
		MaxRemainder:      80,
		MaxLength:         100,
		MaxLeftEdge:       150.0,
		NumberedSizeRatio: 1.1,
		DowngradeRatio:    1.2,
		BoldSizeRatio:     1.05,
		TitleSizeRatio:    1.5,
		SectionSizeRatio:  1.2,
	}
}

var (
	pageNumberExp = regexp.MustCompile(`(?i)^\s*page\s+\d+\s*$`)
	captionExp    = regexp.MustCompile(`(?i)^(Table|Figure|Appendix|Exhibit|Formula)\s+\d+(\.\d+)*`)
)

// legalTerms are boilerplate markers that disqualify a line regardless of
// typography
var legalTerms = []string{"copyright", "all rights reserved", "confidential"}

// ruleVerdict is the outcome of one classification rule
type ruleVerdict int

const (
	// verdictPass means the rule has no opinion; the next rule runs
	verdictPass ruleVerdict = iota

	// verdictAccept means the rule classified the line as a heading
	verdictAccept

	// verdictReject means the line is definitely not a heading
	verdictReject
)

// ruleResult carries a rule's verdict plus the accepted level. styled marks
// acceptances based on typography alone, which the length cap applies to.
type ruleResult struct {
	verdict ruleVerdict
	level   model.HeadingLevel
	styled  bool
	reason  string
}

// classifierRule is one step of the ordered classification chain
type classifierRule struct {
	name  string
	apply func(line model.MergedLine, text string, profile FontProfile) ruleResult
}

// Classifier decides which merged lines are headings. Rules run in a fixed
// order; the first rule with an opinion decides, and accepted candidates
// then pass through filters shared by every rule.
type Classifier struct {
	config ClassifierConfig
	log    *zap.Logger
	rules  []classifierRule
}

// NewClassifier creates a new classifier with default configuration
func NewClassifier() *Classifier {
	return NewClassifierWithConfig(DefaultClassifierConfig())
}

// NewClassifierWithConfig creates a classifier with custom configuration
func NewClassifierWithConfig(config ClassifierConfig) *Classifier {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	c := &Classifier{
		config: config,
		log:    log,
	}
	c.rules = []classifierRule{
		{name: "noise", apply: c.noiseRule},
		{name: "numbering", apply: c.numberingRule},
		{name: "typography", apply: c.typographyRule},
	}
	return c
}

// Classify runs every merged line through the rule chain and returns the
// heading candidates in input order
func (c *Classifier) Classify(lines []model.MergedLine, profile FontProfile) []model.Heading {
	candidates := make([]model.Heading, 0)
	for _, line := range lines {
		if h, ok := c.ClassifyLine(line, profile); ok {
			candidates = append(candidates, h)
		}
	}
	c.log.Debug("classified lines",
		zap.Int("lines", len(lines)),
		zap.Int("candidates", len(candidates)),
	)
	return candidates
}

// ClassifyLine runs one line through the rule chain. The second return is
// false when no rule accepts the line or a shared filter removes it.
func (c *Classifier) ClassifyLine(line model.MergedLine, profile FontProfile) (model.Heading, bool) {
	text := strings.TrimSpace(line.Text)
	for _, rule := range c.rules {
		res := rule.apply(line, text, profile)
		switch res.verdict {
		case verdictPass:
			continue
		case verdictReject:
			c.log.Debug("line rejected",
				zap.String("rule", rule.name),
				zap.String("reason", res.reason),
				zap.String("text", text),
				zap.Int("page", line.Page),
			)
			return model.Heading{}, false
		case verdictAccept:
			if reason, ok := c.passesFilters(line, text, res); !ok {
				c.log.Debug("candidate filtered",
					zap.String("rule", rule.name),
					zap.String("filter", reason),
					zap.String("text", text),
					zap.Int("page", line.Page),
				)
				return model.Heading{}, false
			}
			c.log.Debug("heading accepted",
				zap.String("rule", rule.name),
				zap.String("level", res.level.String()),
				zap.String("text", text),
				zap.Int("page", line.Page),
			)
			return model.Heading{Level: res.level, Text: text, Page: line.Page}, true
		}
	}
	return model.Heading{}, false
}

// noiseRule rejects page-number lines, legal boilerplate, and lines too
// short to be headings. Bare digit-group tokens survive the length check so
// section numbers set on their own line are kept.
func (c *Classifier) noiseRule(line model.MergedLine, text string, profile FontProfile) ruleResult {
	if utf8.RuneCountInString(text) < c.config.MinLineLength && !isNumberToken(text) {
		return ruleResult{verdict: verdictReject, reason: "too short"}
	}
	if pageNumberExp.MatchString(text) {
		return ruleResult{verdict: verdictReject, reason: "page number"}
	}
	lower := strings.ToLower(text)
	for _, term := range legalTerms {
		if strings.Contains(lower, term) {
			return ruleResult{verdict: verdictReject, reason: "legal boilerplate"}
		}
	}
	return ruleResult{verdict: verdictPass}
}

// numberingRule classifies lines that open with a numbering token. A match
// with a long remainder is a numbered paragraph and rejects outright. A
// shapeless token, or one whose line fails the size and weight test, passes
// the line on so typography can still claim it.
func (c *Classifier) numberingRule(line model.MergedLine, text string, profile FontProfile) ruleResult {
	n, ok := ParseNumbering(text)
	if !ok {
		return ruleResult{verdict: verdictPass}
	}
	if utf8.RuneCountInString(n.Rest) > c.config.MaxRemainder {
		return ruleResult{verdict: verdictReject, reason: "numbered paragraph"}
	}
	if n.Level == model.LevelUnknown {
		return ruleResult{verdict: verdictPass}
	}

	level := n.Level
	if (level == model.H1 || level == model.H2) && line.FontSize < profile.BodySize*c.config.DowngradeRatio {
		level = model.H3
	}

	prominent := line.FontSize >= profile.BodySize*c.config.NumberedSizeRatio || line.Bold
	if utf8.RuneCountInString(n.Rest) > c.config.MinRemainder && prominent {
		return ruleResult{verdict: verdictAccept, level: level}
	}
	return ruleResult{verdict: verdictPass}
}

// typographyRule classifies lines on size and weight alone: first the
// profiled heading sizes, then bold text slightly above body size, then the
// title and section size ratios.
func (c *Classifier) typographyRule(line model.MergedLine, text string, profile FontProfile) ruleResult {
	if level, ok := profile.Levels.LevelFor(line.FontSize); ok {
		return ruleResult{verdict: verdictAccept, level: level, styled: true}
	}
	if line.Bold && line.FontSize > profile.BodySize*c.config.BoldSizeRatio {
		return ruleResult{verdict: verdictAccept, level: model.H3, styled: true}
	}
	if line.FontSize >= profile.BodySize*c.config.TitleSizeRatio {
		return ruleResult{verdict: verdictAccept, level: model.H1, styled: true}
	}
	if line.FontSize >= profile.BodySize*c.config.SectionSizeRatio {
		return ruleResult{verdict: verdictAccept, level: model.H2, styled: true}
	}
	return ruleResult{verdict: verdictPass}
}

// passesFilters applies the checks shared by every accepting rule: headings
// start near the left margin, caption labels never qualify, and headings
// accepted on typography alone stay under the length cap.
func (c *Classifier) passesFilters(line model.MergedLine, text string, res ruleResult) (string, bool) {
	if line.Rect.X0 >= c.config.MaxLeftEdge {
		return "left edge", false
	}
	if captionExp.MatchString(text) {
		return "caption label", false
	}
	if res.styled && utf8.RuneCountInString(text) >= c.config.MaxLength {
		return "over length", false
	}
	return "", true
}
