package outline

import (
	"regexp"
	"strings"

	"github.com/tsawler/rubric/model"
)

// numberingExp matches a leading outline-numbering token. The alternatives,
// in match order: dot-separated digit groups ("2", "1.1", "2.3.4"), a single
// uppercase letter followed by digit groups ("A.1"), a Roman-numeral run
// ending at a word boundary (case-insensitive), or a bare uppercase letter.
// Letter-plus-digits precedes the Roman alternative so "C.1" is not split
// into a Roman "C" and a stray digit; Roman precedes the bare letter so
// "IV" is not claimed as a lone "I". Group 2 captures the optional trailing
// dot and group 3 the remainder of the line.
var numberingExp = regexp.MustCompile(`^(\d+(?:\.\d+)*|[A-Z](?:\.\d+)+|(?i:[IVXLCDM]+)\b|[A-Z])(\.)?\s*(.*)$`)

var (
	digitsOnlyExp  = regexp.MustCompile(`^\d+$`)
	digitGroupsExp = regexp.MustCompile(`^\d+(?:\.\d+)+$`)
	singleUpperExp = regexp.MustCompile(`^[A-Z]$`)
	romanExp       = regexp.MustCompile(`^(?i:[IVXLCDM]+)$`)

	// digit-group token as a prefix of, or as the whole of, a string
	numberPrefixExp = regexp.MustCompile(`^\d+(?:\.\d+)*`)
	numberTokenExp  = regexp.MustCompile(`^\d+(?:\.\d+)*$`)
)

// Numbering is the parsed form of a leading outline-numbering token
type Numbering struct {
	// Prefix is the matched token without its trailing dot
	Prefix string

	// TrailingDot records whether a dot followed the token
	TrailingDot bool

	// Rest is the trimmed text after the token
	Rest string

	// Level is the heading level the token's shape implies, or LevelUnknown
	// for shapes that imply none ("2024", "A.1", a Roman run without a dot)
	Level model.HeadingLevel
}

// ParseNumbering matches text against the numbering grammar. ok is false
// when the text carries no leading numbering token at all; a shapeless token
// still parses, with Level set to LevelUnknown.
func ParseNumbering(text string) (Numbering, bool) {
	m := numberingExp.FindStringSubmatch(text)
	if m == nil {
		return Numbering{}, false
	}
	n := Numbering{
		Prefix:      m[1],
		TrailingDot: m[2] == ".",
		Rest:        strings.TrimSpace(m[3]),
	}
	n.Level = n.shapeLevel()
	return n, true
}

// shapeLevel maps a token's shape to its implied level. Bare digit runs of
// three or more digits look like years or identifiers and imply nothing;
// letter and Roman tokens only imply a level when the dot is present.
func (n Numbering) shapeLevel() model.HeadingLevel {
	switch {
	case digitsOnlyExp.MatchString(n.Prefix):
		if len(n.Prefix) < 3 {
			return model.H1
		}
	case digitGroupsExp.MatchString(n.Prefix):
		switch strings.Count(n.Prefix, ".") {
		case 1:
			return model.H2
		case 2:
			return model.H3
		default:
			return model.H4
		}
	case n.TrailingDot && singleUpperExp.MatchString(n.Prefix):
		return model.H1
	case n.TrailingDot && romanExp.MatchString(n.Prefix):
		return model.H1
	}
	return model.LevelUnknown
}

// hasNumberPrefix reports whether text starts with a digit-group token,
// possibly followed by more text
func hasNumberPrefix(text string) bool {
	return numberPrefixExp.MatchString(text)
}

// isNumberToken reports whether text is exactly a digit-group token
func isNumberToken(text string) bool {
	return numberTokenExp.MatchString(text)
}
