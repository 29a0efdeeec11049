package snapshot

import (
	"strings"

	"github.com/gobwas/glob"
)

const (
	globEscape     = '\\'
	globRangeOpen  = '['
	globRangeClose = ']'
	globTermsOpen  = '{'
	globTermsClose = '}'
)

type compiledPattern struct {
	source string
	glob   glob.Glob
}

// Matcher tests candidate strings against exclusion patterns with full-string glob semantics.
// Only '*', '?' and bracket sets are wildcards; every other character matches itself.
// Patterns are compiled without separators, so '*' also spans '/'.
type Matcher struct {
	patterns []compiledPattern
}

// NewMatcher compiles the patterns in the given order. A pattern that is not a valid glob
// is matched literally.
func NewMatcher(patternValues []string) *Matcher {
	matcher := &Matcher{patterns: make([]compiledPattern, 0, len(patternValues))}
	for _, patternValue := range patternValues {
		compiled, compileError := glob.Compile(escapeLiteralMetacharacters(patternValue))
		if compileError != nil {
			compiled = glob.MustCompile(glob.QuoteMeta(patternValue))
		}
		matcher.patterns = append(matcher.patterns, compiledPattern{source: patternValue, glob: compiled})
	}
	return matcher
}

// escapeLiteralMetacharacters disables the gobwas-only syntax: '{a,b}' alternation outside
// bracket sets, and backslash escapes everywhere.
func escapeLiteralMetacharacters(patternValue string) string {
	var escaped strings.Builder
	insideRange := false
	for _, character := range patternValue {
		switch {
		case character == globEscape:
			escaped.WriteRune(globEscape)
		case !insideRange && (character == globTermsOpen || character == globTermsClose):
			escaped.WriteRune(globEscape)
		case !insideRange && character == globRangeOpen:
			insideRange = true
		case insideRange && character == globRangeClose:
			insideRange = false
		}
		escaped.WriteRune(character)
	}
	return escaped.String()
}

// Match reports the first pattern matching any of the candidates.
func (matcher *Matcher) Match(candidates ...string) (string, bool) {
	for _, pattern := range matcher.patterns {
		for _, candidate := range candidates {
			if pattern.glob.Match(candidate) {
				return pattern.source, true
			}
		}
	}
	return "", false
}
