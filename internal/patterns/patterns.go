// Package patterns normalizes raw exclusion sources into sets of glob pattern strings.
package patterns

import (
	"sort"
	"strings"
)

const (
	commentPrefix    = "#"
	patternSeparator = ","
)

// defaultExclusionPatterns lists high-noise paths excluded from every snapshot.
var defaultExclusionPatterns = []string{
	".git",
	"node_modules",
	"__pycache__",
	"venv",
	".venv",
	".vscode",
	".idea",
	"dist",
	"build",
	"*.pyc",
	"*.tmp",
	".DS_Store",
}

// Set is an unordered, deduplicated collection of exclusion patterns.
type Set map[string]struct{}

// NewSet returns a set holding the provided patterns verbatim.
func NewSet(patternValues ...string) Set {
	set := make(Set, len(patternValues))
	for _, patternValue := range patternValues {
		set.Add(patternValue)
	}
	return set
}

// DefaultExclusions returns a fresh copy of the built-in exclusion patterns.
func DefaultExclusions() Set {
	return NewSet(defaultExclusionPatterns...)
}

// FromLines collects patterns from ignore-file lines. Blank lines and lines whose first
// non-whitespace character is '#' are dropped; remaining lines are trimmed.
func FromLines(lines []string) Set {
	set := make(Set)
	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		set.Add(trimmedLine)
	}
	return set
}

// FromCommaSeparated collects patterns from a single comma-separated string.
// Pieces are trimmed and empty pieces are discarded.
func FromCommaSeparated(text string) Set {
	set := make(Set)
	for _, piece := range strings.Split(text, patternSeparator) {
		trimmedPiece := strings.TrimSpace(piece)
		if trimmedPiece == "" {
			continue
		}
		set.Add(trimmedPiece)
	}
	return set
}

// Add inserts a pattern. Duplicates collapse silently.
func (set Set) Add(patternValue string) {
	set[patternValue] = struct{}{}
}

// Contains reports whether the pattern is present.
func (set Set) Contains(patternValue string) bool {
	_, exists := set[patternValue]
	return exists
}

// Len returns the number of distinct patterns.
func (set Set) Len() int {
	return len(set)
}

// Union returns a new set holding the patterns of the receiver and every other set.
func (set Set) Union(others ...Set) Set {
	result := make(Set, len(set))
	for patternValue := range set {
		result.Add(patternValue)
	}
	for _, other := range others {
		for patternValue := range other {
			result.Add(patternValue)
		}
	}
	return result
}

// Sorted returns the patterns in lexicographic order.
func (set Set) Sorted() []string {
	sortedPatterns := make([]string, 0, len(set))
	for patternValue := range set {
		sortedPatterns = append(sortedPatterns, patternValue)
	}
	sort.Strings(sortedPatterns)
	return sortedPatterns
}
