package patterns_test

import (
	"reflect"
	"testing"

	"github.com/tyemirov/snapshot/internal/patterns"
)

func TestFromLines(t *testing.T) {
	testCases := []struct {
		name     string
		lines    []string
		expected []string
	}{
		{
			name:     "drops_blank_and_comment_lines",
			lines:    []string{"", "   ", "# comment", "   # indented comment", "*.log"},
			expected: []string{"*.log"},
		},
		{
			name:     "trims_surrounding_whitespace",
			lines:    []string{"  dist  ", "\tbuild\t", "src/app.py\r"},
			expected: []string{"build", "dist", "src/app.py"},
		},
		{
			name:     "collapses_duplicates",
			lines:    []string{"*.log", "*.log", " *.log "},
			expected: []string{"*.log"},
		},
		{
			name:     "keeps_inline_hash",
			lines:    []string{"file#1.txt"},
			expected: []string{"file#1.txt"},
		},
		{
			name:     "empty_input",
			lines:    nil,
			expected: []string{},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := patterns.FromLines(testCase.lines).Sorted()
			if !reflect.DeepEqual(actual, testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, actual)
			}
		})
	}
}

func TestFromCommaSeparated(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "splits_and_trims",
			text:     "*.log, dist ,build,*.tmp",
			expected: []string{"*.log", "*.tmp", "build", "dist"},
		},
		{
			name:     "discards_empty_pieces",
			text:     " , *.log,, ,",
			expected: []string{"*.log"},
		},
		{
			name:     "collapses_duplicates",
			text:     "dist,dist, dist",
			expected: []string{"dist"},
		},
		{
			name:     "blank_input",
			text:     "   ",
			expected: []string{},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := patterns.FromCommaSeparated(testCase.text).Sorted()
			if !reflect.DeepEqual(actual, testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, actual)
			}
		})
	}
}

func TestDefaultExclusionsCoverHighNoiseDirectories(t *testing.T) {
	defaults := patterns.DefaultExclusions()
	for _, expectedPattern := range []string{".git", "node_modules", "__pycache__", ".venv", "dist", "build", "*.pyc"} {
		if !defaults.Contains(expectedPattern) {
			t.Fatalf("expected default exclusions to contain %q", expectedPattern)
		}
	}

	defaults.Add("custom")
	if patterns.DefaultExclusions().Contains("custom") {
		t.Fatalf("expected DefaultExclusions to return an independent copy")
	}
}

func TestUnionLeavesOperandsUntouched(t *testing.T) {
	left := patterns.NewSet("a", "b")
	right := patterns.NewSet("b", "c")

	union := left.Union(right)
	if !reflect.DeepEqual(union.Sorted(), []string{"a", "b", "c"}) {
		t.Fatalf("unexpected union: %v", union.Sorted())
	}
	if left.Len() != 2 || right.Len() != 2 {
		t.Fatalf("expected operands to keep their size, got %d and %d", left.Len(), right.Len())
	}
}
