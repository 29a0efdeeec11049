package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tyemirov/snapshot/internal/utils"
)

// textFileName defines the name of the text file used in tests.
const textFileName = "sample.txt"

// TestRelativePathOrSelf verifies relative path calculations.
func TestRelativePathOrSelf(testingInstance *testing.T) {
	temporaryRoot := testingInstance.TempDir()
	subPath := filepath.Join(temporaryRoot, textFileName)
	if creationError := os.WriteFile(subPath, []byte("content"), 0o600); creationError != nil {
		testingInstance.Fatalf("failed to create file: %v", creationError)
	}
	nestedPath := filepath.Join(temporaryRoot, "nested", textFileName)
	testCases := []struct {
		testName string
		fullPath string
		root     string
		expected string
	}{
		{
			testName: "root path returns dot",
			fullPath: temporaryRoot,
			root:     temporaryRoot,
			expected: ".",
		},
		{
			testName: "sub path returns relative",
			fullPath: subPath,
			root:     temporaryRoot,
			expected: textFileName,
		},
		{
			testName: "nested path uses forward slashes",
			fullPath: nestedPath,
			root:     temporaryRoot,
			expected: "nested/" + textFileName,
		},
	}
	for index, testCase := range testCases {
		actual := utils.RelativePathOrSelf(testCase.fullPath, testCase.root)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): expected %s, got %s", index, testCase.testName, testCase.expected, actual)
		}
	}
}

// TestJoinRelativePath verifies root-relative path composition.
func TestJoinRelativePath(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		parent   string
		name     string
		expected string
	}{
		{testName: "root parent", parent: "", name: "main.py", expected: "main.py"},
		{testName: "dot parent", parent: ".", name: "main.py", expected: "main.py"},
		{testName: "nested parent", parent: "src/pkg", name: "app.py", expected: "src/pkg/app.py"},
	}
	for index, testCase := range testCases {
		actual := utils.JoinRelativePath(testCase.parent, testCase.name)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): expected %s, got %s", index, testCase.testName, testCase.expected, actual)
		}
	}
}

// TestFormatFileSize verifies human-readable size rendering.
func TestFormatFileSize(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "negative", bytes: -1, expected: "0b"},
		{name: "zero", bytes: 0, expected: "0b"},
		{name: "bytes", bytes: 512, expected: "512b"},
		{name: "one kilobyte", bytes: 1024, expected: "1kb"},
		{name: "fractional kilobyte", bytes: 1536, expected: "1.5kb"},
		{name: "ten megabytes", bytes: 10 * 1024 * 1024, expected: "10mb"},
		{name: "fractional gigabyte", bytes: 3 * 1024 * 1024 * 1024 / 2, expected: "1.5gb"},
		{name: "terabytes stay in gigabytes", bytes: 2 * 1024 * 1024 * 1024 * 1024, expected: "2048gb"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.FormatFileSize(testCase.bytes)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}
