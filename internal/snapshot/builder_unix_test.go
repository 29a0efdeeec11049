//go:build linux || darwin

package snapshot_test

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/tyemirov/snapshot/internal/patterns"
)

// TestBuildSpecialEntries verifies that directory symlinks are not followed, file symlinks
// are read through, dangling links count as unreadable, and named pipes are never opened.
func TestBuildSpecialEntries(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	outsideDirectory := testingHandle.TempDir()
	writeTree(testingHandle, outsideDirectory, map[string]string{"outside.txt": "outside"})
	writeTree(testingHandle, rootDirectory, map[string]string{"real.txt": "real"})

	symlinks := map[string]string{
		"linkdir":      outsideDirectory,
		"linkfile.txt": filepath.Join(rootDirectory, "real.txt"),
		"dangling":     filepath.Join(rootDirectory, "missing.txt"),
	}
	for linkName, linkTarget := range symlinks {
		if linkError := os.Symlink(linkTarget, filepath.Join(rootDirectory, linkName)); linkError != nil {
			testingHandle.Fatalf("failed to create symlink %s: %v", linkName, linkError)
		}
	}
	if fifoError := syscall.Mkfifo(filepath.Join(rootDirectory, "pipe"), 0o644); fifoError != nil {
		testingHandle.Fatalf("failed to create named pipe: %v", fifoError)
	}

	result := buildSnapshot(testingHandle, rootDirectory, patterns.NewSet())

	expectedDocument := "linkfile.txt\n```\nreal\n```\n\n" + "real.txt\n```\nreal\n```\n\n"
	if result.Document != expectedDocument {
		testingHandle.Fatalf("unexpected document:\n%q\nwant:\n%q", result.Document, expectedDocument)
	}
	expectedStats := map[string][2]int{
		"included":   {result.Stats.IncludedFiles, 2},
		"skipped":    {result.Stats.SkippedEntries, 2},
		"unreadable": {result.Stats.UnreadableFiles, 1},
		"excluded":   {result.Stats.ExcludedFiles, 0},
		"binary":     {result.Stats.BinaryFiles, 0},
		"pruned":     {result.Stats.PrunedDirectories, 0},
	}
	for counterName, actualAndExpected := range expectedStats {
		if actualAndExpected[0] != actualAndExpected[1] {
			testingHandle.Fatalf("%s: expected %d, got %d", counterName, actualAndExpected[1], actualAndExpected[0])
		}
	}
}
