package snapshot_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tyemirov/snapshot/internal/snapshot"
)

func TestWriteDocumentReplacesDestination(t *testing.T) {
	outputDirectory := t.TempDir()
	destinationPath := filepath.Join(outputDirectory, outputFileName)
	if err := os.WriteFile(destinationPath, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed destination: %v", err)
	}

	document := snapshot.Render([]snapshot.FileRecord{{RelativePath: "a.txt", Content: "alpha"}})
	if err := snapshot.WriteDocument(destinationPath, document); err != nil {
		t.Fatalf("WriteDocument error: %v", err)
	}

	written, readErr := os.ReadFile(destinationPath)
	if readErr != nil {
		t.Fatalf("read destination: %v", readErr)
	}
	if string(written) != "a.txt\n```\nalpha\n```\n\n" {
		t.Fatalf("unexpected output: %q", string(written))
	}

	entries, listErr := os.ReadDir(outputDirectory)
	if listErr != nil {
		t.Fatalf("list output directory: %v", listErr)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the destination file, found %d entries", len(entries))
	}
}

func TestWriteDocumentReportsOutputWriteFailure(t *testing.T) {
	destinationPath := filepath.Join(t.TempDir(), "missing", outputFileName)

	err := snapshot.WriteDocument(destinationPath, "content")
	if !errors.Is(err, snapshot.ErrOutputWrite) {
		t.Fatalf("expected ErrOutputWrite, got %v", err)
	}
	if _, statErr := os.Stat(destinationPath); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output file, stat returned %v", statErr)
	}
}

func TestRenderEmptyRecords(t *testing.T) {
	if document := snapshot.Render(nil); document != "" {
		t.Fatalf("expected empty document, got %q", document)
	}
}
