package snapshot

import "errors"

var (
	// ErrRootNotFound reports a snapshot root that does not exist or is not a directory.
	ErrRootNotFound = errors.New("snapshot root not found")
	// ErrOutputWrite reports a snapshot document that could not be written to its destination.
	ErrOutputWrite = errors.New("snapshot output write failed")
)

// FileRecord is a text file accepted into the snapshot.
type FileRecord struct {
	RelativePath string
	Content      string
}

// Stats counts what a single build visited, kept, and skipped.
type Stats struct {
	IncludedFiles     int
	IncludedBytes     int64
	ExcludedFiles     int
	PrunedDirectories int
	BinaryFiles       int
	UnreadableFiles   int
	SkippedEntries    int
}

// Result is the outcome of a build: the accepted records in traversal order and their rendering.
type Result struct {
	Records  []FileRecord
	Document string
	Stats    Stats
}
