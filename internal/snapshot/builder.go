// Package snapshot walks a project tree with directory pruning, keeps the files that decode as
// UTF-8 text, and renders them into a single fenced document.
package snapshot

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/tyemirov/snapshot/internal/patterns"
	"github.com/tyemirov/snapshot/internal/utils"
)

const (
	errorRootStatFormat     = "%w: %s: %w"
	errorRootNotDirFormat   = "%w: %s is not a directory"
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
)

// Options configures a Builder.
type Options struct {
	// OutputFileName is the bare name of the snapshot document. Files with this name are
	// skipped so a previous snapshot never ends up inside the next one.
	OutputFileName string
}

// Builder produces snapshot documents. Built-in default exclusions always apply in addition
// to the patterns passed to Build.
type Builder struct {
	logger  *zap.Logger
	options Options
}

// NewBuilder constructs a Builder. A nil logger disables logging.
func NewBuilder(logger *zap.Logger, options Options) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger, options: options}
}

// ValidateRoot resolves rootDirectoryPath to a clean absolute path and verifies it is an
// existing directory.
func ValidateRoot(rootDirectoryPath string) (string, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)
	rootInfo, statError := os.Stat(cleanedRootPath)
	if statError != nil {
		return "", fmt.Errorf(errorRootStatFormat, ErrRootNotFound, rootDirectoryPath, statError)
	}
	if !rootInfo.IsDir() {
		return "", fmt.Errorf(errorRootNotDirFormat, ErrRootNotFound, rootDirectoryPath)
	}
	return cleanedRootPath, nil
}

// Build walks rootDirectoryPath top-down and renders every surviving text file.
// Only a missing or non-directory root is reported as an error; unreadable and binary
// files are skipped and logged.
func (builder *Builder) Build(rootDirectoryPath string, exclusionPatterns patterns.Set) (Result, error) {
	cleanedRootPath, rootError := ValidateRoot(rootDirectoryPath)
	if rootError != nil {
		return Result{}, rootError
	}

	effectivePatterns := patterns.DefaultExclusions().Union(exclusionPatterns)
	walker := &treeWalker{
		logger:         builder.logger,
		matcher:        NewMatcher(effectivePatterns.Sorted()),
		outputFileName: builder.options.OutputFileName,
	}
	builder.logger.Debug("Starting snapshot traversal",
		zap.String("root", cleanedRootPath),
		zap.Int("patterns", effectivePatterns.Len()))

	walker.visitDirectory(cleanedRootPath, "")

	return Result{
		Records:  walker.records,
		Document: Render(walker.records),
		Stats:    walker.stats,
	}, nil
}

// treeWalker holds the state of one traversal.
type treeWalker struct {
	logger         *zap.Logger
	matcher        *Matcher
	outputFileName string
	records        []FileRecord
	stats          Stats
}

// visitDirectory emits the files of a directory, then descends into the subdirectories that
// survive pruning. Entries come from os.ReadDir and are therefore sorted by name.
func (walker *treeWalker) visitDirectory(directoryPath string, relativeDirectory string) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		walker.logger.Warn("Skipping unreadable directory",
			zap.String("path", directoryPath),
			zap.Error(readDirectoryError))
		return
	}

	var subdirectoryNames []string
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		entryPath := filepath.Join(directoryPath, entryName)
		switch {
		case directoryEntry.IsDir():
			if pattern, matched := walker.matcher.Match(entryName); matched {
				walker.stats.PrunedDirectories++
				walker.logger.Debug("Pruning directory",
					zap.String("path", utils.JoinRelativePath(relativeDirectory, entryName)),
					zap.String("pattern", pattern))
				continue
			}
			subdirectoryNames = append(subdirectoryNames, entryName)
		case directoryEntry.Type()&fs.ModeSymlink != 0 && isDirectoryLink(entryPath):
			walker.stats.SkippedEntries++
			walker.logger.Debug("Not following directory symlink", zap.String("path", entryPath))
		case directoryEntry.Type()&fs.ModeType&^fs.ModeSymlink != 0:
			walker.stats.SkippedEntries++
			walker.logger.Debug("Skipping non-regular file", zap.String("path", entryPath))
		default:
			walker.visitFile(entryPath, entryName, utils.JoinRelativePath(relativeDirectory, entryName))
		}
	}

	for _, subdirectoryName := range subdirectoryNames {
		walker.visitDirectory(
			filepath.Join(directoryPath, subdirectoryName),
			utils.JoinRelativePath(relativeDirectory, subdirectoryName),
		)
	}
}

// visitFile applies name and path exclusion, then reads and classifies the file.
func (walker *treeWalker) visitFile(filePath string, fileName string, relativePath string) {
	if walker.outputFileName != "" && fileName == walker.outputFileName {
		walker.stats.ExcludedFiles++
		walker.logger.Debug("Skipping snapshot output file", zap.String("path", relativePath))
		return
	}
	if pattern, matched := walker.matcher.Match(fileName, relativePath); matched {
		walker.stats.ExcludedFiles++
		walker.logger.Debug("Excluding file",
			zap.String("path", relativePath),
			zap.String("pattern", pattern))
		return
	}

	fileBytes, readError := readFileContent(filePath)
	if readError != nil {
		walker.stats.UnreadableFiles++
		walker.logger.Warn("Skipping unreadable file",
			zap.String("path", relativePath),
			zap.Error(readError))
		return
	}
	if !IsText(fileBytes) {
		walker.stats.BinaryFiles++
		walker.logger.Debug("Ignoring binary or non-UTF-8 file", zap.String("path", relativePath))
		return
	}

	walker.records = append(walker.records, FileRecord{
		RelativePath: relativePath,
		Content:      string(fileBytes),
	})
	walker.stats.IncludedFiles++
	walker.stats.IncludedBytes += int64(len(fileBytes))
}

// IsText reports whether data decodes as UTF-8. Anything else is treated as binary.
func IsText(data []byte) bool {
	return utf8.Valid(data)
}

// readFileContent reads the whole file; the handle is released on every path.
//
// #nosec G304
func readFileContent(filePath string) ([]byte, error) {
	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return nil, openError
	}
	defer fileHandle.Close()
	return io.ReadAll(fileHandle)
}

func isDirectoryLink(linkPath string) bool {
	targetInfo, statError := os.Stat(linkPath)
	return statError == nil && targetInfo.IsDir()
}
