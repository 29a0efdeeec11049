// Package config reads ignore files and application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tyemirov/snapshot/internal/utils"
)

// IgnoreFilePath returns the location of the Git ignore file for a snapshot root.
func IgnoreFilePath(rootDirectoryPath string) string {
	return filepath.Join(rootDirectoryPath, utils.GitIgnoreFileName)
}

// ReadIgnoreFileLines returns the raw lines of an ignore file. Normalization is left to the
// caller. A missing file is reported as an error satisfying errors.Is(err, fs.ErrNotExist).
//
// #nosec G304
func ReadIgnoreFileLines(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf("reading %s: %w", ignoreFilePath, scanError)
	}
	return lines, nil
}
