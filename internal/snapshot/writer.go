package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	outputFilePermissions     = 0o644
	temporaryOutputNameFormat = ".%s.*.tmp"
	errorOutputWriteFormat    = "%w: %s: %w"
)

// WriteDocument writes the document to destinationPath in one step. The content goes to a
// temporary file in the destination directory that is renamed into place, so a failed write
// never leaves a truncated snapshot behind.
func WriteDocument(destinationPath string, document string) (err error) {
	destinationDirectory := filepath.Dir(destinationPath)
	temporaryFile, createError := os.CreateTemp(destinationDirectory, fmt.Sprintf(temporaryOutputNameFormat, filepath.Base(destinationPath)))
	if createError != nil {
		return fmt.Errorf(errorOutputWriteFormat, ErrOutputWrite, destinationPath, createError)
	}
	temporaryPath := temporaryFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(temporaryPath)
		}
	}()

	if _, writeError := temporaryFile.WriteString(document); writeError != nil {
		_ = temporaryFile.Close()
		return fmt.Errorf(errorOutputWriteFormat, ErrOutputWrite, destinationPath, writeError)
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		return fmt.Errorf(errorOutputWriteFormat, ErrOutputWrite, destinationPath, closeError)
	}
	if chmodError := os.Chmod(temporaryPath, outputFilePermissions); chmodError != nil {
		return fmt.Errorf(errorOutputWriteFormat, ErrOutputWrite, destinationPath, chmodError)
	}
	if renameError := os.Rename(temporaryPath, destinationPath); renameError != nil {
		return fmt.Errorf(errorOutputWriteFormat, ErrOutputWrite, destinationPath, renameError)
	}
	return nil
}
