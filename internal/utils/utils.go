// Package utils contains general helper functions used across the snapshot tool.
package utils

import (
	"path"
	"path/filepath"
)

// RelativePathOrSelf calculates the relative path from root to fullPath using forward slashes.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// JoinRelativePath appends an entry name to a root-relative directory path.
// The root itself is represented by an empty parent.
func JoinRelativePath(parent, name string) string {
	if parent == "" || parent == "." {
		return name
	}
	return path.Join(parent, name)
}
