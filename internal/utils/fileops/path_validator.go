package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator provides centralized path validation and cleaning functionality
type PathValidator struct{}

// NewPathValidator creates a new PathValidator instance
func NewPathValidator() *PathValidator {
	return &PathValidator{}
}

// Clean validates and cleans a path without requiring it to exist
func (pv *PathValidator) Clean(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}
	return filepath.Clean(path), nil
}

// CleanExisting validates and cleans a path that must already exist
func (pv *PathValidator) CleanExisting(path string) (string, error) {
	cleanPath, err := pv.Clean(path)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", cleanPath)
	}

	return cleanPath, nil
}

// Within joins the slash-separated rel onto root and rejects results that
// escape root
func (pv *PathValidator) Within(root, rel string) (string, error) {
	cleanRoot, err := pv.Clean(root)
	if err != nil {
		return "", err
	}

	joined := filepath.Join(cleanRoot, filepath.FromSlash(rel))
	relative, err := filepath.Rel(cleanRoot, joined)
	if err != nil {
		return "", fmt.Errorf("failed to relate %s to %s: %w", joined, cleanRoot, err)
	}
	if relative == ".." || strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal not allowed: %s escapes %s", rel, cleanRoot)
	}

	return joined, nil
}

// Exists checks if a path exists
func (pv *PathValidator) Exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// IsDir checks if a path exists and is a directory
func (pv *PathValidator) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile checks if a path exists and is a regular file
func (pv *PathValidator) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
