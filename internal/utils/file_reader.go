package utils

import (
	"encoding/xml"
	"fmt"
	"path/filepath"

	"github.com/toyz/importgen/internal/utils/fileops"
)

// FileReader reads project descriptors, caching contents until the file
// changes on disk
type FileReader struct {
	files        *fileops.FileOps
	contentCache *FileCache[[]byte]
}

// NewFileReader creates a new FileReader instance with caching
func NewFileReader() *FileReader {
	return &FileReader{
		files:        fileops.NewFileOps(),
		contentCache: NewFileCache[[]byte](),
	}
}

// ReadFile returns the contents of filePath
func (fr *FileReader) ReadFile(filePath string) ([]byte, error) {
	cleanPath, err := fr.validateAndCleanPath(filePath)
	if err != nil {
		return nil, err
	}

	return fr.contentCache.GetOrLoad(cleanPath, func(path string) ([]byte, error) {
		content, err := fr.files.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return []byte(content), nil
	})
}

// ReadXML decodes the XML document at filePath into v
func (fr *FileReader) ReadXML(filePath string, v interface{}) error {
	content, err := fr.ReadFile(filePath)
	if err != nil {
		return err
	}

	if err := xml.Unmarshal(content, v); err != nil {
		return WrapParseError(filepath.Base(filePath), err)
	}
	return nil
}

// InvalidateFile removes a specific file from the cache
func (fr *FileReader) InvalidateFile(filePath string) {
	fr.contentCache.Invalidate(filepath.Clean(filePath))
}

// validateAndCleanPath validates and cleans a file path
func (fr *FileReader) validateAndCleanPath(filePath string) (string, error) {
	if err := NotEmpty("filePath")(filePath); err != nil {
		return "", fmt.Errorf("file path %w", err)
	}

	cleanPath := filepath.Clean(filePath)
	if !fr.files.IsFile(cleanPath) {
		return "", fmt.Errorf("file does not exist: %s", cleanPath)
	}

	return cleanPath, nil
}
