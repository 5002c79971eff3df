package fileops

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Default permissions for generated files and directories
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// FileOps provides a unified interface for common file operations
// combining path validation and error handling
type FileOps struct {
	pathValidator *PathValidator
	errorWrapper  *ErrorWrapper
}

// NewFileOps creates a new FileOps instance with all components
func NewFileOps() *FileOps {
	return &FileOps{
		pathValidator: NewPathValidator(),
		errorWrapper:  NewErrorWrapper(),
	}
}

// PathValidator returns the path validator instance
func (fo *FileOps) PathValidator() *PathValidator {
	return fo.pathValidator
}

// ReadFile reads a file and returns its contents as a string
func (fo *FileOps) ReadFile(filePath string) (string, error) {
	cleanPath, err := fo.pathValidator.CleanExisting(filePath)
	if err != nil {
		return "", fo.errorWrapper.WrapFileReadError(filePath, err)
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", fo.errorWrapper.WrapFileReadError(cleanPath, err)
	}

	return string(content), nil
}

// EnsureDir creates dirPath and any missing parents
func (fo *FileOps) EnsureDir(dirPath string) error {
	cleanPath, err := fo.pathValidator.Clean(dirPath)
	if err != nil {
		return fo.errorWrapper.WrapDirectoryCreateError(dirPath, err)
	}

	if err := os.MkdirAll(cleanPath, DirPerm); err != nil {
		return fo.errorWrapper.WrapDirectoryCreateError(cleanPath, err)
	}

	return nil
}

// WriteFile replaces the file at filePath with content
func (fo *FileOps) WriteFile(filePath string, content []byte, perm os.FileMode) error {
	return fo.WriteStream(filePath, bytes.NewReader(content), perm)
}

// WriteStream replaces the file at filePath with everything read from r.
// Data is written to a uniquely named sibling file first and renamed into
// place, so readers never observe a half-written file. Missing parent
// directories are created.
func (fo *FileOps) WriteStream(filePath string, r io.Reader, perm os.FileMode) error {
	cleanPath, err := fo.pathValidator.Clean(filePath)
	if err != nil {
		return fo.errorWrapper.WrapFileWriteError(filePath, err)
	}

	dir := filepath.Dir(cleanPath)
	if err := fo.EnsureDir(dir); err != nil {
		return err
	}

	tmpPath := filepath.Join(dir, "."+filepath.Base(cleanPath)+"."+uuid.NewString()+".tmp")
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}

	if err := os.Rename(tmpPath, cleanPath); err != nil {
		os.Remove(tmpPath)
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}

	return nil
}

// RemoveFile removes a file with path validation and error handling
func (fo *FileOps) RemoveFile(filePath string) error {
	cleanPath, err := fo.pathValidator.CleanExisting(filePath)
	if err != nil {
		return fo.errorWrapper.WrapFileRemovalError(filePath, err)
	}

	if err := os.Remove(cleanPath); err != nil {
		return fo.errorWrapper.WrapFileRemovalError(cleanPath, err)
	}

	return nil
}

// Exists checks if a path exists using the path validator
func (fo *FileOps) Exists(path string) bool {
	return fo.pathValidator.Exists(path)
}

// IsDir checks if a path is a directory using the path validator
func (fo *FileOps) IsDir(path string) bool {
	return fo.pathValidator.IsDir(path)
}

// IsFile checks if a path is a regular file using the path validator
func (fo *FileOps) IsFile(path string) bool {
	return fo.pathValidator.IsFile(path)
}
