package utils

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// FileProcessor walks directory trees
type FileProcessor struct {
	fileReader *FileReader
}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{
		fileReader: NewFileReader(),
	}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info fs.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info fs.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
}

// NameFileFilter matches regular files called name
func NameFileFilter(name string) FileFilter {
	return func(path string, info fs.DirEntry) bool {
		return !info.IsDir() && info.Name() == name
	}
}

// DefaultDirectoryFilter skips hidden directories
func DefaultDirectoryFilter() DirectoryFilter {
	return func(path string, info fs.DirEntry) bool {
		name := info.Name()
		return !(strings.HasPrefix(name, ".") && name != "." && name != "..")
	}
}

// WalkFiles walks rootDir and returns the files accepted by the filters in
// lexical order. The root itself is never filtered out.
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})
	if err != nil {
		return matchedFiles, WrapProcessError("directory "+rootDir, err)
	}

	return matchedFiles, nil
}

// GetFileReader returns the underlying FileReader for advanced operations
func (fp *FileProcessor) GetFileReader() *FileReader {
	return fp.fileReader
}
