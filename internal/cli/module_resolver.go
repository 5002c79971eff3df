package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/toyz/importgen/internal/utils/fileops"
)

// POMFileName is the Maven project descriptor name
const POMFileName = "pom.xml"

// ProjectLocator finds the project descriptor a run applies to
type ProjectLocator struct {
	files *fileops.FileOps
}

// NewProjectLocator creates a new project locator
func NewProjectLocator() *ProjectLocator {
	return &ProjectLocator{files: fileops.NewFileOps()}
}

// Locate returns explicit when set, failing if it does not exist. Otherwise
// it searches startDir and its parents for pom.xml and reports false when
// there is none.
func (l *ProjectLocator) Locate(explicit, startDir string) (string, bool, error) {
	if explicit != "" {
		if !l.files.IsFile(explicit) {
			return "", false, fmt.Errorf("project descriptor not found: %s", explicit)
		}
		return explicit, true, nil
	}

	if startDir == "" {
		dir, err := os.Getwd()
		if err != nil {
			return "", false, fmt.Errorf("failed to get current directory: %w", err)
		}
		startDir = dir
	}

	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, err
	}

	for {
		candidate := filepath.Join(currentDir, POMFileName)
		if l.files.IsFile(candidate) {
			return candidate, true, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false, nil
		}
		currentDir = parentDir
	}
}
