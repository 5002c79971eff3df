package cli

import (
	"github.com/toyz/importgen/internal/errors"
	"github.com/toyz/importgen/internal/factory"
	"github.com/toyz/importgen/internal/models"
	"github.com/toyz/importgen/internal/utils"
	"github.com/toyz/importgen/internal/utils/fileops"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	processor *utils.FileProcessor
	files     *fileops.FileOps
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		processor: utils.NewFileProcessor(),
		files:     fileops.NewFileOps(),
	}
}

// CleanGeneratedFiles removes every ImportFactory.java below outputDir that
// parses as a generated import factory and returns the removed paths.
// Files that do not parse, or declare something else, are left alone. A
// missing output directory means there is nothing to clean.
func (c *Cleaner) CleanGeneratedFiles(outputDir string) ([]string, error) {
	if !c.files.IsDir(outputDir) {
		return nil, nil
	}

	candidates, err := c.processor.WalkFiles(outputDir, utils.FileWalkOptions{
		FileFilter:      utils.NameFileFilter(models.FactoryFileName),
		DirectoryFilter: utils.DefaultDirectoryFilter(),
	})
	if err != nil {
		return nil, errors.WrapFileSystemError("scan", outputDir, err)
	}

	reader := c.processor.GetFileReader()
	var removed []string
	for _, path := range candidates {
		source, err := reader.ReadFile(path)
		if err != nil {
			return removed, errors.WrapFileSystemError("read", path, err)
		}

		parsed, err := factory.ParseNamed(path, string(source))
		if err != nil || !parsed.IsImportFactory() {
			continue
		}

		if err := c.files.RemoveFile(path); err != nil {
			return removed, err
		}
		reader.InvalidateFile(path)
		removed = append(removed, path)
	}

	return removed, nil
}
