package generator

import (
	"os"

	"github.com/toyz/importgen/internal/models"
)

// FactoryEmitter defines the interface for writing import factories to disk
type FactoryEmitter interface {
	FactoryPath(targetPackage string) (string, error)
	Render(targetPackage string, packages []string) (string, error)
	Emit(targetPackage string, packages []string) (string, error)
	EmitAll(plan []models.Factory) ([]models.Factory, error)
}

// Writer abstracts the file system writes performed by the emitter
type Writer interface {
	WriteFile(filePath string, content []byte, perm os.FileMode) error
}
