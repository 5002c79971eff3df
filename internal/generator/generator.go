// Package generator turns a discovered package set into ImportFactory.java
// sources on disk.
package generator

import (
	"path"
	"sort"

	"github.com/toyz/importgen/internal/errors"
	"github.com/toyz/importgen/internal/models"
	"github.com/toyz/importgen/internal/templates"
	"github.com/toyz/importgen/internal/utils/fileops"
)

var _ FactoryEmitter = (*Emitter)(nil)

// Emitter renders import factories and writes them below an output directory
type Emitter struct {
	outputDir string
	renderer  *templates.Renderer
	paths     *fileops.PathValidator
	writer    Writer
}

// NewEmitter creates an emitter writing below outputDir
func NewEmitter(outputDir string) *Emitter {
	return NewEmitterWithWriter(outputDir, fileops.NewFileOps())
}

// NewEmitterWithWriter creates an emitter that writes through writer
func NewEmitterWithWriter(outputDir string, writer Writer) *Emitter {
	return &Emitter{
		outputDir: outputDir,
		renderer:  templates.MustNewRenderer(),
		paths:     fileops.NewPathValidator(),
		writer:    writer,
	}
}

// Render returns the factory source for targetPackage without touching disk
func (e *Emitter) Render(targetPackage string, packages []string) (string, error) {
	content, err := e.renderer.RenderImportFactory(targetPackage, packages)
	if err != nil {
		return "", errors.WrapEmissionError(targetPackage, err)
	}
	return content, nil
}

// FactoryPath returns where the factory for targetPackage is written
func (e *Emitter) FactoryPath(targetPackage string) (string, error) {
	rel := path.Join(templates.PackagePath(targetPackage), models.FactoryFileName)
	filePath, err := e.paths.Within(e.outputDir, rel)
	if err != nil {
		return "", errors.WrapEmissionError(targetPackage, err)
	}
	return filePath, nil
}

// Emit writes the factory for targetPackage, replacing any previous file,
// and returns its path
func (e *Emitter) Emit(targetPackage string, packages []string) (string, error) {
	content, err := e.Render(targetPackage, packages)
	if err != nil {
		return "", err
	}

	filePath, err := e.FactoryPath(targetPackage)
	if err != nil {
		return "", err
	}

	if err := e.writer.WriteFile(filePath, []byte(content), fileops.FilePerm); err != nil {
		return "", errors.WrapEmissionError(targetPackage, err).
			WithContext("path", filePath)
	}

	return filePath, nil
}

// EmitAll emits every planned factory in order. It stops at the first
// failure; files already written stay in place.
func (e *Emitter) EmitAll(plan []models.Factory) ([]models.Factory, error) {
	emitted := make([]models.Factory, 0, len(plan))
	for _, factory := range plan {
		filePath, err := e.Emit(factory.TargetPackage, factory.Packages)
		if err != nil {
			return emitted, err
		}
		factory.Path = filePath
		emitted = append(emitted, factory)
	}
	return emitted, nil
}

// Plan decides which factories to emit. With a target package a single
// factory lists every package; without one each package gets its own
// factory declared inside it.
func Plan(targetPackage string, packages []string) []models.Factory {
	unique := sortedUnique(packages)

	if targetPackage != "" {
		return []models.Factory{{TargetPackage: targetPackage, Packages: unique}}
	}

	plan := make([]models.Factory, 0, len(unique))
	for _, pkg := range unique {
		plan = append(plan, models.Factory{TargetPackage: pkg, Packages: []string{pkg}})
	}
	return plan
}

func sortedUnique(packages []string) []string {
	unique := make([]string, 0, len(packages))
	seen := make(map[string]struct{}, len(packages))
	for _, pkg := range packages {
		if _, ok := seen[pkg]; ok {
			continue
		}
		seen[pkg] = struct{}{}
		unique = append(unique, pkg)
	}
	sort.Strings(unique)
	return unique
}
