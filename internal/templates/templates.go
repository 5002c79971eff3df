// Package templates renders the Java sources emitted by the generator.
package templates

import (
	"bytes"
	"text/template"

	"github.com/toyz/importgen/internal/errors"
)

// FactoryData is the input of the import factory template
type FactoryData struct {
	TargetPackage     string
	Packages          []string
	ClassName         string
	FactoryAnnotation string
	ImportAnnotation  string
}

// NewFactoryData builds template data for a factory in targetPackage
func NewFactoryData(targetPackage string, packages []string) FactoryData {
	return FactoryData{
		TargetPackage:     targetPackage,
		Packages:          packages,
		ClassName:         FactoryClassName,
		FactoryAnnotation: FactoryAnnotation,
		ImportAnnotation:  ImportAnnotation,
	}
}

var funcMap = template.FuncMap{
	"javaString": JavaString,
}

// Renderer executes registered templates
type Renderer struct {
	registry *TemplateRegistry
	parsed   map[string]*template.Template
}

// NewRenderer parses every registered template up front
func NewRenderer() (*Renderer, error) {
	registry := NewTemplateRegistry()
	renderer := &Renderer{
		registry: registry,
		parsed:   make(map[string]*template.Template),
	}

	for _, name := range registry.Names() {
		text, _ := registry.Get(name)
		tmpl, err := template.New(name).Funcs(funcMap).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, errors.Wrapf(errors.EmissionErrorCode, err, "failed to parse template '%s'", name)
		}
		renderer.parsed[name] = tmpl
	}

	return renderer, nil
}

// MustNewRenderer is NewRenderer for the built-in templates, which always parse
func MustNewRenderer() *Renderer {
	renderer, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return renderer
}

// Execute renders the named template with data
func (r *Renderer) Execute(name string, data interface{}) (string, error) {
	tmpl, ok := r.parsed[name]
	if !ok {
		return "", errors.Newf(errors.EmissionErrorCode, "template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(errors.EmissionErrorCode, err, "failed to execute template '%s'", name)
	}

	return buf.String(), nil
}

// RenderImportFactory renders the import factory source for targetPackage
func (r *Renderer) RenderImportFactory(targetPackage string, packages []string) (string, error) {
	return r.Execute(ImportFactoryTemplate, NewFactoryData(targetPackage, packages))
}
