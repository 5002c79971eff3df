package templates

import "sort"

// Template names
const (
	ImportFactoryTemplate = "import-factory"
)

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerFactoryTemplates()

	return registry
}

// Names returns the registered template names in sorted order
func (tr *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// registerFactoryTemplates registers the Micronaut import factory template.
// Every package literal keeps a trailing comma, the last one included.
func (tr *TemplateRegistry) registerFactoryTemplates() {
	tr.templates[ImportFactoryTemplate] = `package {{.TargetPackage}};

import {{.FactoryAnnotation}};
import {{.ImportAnnotation}};

/** Factory which allows Micronaut to import beans from the specified packages. */
@Factory
@Import(
    packages = {
{{- range .Packages}}
      {{javaString .}},
{{- end}}
    })
public class {{.ClassName}} {}
`
}
