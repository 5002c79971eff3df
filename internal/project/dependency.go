package project

import (
	"strings"

	"github.com/toyz/importgen/internal/errors"
	"github.com/toyz/importgen/internal/models"
	"github.com/toyz/importgen/internal/utils"
)

const dependencyParameter = "dependency"

// ParseDependency parses group:artifact:version[:type[:classifier]]
func ParseDependency(spec string) (models.Dependency, error) {
	parts := strings.Split(strings.TrimSpace(spec), ":")
	if len(parts) < 3 || len(parts) > 5 {
		return models.Dependency{}, errors.ConfigurationError(dependencyParameter,
			"expected group:artifact:version[:type[:classifier]], got '"+spec+"'").
			WithContext("value", spec)
	}

	names := []string{"groupId", "artifactId", "version", "type", "classifier"}
	for i, part := range parts {
		if err := utils.IsCoordinatePart(names[i])(part); err != nil {
			return models.Dependency{}, errors.WrapConfigurationError(dependencyParameter, spec, err)
		}
	}

	dep := models.Dependency{
		GroupID:    parts[0],
		ArtifactID: parts[1],
		Version:    parts[2],
		Type:       defaultType,
		Scope:      defaultScope,
	}
	if len(parts) > 3 {
		dep.Type = parts[3]
	}
	if len(parts) > 4 {
		dep.Classifier = models.StringPtr(parts[4])
	}
	return dep, nil
}

// ParseDependencies parses every spec, stopping at the first invalid one
func ParseDependencies(specs []string) ([]models.Dependency, error) {
	deps := make([]models.Dependency, 0, len(specs))
	for _, spec := range specs {
		dep, err := ParseDependency(spec)
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}
	return deps, nil
}
