// Package project loads the build model of the project factories are
// generated for.
package project

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/toyz/importgen/internal/errors"
	"github.com/toyz/importgen/internal/models"
	"github.com/toyz/importgen/internal/utils"
)

const (
	defaultType     = "jar"
	defaultScope    = "compile"
	defaultBuildDir = "target"

	// maxParentDepth bounds the <parent> chain followed on disk
	maxParentDepth = 16
	// maxInterpolationPasses bounds nested ${...} expansion
	maxInterpolationPasses = 8
)

var propertyReference = regexp.MustCompile(`\$\{([^}]+)\}`)

// Loader reads pom.xml files and their local parents
type Loader struct {
	reader *utils.FileReader
}

// NewLoader creates a loader with its own file cache
func NewLoader() *Loader {
	return &Loader{reader: utils.NewFileReader()}
}

// Load reads the project described by the pom.xml at path. Properties,
// group, version and managed dependency versions are inherited from parents
// found through <relativePath> (../pom.xml when absent).
func (l *Loader) Load(path string) (*models.Project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("resolve", path, err)
	}

	pom, err := l.read(absPath)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(absPath)
	properties, managed := l.inherit(pom, baseDir, 0)

	groupID := pom.GroupID
	version := pom.Version
	if pom.Parent != nil {
		if groupID == "" {
			groupID = pom.Parent.GroupID
		}
		if version == "" {
			version = pom.Parent.Version
		}
	}

	scope := &interpolator{
		properties: properties,
		builtins: map[string]string{
			"project.groupId":    groupID,
			"project.artifactId": pom.ArtifactID,
			"project.version":    version,
			"project.basedir":    baseDir,
			"basedir":            baseDir,
			"groupId":            groupID,
			"artifactId":         pom.ArtifactID,
			"version":            version,
		},
	}
	if pom.Parent != nil {
		scope.builtins["project.parent.groupId"] = pom.Parent.GroupID
		scope.builtins["project.parent.version"] = pom.Parent.Version
	}

	buildDir := filepath.Join(baseDir, defaultBuildDir)
	if dir := scope.expand(pom.Build.Directory); dir != "" {
		buildDir = dir
		if !filepath.IsAbs(buildDir) {
			buildDir = filepath.Join(baseDir, buildDir)
		}
	}
	scope.builtins["project.build.directory"] = buildDir

	project := &models.Project{
		GroupID:    scope.expand(groupID),
		ArtifactID: scope.expand(pom.ArtifactID),
		Version:    scope.expand(version),
		BaseDir:    baseDir,
		BuildDir:   filepath.Clean(buildDir),
	}

	for _, dep := range pom.Dependencies {
		if dep.Version == "" {
			if managedDep, ok := managed[dep.managementKey()]; ok {
				dep.Version = managedDep.Version
				if dep.Scope == "" {
					dep.Scope = managedDep.Scope
				}
			}
		}
		project.Dependencies = append(project.Dependencies, scope.dependency(dep))
	}

	return project, nil
}

// FromDependencies builds a project without a descriptor, rooted at baseDir
func FromDependencies(baseDir string, deps []models.Dependency) *models.Project {
	return &models.Project{
		BaseDir:      baseDir,
		BuildDir:     filepath.Join(baseDir, defaultBuildDir),
		Dependencies: append([]models.Dependency(nil), deps...),
	}
}

func (l *Loader) read(path string) (*pomFile, error) {
	var pom pomFile
	if err := l.reader.ReadXML(path, &pom); err != nil {
		return nil, errors.Wrap(errors.ConfigurationErrorCode, "unable to load project descriptor "+path, err).
			WithContext("pom", path).
			WithSuggestion("Point -pom at a readable pom.xml or pass dependencies with -dependency")
	}
	return &pom, nil
}

// inherit merges properties and dependency management from pom and its
// local parents. Entries closer to the project win.
func (l *Loader) inherit(pom *pomFile, baseDir string, depth int) (map[string]string, map[string]pomDependency) {
	properties := make(map[string]string)
	managed := make(map[string]pomDependency)

	if parentPath, ok := l.parentPath(pom, baseDir); ok && depth < maxParentDepth {
		if parent, err := l.read(parentPath); err == nil && matchesParent(parent, pom.Parent) {
			parentProperties, parentManaged := l.inherit(parent, filepath.Dir(parentPath), depth+1)
			for name, value := range parentProperties {
				properties[name] = value
			}
			for key, dep := range parentManaged {
				managed[key] = dep
			}
		}
	}

	for name, value := range pom.Properties {
		properties[name] = value
	}
	for _, dep := range pom.DependencyManagement.Dependencies {
		managed[dep.managementKey()] = dep
	}

	return properties, managed
}

func (l *Loader) parentPath(pom *pomFile, baseDir string) (string, bool) {
	if pom.Parent == nil {
		return "", false
	}

	relative := "../pom.xml"
	if pom.Parent.RelativePath != nil {
		relative = strings.TrimSpace(*pom.Parent.RelativePath)
	}
	if relative == "" {
		return "", false
	}

	candidate := filepath.Join(baseDir, filepath.FromSlash(relative))
	if info, err := os.Stat(candidate); err == nil && info.IsDir() {
		candidate = filepath.Join(candidate, "pom.xml")
	}
	if _, err := os.Stat(candidate); err != nil {
		return "", false
	}
	return candidate, true
}

func matchesParent(parent *pomFile, ref *pomParent) bool {
	groupID := parent.GroupID
	if groupID == "" && parent.Parent != nil {
		groupID = parent.Parent.GroupID
	}
	return groupID == ref.GroupID && parent.ArtifactID == ref.ArtifactID
}

// interpolator expands ${name} references
type interpolator struct {
	properties map[string]string
	builtins   map[string]string
}

func (s *interpolator) lookup(name string) (string, bool) {
	if value, ok := s.properties[name]; ok {
		return value, true
	}
	if value, ok := s.builtins[name]; ok {
		return value, true
	}
	if env, ok := strings.CutPrefix(name, "env."); ok {
		return os.LookupEnv(env)
	}
	return "", false
}

// expand replaces known references, leaving unknown ones untouched
func (s *interpolator) expand(value string) string {
	value = strings.TrimSpace(value)
	for i := 0; i < maxInterpolationPasses && strings.Contains(value, "${"); i++ {
		next := propertyReference.ReplaceAllStringFunc(value, func(ref string) string {
			if resolved, ok := s.lookup(ref[2 : len(ref)-1]); ok {
				return resolved
			}
			return ref
		})
		if next == value {
			break
		}
		value = next
	}
	return value
}

func (s *interpolator) dependency(dep pomDependency) models.Dependency {
	result := models.Dependency{
		GroupID:    s.expand(dep.GroupID),
		ArtifactID: s.expand(dep.ArtifactID),
		Version:    s.expand(dep.Version),
		Type:       s.expand(dep.typeOrDefault()),
		Scope:      s.expand(dep.Scope),
	}
	if result.Scope == "" {
		result.Scope = defaultScope
	}
	if dep.Classifier != nil {
		if classifier := s.expand(*dep.Classifier); classifier != "" {
			result.Classifier = models.StringPtr(classifier)
		}
	}
	return result
}
