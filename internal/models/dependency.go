package models

import (
	"path"
	"strings"
)

// Dependency represents a dependency declared by the project
type Dependency struct {
	GroupID    string  // e.g. io.micronaut
	ArtifactID string  // e.g. micronaut-inject
	Version    string  // declared version, already interpolated
	Type       string  // packaging type, "jar" when not declared
	Classifier *string // nil when the dependency has no classifier
	Scope      string  // compile, runtime, test, ...
}

// ID returns the group:artifact identifier used for filtering
func (d Dependency) ID() string {
	return d.GroupID + ":" + d.ArtifactID
}

// String returns group:artifact:type:version as logged while processing
func (d Dependency) String() string {
	return d.GroupID + ":" + d.ArtifactID + ":" + d.Type + ":" + d.Version
}

// Coordinate projects the dependency into the address a resolver accepts
func (d Dependency) Coordinate() Coordinate {
	return Coordinate{
		GroupID:    d.GroupID,
		ArtifactID: d.ArtifactID,
		Version:    d.Version,
		Extension:  d.Type,
		Classifier: d.Classifier,
	}
}

// Coordinate addresses a single archive in an artifact repository
type Coordinate struct {
	GroupID    string
	ArtifactID string
	Version    string
	Extension  string
	Classifier *string
}

// HasClassifier reports whether the coordinate carries a non-empty classifier
func (c Coordinate) HasClassifier() bool {
	return c.Classifier != nil && *c.Classifier != ""
}

// String renders group:artifact:extension[:classifier]:version
func (c Coordinate) String() string {
	parts := []string{c.GroupID, c.ArtifactID, c.Extension}
	if c.HasClassifier() {
		parts = append(parts, *c.Classifier)
	}
	parts = append(parts, c.Version)
	return strings.Join(parts, ":")
}

// WithVersion returns a copy of the coordinate pointing at another version
func (c Coordinate) WithVersion(version string) Coordinate {
	c.Version = version
	return c
}

// Dir returns the repository directory holding every version of the artifact
func (c Coordinate) Dir() string {
	return path.Join(strings.ReplaceAll(c.GroupID, ".", "/"), c.ArtifactID)
}

// FileName returns artifact-version[-classifier].extension
func (c Coordinate) FileName() string {
	name := c.ArtifactID + "-" + c.Version
	if c.HasClassifier() {
		name += "-" + *c.Classifier
	}
	return name + "." + c.Extension
}

// Path returns the slash-separated repository layout path of the archive
func (c Coordinate) Path() string {
	return path.Join(c.Dir(), c.Version, c.FileName())
}

// StringPtr returns a pointer to s, for optional fields such as Classifier
func StringPtr(s string) *string {
	return &s
}
