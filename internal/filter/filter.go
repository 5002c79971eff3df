// Package filter compiles the dependency and package filter patterns into
// predicates. Dependency patterns are full matches, package patterns are
// searched for anywhere in the name.
package filter

import (
	"regexp"

	"github.com/toyz/importgen/internal/errors"
)

// Default patterns: include everything, exclude nothing
const (
	DefaultIncludeDependencies = "^.*:.*$"
	DefaultExcludeDependencies = "^$"
	DefaultIncludePackages     = "^.*$"
	DefaultExcludePackages     = "^$"
)

// Parameter names reported in configuration errors
const (
	IncludeDependenciesParam = "includeDependenciesFilter"
	ExcludeDependenciesParam = "excludeDependenciesFilter"
	IncludePackagesParam     = "includePackageFilter"
	ExcludePackagesParam     = "excludePackageFilter"
)

// Patterns holds the raw filter expressions
type Patterns struct {
	IncludeDependencies string
	ExcludeDependencies string
	IncludePackages     string
	ExcludePackages     string
}

// DefaultPatterns returns the include-all, exclude-none patterns
func DefaultPatterns() Patterns {
	return Patterns{
		IncludeDependencies: DefaultIncludeDependencies,
		ExcludeDependencies: DefaultExcludeDependencies,
		IncludePackages:     DefaultIncludePackages,
		ExcludePackages:     DefaultExcludePackages,
	}
}

// Set is the compiled form of Patterns
type Set struct {
	includeDependency *regexp.Regexp
	excludeDependency *regexp.Regexp
	includePackage    *regexp.Regexp
	excludePackage    *regexp.Regexp
}

// Compile compiles all four patterns. Dependency patterns must match the
// whole group:artifact id; package patterns match anywhere in the name
// unless anchored. The first invalid pattern is reported as a configuration
// error naming its parameter.
func Compile(patterns Patterns) (*Set, error) {
	var set Set
	targets := []struct {
		param   string
		pattern string
		full    bool
		dst     **regexp.Regexp
	}{
		{IncludeDependenciesParam, patterns.IncludeDependencies, true, &set.includeDependency},
		{ExcludeDependenciesParam, patterns.ExcludeDependencies, true, &set.excludeDependency},
		{IncludePackagesParam, patterns.IncludePackages, false, &set.includePackage},
		{ExcludePackagesParam, patterns.ExcludePackages, false, &set.excludePackage},
	}

	for _, target := range targets {
		compile := regexp.Compile
		suggestion := "Package patterns use RE2 syntax and match anywhere in the name unless anchored with ^ and $"
		if target.full {
			compile = compileFull
			suggestion = "Dependency patterns use RE2 syntax and must match the whole group:artifact id"
		}

		re, err := compile(target.pattern)
		if err != nil {
			return nil, errors.WrapConfigurationError(target.param, target.pattern, err).
				WithSuggestion(suggestion)
		}
		*target.dst = re
	}

	return &set, nil
}

// compileFull anchors pattern so that it only matches the entire input
func compileFull(pattern string) (*regexp.Regexp, error) {
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, err
	}
	return regexp.Compile(`^(?:` + pattern + `)$`)
}

// Dependency reports whether a group:artifact identifier passes the filters
func (s *Set) Dependency(id string) bool {
	return s.includeDependency.MatchString(id) && !s.excludeDependency.MatchString(id)
}

// Package reports whether a package name passes the filters. A pattern
// matching any part of the name counts.
func (s *Set) Package(name string) bool {
	return s.includePackage.MatchString(name) && !s.excludePackage.MatchString(name)
}
