// Package discovery resolves the project's dependencies and collects the
// package names their archives contain.
package discovery

import (
	"context"
	"sort"

	"github.com/toyz/importgen/internal/archive"
	"github.com/toyz/importgen/internal/errors"
	"github.com/toyz/importgen/internal/filter"
	"github.com/toyz/importgen/internal/models"
	"github.com/toyz/importgen/internal/resolver"
)

// Logger receives the pipeline's progress output
type Logger interface {
	Info(format string, args ...interface{})
	Verbose(format string, args ...interface{})
}

// ArchiveScanner derives package names from an archive file
type ArchiveScanner interface {
	ScanDetailed(path string) (*archive.Result, error)
}

// Result is the outcome of a discovery run
type Result struct {
	MatchedDependencies []models.Dependency // dependencies that passed the filters, in project order
	Discovered          []string            // union of all scanned packages, sorted
	Packages            []string            // Discovered after package filters, sorted
}

// Pipeline filters dependencies, resolves and scans their archives and
// filters the resulting package names
type Pipeline struct {
	resolver resolver.Resolver
	scanner  ArchiveScanner
	logger   Logger
}

// New creates a discovery pipeline. A nil logger discards output.
func New(r resolver.Resolver, scanner ArchiveScanner, logger Logger) *Pipeline {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Pipeline{
		resolver: r,
		scanner:  scanner,
		logger:   logger,
	}
}

// Discover runs the pipeline over deps. Any resolution or archive failure
// aborts the run; no partial result is returned.
func (p *Pipeline) Discover(ctx context.Context, deps []models.Dependency, filters *filter.Set) (*Result, error) {
	matched := p.matchDependencies(deps, filters)

	union := make(map[string]struct{})
	for _, dep := range matched {
		packages, err := p.packagesOf(ctx, dep)
		if err != nil {
			return nil, err
		}
		for _, pkg := range packages {
			union[pkg] = struct{}{}
		}
	}

	result := &Result{
		MatchedDependencies: matched,
		Discovered:          make([]string, 0, len(union)),
		Packages:            make([]string, 0, len(union)),
	}
	for pkg := range union {
		result.Discovered = append(result.Discovered, pkg)
	}
	sort.Strings(result.Discovered)

	for _, pkg := range result.Discovered {
		if filters.Package(pkg) {
			result.Packages = append(result.Packages, pkg)
		}
	}

	p.logger.Info("Filtered Packages:")
	for _, pkg := range result.Packages {
		p.logger.Info(" %s", pkg)
	}

	return result, nil
}

// matchDependencies keeps the dependencies whose group:artifact passes the filters
func (p *Pipeline) matchDependencies(deps []models.Dependency, filters *filter.Set) []models.Dependency {
	matched := make([]models.Dependency, 0, len(deps))
	for _, dep := range deps {
		if filters.Dependency(dep.ID()) {
			matched = append(matched, dep)
		}
	}

	p.logger.Info("Number of matching dependencies: %d", len(matched))

	ids := make([]string, 0, len(matched))
	for _, dep := range matched {
		ids = append(ids, dep.ID())
	}
	sort.Strings(ids)
	for _, id := range ids {
		p.logger.Info(" %s", id)
	}

	return matched
}

// packagesOf resolves a single dependency and scans its archive
func (p *Pipeline) packagesOf(ctx context.Context, dep models.Dependency) ([]string, error) {
	p.logger.Info(" processing %s", dep)

	coord := dep.Coordinate()
	path, err := p.resolver.Resolve(ctx, coord)
	if err != nil {
		return nil, errors.WrapResolutionError(coord.String(), err).
			WithContext("dependency", dep.ID()).
			WithSuggestions(
				"Check that the dependency version exists in the configured repositories",
				"Install the artifact into the local repository or add a remote repository",
			)
	}

	p.logger.Info("Resolved artifact %s to %s", coord, path)

	scan, err := p.scanner.ScanDetailed(path)
	if err != nil {
		return nil, err
	}

	if len(scan.RootClasses) > 0 {
		p.logger.Verbose("Ignored %d class(es) without a package in %s", len(scan.RootClasses), path)
	}
	if scan.OverlayClasses > 0 {
		p.logger.Verbose("Mapped %d multi-release class(es) onto their base packages in %s", scan.OverlayClasses, path)
	}

	return scan.Packages, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Verbose(string, ...interface{}) {}
