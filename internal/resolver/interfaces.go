// Package resolver turns dependency coordinates into local archive files.
package resolver

import (
	"context"
	stderrors "errors"

	"github.com/toyz/importgen/internal/models"
)

// ErrNotFound is returned (wrapped) when a repository does not hold a coordinate
var ErrNotFound = stderrors.New("artifact not found")

// Meta versions resolved against repository metadata instead of a directory
const (
	VersionLatest  = "LATEST"
	VersionRelease = "RELEASE"
)

// Resolver returns the local path of the archive addressed by a coordinate
type Resolver interface {
	Resolve(ctx context.Context, coord models.Coordinate) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface
type ResolverFunc func(ctx context.Context, coord models.Coordinate) (string, error)

// Resolve calls f
func (f ResolverFunc) Resolve(ctx context.Context, coord models.Coordinate) (string, error) {
	return f(ctx, coord)
}

// IsMetaVersion reports whether version must be looked up in repository metadata
func IsMetaVersion(version string) bool {
	return version == VersionLatest || version == VersionRelease
}
