package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/toyz/importgen/internal/models"
)

// LocalRepository resolves coordinates against a Maven-layout directory
type LocalRepository struct {
	root string
}

// NewLocalRepository creates a resolver rooted at root
func NewLocalRepository(root string) *LocalRepository {
	return &LocalRepository{root: filepath.Clean(root)}
}

// DefaultLocalRepositoryPath returns ~/.m2/repository
func DefaultLocalRepositoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".m2", "repository"), nil
}

// Path returns where the archive for coord lives (or would live) on disk
func (r *LocalRepository) Path(coord models.Coordinate) string {
	return filepath.Join(r.root, filepath.FromSlash(coord.Path()))
}

// Resolve returns the archive path for coord if it is installed
func (r *LocalRepository) Resolve(ctx context.Context, coord models.Coordinate) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if IsMetaVersion(coord.Version) {
		version, err := r.installedVersion(coord)
		if err != nil {
			return "", err
		}
		coord = coord.WithVersion(version)
	}

	path := r.Path(coord)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s in %s", ErrNotFound, coord, r.root)
		}
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", path)
	}

	return path, nil
}

// installedVersion picks the highest installed version holding the archive
func (r *LocalRepository) installedVersion(coord models.Coordinate) (string, error) {
	dir := filepath.Join(r.root, filepath.FromSlash(coord.Dir()))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s in %s", ErrNotFound, coord, r.root)
		}
		return "", fmt.Errorf("failed to list versions in %s: %w", dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(r.Path(coord.WithVersion(entry.Name()))); err == nil {
			candidates = append(candidates, entry.Name())
		}
	}

	version, ok := pickVersion(coord.Version, candidates)
	if !ok {
		return "", fmt.Errorf("%w: no installed %s version of %s", ErrNotFound, coord.Version, coord)
	}
	return version, nil
}

// String describes the repository for logs
func (r *LocalRepository) String() string {
	return "local repository " + r.root
}
