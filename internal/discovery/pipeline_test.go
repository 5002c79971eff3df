package discovery

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/importgen/internal/archive"
	"github.com/toyz/importgen/internal/errors"
	"github.com/toyz/importgen/internal/filter"
	"github.com/toyz/importgen/internal/models"
	"github.com/toyz/importgen/internal/resolver"
	"github.com/toyz/importgen/internal/testutil"
)

// recordingLogger captures formatted lines per level
type recordingLogger struct {
	info    []string
	verbose []string
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.verbose = append(l.verbose, fmt.Sprintf(format, args...))
}

// recordingResolver remembers every coordinate it was asked for
type recordingResolver struct {
	next      resolver.Resolver
	requested []string
}

func (r *recordingResolver) Resolve(ctx context.Context, coord models.Coordinate) (string, error) {
	r.requested = append(r.requested, coord.String())
	return r.next.Resolve(ctx, coord)
}

func compile(t *testing.T, mutate func(*filter.Patterns)) *filter.Set {
	t.Helper()
	patterns := filter.DefaultPatterns()
	if mutate != nil {
		mutate(&patterns)
	}
	set, err := filter.Compile(patterns)
	require.NoError(t, err)
	return set
}

func setupRepository(t *testing.T) (string, []models.Dependency) {
	t.Helper()
	root := t.TempDir()

	a := testutil.Dependency("g", "a", "1.0")
	b := testutil.Dependency("g", "b", "1.0")
	testutil.InstallJar(t, root, a.Coordinate(),
		"io/codegen/shared/Shared.class",
		"io/codegen/alpha/Alpha.class",
		"RootClass.class",
	)
	testutil.InstallJar(t, root, b.Coordinate(),
		"io/codegen/beta/Beta.class",
		"io/codegen/shared/Other.class",
		"META-INF/versions/11/io/codegen/beta/Beta.class",
	)

	return root, []models.Dependency{b, a}
}

func TestPipeline_Discover(t *testing.T) {
	root, deps := setupRepository(t)
	ctx := context.Background()

	t.Run("union is sorted and unique", func(t *testing.T) {
		logger := &recordingLogger{}
		pipeline := New(resolver.NewLocalRepository(root), archive.NewScanner(), logger)

		result, err := pipeline.Discover(ctx, deps, compile(t, nil))

		require.NoError(t, err)
		assert.Equal(t, []string{"io.codegen.alpha", "io.codegen.beta", "io.codegen.shared"}, result.Packages)
		assert.Equal(t, result.Packages, result.Discovered)
		assert.Len(t, result.MatchedDependencies, 2)

		assert.Contains(t, logger.info, "Number of matching dependencies: 2")
		assert.Contains(t, logger.info, "Filtered Packages:")
		assert.Contains(t, logger.info, " io.codegen.shared")
		verbose := strings.Join(logger.verbose, "\n")
		assert.Contains(t, verbose, "Ignored 1 class(es) without a package")
		assert.Contains(t, verbose, "Mapped 1 multi-release class(es)")
	})

	t.Run("matched dependencies are logged sorted", func(t *testing.T) {
		logger := &recordingLogger{}
		pipeline := New(resolver.NewLocalRepository(root), archive.NewScanner(), logger)

		_, err := pipeline.Discover(ctx, deps, compile(t, nil))
		require.NoError(t, err)

		require.GreaterOrEqual(t, len(logger.info), 3)
		assert.Equal(t, []string{"Number of matching dependencies: 2", " g:a", " g:b"}, logger.info[:3])
	})

	t.Run("excluded dependency is never resolved", func(t *testing.T) {
		rec := &recordingResolver{next: resolver.NewLocalRepository(root)}
		pipeline := New(rec, archive.NewScanner(), nil)

		result, err := pipeline.Discover(ctx, deps, compile(t, func(p *filter.Patterns) {
			p.ExcludeDependencies = `^g:b$`
		}))

		require.NoError(t, err)
		assert.Equal(t, []string{"g:a:jar:1.0"}, rec.requested)
		assert.Equal(t, []string{"io.codegen.alpha", "io.codegen.shared"}, result.Packages)
	})

	t.Run("exclusion wins regardless of include", func(t *testing.T) {
		rec := &recordingResolver{next: resolver.NewLocalRepository(root)}
		pipeline := New(rec, archive.NewScanner(), nil)

		result, err := pipeline.Discover(ctx, deps, compile(t, func(p *filter.Patterns) {
			p.IncludeDependencies = `g:.*`
			p.ExcludeDependencies = `g:.*`
		}))

		require.NoError(t, err)
		assert.Empty(t, rec.requested)
		assert.Empty(t, result.Packages)
	})

	t.Run("package filters", func(t *testing.T) {
		pipeline := New(resolver.NewLocalRepository(root), archive.NewScanner(), nil)

		result, err := pipeline.Discover(ctx, deps, compile(t, func(p *filter.Patterns) {
			p.IncludePackages = `io\.codegen\..*`
			p.ExcludePackages = `^io\.codegen\.shared$`
		}))

		require.NoError(t, err)
		assert.Equal(t, []string{"io.codegen.alpha", "io.codegen.beta"}, result.Packages)
		assert.Equal(t, []string{"io.codegen.alpha", "io.codegen.beta", "io.codegen.shared"}, result.Discovered)
	})

	t.Run("no dependencies", func(t *testing.T) {
		pipeline := New(resolver.NewLocalRepository(root), archive.NewScanner(), nil)

		result, err := pipeline.Discover(ctx, nil, compile(t, nil))

		require.NoError(t, err)
		assert.Empty(t, result.Packages)
		assert.Empty(t, result.MatchedDependencies)
	})
}

func TestPipeline_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("resolution failure is fatal", func(t *testing.T) {
		root, deps := setupRepository(t)
		missing := testutil.Dependency("g", "missing", "1.0")
		pipeline := New(resolver.NewLocalRepository(root), archive.NewScanner(), nil)

		result, err := pipeline.Discover(ctx, append(deps, missing), compile(t, nil))

		assert.Nil(t, result)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ResolutionErrorCode))
		assert.True(t, stderrors.Is(err, resolver.ErrNotFound), "underlying cause is kept")
		assert.Contains(t, err.Error(), "g:missing:jar:1.0")
	})

	t.Run("unreadable archive is fatal", func(t *testing.T) {
		root := t.TempDir()
		dep := testutil.Dependency("g", "broken", "1.0")
		path := filepath.Join(root, filepath.FromSlash(dep.Coordinate().Path()))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("not a jar"), 0644))

		pipeline := New(resolver.NewLocalRepository(root), archive.NewScanner(), nil)

		result, err := pipeline.Discover(ctx, []models.Dependency{dep}, compile(t, nil))

		assert.Nil(t, result)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ArchiveErrorCode))
		assert.Contains(t, err.Error(), path)
	})
}
