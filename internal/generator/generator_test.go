package generator

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/importgen/internal/errors"
	"github.com/toyz/importgen/internal/factory"
	"github.com/toyz/importgen/internal/models"
)

var codegenPackages = []string{"io.codegen.first", "io.codegen.second", "io.codegen.third"}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestPlan(t *testing.T) {
	t.Run("fan-out", func(t *testing.T) {
		plan := Plan("", codegenPackages)

		require.Len(t, plan, 3)
		for i, pkg := range codegenPackages {
			assert.Equal(t, pkg, plan[i].TargetPackage)
			assert.Equal(t, []string{pkg}, plan[i].Packages)
		}
	})

	t.Run("aggregation", func(t *testing.T) {
		plan := Plan("com.example.gen", codegenPackages)

		require.Len(t, plan, 1)
		assert.Equal(t, "com.example.gen", plan[0].TargetPackage)
		assert.Equal(t, codegenPackages, plan[0].Packages)
	})

	t.Run("sorts and deduplicates", func(t *testing.T) {
		plan := Plan("x", []string{"b", "a", "b"})

		require.Len(t, plan, 1)
		assert.Equal(t, []string{"a", "b"}, plan[0].Packages)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Plan("", nil))

		plan := Plan("com.example.gen", nil)
		require.Len(t, plan, 1)
		assert.Empty(t, plan[0].Packages)
	})

	t.Run("input left untouched", func(t *testing.T) {
		input := []string{"b", "a"}
		Plan("x", input)
		assert.Equal(t, []string{"b", "a"}, input)
	})
}

func TestEmitter_FanOut(t *testing.T) {
	out := t.TempDir()
	emitter := NewEmitter(out)

	emitted, err := emitter.EmitAll(Plan("", codegenPackages))
	require.NoError(t, err)
	require.Len(t, emitted, len(codegenPackages))

	for i, pkg := range codegenPackages {
		expected := filepath.Join(out, filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/")), models.FactoryFileName)
		assert.Equal(t, expected, emitted[i].Path)

		content := readFile(t, expected)
		assert.Contains(t, content, "package "+pkg+";\n")

		parsed, err := factory.Parse(content)
		require.NoError(t, err)
		assert.Equal(t, []string{pkg}, parsed.Packages())
	}
}

func TestEmitter_Aggregation(t *testing.T) {
	out := t.TempDir()
	emitter := NewEmitter(out)

	emitted, err := emitter.EmitAll(Plan("com.example.gen", codegenPackages))
	require.NoError(t, err)
	require.Len(t, emitted, 1)

	path := filepath.Join(out, "com", "example", "gen", models.FactoryFileName)
	assert.Equal(t, path, emitted[0].Path)

	content := readFile(t, path)
	assert.Contains(t, content, "package com.example.gen;\n")
	assert.Contains(t, content,
		"    packages = {\n      \"io.codegen.first\",\n      \"io.codegen.second\",\n      \"io.codegen.third\",\n    })\n")

	parsed, err := factory.Parse(content)
	require.NoError(t, err)
	assert.Equal(t, codegenPackages, parsed.Packages())

	entries, err := os.ReadDir(filepath.Join(out, "com", "example", "gen"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestEmitter_Idempotent(t *testing.T) {
	out := t.TempDir()
	emitter := NewEmitter(out)

	path, err := emitter.Emit("com.example.gen", codegenPackages)
	require.NoError(t, err)
	first := readFile(t, path)

	_, err = emitter.Emit("com.example.gen", codegenPackages)
	require.NoError(t, err)
	assert.Equal(t, first, readFile(t, path))
}

func TestEmitter_ReplacesExistingFile(t *testing.T) {
	out := t.TempDir()
	emitter := NewEmitter(out)

	path, err := emitter.FactoryPath("com.example.gen")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("stale content that is much longer than anything rendered later on"), 0o644))

	_, err = emitter.Emit("com.example.gen", []string{"a.b"})
	require.NoError(t, err)

	rendered, err := emitter.Render("com.example.gen", []string{"a.b"})
	require.NoError(t, err)
	assert.Equal(t, rendered, readFile(t, path))
}

func TestEmitter_EmitFailureNamesPackage(t *testing.T) {
	out := t.TempDir()
	// a regular file where a package directory has to go
	require.NoError(t, os.WriteFile(filepath.Join(out, "com"), []byte("x"), 0o644))

	_, err := NewEmitter(out).Emit("com.example.gen", codegenPackages)

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.EmissionErrorCode))
	assert.Contains(t, err.Error(), "com.example.gen")
}

type failingWriter struct {
	calls  int
	failOn int
}

func (w *failingWriter) WriteFile(filePath string, content []byte, perm os.FileMode) error {
	w.calls++
	if w.calls == w.failOn {
		return stderrors.New("disk full")
	}
	return nil
}

func TestEmitter_EmitAllStopsAtFirstFailure(t *testing.T) {
	writer := &failingWriter{failOn: 2}
	emitter := NewEmitterWithWriter(t.TempDir(), writer)

	emitted, err := emitter.EmitAll(Plan("", codegenPackages))

	require.Error(t, err)
	assert.Equal(t, 2, writer.calls)
	require.Len(t, emitted, 1)
	assert.Equal(t, "io.codegen.first", emitted[0].TargetPackage)
	assert.Contains(t, err.Error(), "io.codegen.second")
	assert.Contains(t, err.Error(), "disk full")
}
