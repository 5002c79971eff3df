// Package testutil builds archive and repository fixtures for tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
	"github.com/toyz/importgen/internal/models"
)

// CodegenEntries are the class entries of the three-package stub archive
var CodegenEntries = []string{
	"io/codegen/first/FirstClass.class",
	"io/codegen/second/SecondClass.class",
	"io/codegen/third/ThirdClass.class",
}

// WriteJar creates dir/name as a zip archive holding empty entries
func WriteJar(t testing.TB, dir, name string, entries ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	writer := zip.NewWriter(file)
	for _, entry := range entries {
		_, err := writer.Create(entry)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return path
}

// JarBytes returns a zip archive holding empty entries
func JarBytes(t testing.TB, entries ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, entry := range entries {
		_, err := writer.Create(entry)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return buf.Bytes()
}

// InstallJar writes an archive for coord into a Maven-layout repository at root
func InstallJar(t testing.TB, root string, coord models.Coordinate, entries ...string) string {
	t.Helper()
	return WriteJar(t, root, filepath.FromSlash(coord.Path()), entries...)
}

// Dependency builds a jar dependency without classifier
func Dependency(group, artifact, version string) models.Dependency {
	return models.Dependency{
		GroupID:    group,
		ArtifactID: artifact,
		Version:    version,
		Type:       "jar",
		Scope:      "compile",
	}
}
