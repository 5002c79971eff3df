package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectLocator_Locate(t *testing.T) {
	root := t.TempDir()
	pom := filepath.Join(root, POMFileName)
	require.NoError(t, os.WriteFile(pom, []byte("<project/>"), 0o644))

	nested := filepath.Join(root, "module", "src")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	locator := NewProjectLocator()

	t.Run("searches parent directories", func(t *testing.T) {
		path, found, err := locator.Locate("", nested)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, pom, path)
	})

	t.Run("explicit path", func(t *testing.T) {
		path, found, err := locator.Locate(pom, nested)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, pom, path)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, found, err := locator.Locate(filepath.Join(root, "other.xml"), "")
		require.Error(t, err)
		assert.False(t, found)
		assert.Contains(t, err.Error(), "project descriptor not found")
	})
}

func TestProjectLocator_NotFound(t *testing.T) {
	if _, err := os.Stat(filepath.Join(os.TempDir(), POMFileName)); err == nil {
		t.Skip("temporary directory has a pom.xml")
	}

	_, found, err := NewProjectLocator().Locate("", t.TempDir())
	require.NoError(t, err)
	assert.False(t, found)
}
