package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/importgen/internal/generator"
	"github.com/toyz/importgen/internal/models"
)

func TestCleaner_CleanGeneratedFiles(t *testing.T) {
	outputDir := t.TempDir()

	emitter := generator.NewEmitter(outputDir)
	generated, err := emitter.Emit("io.codegen.first", []string{"io.codegen.first"})
	require.NoError(t, err)

	handWritten := filepath.Join(outputDir, "com", "example", models.FactoryFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(handWritten), 0o755))
	require.NoError(t, os.WriteFile(handWritten, []byte("package com.example;\n\npublic class ImportFactory {\n}\n"), 0o644))

	broken := filepath.Join(outputDir, "org", "broken", models.FactoryFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(broken), 0o755))
	require.NoError(t, os.WriteFile(broken, []byte("not java"), 0o644))

	hidden, err := generator.NewEmitter(filepath.Join(outputDir, ".cache")).Emit("io.codegen.hidden", []string{"io.codegen.hidden"})
	require.NoError(t, err)

	removed, err := NewCleaner().CleanGeneratedFiles(outputDir)
	require.NoError(t, err)

	assert.Equal(t, []string{generated}, removed)
	assert.NoFileExists(t, generated)
	assert.FileExists(t, handWritten)
	assert.FileExists(t, broken)
	assert.FileExists(t, hidden)
}

func TestCleaner_MissingDirectory(t *testing.T) {
	removed, err := NewCleaner().CleanGeneratedFiles(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, removed)
}
