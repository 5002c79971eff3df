package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/importgen/internal/models"
	"github.com/toyz/importgen/internal/testutil"
)

type cliRun struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, workDir string, vars map[string]string, args ...string) cliRun {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, environment{
		workDir: workDir,
		stdout:  &stdout,
		stderr:  &stderr,
		lookupEnv: func(key string) (string, bool) {
			value, ok := vars[key]
			return value, ok
		},
	})
	return cliRun{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func installStub(t *testing.T) string {
	t.Helper()
	repo := t.TempDir()
	coord := testutil.Dependency("io.codegen", "stub", "1.0.0").Coordinate()
	testutil.InstallJar(t, repo, coord, testutil.CodegenEntries...)
	return repo
}

func TestRun_Help(t *testing.T) {
	result := runCLI(t, t.TempDir(), nil, "-help")

	assert.Equal(t, 0, result.code)
	assert.Contains(t, result.stderr, "Usage: importgen [options]")
	assert.Contains(t, result.stderr, "-target-package")
	assert.Contains(t, result.stderr, "IMPORTGEN_TARGET_PACKAGE")
}

func TestRun_UnknownFlag(t *testing.T) {
	result := runCLI(t, t.TempDir(), nil, "-no-such-flag")
	assert.Equal(t, 2, result.code)
}

func TestRun_UnexpectedArguments(t *testing.T) {
	result := runCLI(t, t.TempDir(), nil, "./...")

	assert.Equal(t, 2, result.code)
	assert.Contains(t, result.stderr, "unexpected arguments")
}

func TestRun_Generate(t *testing.T) {
	workDir := t.TempDir()
	repo := installStub(t)

	result := runCLI(t, workDir, nil,
		"-local-repository", repo,
		"-dependency", "io.codegen:stub:1.0.0",
		"-output", "generated",
		"-target-package", "com.example.gen",
	)
	require.Equal(t, 0, result.code, result.stderr)

	assert.FileExists(t, filepath.Join(workDir, "generated", "com", "example", "gen", models.FactoryFileName))
	assert.Contains(t, result.stdout, "[INFO] Number of matching dependencies: 1")
	assert.Contains(t, result.stdout, "   Packages after filtering: 3\n")
	assert.Contains(t, result.stdout, "   Factories: 1\n")
	assert.Contains(t, result.stdout, "importgen: generated 1 import factory\n")
}

func TestRun_VerboseListsGeneratedFiles(t *testing.T) {
	workDir := t.TempDir()
	repo := installStub(t)

	result := runCLI(t, workDir, nil,
		"-verbose",
		"-local-repository", repo,
		"-dependency", "io.codegen:stub:1.0.0",
		"-output", "generated",
		"-target-package", "com.example.gen",
	)
	require.Equal(t, 0, result.code, result.stderr)

	expected := filepath.Join(workDir, "generated", "com", "example", "gen", models.FactoryFileName)
	assert.Contains(t, result.stdout, "Generated Files\n  - "+expected+"\n")
}

func TestRun_EnvironmentConfiguration(t *testing.T) {
	workDir := t.TempDir()
	repo := installStub(t)

	result := runCLI(t, workDir, map[string]string{
		"IMPORTGEN_LOCAL_REPOSITORY": repo,
		"IMPORTGEN_DEPENDENCIES":     "io.codegen:stub:1.0.0",
		"IMPORTGEN_OUTPUT_DIR":       "generated",
		"IMPORTGEN_EXCLUDE_PACKAGES": `io\.codegen\.(first|second)`,
	})
	require.Equal(t, 0, result.code, result.stderr)

	assert.FileExists(t, filepath.Join(workDir, "generated", "io", "codegen", "third", models.FactoryFileName))
	assert.NoDirExists(t, filepath.Join(workDir, "generated", "io", "codegen", "first"))
	assert.Contains(t, result.stdout, "importgen: generated 1 import factory\n")
}

func TestRun_DryRunAndClean(t *testing.T) {
	workDir := t.TempDir()
	repo := installStub(t)
	args := []string{"-local-repository", repo, "-dependency", "io.codegen:stub:1.0.0", "-output", "generated"}

	result := runCLI(t, workDir, nil, append(args, "-dry-run")...)
	require.Equal(t, 0, result.code, result.stderr)
	assert.Contains(t, result.stdout, "Generation Summary (dry run)")
	assert.NotContains(t, result.stdout, "importgen: generated")
	assert.NoDirExists(t, filepath.Join(workDir, "generated"))

	result = runCLI(t, workDir, nil, args...)
	require.Equal(t, 0, result.code, result.stderr)
	assert.Contains(t, result.stdout, "importgen: generated 3 import factories\n")

	result = runCLI(t, workDir, nil, "-output", "generated", "-clean")
	require.Equal(t, 0, result.code, result.stderr)
	assert.Contains(t, result.stdout, "Removed 3 generated import factories")
	assert.NoFileExists(t, filepath.Join(workDir, "generated", "io", "codegen", "first", models.FactoryFileName))
}

func TestRun_ConfigurationError(t *testing.T) {
	result := runCLI(t, t.TempDir(), nil,
		"-dependency", "io.codegen:stub:1.0.0",
		"-include-dependencies", "[",
	)

	assert.Equal(t, 1, result.code)
	assert.Contains(t, result.stderr, "Type: Configuration Error")
	assert.Contains(t, result.stderr, "includeDependenciesFilter")
}

func TestRun_QuietSuppressesSummary(t *testing.T) {
	workDir := t.TempDir()
	repo := installStub(t)

	result := runCLI(t, workDir, nil,
		"-quiet",
		"-local-repository", repo,
		"-dependency", "io.codegen:stub:1.0.0",
		"-output", "generated",
	)
	require.Equal(t, 0, result.code, result.stderr)
	assert.Empty(t, result.stdout)
}

func TestRun_DotEnv(t *testing.T) {
	workDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".env"), []byte("IMPORTGEN_DOTENV_PROBE=1\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("IMPORTGEN_DOTENV_PROBE") })

	result := runCLI(t, workDir, nil, "-help")
	assert.Equal(t, 0, result.code)
	assert.Equal(t, "1", os.Getenv("IMPORTGEN_DOTENV_PROBE"))
}
