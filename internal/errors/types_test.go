package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_Error(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := New(ConfigurationErrorCode, "bad pattern")
		assert.Equal(t, "bad pattern", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		err := Wrap(ResolutionErrorCode, "failed to resolve artifact g:a:jar:1", fmt.Errorf("not found"))
		assert.Equal(t, "failed to resolve artifact g:a:jar:1: not found", err.Error())
	})

	t.Run("with location", func(t *testing.T) {
		err := New(SyntaxErrorCode, "unexpected token").WithLocation(SourceLocation{File: "ImportFactory.java", Line: 3})
		assert.Equal(t, "ImportFactory.java:3: unexpected token", err.Error())
	})
}

func TestBaseError_Builders(t *testing.T) {
	cause := stderrors.New("disk full")
	err := WrapEmissionError("com.example.gen", cause).WithSuggestion("free some space")

	assert.Equal(t, EmissionErrorCode, err.ErrorCode())
	assert.Equal(t, "com.example.gen", err.Context()["target_package"])
	assert.Equal(t, []string{"free some space"}, err.Suggestions())
	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "com.example.gen")
}

func TestHasCode(t *testing.T) {
	inner := WrapArchiveError("/tmp/a.jar", stderrors.New("zip: not a valid zip file"))
	outer := fmt.Errorf("scanning dependency: %w", inner)

	assert.True(t, HasCode(outer, ArchiveErrorCode))
	assert.False(t, HasCode(outer, ResolutionErrorCode))
	assert.False(t, HasCode(nil, ArchiveErrorCode))

	multi := NewMultipleErrors()
	multi.Add(stderrors.New("plain"))
	multi.Add(WrapResolutionError("g:a:jar:1", stderrors.New("404")))
	assert.True(t, HasCode(multi, ResolutionErrorCode))
}

func TestFind(t *testing.T) {
	err := fmt.Errorf("run failed: %w", ConfigurationError("targetPackage", "must be a package name"))

	genErr, ok := Find(err)
	require.True(t, ok)
	assert.Equal(t, ConfigurationErrorCode, genErr.ErrorCode())

	_, ok = Find(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestMultipleErrors(t *testing.T) {
	multi := NewMultipleErrors()
	assert.Equal(t, "no errors", multi.Error())

	multi.Add(nil)
	assert.Empty(t, multi.Errors)

	multi.Add(stderrors.New("first"))
	assert.Equal(t, "first", multi.Error())

	multi.Add(stderrors.New("second"))
	assert.Contains(t, multi.Error(), "multiple errors (2 total)")
	assert.Contains(t, multi.Error(), "  2. second")
	assert.Len(t, multi.Errors, 2)
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "ConfigurationError", ConfigurationErrorCode.String())
	assert.Equal(t, "EmissionError", EmissionErrorCode.String())
	assert.Equal(t, "UnknownError", ErrorCode(99).String())
}
