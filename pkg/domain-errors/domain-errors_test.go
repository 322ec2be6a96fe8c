package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesOriginalCode(t *testing.T) {
	inner := New(CodeNotFound, "person not found")
	wrapped := Wrap(inner, CodeInternal, "failed to load person")

	assert.True(t, HasCode(wrapped, CodeNotFound), "wrapping must not mask the original code")
	assert.Equal(t, "failed to load person", wrapped.Error())
}

func TestWrapPlainError(t *testing.T) {
	inner := errors.New("connection refused")
	wrapped := Wrap(inner, CodeInternal, "store unavailable")

	require.True(t, HasCode(wrapped, CodeInternal))
	assert.ErrorIs(t, wrapped, inner)
}

func TestHasCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("upsert fact: %w", New(CodeValidation, "rule violation"))
	assert.True(t, HasCode(err, CodeValidation))
	assert.False(t, HasCode(err, CodeConflict))
}

func TestIsMatchesByCode(t *testing.T) {
	err := New(CodeConflict, "slug already taken")
	assert.ErrorIs(t, err, &Error{Code: CodeConflict})
}
