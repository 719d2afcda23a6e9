package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOfNil(t *testing.T) {
	require.Equal(t, Ok, Of(nil))
}

func TestErrorsIsMatchesCode(t *testing.T) {
	err := Newf(NotFound, "bridge br0")
	require.True(t, errors.Is(err, New(NotFound)))
	require.False(t, errors.Is(err, New(Busy)))
}

func TestOfExtractsCode(t *testing.T) {
	err := New(Busy)
	require.Equal(t, Busy, Of(err))
}

func TestStringUnknown(t *testing.T) {
	require.Contains(t, Code(9999).String(), "Code(")
}
