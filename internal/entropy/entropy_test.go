package entropy

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	a, err := Read(32)
	require.NoError(t, err)
	require.Len(t, a, 32)

	b, err := Read(32)
	require.NoError(t, err)
	require.False(t, bytes.Equal(a, b), "two draws must differ")
}

func TestReadInvalidLength(t *testing.T) {
	_, err := Read(0)
	require.Error(t, err)

	_, err = Read(-1)
	require.Error(t, err)
}
