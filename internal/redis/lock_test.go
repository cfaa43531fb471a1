package redis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTokenIsUnique(t *testing.T) {
	a, err := newToken()
	require.NoError(t, err)
	b, err := newToken()
	require.NoError(t, err)

	require.Len(t, a, 32)
	require.NotEqual(t, a, b)
}
