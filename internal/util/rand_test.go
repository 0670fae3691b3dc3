package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandBase32(t *testing.T) {
	a, err := RandBase32(6)
	require.NoError(t, err)
	b, err := RandBase32(6)
	require.NoError(t, err)

	assert.Len(t, a, 10)
	assert.NotContains(t, a, "=")
	assert.NotEqual(t, a, b)
}

func TestRandSeedIsNonNegative(t *testing.T) {
	for i := 0; i < 50; i++ {
		s, err := RandSeed()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s, int64(0))
	}
}
