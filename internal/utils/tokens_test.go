package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNumericCode_Length(t *testing.T) {
	for _, digits := range []int{4, 6, 8} {
		for i := 0; i < 50; i++ {
			code, err := NewNumericCode(digits)
			require.NoError(t, err)
			assert.Len(t, code, digits)
			for _, r := range code {
				assert.True(t, r >= '0' && r <= '9', "non-digit in code %q", code)
			}
		}
	}
}

func TestNewNumericCode_DefaultsToSixDigits(t *testing.T) {
	code, err := NewNumericCode(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)
}

func TestNewOpaqueToken(t *testing.T) {
	a, err := NewOpaqueToken(32)
	require.NoError(t, err)
	b, err := NewOpaqueToken(32)
	require.NoError(t, err)

	assert.Len(t, a, 64) // hex-encoded
	assert.NotEqual(t, a, b)

	short, err := NewOpaqueToken(0)
	require.NoError(t, err)
	assert.Len(t, short, 64) // falls back to 32 bytes
}
