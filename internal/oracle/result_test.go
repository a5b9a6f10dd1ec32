package oracle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResult(t *testing.T) {
	hash := "0x" + strings.Repeat("bb", 32)

	t.Run("valid payload", func(t *testing.T) {
		result, err := DecodeResult([]byte("85," + hash))
		require.NoError(t, err)
		assert.Equal(t, uint8(85), result.Score)
		assert.Equal(t, hash, result.ResultHash.String())
	})

	t.Run("score above 100 clamped", func(t *testing.T) {
		result, err := DecodeResult([]byte("250," + hash))
		require.NoError(t, err)
		assert.Equal(t, uint8(100), result.Score)
	})

	t.Run("boundary scores", func(t *testing.T) {
		result, err := DecodeResult([]byte("0," + hash))
		require.NoError(t, err)
		assert.Equal(t, uint8(0), result.Score)

		result, err = DecodeResult([]byte("100," + hash))
		require.NoError(t, err)
		assert.Equal(t, uint8(100), result.Score)
	})

	t.Run("rejections", func(t *testing.T) {
		cases := map[string]string{
			"empty":            "",
			"no comma":         "85",
			"non-numeric":      "abc," + hash,
			"negative":         "-1," + hash,
			"missing prefix":   "85," + strings.Repeat("bb", 32),
			"short hash":       "85,0xbb",
			"non-hex hash":     "85,0x" + strings.Repeat("zz", 32),
			"trailing garbage": "85," + hash + ",extra",
		}
		for name, payload := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := DecodeResult([]byte(payload))
				assert.Error(t, err)
			})
		}
	})
}

func TestNewRequestID(t *testing.T) {
	id, err := NewRequestID()
	require.NoError(t, err)
	assert.Len(t, id, 66)
	assert.True(t, strings.HasPrefix(id, "0x"))

	other, err := NewRequestID()
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}
