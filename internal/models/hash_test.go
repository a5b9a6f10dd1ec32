package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHash256(t *testing.T) {
	valid := "0x" + strings.Repeat("ab", 32)

	t.Run("round trip", func(t *testing.T) {
		h, err := ParseHash256(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, h.String())
		assert.False(t, h.IsZero())
	})

	t.Run("rejections", func(t *testing.T) {
		cases := map[string]string{
			"missing prefix": strings.Repeat("ab", 32),
			"too short":      "0xab",
			"too long":       valid + "ab",
			"non hex":        "0x" + strings.Repeat("zz", 32),
			"empty":          "",
			"prefix only":    "0x",
		}
		for name, input := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := ParseHash256(input)
				assert.Error(t, err)
			})
		}
	})

	t.Run("zero value parses and is zero", func(t *testing.T) {
		h, err := ParseHash256("0x" + strings.Repeat("00", 32))
		require.NoError(t, err)
		assert.True(t, h.IsZero())
		assert.Equal(t, ZeroHash, h)
	})
}

func TestHash256_SQLRoundTrip(t *testing.T) {
	h := MustParseHash256("0x" + strings.Repeat("cd", 32))

	value, err := h.Value()
	require.NoError(t, err)

	var scanned Hash256
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, h, scanned)

	t.Run("nil scans to zero", func(t *testing.T) {
		scanned := MustParseHash256("0x" + strings.Repeat("cd", 32))
		require.NoError(t, scanned.Scan(nil))
		assert.True(t, scanned.IsZero())
	})

	t.Run("unsupported type rejected", func(t *testing.T) {
		var h Hash256
		assert.Error(t, h.Scan(42))
	})
}

func TestHash256_JSON(t *testing.T) {
	h := MustParseHash256("0x" + strings.Repeat("ef", 32))

	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.JSONEq(t, `"0x`+strings.Repeat("ef", 32)+`"`, string(data))

	var decoded Hash256
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, h, decoded)

	t.Run("malformed string rejected", func(t *testing.T) {
		var h Hash256
		assert.Error(t, json.Unmarshal([]byte(`"ef"`), &h))
	})
}
