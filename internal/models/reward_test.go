package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardConfig_RewardFor(t *testing.T) {
	cfg := &RewardConfig{MaxRewardUnits: DefaultMaxRewardUnits}

	t.Run("proportional", func(t *testing.T) {
		amount, ok := cfg.RewardFor(85)
		require.True(t, ok)
		assert.Equal(t, "850000000000000000", amount.String())
	})

	t.Run("full score", func(t *testing.T) {
		amount, ok := cfg.RewardFor(100)
		require.True(t, ok)
		assert.Equal(t, DefaultMaxRewardUnits, amount.String())
	})

	t.Run("zero score", func(t *testing.T) {
		amount, ok := cfg.RewardFor(0)
		require.True(t, ok)
		assert.Zero(t, amount.Sign())
	})

	t.Run("floor division", func(t *testing.T) {
		small := &RewardConfig{MaxRewardUnits: "199"}
		amount, ok := small.RewardFor(50)
		require.True(t, ok)
		assert.Equal(t, "99", amount.String())
	})

	t.Run("corrupt units", func(t *testing.T) {
		broken := &RewardConfig{MaxRewardUnits: "not a number"}
		_, ok := broken.RewardFor(50)
		assert.False(t, ok)
	})
}
