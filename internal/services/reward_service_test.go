package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

func TestRewardService_IssueReward(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("proportional to score", func(t *testing.T) {
		amount, err := env.manager.Reward().IssueReward(ctx, "alice", 85)
		require.NoError(t, err)
		assert.Equal(t, "850000000000000000", amount.String())

		balance, err := env.manager.Ledger().BalanceOf(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "850000000000000000", balance.String())
		assert.Contains(t, env.eventTypes(), models.AuditRewardIssued)
	})

	t.Run("full score pays the maximum", func(t *testing.T) {
		amount, err := env.manager.Reward().IssueReward(ctx, "bob", 100)
		require.NoError(t, err)
		assert.Equal(t, models.DefaultMaxRewardUnits, amount.String())
	})

	t.Run("zero score credits nothing", func(t *testing.T) {
		amount, err := env.manager.Reward().IssueReward(ctx, "carol", 0)
		require.NoError(t, err)
		assert.Zero(t, amount.Sign())

		balance, err := env.manager.Ledger().BalanceOf(ctx, "carol")
		require.NoError(t, err)
		assert.Zero(t, balance.Sign())
	})

	t.Run("integer division truncates", func(t *testing.T) {
		_, err := env.manager.Reward().UpdateConfig(ctx, testOwner, &UpdateRewardConfigRequest{
			PassingScoreThreshold: 60,
			MaxRewardUnits:        "1",
		})
		require.NoError(t, err)

		amount, err := env.manager.Reward().IssueReward(ctx, "dave", 85)
		require.NoError(t, err)
		assert.Zero(t, amount.Sign())
	})
}

func TestRewardService_UpdateConfig(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("owner only", func(t *testing.T) {
		_, err := env.manager.Reward().UpdateConfig(ctx, "mallory", &UpdateRewardConfigRequest{
			PassingScoreThreshold: 60,
			MaxRewardUnits:        "1000",
		})
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("threshold above 100 rejected", func(t *testing.T) {
		_, err := env.manager.Reward().UpdateConfig(ctx, testOwner, &UpdateRewardConfigRequest{
			PassingScoreThreshold: 101,
			MaxRewardUnits:        "1000",
		})
		assert.ErrorIs(t, err, ErrInvalidThreshold)
	})

	t.Run("non-numeric units rejected", func(t *testing.T) {
		_, err := env.manager.Reward().UpdateConfig(ctx, testOwner, &UpdateRewardConfigRequest{
			PassingScoreThreshold: 60,
			MaxRewardUnits:        "a lot",
		})
		assert.ErrorIs(t, err, ErrInvalidRewardUnits)
	})

	t.Run("negative units rejected", func(t *testing.T) {
		_, err := env.manager.Reward().UpdateConfig(ctx, testOwner, &UpdateRewardConfigRequest{
			PassingScoreThreshold: 60,
			MaxRewardUnits:        "-5",
		})
		assert.ErrorIs(t, err, ErrInvalidRewardUnits)
	})

	t.Run("valid update persists", func(t *testing.T) {
		cfg, err := env.manager.Reward().UpdateConfig(ctx, testOwner, &UpdateRewardConfigRequest{
			PassingScoreThreshold: 70,
			MaxRewardUnits:        "2000000000000000000",
		})
		require.NoError(t, err)
		assert.Equal(t, uint8(70), cfg.PassingScoreThreshold)
		assert.Equal(t, "2000000000000000000", cfg.MaxRewardUnits)

		stored, err := env.manager.Reward().GetConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2000000000000000000", stored.MaxRewardUnits)
	})
}

func TestRewardConfig_DefaultMaximumExceedsUint64(t *testing.T) {
	env := newTestEnv(t)

	// 1e18 units at score 100 does not fit an unsigned 64-bit product
	// mid-multiplication; the arithmetic must survive it.
	amount, err := env.manager.Reward().IssueReward(context.Background(), "erin", 100)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", amount.String())
}
