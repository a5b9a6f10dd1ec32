package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

func TestAuthorizationService_AddRemoveCaller(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("add and query", func(t *testing.T) {
		require.NoError(t, env.manager.Authorization().AddCaller(ctx, testOwner, "scorer-1"))
		ok, err := env.manager.Authorization().IsAuthorized(ctx, "scorer-1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Contains(t, env.eventTypes(), models.AuditCallerAdded)
	})

	t.Run("add is idempotent, event still emitted", func(t *testing.T) {
		before := len(env.publisher.PublishedEvents())
		require.NoError(t, env.manager.Authorization().AddCaller(ctx, testOwner, "scorer-1"))
		assert.Len(t, env.publisher.PublishedEvents(), before+1)

		callers, err := env.manager.Authorization().ListCallers(ctx)
		require.NoError(t, err)
		assert.Len(t, callers, 1)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, env.manager.Authorization().RemoveCaller(ctx, testOwner, "scorer-1"))
		ok, err := env.manager.Authorization().IsAuthorized(ctx, "scorer-1")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Contains(t, env.eventTypes(), models.AuditCallerRemoved)
	})

	t.Run("remove absent identity is a no-op", func(t *testing.T) {
		require.NoError(t, env.manager.Authorization().RemoveCaller(ctx, testOwner, "scorer-1"))
	})

	t.Run("owner only", func(t *testing.T) {
		assert.ErrorIs(t, env.manager.Authorization().AddCaller(ctx, "mallory", "scorer-2"), ErrNotOwner)
		assert.ErrorIs(t, env.manager.Authorization().RemoveCaller(ctx, "mallory", "scorer-2"), ErrNotOwner)
	})

	t.Run("empty identity rejected", func(t *testing.T) {
		assert.Error(t, env.manager.Authorization().AddCaller(ctx, testOwner, ""))
	})
}

func TestAuthorizationService_IsAuthorizedUnknownIdentity(t *testing.T) {
	env := newTestEnv(t)

	ok, err := env.manager.Authorization().IsAuthorized(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}
