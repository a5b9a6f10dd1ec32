package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

func TestAuditService_ListLogs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.submitQuestionSet(t, "univ2", 5)
	env.startAndSubmit(t, "alice", "univ2")

	t.Run("owner only", func(t *testing.T) {
		_, err := env.manager.Audit().ListLogs(ctx, "mallory", 0, 0)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("mutations leave a trail in order", func(t *testing.T) {
		logs, err := env.manager.Audit().ListLogs(ctx, testOwner, 0, 0)
		require.NoError(t, err)
		require.Len(t, logs, 3)
		assert.Equal(t, models.AuditQuestionSetSubmitted, logs[0].EventType)
		assert.Equal(t, models.AuditAssessmentStarted, logs[1].EventType)
		assert.Equal(t, models.AuditAnswersSubmitted, logs[2].EventType)
	})

	t.Run("limit and offset page the trail", func(t *testing.T) {
		logs, err := env.manager.Audit().ListLogs(ctx, testOwner, 1, 1)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, models.AuditAssessmentStarted, logs[0].EventType)
	})

	t.Run("offset beyond the trail is empty", func(t *testing.T) {
		logs, err := env.manager.Audit().ListLogs(ctx, testOwner, 10, 100)
		require.NoError(t, err)
		assert.Empty(t, logs)
	})
}
