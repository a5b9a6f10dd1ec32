package services

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

func TestAssessmentService_ManualResultFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.submitQuestionSet(t, "univ2", 5)

	assessment, err := env.manager.Assessment().Start(ctx, "alice", "univ2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusStarted, assessment.Status)

	assessment, err = env.manager.Assessment().SubmitAnswers(ctx, "alice", testAnswersHash)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAnswersSubmitted, assessment.Status)

	// Verification disabled by default: submitting stays put until the
	// owner supplies a manual result.
	assessment, err = env.manager.Assessment().SubmitAssessment(ctx, "alice", testAnswersHash)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAnswersSubmitted, assessment.Status)

	require.NoError(t, env.manager.Oracle().SubmitManualResult(ctx, testOwner, "alice", 90, testResultHash))

	assessment, err = env.manager.Assessment().GetByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, assessment.Status)
	require.NotNil(t, assessment.Score)
	assert.Equal(t, uint8(90), *assessment.Score)
	require.NotNil(t, assessment.ResultHash)
	assert.Equal(t, testResultHash, *assessment.ResultHash)

	balance, err := env.manager.Ledger().BalanceOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "900000000000000000", balance.String())

	types := env.eventTypes()
	assert.Contains(t, types, models.AuditManualResultSubmitted)
	assert.Contains(t, types, models.AuditVerificationCompleted)
	assert.Contains(t, types, models.AuditRewardIssued)
}

func TestAssessmentService_OracleFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.submitQuestionSet(t, "univ2", 5)
	env.enableOracle(t)
	env.startAndSubmit(t, "bob", "univ2")

	assessment, err := env.manager.Assessment().SubmitAssessment(ctx, "bob", testAnswersHash)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerifying, assessment.Status)
	require.Len(t, env.network.Requests, 1)
	assert.Equal(t, []string{"univ2", testAnswersHash.String(), testContentHash.String()},
		env.network.Requests[0].Args)

	requestID := env.network.LastRequestID()
	require.NoError(t, env.manager.Oracle().HandleCallback(ctx, requestID,
		[]byte("85,"+testResultHash.String())))

	assessment, err = env.manager.Assessment().GetByUser(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, assessment.Status)
	require.NotNil(t, assessment.Score)
	assert.Equal(t, uint8(85), *assessment.Score)

	balance, err := env.manager.Ledger().BalanceOf(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "850000000000000000", balance.String())

	t.Run("duplicate callback rejected", func(t *testing.T) {
		err := env.manager.Oracle().HandleCallback(ctx, requestID,
			[]byte("85,"+testResultHash.String()))
		assert.ErrorIs(t, err, ErrUnknownRequest)

		balance, err := env.manager.Ledger().BalanceOf(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, "850000000000000000", balance.String())
	})
}

func TestAssessmentService_RestartRevokesInFlightRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.submitQuestionSet(t, "univ2", 5)
	env.enableOracle(t)
	env.startAndSubmit(t, "carol", "univ2")

	_, err := env.manager.Assessment().SubmitAssessment(ctx, "carol", testAnswersHash)
	require.NoError(t, err)
	requestID := env.network.LastRequestID()

	require.NoError(t, env.manager.Assessment().Restart(ctx, "carol", "carol"))
	assert.Equal(t, models.StatusNotStarted, env.assessmentStatus(t, "carol"))

	// The late callback must not complete the restarted assessment.
	err = env.manager.Oracle().HandleCallback(ctx, requestID,
		[]byte("100,"+testResultHash.String()))
	assert.ErrorIs(t, err, ErrUnknownRequest)
	assert.Equal(t, models.StatusNotStarted, env.assessmentStatus(t, "carol"))

	balance, err := env.manager.Ledger().BalanceOf(ctx, "carol")
	require.NoError(t, err)
	assert.Zero(t, balance.Sign())
}

func TestAssessmentService_RestartRecoversFromDroppedCallback(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.submitQuestionSet(t, "univ2", 5)
	env.enableOracle(t)
	env.startAndSubmit(t, "carol", "univ2")

	// First attempt reaches Verifying, then the callback never arrives.
	_, err := env.manager.Assessment().SubmitAssessment(ctx, "carol", testAnswersHash)
	require.NoError(t, err)
	firstRequestID := env.network.LastRequestID()

	require.NoError(t, env.manager.Assessment().Restart(ctx, "carol", "carol"))

	// The second attempt must be able to request evaluation again.
	env.startAndSubmit(t, "carol", "univ2")
	assessment, err := env.manager.Assessment().SubmitAssessment(ctx, "carol", testAnswersHash)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerifying, assessment.Status)

	secondRequestID := env.network.LastRequestID()
	require.NotEqual(t, firstRequestID, secondRequestID)

	// Only the second request's callback completes the assessment.
	err = env.manager.Oracle().HandleCallback(ctx, firstRequestID,
		[]byte("100,"+testResultHash.String()))
	assert.ErrorIs(t, err, ErrUnknownRequest)
	require.NoError(t, env.manager.Oracle().HandleCallback(ctx, secondRequestID,
		[]byte("60,"+testResultHash.String())))
	assert.Equal(t, models.StatusCompleted, env.assessmentStatus(t, "carol"))

	balance, err := env.manager.Ledger().BalanceOf(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, "600000000000000000", balance.String())
}

func TestAssessmentService_Start(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.submitQuestionSet(t, "univ2", 5)

	t.Run("unknown set", func(t *testing.T) {
		_, err := env.manager.Assessment().Start(ctx, "dave", "ghost")
		assert.ErrorIs(t, err, ErrSetNotFound)
	})

	t.Run("inactive set", func(t *testing.T) {
		require.NoError(t, env.manager.Catalog().Deactivate(ctx, testOwner, "univ2"))
		_, err := env.manager.Assessment().Start(ctx, "dave", "univ2")
		assert.ErrorIs(t, err, ErrSetInactive)
		require.NoError(t, env.manager.Catalog().Activate(ctx, testOwner, "univ2"))
	})

	t.Run("second start rejected", func(t *testing.T) {
		_, err := env.manager.Assessment().Start(ctx, "dave", "univ2")
		require.NoError(t, err)
		_, err = env.manager.Assessment().Start(ctx, "dave", "univ2")
		assert.ErrorIs(t, err, ErrAlreadyInProgress)
	})

	t.Run("restart allows starting again", func(t *testing.T) {
		require.NoError(t, env.manager.Assessment().Restart(ctx, "dave", "dave"))
		_, err := env.manager.Assessment().Start(ctx, "dave", "univ2")
		require.NoError(t, err)
	})
}

func TestAssessmentService_SubmitAnswers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.submitQuestionSet(t, "univ2", 5)

	t.Run("without starting", func(t *testing.T) {
		_, err := env.manager.Assessment().SubmitAnswers(ctx, "erin", testAnswersHash)
		assert.ErrorIs(t, err, ErrNoActiveAssessment)
	})

	t.Run("zero hash rejected", func(t *testing.T) {
		_, err := env.manager.Assessment().Start(ctx, "erin", "univ2")
		require.NoError(t, err)
		_, err = env.manager.Assessment().SubmitAnswers(ctx, "erin", models.Hash256{})
		assert.ErrorIs(t, err, ErrInvalidAnswersHash)
	})

	t.Run("double submission rejected", func(t *testing.T) {
		_, err := env.manager.Assessment().SubmitAnswers(ctx, "erin", testAnswersHash)
		require.NoError(t, err)
		_, err = env.manager.Assessment().SubmitAnswers(ctx, "erin", testAnswersHash)
		assert.ErrorIs(t, err, ErrAlreadySubmitted)
	})
}

func TestAssessmentService_SubmitAssessment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.submitQuestionSet(t, "univ2", 5)
	env.enableOracle(t)

	t.Run("without starting", func(t *testing.T) {
		_, err := env.manager.Assessment().SubmitAssessment(ctx, "frank", testAnswersHash)
		assert.ErrorIs(t, err, ErrNoActiveAssessment)
	})

	t.Run("from Started submits and requests in one step", func(t *testing.T) {
		_, err := env.manager.Assessment().Start(ctx, "frank", "univ2")
		require.NoError(t, err)
		assessment, err := env.manager.Assessment().SubmitAssessment(ctx, "frank", testAnswersHash)
		require.NoError(t, err)
		assert.Equal(t, models.StatusVerifying, assessment.Status)
	})

	t.Run("while verifying", func(t *testing.T) {
		_, err := env.manager.Assessment().SubmitAssessment(ctx, "frank", testAnswersHash)
		assert.ErrorIs(t, err, ErrAlreadyVerifying)
	})

	t.Run("after completion", func(t *testing.T) {
		requestID := env.network.LastRequestID()
		require.NoError(t, env.manager.Oracle().HandleCallback(ctx, requestID,
			[]byte("50,"+testResultHash.String())))
		_, err := env.manager.Assessment().SubmitAssessment(ctx, "frank", testAnswersHash)
		assert.ErrorIs(t, err, ErrAlreadyCompleted)
	})
}

func TestAssessmentService_CompletionIsTerminal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.submitQuestionSet(t, "univ2", 5)
	env.startAndSubmit(t, "grace", "univ2")

	require.NoError(t, env.manager.Oracle().SubmitManualResult(ctx, testOwner, "grace", 70, testResultHash))

	// A second completion would re-mint the reward; it must be refused.
	err := env.manager.Oracle().SubmitManualResult(ctx, testOwner, "grace", 100, testResultHash)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	balance, err := env.manager.Ledger().BalanceOf(ctx, "grace")
	require.NoError(t, err)
	assert.Equal(t, "700000000000000000", balance.String())
}

func TestAssessmentService_Restart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.submitQuestionSet(t, "univ2", 5)
	env.startAndSubmit(t, "heidi", "univ2")

	t.Run("stranger may not restart", func(t *testing.T) {
		assert.ErrorIs(t, env.manager.Assessment().Restart(ctx, "mallory", "heidi"), ErrNotOwner)
	})

	t.Run("owner may restart any user", func(t *testing.T) {
		require.NoError(t, env.manager.Assessment().Restart(ctx, testOwner, "heidi"))
		assert.Equal(t, models.StatusNotStarted, env.assessmentStatus(t, "heidi"))
	})

	t.Run("unknown user", func(t *testing.T) {
		assert.ErrorIs(t, env.manager.Assessment().Restart(ctx, testOwner, "nobody"), ErrNoAssessment)
	})

	t.Run("restart after completion clears score and result", func(t *testing.T) {
		_, err := env.manager.Assessment().Start(ctx, "heidi", "univ2")
		require.NoError(t, err)
		_, err = env.manager.Assessment().SubmitAnswers(ctx, "heidi", testAnswersHash)
		require.NoError(t, err)
		require.NoError(t, env.manager.Oracle().SubmitManualResult(ctx, testOwner, "heidi", 40, testResultHash))

		require.NoError(t, env.manager.Assessment().Restart(ctx, "heidi", "heidi"))
		assessment, err := env.manager.Assessment().GetByUser(ctx, "heidi")
		require.NoError(t, err)
		assert.Equal(t, models.StatusNotStarted, assessment.Status)
		assert.Nil(t, assessment.Score)
		assert.Nil(t, assessment.ResultHash)
		assert.True(t, assessment.AnswersHash.IsZero())

		// The earlier reward survives the restart.
		balance, err := env.manager.Ledger().BalanceOf(ctx, "heidi")
		require.NoError(t, err)
		assert.Equal(t, "400000000000000000", balance.String())
	})
}

func TestAssessmentService_GetByUserDefaultsToNotStarted(t *testing.T) {
	env := newTestEnv(t)

	assessment, err := env.manager.Assessment().GetByUser(context.Background(), "newcomer")
	require.NoError(t, err)
	assert.Equal(t, "newcomer", assessment.UserID)
	assert.Equal(t, models.StatusNotStarted, assessment.Status)
	assert.Nil(t, assessment.Score)
}

func TestAssessmentService_UnauthorizedServiceIdentity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.submitQuestionSet(t, "univ2", 5)

	// Oracle configured and enabled, but the service identity is absent
	// from the caller registry.
	_, err := env.manager.Oracle().UpdateConfig(ctx, testOwner, &UpdateOracleConfigRequest{
		SubscriptionID:      7,
		DONID:               "fun-ethereum-sepolia-1",
		Source:              "const score = await evaluate(args);",
		VerificationEnabled: true,
	})
	require.NoError(t, err)

	env.startAndSubmit(t, "ivan", "univ2")
	_, err = env.manager.Assessment().SubmitAssessment(ctx, "ivan", testAnswersHash)
	assert.ErrorIs(t, err, ErrCallerNotAuthorized)
	assert.Equal(t, models.StatusAnswersSubmitted, env.assessmentStatus(t, "ivan"))
}

func TestAssessmentService_ZeroScoreCompletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.submitQuestionSet(t, "univ2", 5)
	env.startAndSubmit(t, "judy", "univ2")

	require.NoError(t, env.manager.Oracle().SubmitManualResult(ctx, testOwner, "judy", 0, testResultHash))

	assessment, err := env.manager.Assessment().GetByUser(ctx, "judy")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, assessment.Status)

	balance, err := env.manager.Ledger().BalanceOf(ctx, "judy")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0).String(), balance.String())
}
