package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SkillProof-Labs/verification-service/internal/cache"
	"github.com/SkillProof-Labs/verification-service/internal/events"
	"github.com/SkillProof-Labs/verification-service/internal/models"
	"github.com/SkillProof-Labs/verification-service/internal/oracle"
	"github.com/SkillProof-Labs/verification-service/internal/repositories/memory"
	"github.com/SkillProof-Labs/verification-service/internal/utils"
	"github.com/SkillProof-Labs/verification-service/internal/validator"
)

const (
	testOwner   = "owner"
	testService = "verification-service"
)

var (
	testContentHash = models.MustParseHash256("0x" + repeatHex("cc"))
	testAnswersHash = models.MustParseHash256("0x" + repeatHex("aa"))
	testResultHash  = models.MustParseHash256("0x" + repeatHex("bb"))
)

func repeatHex(b string) string {
	out := ""
	for i := 0; i < 32; i++ {
		out += b
	}
	return out
}

type testEnv struct {
	repo      *memory.Repository
	publisher *events.MockEventPublisher
	network   *oracle.MockNetwork
	manager   ServiceManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		repo:      memory.NewRepository(),
		publisher: events.NewMockEventPublisher(),
		network:   oracle.NewMockNetwork(),
	}
	env.manager = NewServiceManager(Deps{
		Repo:            env.repo,
		Publisher:       env.publisher,
		Logger:          utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		Validator:       validator.New(),
		Cache:           cache.NoopCache{},
		OwnerIdentity:   testOwner,
		ServiceIdentity: testService,
		Network:         env.network,
	})
	return env
}

// submitQuestionSet registers an active question set as the owner.
func (env *testEnv) submitQuestionSet(t *testing.T, id string, questionCount uint) {
	t.Helper()
	_, err := env.manager.Catalog().SubmitQuestionSet(context.Background(), testOwner, &SubmitQuestionSetRequest{
		ID:            id,
		ContentHash:   testContentHash.String(),
		QuestionCount: questionCount,
	})
	require.NoError(t, err)
}

// enableOracle configures and enables oracle verification and
// authorizes the service identity as a caller.
func (env *testEnv) enableOracle(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := env.manager.Oracle().UpdateConfig(ctx, testOwner, &UpdateOracleConfigRequest{
		SubscriptionID:      7,
		DONID:               "fun-ethereum-sepolia-1",
		Source:              "const score = await evaluate(args);",
		VerificationEnabled: true,
	})
	require.NoError(t, err)
	require.NoError(t, env.manager.Authorization().AddCaller(ctx, testOwner, testService))
}

// startAndSubmit drives a user to AnswersSubmitted.
func (env *testEnv) startAndSubmit(t *testing.T, userID, setID string) {
	t.Helper()
	ctx := context.Background()
	_, err := env.manager.Assessment().Start(ctx, userID, setID)
	require.NoError(t, err)
	_, err = env.manager.Assessment().SubmitAnswers(ctx, userID, testAnswersHash)
	require.NoError(t, err)
}

func (env *testEnv) assessmentStatus(t *testing.T, userID string) models.AssessmentStatus {
	t.Helper()
	assessment, err := env.manager.Assessment().GetByUser(context.Background(), userID)
	require.NoError(t, err)
	return assessment.Status
}

func (env *testEnv) eventTypes() []models.AuditEventType {
	published := env.publisher.PublishedEvents()
	types := make([]models.AuditEventType, len(published))
	for i, event := range published {
		types[i] = event.Type
	}
	return types
}
