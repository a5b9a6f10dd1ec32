package services

import (
	"context"
	"math/big"

	"github.com/SkillProof-Labs/verification-service/internal/cache"
	"github.com/SkillProof-Labs/verification-service/internal/events"
	"github.com/SkillProof-Labs/verification-service/internal/models"
	"github.com/SkillProof-Labs/verification-service/internal/oracle"
	"github.com/SkillProof-Labs/verification-service/internal/repositories"
	"github.com/SkillProof-Labs/verification-service/internal/utils"
	"github.com/SkillProof-Labs/verification-service/internal/validator"
)

// CatalogService maintains the question-set catalog. Identity is
// append-only: sets are deactivated, never deleted.
type CatalogService interface {
	SubmitQuestionSet(ctx context.Context, actor string, req *SubmitQuestionSetRequest) (*models.QuestionSet, error)
	Activate(ctx context.Context, actor, id string) error
	Deactivate(ctx context.Context, actor, id string) error
	Get(ctx context.Context, id string) (*models.QuestionSet, error)
	List(ctx context.Context) ([]*models.QuestionSet, error)
	ListActive(ctx context.Context) ([]*models.QuestionSet, error)
}

// AuthorizationService is the owner-controlled allow-list of caller
// identities permitted to request evaluations.
type AuthorizationService interface {
	AddCaller(ctx context.Context, actor, identity string) error
	RemoveCaller(ctx context.Context, actor, identity string) error
	IsAuthorized(ctx context.Context, identity string) (bool, error)
	ListCallers(ctx context.Context) ([]*models.AuthorizedCaller, error)
}

// EvaluationInput is what the state machine hands the oracle client
// when requesting verification.
type EvaluationInput struct {
	UserID        string
	QuestionSetID string
	AnswersHash   models.Hash256
	ContentHash   models.Hash256
}

// OracleService bridges the synchronous call path to the asynchronous
// external scorer.
type OracleService interface {
	// RequestEvaluation issues a fire-and-forget evaluation request and
	// returns the minted request id. The result arrives later through
	// HandleCallback.
	RequestEvaluation(ctx context.Context, caller string, in *EvaluationInput) (string, error)
	// HandleCallback consumes exactly one outstanding request per
	// delivery; unmatched ids are rejected without mutating state.
	HandleCallback(ctx context.Context, requestID string, rawResult []byte) error
	// SubmitManualResult is the owner's substitute for oracle
	// verification while it is administratively disabled.
	SubmitManualResult(ctx context.Context, actor, userID string, score uint8, resultHash models.Hash256) error

	GetConfig(ctx context.Context) (*models.OracleConfig, error)
	UpdateConfig(ctx context.Context, actor string, req *UpdateOracleConfigRequest) (*models.OracleConfig, error)
}

// VerificationSink receives completed verification results. It is the
// only writer of the Verifying -> Completed edge, which isolates the
// untrusted asynchronous input surface from the rest of the state
// machine.
type VerificationSink interface {
	OnVerificationComplete(ctx context.Context, userID string, score uint8, resultHash models.Hash256, manual bool) error
}

// AssessmentService is the per-user lifecycle controller.
type AssessmentService interface {
	VerificationSink

	Start(ctx context.Context, userID, questionSetID string) (*models.Assessment, error)
	SubmitAnswers(ctx context.Context, userID string, answersHash models.Hash256) (*models.Assessment, error)
	// SubmitAssessment submits answers and, when oracle verification is
	// enabled, immediately requests evaluation in the same step.
	SubmitAssessment(ctx context.Context, userID string, answersHash models.Hash256) (*models.Assessment, error)
	Restart(ctx context.Context, actor, userID string) error
	GetByUser(ctx context.Context, userID string) (*models.Assessment, error)
}

// RewardService computes and credits score-proportional rewards.
type RewardService interface {
	// IssueReward credits floor(maxRewardUnits * score / 100) and
	// returns the credited amount.
	IssueReward(ctx context.Context, userID string, score uint8) (*big.Int, error)

	GetConfig(ctx context.Context) (*models.RewardConfig, error)
	UpdateConfig(ctx context.Context, actor string, req *UpdateRewardConfigRequest) (*models.RewardConfig, error)
}

// LedgerService is the non-transferable balance ledger: owner-issued
// credits only, peer transfers rejected unconditionally.
type LedgerService interface {
	Credit(ctx context.Context, actor, userID string, amount *big.Int) error
	BalanceOf(ctx context.Context, userID string) (*big.Int, error)
	Transfer(ctx context.Context, from, to string, amount *big.Int) error
	TransferFrom(ctx context.Context, spender, from, to string, amount *big.Int) error
	Approve(ctx context.Context, owner, spender string, amount *big.Int) error
}

// ExportService produces owner-facing reports.
type ExportService interface {
	ExportResults(ctx context.Context, actor string) ([]byte, error)
}

// AuditService exposes the persisted audit trail to the owner.
type AuditService interface {
	ListLogs(ctx context.Context, actor string, limit, offset int) ([]*models.AuditLog, error)
}

// ServiceManager aggregates every service for wiring into handlers.
type ServiceManager interface {
	Catalog() CatalogService
	Authorization() AuthorizationService
	Oracle() OracleService
	Assessment() AssessmentService
	Reward() RewardService
	Ledger() LedgerService
	Export() ExportService
	Audit() AuditService
}

// Deps carries the shared dependencies of all services.
type Deps struct {
	Repo      repositories.Repository
	Publisher events.EventPublisher
	Logger    utils.Logger
	Validator *validator.Validator
	Cache     cache.CacheService

	// OwnerIdentity gates every administrative mutation.
	OwnerIdentity string
	// ServiceIdentity is what the state machine presents to the oracle
	// client; it must be in the caller registry.
	ServiceIdentity string

	Network oracle.Network
}

type serviceManager struct {
	catalog       CatalogService
	authorization AuthorizationService
	oracle        OracleService
	assessment    AssessmentService
	reward        RewardService
	ledger        LedgerService
	export        ExportService
	audit         AuditService
}

// NewServiceManager wires the full service graph, including the
// two-way link between the state machine and the oracle client: the
// state machine requests evaluations through the client, and the
// client's callback handler feeds completions back into the state
// machine.
func NewServiceManager(deps Deps) ServiceManager {
	if deps.Cache == nil {
		deps.Cache = cache.NoopCache{}
	}

	ledger := NewLedgerService(deps)
	reward := NewRewardService(deps, ledger)
	assessment := NewAssessmentService(deps, reward)
	oracleSvc := NewOracleService(deps, assessment)
	assessment.AttachOracle(oracleSvc)

	return &serviceManager{
		catalog:       NewCatalogService(deps),
		authorization: NewAuthorizationService(deps),
		oracle:        oracleSvc,
		assessment:    assessment,
		reward:        reward,
		ledger:        ledger,
		export:        NewExportService(deps),
		audit:         NewAuditService(deps),
	}
}

func (m *serviceManager) Catalog() CatalogService             { return m.catalog }
func (m *serviceManager) Authorization() AuthorizationService { return m.authorization }
func (m *serviceManager) Oracle() OracleService               { return m.oracle }
func (m *serviceManager) Assessment() AssessmentService       { return m.assessment }
func (m *serviceManager) Reward() RewardService               { return m.reward }
func (m *serviceManager) Ledger() LedgerService               { return m.ledger }
func (m *serviceManager) Export() ExportService               { return m.export }
func (m *serviceManager) Audit() AuditService                 { return m.audit }
