package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

// ErrNotFound is returned by repositories when a record does not
// exist. DB-backed implementations surface gorm.ErrRecordNotFound
// instead; use IsNotFoundError to test either.
var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err is a missing-record error from
// any repository implementation.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// Repository aggregates all persistence concerns of the service.
// Every state-mutating operation runs through one of these interfaces
// so invariants are enforced in a single place.
type Repository interface {
	QuestionSet() QuestionSetRepository
	Assessment() AssessmentRepository
	Caller() CallerRepository
	OracleRequest() OracleRequestRepository
	Config() ConfigRepository
	Ledger() LedgerRepository
	Audit() AuditRepository

	// Transaction runs fn against a transactional view of the
	// repository. Mutations are applied atomically; fn returning an
	// error rolls everything back.
	Transaction(ctx context.Context, fn func(Repository) error) error
}

type QuestionSetRepository interface {
	Create(ctx context.Context, set *models.QuestionSet) error
	GetByID(ctx context.Context, id string) (*models.QuestionSet, error)
	Update(ctx context.Context, set *models.QuestionSet) error
	// List returns every set in insertion order.
	List(ctx context.Context) ([]*models.QuestionSet, error)
	// ListActive returns active sets, preserving insertion order.
	ListActive(ctx context.Context) ([]*models.QuestionSet, error)
}

type AssessmentRepository interface {
	Create(ctx context.Context, assessment *models.Assessment) error
	GetByUser(ctx context.Context, userID string) (*models.Assessment, error)
	Update(ctx context.Context, assessment *models.Assessment) error
	ListByStatus(ctx context.Context, status models.AssessmentStatus) ([]*models.Assessment, error)
}

type CallerRepository interface {
	Add(ctx context.Context, caller *models.AuthorizedCaller) error
	Remove(ctx context.Context, identity string) error
	Exists(ctx context.Context, identity string) (bool, error)
	List(ctx context.Context) ([]*models.AuthorizedCaller, error)
}

type OracleRequestRepository interface {
	Create(ctx context.Context, request *models.OracleRequest) error
	GetByID(ctx context.Context, requestID string) (*models.OracleRequest, error)
	GetByUser(ctx context.Context, userID string) (*models.OracleRequest, error)
	Delete(ctx context.Context, requestID string) error
	// DeleteByUser revokes every outstanding request of the user.
	// Deleting for a user with no requests is a no-op.
	DeleteByUser(ctx context.Context, userID string) error
}

type ConfigRepository interface {
	GetOracleConfig(ctx context.Context) (*models.OracleConfig, error)
	SaveOracleConfig(ctx context.Context, cfg *models.OracleConfig) error
	GetRewardConfig(ctx context.Context) (*models.RewardConfig, error)
	SaveRewardConfig(ctx context.Context, cfg *models.RewardConfig) error
}

type LedgerRepository interface {
	GetAccount(ctx context.Context, userID string) (*models.LedgerAccount, error)
	Save(ctx context.Context, account *models.LedgerAccount) error
}

type AuditRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)
}
