package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SkillProof-Labs/verification-service/internal/models"
	"github.com/SkillProof-Labs/verification-service/internal/repositories"
)

type Repository struct {
	db *gorm.DB

	questionSet   *QuestionSetPostgreSQL
	assessment    *AssessmentPostgreSQL
	caller        *CallerPostgreSQL
	oracleRequest *OracleRequestPostgreSQL
	config        *ConfigPostgreSQL
	ledger        *LedgerPostgreSQL
	audit         *AuditPostgreSQL
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:            db,
		questionSet:   &QuestionSetPostgreSQL{db: db},
		assessment:    &AssessmentPostgreSQL{db: db},
		caller:        &CallerPostgreSQL{db: db},
		oracleRequest: &OracleRequestPostgreSQL{db: db},
		config:        &ConfigPostgreSQL{db: db},
		ledger:        &LedgerPostgreSQL{db: db},
		audit:         &AuditPostgreSQL{db: db},
	}
}

// AutoMigrate creates or updates the schema for every model the
// service persists.
func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&models.QuestionSet{},
		&models.Assessment{},
		&models.AuthorizedCaller{},
		&models.OracleRequest{},
		&models.OracleConfig{},
		&models.RewardConfig{},
		&models.LedgerAccount{},
		&models.AuditLog{},
	)
}

func (r *Repository) QuestionSet() repositories.QuestionSetRepository     { return r.questionSet }
func (r *Repository) Assessment() repositories.AssessmentRepository       { return r.assessment }
func (r *Repository) Caller() repositories.CallerRepository               { return r.caller }
func (r *Repository) OracleRequest() repositories.OracleRequestRepository { return r.oracleRequest }
func (r *Repository) Config() repositories.ConfigRepository               { return r.config }
func (r *Repository) Ledger() repositories.LedgerRepository               { return r.ledger }
func (r *Repository) Audit() repositories.AuditRepository                 { return r.audit }

func (r *Repository) Transaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
