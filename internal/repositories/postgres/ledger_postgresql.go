package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

type LedgerPostgreSQL struct {
	db *gorm.DB
}

// GetAccount returns the user's ledger account, or a zero-balance
// account if the user has never been credited.
func (l *LedgerPostgreSQL) GetAccount(ctx context.Context, userID string) (*models.LedgerAccount, error) {
	var account models.LedgerAccount
	err := l.db.WithContext(ctx).First(&account, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.LedgerAccount{UserID: userID, Balance: "0"}, nil
		}
		return nil, err
	}
	return &account, nil
}

func (l *LedgerPostgreSQL) Save(ctx context.Context, account *models.LedgerAccount) error {
	return l.db.WithContext(ctx).Save(account).Error
}

type AuditPostgreSQL struct {
	db *gorm.DB
}

func (a *AuditPostgreSQL) Create(ctx context.Context, log *models.AuditLog) error {
	return a.db.WithContext(ctx).Create(log).Error
}

func (a *AuditPostgreSQL) List(ctx context.Context, limit, offset int) ([]*models.AuditLog, error) {
	var logs []*models.AuditLog
	query := a.db.WithContext(ctx).Order("created_at desc").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
