package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

type CallerPostgreSQL struct {
	db *gorm.DB
}

// Add is idempotent: inserting an existing identity is a no-op.
func (c *CallerPostgreSQL) Add(ctx context.Context, caller *models.AuthorizedCaller) error {
	return c.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(caller).Error
}

// Remove is idempotent: deleting a missing identity is a no-op.
func (c *CallerPostgreSQL) Remove(ctx context.Context, identity string) error {
	return c.db.WithContext(ctx).Delete(&models.AuthorizedCaller{}, "identity = ?", identity).Error
}

func (c *CallerPostgreSQL) Exists(ctx context.Context, identity string) (bool, error) {
	var caller models.AuthorizedCaller
	err := c.db.WithContext(ctx).First(&caller, "identity = ?", identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *CallerPostgreSQL) List(ctx context.Context) ([]*models.AuthorizedCaller, error) {
	var callers []*models.AuthorizedCaller
	if err := c.db.WithContext(ctx).Order("added_at asc").Find(&callers).Error; err != nil {
		return nil, err
	}
	return callers, nil
}
