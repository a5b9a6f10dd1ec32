package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

type OracleRequestPostgreSQL struct {
	db *gorm.DB
}

func (o *OracleRequestPostgreSQL) Create(ctx context.Context, request *models.OracleRequest) error {
	return o.db.WithContext(ctx).Create(request).Error
}

func (o *OracleRequestPostgreSQL) GetByID(ctx context.Context, requestID string) (*models.OracleRequest, error) {
	var request models.OracleRequest
	if err := o.db.WithContext(ctx).First(&request, "request_id = ?", requestID).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (o *OracleRequestPostgreSQL) GetByUser(ctx context.Context, userID string) (*models.OracleRequest, error) {
	var request models.OracleRequest
	if err := o.db.WithContext(ctx).First(&request, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// Delete is the single-consumption point for a request: deleting an
// already-consumed id reports not-found so a duplicate callback can be
// rejected.
func (o *OracleRequestPostgreSQL) Delete(ctx context.Context, requestID string) error {
	res := o.db.WithContext(ctx).Delete(&models.OracleRequest{}, "request_id = ?", requestID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByUser revokes every outstanding request of the user. Zero
// deleted rows is not an error: revocation is idempotent.
func (o *OracleRequestPostgreSQL) DeleteByUser(ctx context.Context, userID string) error {
	return o.db.WithContext(ctx).Delete(&models.OracleRequest{}, "user_id = ?", userID).Error
}

type ConfigPostgreSQL struct {
	db *gorm.DB
}

// GetOracleConfig returns the singleton oracle configuration, or a
// zero-value (verification disabled, nothing configured) row if the
// owner has never set one.
func (c *ConfigPostgreSQL) GetOracleConfig(ctx context.Context) (*models.OracleConfig, error) {
	var cfg models.OracleConfig
	err := c.db.WithContext(ctx).First(&cfg, "id = ?", 1).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.OracleConfig{ID: 1}, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (c *ConfigPostgreSQL) SaveOracleConfig(ctx context.Context, cfg *models.OracleConfig) error {
	cfg.ID = 1
	return c.db.WithContext(ctx).Save(cfg).Error
}

// GetRewardConfig returns the singleton reward configuration, seeded
// with defaults if the owner has never set one.
func (c *ConfigPostgreSQL) GetRewardConfig(ctx context.Context) (*models.RewardConfig, error) {
	var cfg models.RewardConfig
	err := c.db.WithContext(ctx).First(&cfg, "id = ?", 1).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.RewardConfig{ID: 1, MaxRewardUnits: models.DefaultMaxRewardUnits}, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (c *ConfigPostgreSQL) SaveRewardConfig(ctx context.Context, cfg *models.RewardConfig) error {
	cfg.ID = 1
	return c.db.WithContext(ctx).Save(cfg).Error
}
