package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

type AssessmentPostgreSQL struct {
	db *gorm.DB
}

func (a *AssessmentPostgreSQL) Create(ctx context.Context, assessment *models.Assessment) error {
	return a.db.WithContext(ctx).Create(assessment).Error
}

func (a *AssessmentPostgreSQL) GetByUser(ctx context.Context, userID string) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := a.db.WithContext(ctx).First(&assessment, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (a *AssessmentPostgreSQL) Update(ctx context.Context, assessment *models.Assessment) error {
	return a.db.WithContext(ctx).Save(assessment).Error
}

func (a *AssessmentPostgreSQL) ListByStatus(ctx context.Context, status models.AssessmentStatus) ([]*models.Assessment, error) {
	var assessments []*models.Assessment
	if err := a.db.WithContext(ctx).Where("status = ?", status).Order("updated_at asc").Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}
