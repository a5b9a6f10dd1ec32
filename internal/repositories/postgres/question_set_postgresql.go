package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

type QuestionSetPostgreSQL struct {
	db *gorm.DB
}

func (q *QuestionSetPostgreSQL) Create(ctx context.Context, set *models.QuestionSet) error {
	return q.db.WithContext(ctx).Create(set).Error
}

func (q *QuestionSetPostgreSQL) GetByID(ctx context.Context, id string) (*models.QuestionSet, error) {
	var set models.QuestionSet
	if err := q.db.WithContext(ctx).First(&set, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &set, nil
}

func (q *QuestionSetPostgreSQL) Update(ctx context.Context, set *models.QuestionSet) error {
	return q.db.WithContext(ctx).Save(set).Error
}

func (q *QuestionSetPostgreSQL) List(ctx context.Context) ([]*models.QuestionSet, error) {
	var sets []*models.QuestionSet
	if err := q.db.WithContext(ctx).Order("seq asc").Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}

func (q *QuestionSetPostgreSQL) ListActive(ctx context.Context) ([]*models.QuestionSet, error) {
	var sets []*models.QuestionSet
	if err := q.db.WithContext(ctx).Where("active = ?", true).Order("seq asc").Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}
