package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SkillProof-Labs/verification-service/internal/models"
	"github.com/SkillProof-Labs/verification-service/internal/repositories"
)

type SubmitQuestionSetRequest struct {
	ID            string `json:"id" validate:"required,min=1,max=64"`
	ContentHash   string `json:"content_hash" validate:"required,content_hash"`
	QuestionCount uint   `json:"question_count"`
}

const (
	cacheKeyQuestionSets       = "catalog:question_sets"
	cacheKeyActiveQuestionSets = "catalog:question_sets:active"
	catalogCacheTTL            = 5 * time.Minute
)

type catalogService struct {
	deps Deps
}

func NewCatalogService(deps Deps) CatalogService {
	return &catalogService{deps: deps}
}

func (s *catalogService) SubmitQuestionSet(ctx context.Context, actor string, req *SubmitQuestionSetRequest) (*models.QuestionSet, error) {
	if actor != s.deps.OwnerIdentity {
		return nil, ErrNotOwner
	}
	if req.QuestionCount == 0 {
		return nil, ErrInvalidQuestionCount
	}
	if err := s.deps.Validator.Validate(req); err != nil {
		return nil, err
	}

	contentHash, err := models.ParseHash256(req.ContentHash)
	if err != nil {
		return nil, fmt.Errorf("invalid content hash: %w", err)
	}

	if _, err := s.deps.Repo.QuestionSet().GetByID(ctx, req.ID); err == nil {
		return nil, ErrDuplicateID
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check question set id: %w", err)
	}

	set := &models.QuestionSet{
		ID:            req.ID,
		ContentHash:   contentHash,
		QuestionCount: req.QuestionCount,
		Active:        true,
	}
	if err := s.deps.Repo.QuestionSet().Create(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to create question set: %w", err)
	}

	s.invalidateListings(ctx)
	s.deps.Logger.Info("Question set submitted",
		"question_set_id", set.ID,
		"question_count", set.QuestionCount)
	recordAudit(ctx, s.deps.Repo, s.deps.Publisher, s.deps.Logger,
		models.AuditQuestionSetSubmitted, actor, "question_set", set.ID,
		"question set submitted",
		map[string]interface{}{
			"content_hash":   set.ContentHash.String(),
			"question_count": set.QuestionCount,
		})

	return set, nil
}

func (s *catalogService) Activate(ctx context.Context, actor, id string) error {
	return s.setActive(ctx, actor, id, true)
}

func (s *catalogService) Deactivate(ctx context.Context, actor, id string) error {
	return s.setActive(ctx, actor, id, false)
}

// setActive is idempotent: re-applying the current flag still emits an
// audit event but writes nothing.
func (s *catalogService) setActive(ctx context.Context, actor, id string, active bool) error {
	if actor != s.deps.OwnerIdentity {
		return ErrNotOwner
	}

	set, err := s.deps.Repo.QuestionSet().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrSetNotFound
		}
		return fmt.Errorf("failed to get question set: %w", err)
	}

	eventType := models.AuditQuestionSetActivated
	if !active {
		eventType = models.AuditQuestionSetDeactivated
	}

	if set.Active != active {
		set.Active = active
		if err := s.deps.Repo.QuestionSet().Update(ctx, set); err != nil {
			return fmt.Errorf("failed to update question set: %w", err)
		}
		s.invalidateListings(ctx)
	}

	recordAudit(ctx, s.deps.Repo, s.deps.Publisher, s.deps.Logger,
		eventType, actor, "question_set", id,
		fmt.Sprintf("question set active=%t", active), nil)
	return nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*models.QuestionSet, error) {
	set, err := s.deps.Repo.QuestionSet().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSetNotFound
		}
		return nil, fmt.Errorf("failed to get question set: %w", err)
	}
	return set, nil
}

func (s *catalogService) List(ctx context.Context) ([]*models.QuestionSet, error) {
	var cached []*models.QuestionSet
	if err := s.deps.Cache.Get(ctx, cacheKeyQuestionSets, &cached); err == nil {
		return cached, nil
	}

	sets, err := s.deps.Repo.QuestionSet().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list question sets: %w", err)
	}
	if err := s.deps.Cache.Set(ctx, cacheKeyQuestionSets, sets, catalogCacheTTL); err != nil {
		s.deps.Logger.Warn("Failed to cache question set listing", "error", err)
	}
	return sets, nil
}

func (s *catalogService) ListActive(ctx context.Context) ([]*models.QuestionSet, error) {
	var cached []*models.QuestionSet
	if err := s.deps.Cache.Get(ctx, cacheKeyActiveQuestionSets, &cached); err == nil {
		return cached, nil
	}

	sets, err := s.deps.Repo.QuestionSet().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active question sets: %w", err)
	}
	if err := s.deps.Cache.Set(ctx, cacheKeyActiveQuestionSets, sets, catalogCacheTTL); err != nil {
		s.deps.Logger.Warn("Failed to cache active question set listing", "error", err)
	}
	return sets, nil
}

func (s *catalogService) invalidateListings(ctx context.Context) {
	if err := s.deps.Cache.DeletePattern(ctx, cacheKeyQuestionSets+"*"); err != nil {
		s.deps.Logger.Warn("Failed to invalidate catalog cache", "error", err)
	}
}
