package services

import (
	"context"
	"fmt"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

type authorizationService struct {
	deps Deps
}

func NewAuthorizationService(deps Deps) AuthorizationService {
	return &authorizationService{deps: deps}
}

// AddCaller is idempotent: adding a present identity changes nothing
// but still emits the audit event.
func (s *authorizationService) AddCaller(ctx context.Context, actor, identity string) error {
	if actor != s.deps.OwnerIdentity {
		return ErrNotOwner
	}
	if identity == "" {
		return fmt.Errorf("caller identity must be non-empty")
	}

	if err := s.deps.Repo.Caller().Add(ctx, &models.AuthorizedCaller{Identity: identity}); err != nil {
		return fmt.Errorf("failed to add caller: %w", err)
	}

	s.deps.Logger.Info("Caller authorized", "identity", identity)
	recordAudit(ctx, s.deps.Repo, s.deps.Publisher, s.deps.Logger,
		models.AuditCallerAdded, actor, "caller", identity,
		"caller added to authorization registry", nil)
	return nil
}

// RemoveCaller is idempotent: removing an absent identity changes
// nothing but still emits the audit event.
func (s *authorizationService) RemoveCaller(ctx context.Context, actor, identity string) error {
	if actor != s.deps.OwnerIdentity {
		return ErrNotOwner
	}

	if err := s.deps.Repo.Caller().Remove(ctx, identity); err != nil {
		return fmt.Errorf("failed to remove caller: %w", err)
	}

	s.deps.Logger.Info("Caller deauthorized", "identity", identity)
	recordAudit(ctx, s.deps.Repo, s.deps.Publisher, s.deps.Logger,
		models.AuditCallerRemoved, actor, "caller", identity,
		"caller removed from authorization registry", nil)
	return nil
}

func (s *authorizationService) IsAuthorized(ctx context.Context, identity string) (bool, error) {
	return s.deps.Repo.Caller().Exists(ctx, identity)
}

func (s *authorizationService) ListCallers(ctx context.Context) ([]*models.AuthorizedCaller, error) {
	return s.deps.Repo.Caller().List(ctx)
}
