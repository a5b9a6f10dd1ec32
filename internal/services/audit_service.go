package services

import (
	"context"
	"fmt"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

type auditService struct {
	deps Deps
}

func NewAuditService(deps Deps) AuditService {
	return &auditService{deps: deps}
}

// ListLogs returns persisted audit entries in insertion order.
// Owner-only: the trail exposes per-user activity.
func (s *auditService) ListLogs(ctx context.Context, actor string, limit, offset int) ([]*models.AuditLog, error) {
	if actor != s.deps.OwnerIdentity {
		return nil, ErrNotOwner
	}
	if limit <= 0 {
		limit = defaultAuditPageSize
	}
	if limit > maxAuditPageSize {
		limit = maxAuditPageSize
	}
	if offset < 0 {
		offset = 0
	}

	logs, err := s.deps.Repo.Audit().List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}
