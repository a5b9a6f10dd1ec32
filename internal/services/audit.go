package services

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/SkillProof-Labs/verification-service/internal/events"
	"github.com/SkillProof-Labs/verification-service/internal/models"
	"github.com/SkillProof-Labs/verification-service/internal/repositories"
	"github.com/SkillProof-Labs/verification-service/internal/utils"
)

// recordAudit persists an audit row and publishes the matching event.
// Auditing is best-effort: a failure is logged, never propagated, so
// observability problems cannot roll back a completed mutation.
func recordAudit(
	ctx context.Context,
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger utils.Logger,
	eventType models.AuditEventType,
	actor, targetType, targetID, description string,
	metadata map[string]interface{},
) {
	var meta datatypes.JSON
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			meta = b
		}
	}

	log := &models.AuditLog{
		EventType:   eventType,
		Actor:       actor,
		TargetType:  targetType,
		TargetID:    targetID,
		Description: description,
		Metadata:    meta,
	}
	if err := repo.Audit().Create(ctx, log); err != nil {
		logger.LogError(err, "Failed to persist audit log",
			"event_type", eventType,
			"target_id", targetID)
	}

	event := events.NewAuditEvent(eventType, actor, targetType, targetID, metadata)
	if err := publisher.PublishAuditEvent(ctx, event); err != nil {
		logger.LogError(err, "Failed to publish audit event",
			"event_type", eventType,
			"target_id", targetID)
	}
}
