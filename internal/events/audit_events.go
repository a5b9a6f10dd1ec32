package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

// AuditEvent is the envelope published to the audit stream for every
// state mutation. It mirrors the persisted models.AuditLog row.
type AuditEvent struct {
	ID        string                `json:"id"`
	Type      models.AuditEventType `json:"type"`
	Source    string                `json:"source"`
	Version   string                `json:"version"`
	Timestamp time.Time             `json:"timestamp"`

	Actor      string                 `json:"actor"`
	TargetType string                 `json:"target_type,omitempty"`
	TargetID   string                 `json:"target_id,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

const (
	eventSource  = "verification-service"
	eventVersion = "1.0"
)

// NewAuditEvent builds an event envelope with a fresh id and the
// service's source/version stamps.
func NewAuditEvent(eventType models.AuditEventType, actor, targetType, targetID string, data map[string]interface{}) *AuditEvent {
	return &AuditEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Source:     eventSource,
		Version:    eventVersion,
		Timestamp:  time.Now(),
		Actor:      actor,
		TargetType: targetType,
		TargetID:   targetID,
		Data:       data,
	}
}
