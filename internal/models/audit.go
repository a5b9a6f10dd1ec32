package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditEventType string

const (
	AuditQuestionSetSubmitted   AuditEventType = "question_set_submitted"
	AuditQuestionSetActivated   AuditEventType = "question_set_activated"
	AuditQuestionSetDeactivated AuditEventType = "question_set_deactivated"
	AuditCallerAdded            AuditEventType = "caller_added"
	AuditCallerRemoved          AuditEventType = "caller_removed"
	AuditAssessmentStarted      AuditEventType = "assessment_started"
	AuditAnswersSubmitted       AuditEventType = "answers_submitted"
	AuditVerificationRequested  AuditEventType = "verification_requested"
	AuditVerificationCompleted  AuditEventType = "verification_completed"
	AuditManualResultSubmitted  AuditEventType = "manual_result_submitted"
	AuditAssessmentRestarted    AuditEventType = "assessment_restarted"
	AuditRewardIssued           AuditEventType = "reward_issued"
	AuditOracleConfigUpdated    AuditEventType = "oracle_config_updated"
	AuditRewardConfigUpdated    AuditEventType = "reward_config_updated"
	AuditResultsExported        AuditEventType = "results_exported"
)

// AuditLog is the persisted counterpart of a published audit event.
// Every state mutation writes one row; Metadata carries the
// operation-specific context (raw callback payloads, request ids,
// before/after values).
type AuditLog struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	EventType   AuditEventType `json:"event_type" gorm:"not null;index"`
	Actor       string         `json:"actor" gorm:"not null;size:128;index"`
	TargetType  string         `json:"target_type" gorm:"size:50;index"`
	TargetID    string         `json:"target_id" gorm:"size:128;index"`
	Description string         `json:"description" gorm:"not null;type:text"`
	Metadata    datatypes.JSON `json:"metadata" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"created_at" gorm:"index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
