package models

import (
	"time"
)

type AssessmentStatus string

const (
	StatusNotStarted       AssessmentStatus = "NotStarted"
	StatusStarted          AssessmentStatus = "Started"
	StatusAnswersSubmitted AssessmentStatus = "AnswersSubmitted"
	StatusVerifying        AssessmentStatus = "Verifying"
	StatusCompleted        AssessmentStatus = "Completed"
)

// Assessment is a user's single attempt at a question set. At most one
// row exists per user; restart resets the row to NotStarted instead of
// deleting it.
type Assessment struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	UserID        string           `json:"user_id" gorm:"not null;size:128;uniqueIndex" validate:"required"`
	QuestionSetID string           `json:"question_set_id" gorm:"size:64;index"`
	AnswersHash   Hash256          `json:"answers_hash" gorm:"type:text"`
	Status        AssessmentStatus `json:"status" gorm:"not null;default:NotStarted;index" validate:"omitempty,oneof=NotStarted Started AnswersSubmitted Verifying Completed"`
	Score         *uint8           `json:"score" validate:"omitempty,max=100"`
	ResultHash    *Hash256         `json:"result_hash" gorm:"type:text"`
	StartedAt     time.Time        `json:"started_at"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// InProgress reports whether the assessment occupies its user's single
// live slot.
func (a *Assessment) InProgress() bool {
	return a.Status != StatusNotStarted && a.Status != StatusCompleted
}

// Reset returns the assessment to NotStarted, clearing everything but
// the user identity. An oracle request already in flight is not
// revoked; its callback is rejected at consumption time instead.
func (a *Assessment) Reset() {
	a.QuestionSetID = ""
	a.AnswersHash = Hash256{}
	a.Status = StatusNotStarted
	a.Score = nil
	a.ResultHash = nil
	a.StartedAt = time.Time{}
}
