package models

import (
	"time"
)

// QuestionSet is a named catalog entry referencing a question payload
// by content hash. Identity is append-only: sets are deactivated, never
// deleted, so completed assessments keep a valid reference.
type QuestionSet struct {
	ID            string    `json:"id" gorm:"primaryKey;size:64" validate:"required,min=1,max=64"`
	ContentHash   Hash256   `json:"content_hash" gorm:"not null;type:text" validate:"required"`
	QuestionCount uint      `json:"question_count" gorm:"not null" validate:"required,min=1"`
	Active        bool      `json:"active" gorm:"not null;default:true"`
	Seq           uint64    `json:"-" gorm:"autoIncrement;uniqueIndex"` // insertion order for List()
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (QuestionSet) TableName() string {
	return "question_sets"
}
