package models

import (
	"time"
)

// OracleRequest correlates an in-flight evaluation request with the
// user it was issued for. Each request is consumed by exactly one
// callback; stale, duplicate or forged callbacks find no row and are
// rejected.
type OracleRequest struct {
	RequestID     string    `json:"request_id" gorm:"primaryKey;size:66"`
	UserID        string    `json:"user_id" gorm:"not null;size:128;index"`
	QuestionSetID string    `json:"question_set_id" gorm:"not null;size:64"`
	IssuedAt      time.Time `json:"issued_at"`
}

func (OracleRequest) TableName() string {
	return "oracle_requests"
}

// OracleConfig is the owner-mutable configuration of the external
// evaluation network: which subscription pays for requests, which DON
// executes them, and the scoring routine itself. A single row with
// ID 1 holds the live configuration.
type OracleConfig struct {
	ID                  uint      `json:"-" gorm:"primaryKey"`
	SubscriptionID      uint64    `json:"subscription_id"`
	DONID               string    `json:"don_id" gorm:"size:64"`
	Source              string    `json:"source" gorm:"type:text"`
	EncryptedSecrets    []byte    `json:"-" gorm:"type:bytea"`
	CallbackGasLimit    uint32    `json:"callback_gas_limit" gorm:"default:300000"`
	VerificationEnabled bool      `json:"verification_enabled"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (OracleConfig) TableName() string {
	return "oracle_config"
}
