package models

import (
	"time"
)

// AuthorizedCaller is an allow-list entry naming an identity permitted
// to request evaluations from the oracle client. Membership is
// owner-controlled and mutation is idempotent.
type AuthorizedCaller struct {
	Identity string    `json:"identity" gorm:"primaryKey;size:128" validate:"required"`
	AddedAt  time.Time `json:"added_at"`
}

func (AuthorizedCaller) TableName() string {
	return "authorized_callers"
}
