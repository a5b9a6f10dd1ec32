package models

import (
	"math/big"
	"time"
)

// LedgerAccount is a balance in the non-transferable reward ledger.
// Balances only ever grow through owner-issued credits; peer transfers
// are rejected unconditionally by the ledger service.
type LedgerAccount struct {
	UserID    string    `json:"user_id" gorm:"primaryKey;size:128"`
	Balance   string    `json:"balance" gorm:"not null;type:numeric(78,0);default:0"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LedgerAccount) TableName() string {
	return "ledger_accounts"
}

// BalanceInt parses the stored balance into a big.Int.
func (a *LedgerAccount) BalanceInt() (*big.Int, bool) {
	if a.Balance == "" {
		return big.NewInt(0), true
	}
	return new(big.Int).SetString(a.Balance, 10)
}
