package models

import (
	"math/big"
	"time"
)

// DefaultMaxRewardUnits is one whole reward token in fixed-point form
// (18 decimals).
const DefaultMaxRewardUnits = "1000000000000000000"

// RewardConfig holds the owner-mutable reward parameters. The passing
// threshold is informational (UI/eligibility gating only); issued
// amounts are proportional to the raw score and never gated by it.
// A single row with ID 1 holds the live configuration.
type RewardConfig struct {
	ID                    uint      `json:"-" gorm:"primaryKey"`
	PassingScoreThreshold uint8     `json:"passing_score_threshold" validate:"max=100"`
	MaxRewardUnits        string    `json:"max_reward_units" gorm:"not null;type:numeric(78,0)" validate:"required,number"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (RewardConfig) TableName() string {
	return "reward_config"
}

// MaxReward parses MaxRewardUnits into a big.Int. Amounts are 256-bit
// scale fixed-point values, so arithmetic never goes through machine
// integers.
func (c *RewardConfig) MaxReward() (*big.Int, bool) {
	return new(big.Int).SetString(c.MaxRewardUnits, 10)
}

// RewardFor computes floor(maxRewardUnits * score / 100) for a score
// already clamped to [0,100].
func (c *RewardConfig) RewardFor(score uint8) (*big.Int, bool) {
	max, ok := c.MaxReward()
	if !ok {
		return nil, false
	}
	amount := new(big.Int).Mul(max, big.NewInt(int64(score)))
	return amount.Quo(amount, big.NewInt(100)), true
}
