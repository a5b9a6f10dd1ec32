package services

import (
	"context"
	"fmt"
	"math/big"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

type UpdateRewardConfigRequest struct {
	PassingScoreThreshold uint8  `json:"passing_score_threshold"`
	MaxRewardUnits        string `json:"max_reward_units" validate:"required"`
}

type rewardService struct {
	deps   Deps
	ledger LedgerService
}

func NewRewardService(deps Deps, ledger LedgerService) RewardService {
	return &rewardService{deps: deps, ledger: ledger}
}

// IssueReward credits floor(maxRewardUnits * score / 100). The passing
// threshold never gates the amount; it exists for eligibility display
// only. Called exactly once per Completed transition.
func (s *rewardService) IssueReward(ctx context.Context, userID string, score uint8) (*big.Int, error) {
	if score > 100 {
		score = 100
	}

	cfg, err := s.deps.Repo.Config().GetRewardConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reward config: %w", err)
	}

	amount, ok := cfg.RewardFor(score)
	if !ok {
		return nil, fmt.Errorf("corrupt max reward units: %q", cfg.MaxRewardUnits)
	}

	if err := s.ledger.Credit(ctx, s.deps.OwnerIdentity, userID, amount); err != nil {
		return nil, fmt.Errorf("failed to credit reward: %w", err)
	}

	s.deps.Logger.Info("Reward issued",
		"user_id", userID,
		"score", score,
		"amount", amount.String())
	recordAudit(ctx, s.deps.Repo, s.deps.Publisher, s.deps.Logger,
		models.AuditRewardIssued, s.deps.OwnerIdentity, "ledger_account", userID,
		"reward issued",
		map[string]interface{}{
			"score":  score,
			"amount": amount.String(),
		})

	return amount, nil
}

func (s *rewardService) GetConfig(ctx context.Context) (*models.RewardConfig, error) {
	return s.deps.Repo.Config().GetRewardConfig(ctx)
}

func (s *rewardService) UpdateConfig(ctx context.Context, actor string, req *UpdateRewardConfigRequest) (*models.RewardConfig, error) {
	if actor != s.deps.OwnerIdentity {
		return nil, ErrNotOwner
	}
	if err := s.deps.Validator.Validate(req); err != nil {
		return nil, err
	}
	if req.PassingScoreThreshold > 100 {
		return nil, ErrInvalidThreshold
	}
	units, ok := new(big.Int).SetString(req.MaxRewardUnits, 10)
	if !ok || units.Sign() < 0 {
		return nil, ErrInvalidRewardUnits
	}

	cfg, err := s.deps.Repo.Config().GetRewardConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reward config: %w", err)
	}
	cfg.PassingScoreThreshold = req.PassingScoreThreshold
	cfg.MaxRewardUnits = units.String()
	if err := s.deps.Repo.Config().SaveRewardConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save reward config: %w", err)
	}

	recordAudit(ctx, s.deps.Repo, s.deps.Publisher, s.deps.Logger,
		models.AuditRewardConfigUpdated, actor, "reward_config", "1",
		"reward configuration updated",
		map[string]interface{}{
			"passing_score_threshold": cfg.PassingScoreThreshold,
			"max_reward_units":        cfg.MaxRewardUnits,
		})
	return cfg, nil
}
