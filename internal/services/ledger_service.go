package services

import (
	"context"
	"fmt"
	"math/big"
)

// ledgerService implements the non-transferable balance ledger. Only
// owner-issued credits mutate balances; every peer transfer or
// approval path fails with the same fixed reason regardless of any
// prior state.
type ledgerService struct {
	deps Deps
}

func NewLedgerService(deps Deps) LedgerService {
	return &ledgerService{deps: deps}
}

func (s *ledgerService) Credit(ctx context.Context, actor, userID string, amount *big.Int) error {
	if actor != s.deps.OwnerIdentity {
		return ErrNotOwner
	}
	if amount.Sign() < 0 {
		return fmt.Errorf("credit amount must be non-negative")
	}
	// A zero-amount credit is accepted as a no-op, not an error: a
	// score of 0 still completes the assessment.
	if amount.Sign() == 0 {
		s.deps.Logger.Debug("Zero-amount credit skipped", "user_id", userID)
		return nil
	}

	account, err := s.deps.Repo.Ledger().GetAccount(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load ledger account: %w", err)
	}
	balance, ok := account.BalanceInt()
	if !ok {
		return fmt.Errorf("corrupt balance for account %s: %q", userID, account.Balance)
	}

	account.Balance = new(big.Int).Add(balance, amount).String()
	if err := s.deps.Repo.Ledger().Save(ctx, account); err != nil {
		return fmt.Errorf("failed to save ledger account: %w", err)
	}

	s.deps.Logger.Info("Ledger credit issued",
		"user_id", userID,
		"amount", amount.String(),
		"balance", account.Balance)
	return nil
}

func (s *ledgerService) BalanceOf(ctx context.Context, userID string) (*big.Int, error) {
	account, err := s.deps.Repo.Ledger().GetAccount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger account: %w", err)
	}
	balance, ok := account.BalanceInt()
	if !ok {
		return nil, fmt.Errorf("corrupt balance for account %s: %q", userID, account.Balance)
	}
	return balance, nil
}

// Transfer always fails: reward balances are bound to the identity
// that earned them.
func (s *ledgerService) Transfer(_ context.Context, _, _ string, _ *big.Int) error {
	return ErrTransfersDisabled
}

// TransferFrom always fails, regardless of any approval state.
func (s *ledgerService) TransferFrom(_ context.Context, _, _, _ string, _ *big.Int) error {
	return ErrTransfersDisabled
}

// Approve always fails; there is nothing an approval could enable.
func (s *ledgerService) Approve(_ context.Context, _, _ string, _ *big.Int) error {
	return ErrTransfersDisabled
}
