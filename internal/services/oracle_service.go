package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SkillProof-Labs/verification-service/internal/models"
	"github.com/SkillProof-Labs/verification-service/internal/oracle"
	"github.com/SkillProof-Labs/verification-service/internal/repositories"
)

type UpdateOracleConfigRequest struct {
	SubscriptionID      uint64 `json:"subscription_id"`
	DONID               string `json:"don_id"`
	Source              string `json:"source"`
	EncryptedSecrets    []byte `json:"encrypted_secrets"`
	CallbackGasLimit    uint32 `json:"callback_gas_limit"`
	VerificationEnabled bool   `json:"verification_enabled"`
}

// oracleService bridges the synchronous call path to the asynchronous
// external scorer. It owns the requestId <-> user correlation and is
// the single consumer of callbacks.
type oracleService struct {
	deps Deps
	sink VerificationSink
}

func NewOracleService(deps Deps, sink VerificationSink) OracleService {
	return &oracleService{deps: deps, sink: sink}
}

// RequestEvaluation issues a fire-and-forget request to the evaluation
// network. The issuing call never blocks on the result; completion is
// driven entirely by the later callback transaction.
func (s *oracleService) RequestEvaluation(ctx context.Context, caller string, in *EvaluationInput) (string, error) {
	authorized, err := s.deps.Repo.Caller().Exists(ctx, caller)
	if err != nil {
		return "", fmt.Errorf("failed to check caller authorization: %w", err)
	}
	if !authorized {
		return "", ErrCallerNotAuthorized
	}

	cfg, err := s.deps.Repo.Config().GetOracleConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load oracle config: %w", err)
	}
	if !cfg.VerificationEnabled {
		return "", ErrVerificationDisabled
	}
	if cfg.Source == "" {
		return "", ErrSourceNotConfigured
	}
	if cfg.SubscriptionID == 0 {
		return "", ErrSubscriptionNotConfigured
	}

	// At most one outstanding verification per user.
	if _, err := s.deps.Repo.OracleRequest().GetByUser(ctx, in.UserID); err == nil {
		return "", ErrAlreadyVerifying
	} else if !repositories.IsNotFoundError(err) {
		return "", fmt.Errorf("failed to check outstanding requests: %w", err)
	}

	requestID, err := s.deps.Network.Send(ctx, &oracle.EvaluationRequest{
		SubscriptionID:   cfg.SubscriptionID,
		DONID:            cfg.DONID,
		Source:           cfg.Source,
		EncryptedSecrets: cfg.EncryptedSecrets,
		CallbackGasLimit: cfg.CallbackGasLimit,
		Args:             []string{in.QuestionSetID, in.AnswersHash.String(), in.ContentHash.String()},
	})
	if err != nil {
		return "", fmt.Errorf("failed to send evaluation request: %w", err)
	}

	request := &models.OracleRequest{
		RequestID:     requestID,
		UserID:        in.UserID,
		QuestionSetID: in.QuestionSetID,
		IssuedAt:      time.Now(),
	}
	if err := s.deps.Repo.OracleRequest().Create(ctx, request); err != nil {
		return "", fmt.Errorf("failed to record oracle request: %w", err)
	}

	s.deps.Logger.Info("Evaluation requested",
		"request_id", requestID,
		"user_id", in.UserID,
		"question_set_id", in.QuestionSetID,
		"caller", caller)
	return requestID, nil
}

// HandleCallback consumes exactly one outstanding request. Unmatched,
// duplicate or stale ids are rejected with ErrUnknownRequest. A
// payload the scorer mangled is absorbed as a score-0 completion: the
// external service is untrusted and must never be able to wedge the
// pipeline.
func (s *oracleService) HandleCallback(ctx context.Context, requestID string, rawResult []byte) error {
	request, err := s.deps.Repo.OracleRequest().GetByID(ctx, requestID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			s.deps.Logger.Warn("Callback for unknown request rejected", "request_id", requestID)
			return ErrUnknownRequest
		}
		return fmt.Errorf("failed to load oracle request: %w", err)
	}

	// The request must still map to a live Verifying assessment for
	// the same question set. Restart revokes the request row, so the
	// usual stale case dies on the lookup above; this check catches any
	// request that outlived its assessment some other way.
	assessment, err := s.deps.Repo.Assessment().GetByUser(ctx, request.UserID)
	stale := false
	switch {
	case err == nil:
		stale = assessment.Status != models.StatusVerifying ||
			assessment.QuestionSetID != request.QuestionSetID
	case repositories.IsNotFoundError(err):
		stale = true
	default:
		return fmt.Errorf("failed to load assessment: %w", err)
	}

	// Single consumption: the delete is the point of no return, and a
	// concurrent duplicate callback loses the race here.
	if err := s.deps.Repo.OracleRequest().Delete(ctx, requestID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUnknownRequest
		}
		return fmt.Errorf("failed to consume oracle request: %w", err)
	}

	if stale {
		s.deps.Logger.Warn("Stale callback rejected",
			"request_id", requestID,
			"user_id", request.UserID)
		return ErrUnknownRequest
	}

	result, decodeErr := oracle.DecodeResult(rawResult)
	if decodeErr != nil {
		// Scoring failure, not a protocol error: complete with score 0
		// and the sentinel hash so the untrusted scorer cannot stall
		// the state machine.
		s.deps.Logger.LogError(decodeErr, "Malformed evaluation result, completing with score 0",
			"request_id", requestID,
			"user_id", request.UserID)
		result = &oracle.Result{Score: 0, ResultHash: models.ZeroHash}
	}

	s.deps.Logger.Info("Evaluation callback received",
		"request_id", requestID,
		"user_id", request.UserID,
		"score", result.Score)
	return s.sink.OnVerificationComplete(ctx, request.UserID, result.Score, result.ResultHash, false)
}

// SubmitManualResult is the owner's administrative substitute for
// oracle verification. It bypasses request bookkeeping entirely but
// performs the identical completion transition.
func (s *oracleService) SubmitManualResult(ctx context.Context, actor, userID string, score uint8, resultHash models.Hash256) error {
	if actor != s.deps.OwnerIdentity {
		return ErrNotOwner
	}

	cfg, err := s.deps.Repo.Config().GetOracleConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load oracle config: %w", err)
	}
	if cfg.VerificationEnabled {
		return ErrVerificationEnabled
	}

	if err := s.sink.OnVerificationComplete(ctx, userID, score, resultHash, true); err != nil {
		return err
	}

	recordAudit(ctx, s.deps.Repo, s.deps.Publisher, s.deps.Logger,
		models.AuditManualResultSubmitted, actor, "assessment", userID,
		"manual result submitted",
		map[string]interface{}{
			"score":       score,
			"result_hash": resultHash.String(),
		})
	return nil
}

func (s *oracleService) GetConfig(ctx context.Context) (*models.OracleConfig, error) {
	return s.deps.Repo.Config().GetOracleConfig(ctx)
}

func (s *oracleService) UpdateConfig(ctx context.Context, actor string, req *UpdateOracleConfigRequest) (*models.OracleConfig, error) {
	if actor != s.deps.OwnerIdentity {
		return nil, ErrNotOwner
	}

	cfg, err := s.deps.Repo.Config().GetOracleConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load oracle config: %w", err)
	}

	cfg.SubscriptionID = req.SubscriptionID
	cfg.DONID = req.DONID
	cfg.Source = req.Source
	if req.EncryptedSecrets != nil {
		cfg.EncryptedSecrets = req.EncryptedSecrets
	}
	if req.CallbackGasLimit > 0 {
		cfg.CallbackGasLimit = req.CallbackGasLimit
	}
	cfg.VerificationEnabled = req.VerificationEnabled

	if err := s.deps.Repo.Config().SaveOracleConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save oracle config: %w", err)
	}

	// Secrets never reach the audit trail.
	recordAudit(ctx, s.deps.Repo, s.deps.Publisher, s.deps.Logger,
		models.AuditOracleConfigUpdated, actor, "oracle_config", "1",
		"oracle configuration updated",
		map[string]interface{}{
			"subscription_id":      cfg.SubscriptionID,
			"don_id":               cfg.DONID,
			"verification_enabled": cfg.VerificationEnabled,
			"source_configured":    cfg.Source != "",
		})
	return cfg, nil
}
