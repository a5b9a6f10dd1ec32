package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SkillProof-Labs/verification-service/internal/models"
	"github.com/SkillProof-Labs/verification-service/internal/repositories"
)

// evaluationClient is the slice of the oracle client the state machine
// drives: issuing requests and reading the verification switch.
type evaluationClient interface {
	RequestEvaluation(ctx context.Context, caller string, in *EvaluationInput) (string, error)
	GetConfig(ctx context.Context) (*models.OracleConfig, error)
}

const (
	assessmentCacheTTL = 30 * time.Second
)

func assessmentCacheKey(userID string) string {
	return "assessment:user:" + userID
}

// assessmentService is the per-user lifecycle controller:
// NotStarted -> Started -> AnswersSubmitted -> Verifying -> Completed,
// with restart back to NotStarted from any state. Every invariant is
// enforced by explicit status checks; the repository serializes the
// writes.
type assessmentService struct {
	deps   Deps
	reward RewardService
	oracle evaluationClient
}

func NewAssessmentService(deps Deps, reward RewardService) *assessmentService {
	return &assessmentService{deps: deps, reward: reward}
}

// AttachOracle closes the loop between the state machine and the
// oracle client after both are constructed.
func (s *assessmentService) AttachOracle(client evaluationClient) {
	s.oracle = client
}

func (s *assessmentService) Start(ctx context.Context, userID, questionSetID string) (*models.Assessment, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id must be non-empty")
	}

	set, err := s.deps.Repo.QuestionSet().GetByID(ctx, questionSetID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSetNotFound
		}
		return nil, fmt.Errorf("failed to get question set: %w", err)
	}
	if !set.Active {
		return nil, ErrSetInactive
	}

	assessment, err := s.deps.Repo.Assessment().GetByUser(ctx, userID)
	switch {
	case err == nil:
		// One live assessment per user. Re-starting, even of the same
		// set, goes through Restart.
		if assessment.Status != models.StatusNotStarted {
			return nil, ErrAlreadyInProgress
		}
		assessment.QuestionSetID = questionSetID
		assessment.AnswersHash = models.Hash256{}
		assessment.Status = models.StatusStarted
		assessment.Score = nil
		assessment.ResultHash = nil
		assessment.StartedAt = time.Now()
		if err := s.deps.Repo.Assessment().Update(ctx, assessment); err != nil {
			return nil, fmt.Errorf("failed to update assessment: %w", err)
		}
	case repositories.IsNotFoundError(err):
		assessment = &models.Assessment{
			UserID:        userID,
			QuestionSetID: questionSetID,
			Status:        models.StatusStarted,
			StartedAt:     time.Now(),
		}
		if err := s.deps.Repo.Assessment().Create(ctx, assessment); err != nil {
			return nil, fmt.Errorf("failed to create assessment: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	s.invalidate(ctx, userID)
	s.deps.Logger.Info("Assessment started",
		"user_id", userID,
		"question_set_id", questionSetID)
	recordAudit(ctx, s.deps.Repo, s.deps.Publisher, s.deps.Logger,
		models.AuditAssessmentStarted, userID, "assessment", userID,
		"assessment started",
		map[string]interface{}{"question_set_id": questionSetID})

	return assessment, nil
}

func (s *assessmentService) SubmitAnswers(ctx context.Context, userID string, answersHash models.Hash256) (*models.Assessment, error) {
	if answersHash.IsZero() {
		return nil, ErrInvalidAnswersHash
	}

	assessment, err := s.deps.Repo.Assessment().GetByUser(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNoActiveAssessment
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	switch assessment.Status {
	case models.StatusNotStarted:
		return nil, ErrNoActiveAssessment
	case models.StatusStarted:
		// fallthrough to the transition
	default:
		return nil, ErrAlreadySubmitted
	}

	assessment.AnswersHash = answersHash
	assessment.Status = models.StatusAnswersSubmitted
	if err := s.deps.Repo.Assessment().Update(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to update assessment: %w", err)
	}

	s.invalidate(ctx, userID)
	s.deps.Logger.Info("Answers submitted",
		"user_id", userID,
		"answers_hash", answersHash.String())
	recordAudit(ctx, s.deps.Repo, s.deps.Publisher, s.deps.Logger,
		models.AuditAnswersSubmitted, userID, "assessment", userID,
		"answers submitted",
		map[string]interface{}{"answers_hash": answersHash.String()})

	return assessment, nil
}

// SubmitAssessment submits answers (when not yet submitted) and, if
// oracle verification is enabled, immediately requests evaluation.
// With verification disabled the assessment stays at AnswersSubmitted
// awaiting an owner-supplied manual result.
func (s *assessmentService) SubmitAssessment(ctx context.Context, userID string, answersHash models.Hash256) (*models.Assessment, error) {
	assessment, err := s.deps.Repo.Assessment().GetByUser(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNoActiveAssessment
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	switch assessment.Status {
	case models.StatusNotStarted:
		return nil, ErrNoActiveAssessment
	case models.StatusStarted:
		assessment, err = s.SubmitAnswers(ctx, userID, answersHash)
		if err != nil {
			return nil, err
		}
	case models.StatusAnswersSubmitted:
		// answers already in; proceed to verification
	case models.StatusVerifying:
		return nil, ErrAlreadyVerifying
	case models.StatusCompleted:
		return nil, ErrAlreadyCompleted
	}

	cfg, err := s.oracle.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load oracle config: %w", err)
	}
	if !cfg.VerificationEnabled {
		s.deps.Logger.Info("Oracle verification disabled, awaiting manual result",
			"user_id", userID)
		return assessment, nil
	}

	set, err := s.deps.Repo.QuestionSet().GetByID(ctx, assessment.QuestionSetID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSetNotFound
		}
		return nil, fmt.Errorf("failed to get question set: %w", err)
	}

	requestID, err := s.oracle.RequestEvaluation(ctx, s.deps.ServiceIdentity, &EvaluationInput{
		UserID:        userID,
		QuestionSetID: assessment.QuestionSetID,
		AnswersHash:   assessment.AnswersHash,
		ContentHash:   set.ContentHash,
	})
	if err != nil {
		return nil, err
	}

	assessment.Status = models.StatusVerifying
	if err := s.deps.Repo.Assessment().Update(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to update assessment: %w", err)
	}

	s.invalidate(ctx, userID)
	s.deps.Logger.Info("Verification requested",
		"user_id", userID,
		"request_id", requestID)
	recordAudit(ctx, s.deps.Repo, s.deps.Publisher, s.deps.Logger,
		models.AuditVerificationRequested, userID, "assessment", userID,
		"verification requested",
		map[string]interface{}{"request_id": requestID})

	return assessment, nil
}

// OnVerificationComplete is the only writer of the terminal edge. It
// is invoked by the oracle client (callback or owner manual result),
// never by external callers directly. A second completion for an
// already-Completed user is rejected so rewards cannot be re-minted.
func (s *assessmentService) OnVerificationComplete(ctx context.Context, userID string, score uint8, resultHash models.Hash256, manual bool) error {
	assessment, err := s.deps.Repo.Assessment().GetByUser(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNoAssessment
		}
		return fmt.Errorf("failed to get assessment: %w", err)
	}

	switch assessment.Status {
	case models.StatusCompleted:
		return ErrAlreadyCompleted
	case models.StatusVerifying:
		// the normal callback edge
	case models.StatusAnswersSubmitted:
		// only a manual result may skip Verifying
		if !manual {
			return ErrNoActiveAssessment
		}
	default:
		return ErrNoActiveAssessment
	}

	if score > 100 {
		score = 100
	}

	assessment.Score = &score
	assessment.ResultHash = &resultHash
	assessment.Status = models.StatusCompleted
	if err := s.deps.Repo.Assessment().Update(ctx, assessment); err != nil {
		return fmt.Errorf("failed to update assessment: %w", err)
	}

	s.invalidate(ctx, userID)
	s.deps.Logger.Info("Assessment completed",
		"user_id", userID,
		"score", score,
		"result_hash", resultHash.String(),
		"manual", manual)
	recordAudit(ctx, s.deps.Repo, s.deps.Publisher, s.deps.Logger,
		models.AuditVerificationCompleted, userID, "assessment", userID,
		"verification completed",
		map[string]interface{}{
			"score":       score,
			"result_hash": resultHash.String(),
			"manual":      manual,
		})

	if _, err := s.reward.IssueReward(ctx, userID, score); err != nil {
		return fmt.Errorf("assessment completed but reward issuance failed: %w", err)
	}
	return nil
}

// Restart returns the assessment to NotStarted. Only the assessment's
// user or the owner may restart. Restart is the user's recovery path
// when a callback never arrives, so it revokes the user's outstanding
// oracle request; a late callback for the revoked id is rejected as
// unknown at consumption time.
func (s *assessmentService) Restart(ctx context.Context, actor, userID string) error {
	if actor != userID && actor != s.deps.OwnerIdentity {
		return ErrNotOwner
	}

	assessment, err := s.deps.Repo.Assessment().GetByUser(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNoAssessment
		}
		return fmt.Errorf("failed to get assessment: %w", err)
	}

	if err := s.deps.Repo.OracleRequest().DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke outstanding oracle requests: %w", err)
	}

	previous := assessment.Status
	assessment.Reset()
	if err := s.deps.Repo.Assessment().Update(ctx, assessment); err != nil {
		return fmt.Errorf("failed to update assessment: %w", err)
	}

	s.invalidate(ctx, userID)
	s.deps.Logger.Info("Assessment restarted",
		"user_id", userID,
		"previous_status", previous)
	recordAudit(ctx, s.deps.Repo, s.deps.Publisher, s.deps.Logger,
		models.AuditAssessmentRestarted, actor, "assessment", userID,
		"assessment restarted",
		map[string]interface{}{"previous_status": previous})

	return nil
}

// GetByUser returns the user's assessment. Users with no record are
// reported as NotStarted, matching the default state of the lifecycle.
func (s *assessmentService) GetByUser(ctx context.Context, userID string) (*models.Assessment, error) {
	var cached models.Assessment
	if err := s.deps.Cache.Get(ctx, assessmentCacheKey(userID), &cached); err == nil {
		return &cached, nil
	}

	assessment, err := s.deps.Repo.Assessment().GetByUser(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return &models.Assessment{UserID: userID, Status: models.StatusNotStarted}, nil
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	if err := s.deps.Cache.Set(ctx, assessmentCacheKey(userID), assessment, assessmentCacheTTL); err != nil {
		s.deps.Logger.Warn("Failed to cache assessment", "error", err)
	}
	return assessment, nil
}

func (s *assessmentService) invalidate(ctx context.Context, userID string) {
	if err := s.deps.Cache.Delete(ctx, assessmentCacheKey(userID)); err != nil {
		s.deps.Logger.Warn("Failed to invalidate assessment cache", "error", err)
	}
}
