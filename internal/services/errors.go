package services

import (
	"errors"
)

// ===== AUTHORIZATION ERRORS =====

var (
	ErrNotOwner            = errors.New("caller is not the owner")
	ErrCallerNotAuthorized = errors.New("caller is not authorized to request evaluations")
)

// ===== STATE CONFLICT ERRORS =====

var (
	ErrAlreadyInProgress  = errors.New("user already has an assessment in progress")
	ErrAlreadySubmitted   = errors.New("answers already submitted for this assessment")
	ErrAlreadyVerifying   = errors.New("assessment is already being verified")
	ErrAlreadyCompleted   = errors.New("assessment already completed")
	ErrNoActiveAssessment = errors.New("user has no active assessment")
	ErrNoAssessment       = errors.New("user has no assessment record")
)

// ===== NOT FOUND ERRORS =====

var (
	ErrSetNotFound    = errors.New("question set not found")
	ErrUnknownRequest = errors.New("no outstanding oracle request matches this id")
)

// ===== VALIDATION ERRORS =====

var (
	ErrSetInactive          = errors.New("question set is deactivated")
	ErrDuplicateID          = errors.New("question set id already exists")
	ErrInvalidQuestionCount = errors.New("question count must be greater than zero")
	ErrInvalidAnswersHash   = errors.New("answers hash must be non-zero")
	ErrInvalidThreshold     = errors.New("passing score threshold must be between 0 and 100")
	ErrInvalidRewardUnits   = errors.New("max reward units must be a non-negative integer")
)

// ===== CONFIGURATION ERRORS =====

var (
	ErrSourceNotConfigured       = errors.New("evaluation source has not been configured")
	ErrSubscriptionNotConfigured = errors.New("oracle subscription has not been configured")
	ErrVerificationEnabled       = errors.New("oracle verification is enabled - manual results not accepted")
	ErrVerificationDisabled      = errors.New("oracle verification is disabled")
)

// ===== LEDGER ERRORS =====

var (
	// ErrTransfersDisabled is the fixed rejection reason for every
	// peer transfer or approval attempt on the reward ledger.
	ErrTransfersDisabled = errors.New("reward tokens are non-transferable")
)

// IsAuthorization reports whether err is an authorization failure.
func IsAuthorization(err error) bool {
	return errors.Is(err, ErrNotOwner) ||
		errors.Is(err, ErrCallerNotAuthorized)
}

// IsStateConflict reports whether err is a lifecycle conflict.
func IsStateConflict(err error) bool {
	return errors.Is(err, ErrAlreadyInProgress) ||
		errors.Is(err, ErrAlreadySubmitted) ||
		errors.Is(err, ErrAlreadyVerifying) ||
		errors.Is(err, ErrAlreadyCompleted) ||
		errors.Is(err, ErrNoActiveAssessment) ||
		errors.Is(err, ErrNoAssessment) ||
		errors.Is(err, ErrDuplicateID)
}

// IsNotFound reports whether err is a missing-resource failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSetNotFound) ||
		errors.Is(err, ErrUnknownRequest) ||
		errors.Is(err, ErrNoAssessment)
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrSetInactive) ||
		errors.Is(err, ErrInvalidQuestionCount) ||
		errors.Is(err, ErrInvalidAnswersHash) ||
		errors.Is(err, ErrInvalidThreshold) ||
		errors.Is(err, ErrInvalidRewardUnits)
}

// IsConfiguration reports whether err is a missing/inconsistent
// configuration failure.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrSourceNotConfigured) ||
		errors.Is(err, ErrSubscriptionNotConfigured) ||
		errors.Is(err, ErrVerificationEnabled) ||
		errors.Is(err, ErrVerificationDisabled)
}
