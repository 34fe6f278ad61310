package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/quizzone/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Catalog errors
	ErrQuizNotFound = errors.New("quiz not found")
	ErrTipNotFound  = errors.New("no tip for today")

	// Session intent errors. The engine state is unchanged when one of these is returned.
	ErrNoActiveSession        = errors.New("no quiz in progress")
	ErrAnswerOutOfRange       = errors.New("answer index out of range")
	ErrNoAnswerSelected       = errors.New("no answer selected")
	ErrAnswerAlreadySubmitted = errors.New("answer already submitted")
	ErrAnswerNotSubmitted     = errors.New("answer not submitted yet")
	ErrSessionNotCompleted    = errors.New("quiz session not completed")
	ErrSessionClosed          = errors.New("quiz session engine closed")

	// Progress errors
	ErrOnboardingAlreadyCompleted = errors.New("onboarding already completed")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

func (bre *BusinessRuleError) Unwrap() error {
	if bre.Rule == "onboarding_once" {
		return ErrOnboardingAlreadyCompleted
	}
	return nil
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrTipNotFound)
}

// IsInvalidIntent checks if error is a rejected session intent
func IsInvalidIntent(err error) bool {
	return errors.Is(err, ErrNoActiveSession) ||
		errors.Is(err, ErrAnswerOutOfRange) ||
		errors.Is(err, ErrNoAnswerSelected) ||
		errors.Is(err, ErrAnswerAlreadySubmitted) ||
		errors.Is(err, ErrAnswerNotSubmitted) ||
		errors.Is(err, ErrSessionNotCompleted) ||
		errors.Is(err, ErrSessionClosed)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// IsConflict checks if error represents a state conflict
func IsConflict(err error) bool {
	return IsInvalidIntent(err) || errors.Is(err, ErrOnboardingAlreadyCompleted)
}
