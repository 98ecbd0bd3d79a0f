package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Rule errors
	ErrMsgInvertedRange    = "min reward is greater than max reward"
	ErrMsgInvalidDropSpec  = "invalid drop count spec"
	ErrMsgInvalidRuleValue = "invalid reward rule value"

	// Config errors
	ErrMsgConfigLoad       = "failed to load reward config"
	ErrMsgConfigValidation = "reward config validation failed"

	// Pipeline errors
	ErrMsgComputeTimeout  = "reward computation timed out"
	ErrMsgQueueFull       = "reward worker queue is full"
	ErrMsgDepositRejected = "deposit rejected by ledger"

	// Admin errors
	ErrMsgMetricsDisabled = "metrics are disabled"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvertedRange    = errors.New(ErrMsgInvertedRange)
	ErrInvalidDropSpec  = errors.New(ErrMsgInvalidDropSpec)
	ErrInvalidRuleValue = errors.New(ErrMsgInvalidRuleValue)

	ErrConfigLoad       = errors.New(ErrMsgConfigLoad)
	ErrConfigValidation = errors.New(ErrMsgConfigValidation)

	ErrComputeTimeout  = errors.New(ErrMsgComputeTimeout)
	ErrQueueFull       = errors.New(ErrMsgQueueFull)
	ErrDepositRejected = errors.New(ErrMsgDepositRejected)

	ErrMetricsDisabled = errors.New(ErrMsgMetricsDisabled)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
