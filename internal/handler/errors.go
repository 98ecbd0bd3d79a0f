package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgPipelineDisabled      = "Reward pipeline is disabled"
	ErrMsgReloadConfigFailed    = "Failed to reload configuration"
	ErrMsgMetricsDisabled       = "Metrics are disabled"
	ErrMsgRecordMetricsFailed   = "Failed to record metrics"
	ErrMsgGatherMetricsFailed   = "Failed to gather metrics"
	ErrMsgGenericServerError    = "Something went wrong"
)

// Success messages
const (
	MsgDeathAccepted  = "Death event accepted"
	MsgConfigReloaded = "Configuration reloaded"
	MsgMetricsWritten = "Metrics recorded"
)

// Log message constants
const (
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgValidationFailed  = "Request validation failed"
	LogMsgDeathReceived     = "Death event received"
	LogMsgReloadFailed      = "Admin reload failed"
	LogMsgRecordFailed      = "Admin metrics record failed"
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgGatherFailed      = "Failed to gather prometheus metrics"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteBufferFailed = "Failed to write response buffer"
)

// Health statuses
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgLedgerDown     = "ledger connection failed"
)
