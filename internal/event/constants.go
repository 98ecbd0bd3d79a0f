package event

import "time"

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Metadata keys
const (
	MetadataKeyEntityType = "entity_type"
)

// Retry configuration constants
const (
	// RetryQueueBufferSize is the buffer size for the retry queue
	RetryQueueBufferSize = 256

	// RetryInitialDelay is the delay before the first retry
	RetryInitialDelay = 500 * time.Millisecond

	// RetryMaxAttempts is the default maximum number of retry attempts
	RetryMaxAttempts = 3
)

// Dead letter file configuration
const (
	// DeadLetterFilePermissions is the file permission mode for dead-letter files
	DeadLetterFilePermissions = 0644
)

// Log message constants
const (
	LogMsgEventPublishFailed    = "Outcome publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, outcome dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventRetryExhausted   = "Outcome retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Outcome retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Outcome retry succeeded"
	LogMsgEventDroppedShutdown  = "Outcome dropped during shutdown"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
	LogMsgEventDeadLettered     = "event_dead_lettered"
	LogMsgHandlerPanic          = "event handler panicked"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay returns baseDelay doubled for each attempt after the first
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay * time.Duration(1<<(attempt-1))
}
