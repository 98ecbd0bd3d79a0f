package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for session log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of old session logs kept at startup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting mob reward service"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the number of retry attempts for failed outcome publishes
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	LogMsgStreamInitialized              = "Outcome stream initialized"
	ErrMsgFailedRegisterMetrics          = "failed to register metrics collector"
)

// =============================================================================
// Ledger and Pipeline
// =============================================================================

const (
	LogMsgLedgerInitialized  = "Ledger initialized"
	LogMsgConnectingDatabase = "Connecting to ledger database"
	ErrMsgFailedConnectDB    = "failed to connect to ledger database"
	ErrMsgFailedMigrate      = "failed to migrate ledger database"
	ErrMsgUnknownLedger      = "unknown ledger backend"

	LogMsgPipelineInitialized = "Reward pipeline initialized"
	LogMsgRewardConfigChecked = "Reward config directory checked"
	ErrMsgRewardConfigDir     = "reward config directory is not usable"
	ErrMsgMetricsDir          = "failed to prepare metrics directory"
	ErrMsgInvalidLocale       = "invalid LOCALE"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownStream         = "Closing outcome stream..."
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownPipeline       = "Shutting down reward pipeline..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgSchedulerStopFailed        = "Scheduler did not drain before the deadline"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)
