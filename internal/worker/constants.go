package worker

import "time"

// Pool defaults
const (
	DefaultWorkerCount = 4
	DefaultQueueSize   = 1024
)

// Log messages - worker pool
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
)

// Log messages - maintenance worker
const (
	LogMsgDedupCompacted         = "Cleared recently processed entity cache"
	LogMsgMetricsCleanupFailed   = "Metrics retention cleanup failed"
	LogMsgMetricsCleanupComplete = "Metrics retention cleanup complete"
)

// Log messages - summary worker
const (
	LogMsgMetricsSummary     = "Reward processing summary"
	LogMsgMetricsWriteFailed = "Failed to write metrics record"
)

// Shutdown
const (
	LogMsgWorkerShuttingDown    = "Shutting down worker"
	LogMsgWorkerShutdownDone    = "Worker shutdown complete"
	LogMsgWorkerShutdownTimeout = "Worker shutdown timeout"
	DefaultShutdownTimeout      = 5 * time.Second
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
