package scheduler

// Defaults
const (
	DefaultLoopQueueSize = 1024
	DefaultRegionCount   = 4
)

// Log messages
const (
	LogMsgTaskPanicked        = "Scheduled task panicked"
	LogMsgPeriodicSkipped     = "Periodic task skipped, worker queue full"
	LogMsgSchedulerStopping   = "Stopping scheduler"
	LogMsgSchedulerStopped    = "Scheduler stopped"
	LogMsgSchedulerStopFailed = "Scheduler stop timed out"
	LogMsgSchedulerSelected   = "Scheduler mode selected"
)
