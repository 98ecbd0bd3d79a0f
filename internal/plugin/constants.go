package plugin

// Log message constants
const (
	LogMsgEnabled         = "Mob reward pipeline enabled"
	LogMsgDisabled        = "Mob reward pipeline disabled"
	LogMsgEnableFailed    = "Failed to load reward rules at startup"
	LogMsgTasksScheduled  = "Periodic tasks scheduled"
	LogMsgTaskFailed      = "Periodic task failed"
	LogMsgMetricsRecorded = "Metrics recorded on request"
	LogMsgIgnoredWhenOff  = "Death event ignored, pipeline disabled"
	LogMsgCategoryLoaded  = "Reward category loaded"
	LogMsgRuleWarning     = "Reward rule warning"
)
