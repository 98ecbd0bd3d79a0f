package command

// Permissions
const (
	PermissionReload  = "mobmoney.reload"
	PermissionMetrics = "mobmoney.metrics"
)

// Command and subcommand names
const (
	Label         = "mm"
	CmdReload     = "reload"
	CmdMetrics    = "metrics"
	SubCmdRecord  = "record"
	SubCmdStatus  = "status"
	MessagePrefix = "[MobMoney] "
)

// Replies
const (
	MsgNoPermission    = MessagePrefix + "You do not have permission to run this command."
	MsgReloaded        = MessagePrefix + "Configuration reloaded."
	MsgReloadFailed    = MessagePrefix + "Configuration reload failed, see the console for details."
	MsgMetricsDisabled = MessagePrefix + "Performance metrics are disabled."
	MsgMetricsRecorded = MessagePrefix + "Current performance metrics recorded."
	MsgMetricsFailed   = MessagePrefix + "Recording metrics failed, see the console for details."
)

// Log message constants
const (
	LogMsgCommandDenied   = "Command denied"
	LogMsgReloadFailed    = "Reload command failed"
	LogMsgRecordFailed    = "Metrics record command failed"
	LogMsgCommandExecuted = "Command executed"
)
