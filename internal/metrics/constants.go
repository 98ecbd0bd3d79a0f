package metrics

import "os"

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Reward pipeline metric names
const (
	MetricNameRewardsGranted     = "mobmoney_rewards_granted_total"
	MetricNameRewardsSkipped     = "mobmoney_rewards_skipped_total"
	MetricNameRewardAmount       = "mobmoney_reward_amount_total"
	MetricNameRewardDrops        = "mobmoney_reward_drops_total"
	MetricNameProcessingDuration = "mobmoney_processing_duration_seconds"
	MetricNameDedupSetSize       = "mobmoney_dedup_set_size"
	MetricNameRuleCount          = "mobmoney_rule_count"
	MetricNameRuleReloads        = "mobmoney_rule_reloads_total"
	MetricNameTickImpact         = "mobmoney_tick_impact"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Reward pipeline help text
const (
	HelpTextRewardsGranted     = "Rewards deposited, by entity type"
	HelpTextRewardsSkipped     = "Deaths that ended without a deposit, by reason"
	HelpTextRewardAmount       = "Sum of all deposited reward amounts"
	HelpTextRewardDrops        = "Sum of all reward drop counts"
	HelpTextProcessingDuration = "Host-thread cost of handling one death in seconds"
	HelpTextDedupSetSize       = "Entries currently held by the dedup gate"
	HelpTextRuleCount          = "Reward rules in the active snapshot"
	HelpTextRuleReloads        = "Successful rule reloads"
	HelpTextTickImpact         = "Estimated ticks per second consumed by reward processing"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelEntity = "entity_type"
	LabelReason = "reason"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets range from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ProcessingBuckets range from 10µs to 50ms, one nominal tick
var ProcessingBuckets = []float64{.00001, .000025, .00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05}

// ============================================================================
// Metrics Files
// ============================================================================

const (
	DayFileLayout  = "2006-01-02"
	EntryKeyLayout = "2006-01-02 15:04"
	MetricsFileExt = ".yml"

	DirPermission  os.FileMode = 0o755
	FilePermission os.FileMode = 0o644
)

// ============================================================================
// Errors and Log Messages
// ============================================================================

const (
	ErrMsgCreateMetricsDir = "failed to create metrics directory"
	ErrMsgReadMetricsDir   = "failed to read metrics directory"
	ErrMsgReadMetrics      = "failed to read metrics file"
	ErrMsgDecodeMetrics    = "failed to decode metrics file"
	ErrMsgEncodeMetrics    = "failed to encode metrics"
	ErrMsgWriteMetrics     = "failed to write metrics file"
)

const (
	LogMsgEventPayloadInvalid     = "Event payload could not be decoded"
	LogMsgMetricsRecorded         = "Metrics recorded for event"
	LogMsgMetricsRecordWritten    = "Metrics record written"
	LogMsgUnparsableMetricsFile   = "Skipping metrics file with unparsable date"
	LogMsgMetricsFileRemoved      = "Removed expired metrics file"
	LogMsgMetricsFileRemoveFailed = "Failed to remove expired metrics file"
)
