package domain

import "time"

// Nominal host tick figures used for the tick-impact estimate
const (
	NominalTickMillis     = 50.0
	NominalTicksPerSecond = 20.0
)

// PerformanceSnapshot is derived from the current processing-time window.
type PerformanceSnapshot struct {
	MeanMillis   float64 `json:"mean_millis" yaml:"mspt"`
	TickImpact   float64 `json:"tick_impact" yaml:"tps_impact"`
	EstimatedTPS float64 `json:"estimated_tps" yaml:"estimated_tps"`
	SampleCount  int     `json:"sample_count" yaml:"samples"`
}

// ThroughputSnapshot describes how much work the pipeline committed since the
// last summary.
type ThroughputSnapshot struct {
	ProcessedCount int64     `json:"processed_count" yaml:"processed"`
	RatePerSecond  float64   `json:"rate_per_second" yaml:"rate_per_second"`
	RuleCount      int       `json:"rule_count" yaml:"rule_count"`
	DedupSetSize   int       `json:"dedup_set_size" yaml:"recent_entries"`
	Since          time.Time `json:"since" yaml:"-"`
}

// MetricsStatus is the combined view reported by the admin surface.
type MetricsStatus struct {
	Throughput  ThroughputSnapshot  `json:"throughput"`
	Performance PerformanceSnapshot `json:"performance"`
}
