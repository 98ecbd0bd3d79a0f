package domain

import "time"

// Settings are the global reward pipeline settings from the reward config file.
type Settings struct {
	CleanupIntervalSeconds        int               `json:"cleanup_interval_seconds" validate:"gte=1"`
	MaxRecentEntries              int               `json:"max_recent_entries" validate:"gte=1"`
	EnableMetrics                 bool              `json:"enable_metrics"`
	AsyncTimeoutMillis            int               `json:"async_timeout_ms" validate:"gte=1"`
	Debug                         bool              `json:"debug"`
	MetricsRetentionDays          int               `json:"metrics_retention_days" validate:"gte=1"`
	MetricsSummaryIntervalSeconds int               `json:"metrics_summary_interval_seconds" validate:"gte=1"`
	ActionBar                     ActionBarSettings `json:"action_bar"`
	ChatMessage                   string            `json:"chat_message"`
}

// ActionBarSettings control the transient reward message
type ActionBarSettings struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message"`
}

// Message placeholders
const (
	PlaceholderMob    = "%mob%"
	PlaceholderAmount = "%amount%"
)

// DefaultSettings returns the values used for keys missing from the config file
func DefaultSettings() Settings {
	return Settings{
		CleanupIntervalSeconds:        30,
		MaxRecentEntries:              1000,
		EnableMetrics:                 false,
		AsyncTimeoutMillis:            5000,
		Debug:                         false,
		MetricsRetentionDays:          30,
		MetricsSummaryIntervalSeconds: 300,
		ActionBar: ActionBarSettings{
			Enabled: true,
			Message: "You killed a " + PlaceholderMob + " and earned " + PlaceholderAmount,
		},
		ChatMessage: "You killed a " + PlaceholderMob + " and earned " + PlaceholderAmount,
	}
}

// CleanupInterval is the period of the maintenance task
func (s Settings) CleanupInterval() time.Duration {
	return time.Duration(s.CleanupIntervalSeconds) * time.Second
}

// AsyncTimeout bounds reward computation
func (s Settings) AsyncTimeout() time.Duration {
	return time.Duration(s.AsyncTimeoutMillis) * time.Millisecond
}

// SummaryInterval is the period of the metrics summary task
func (s Settings) SummaryInterval() time.Duration {
	return time.Duration(s.MetricsSummaryIntervalSeconds) * time.Second
}
