package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Reward pipeline metrics
var (
	RewardsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsGranted,
			Help: HelpTextRewardsGranted,
		},
		[]string{LabelEntity},
	)

	RewardsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsSkipped,
			Help: HelpTextRewardsSkipped,
		},
		[]string{LabelReason},
	)

	RewardAmountTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRewardAmount,
			Help: HelpTextRewardAmount,
		},
	)

	RewardDropsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRewardDrops,
			Help: HelpTextRewardDrops,
		},
	)

	ProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameProcessingDuration,
			Help:    HelpTextProcessingDuration,
			Buckets: ProcessingBuckets,
		},
	)

	DedupSetSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameDedupSetSize,
			Help: HelpTextDedupSetSize,
		},
	)

	RuleCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameRuleCount,
			Help: HelpTextRuleCount,
		},
	)

	RuleReloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRuleReloads,
			Help: HelpTextRuleReloads,
		},
	)

	TickImpact = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameTickImpact,
			Help: HelpTextTickImpact,
		},
	)
)
