package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/osse101/mobmoney/internal/logger"
	"github.com/osse101/mobmoney/internal/metrics"
)

// AdminMetricsResponse is a JSON digest of the prometheus registry
type AdminMetricsResponse struct {
	HTTP       HTTPMetrics       `json:"http"`
	Events     EventMetrics      `json:"events"`
	Rewards    RewardMetrics     `json:"rewards"`
	Processing ProcessingMetrics `json:"processing"`
}

type HTTPMetrics struct {
	RequestsTotalByStatus map[string]float64 `json:"requests_total_by_status"`
	AvgLatencyMs          float64            `json:"avg_latency_ms"`
	P95LatencyMs          float64            `json:"p95_latency_ms"`
	InFlight              float64            `json:"in_flight"`
}

type EventMetrics struct {
	PublishedTotalByType map[string]float64 `json:"published_total_by_type"`
	HandlerErrorsByType  map[string]float64 `json:"handler_errors_by_type"`
}

type RewardMetrics struct {
	GrantedByEntity map[string]float64 `json:"granted_by_entity"`
	SkippedByReason map[string]float64 `json:"skipped_by_reason"`
	AmountTotal     float64            `json:"amount_total"`
	DropsTotal      float64            `json:"drops_total"`
}

type ProcessingMetrics struct {
	AvgMs        float64 `json:"avg_ms"`
	P95Ms        float64 `json:"p95_ms"`
	DedupSetSize float64 `json:"dedup_set_size"`
	RuleCount    float64 `json:"rule_count"`
	TickImpact   float64 `json:"tick_impact"`
}

// AdminMetricsHandler handles admin metrics requests
type AdminMetricsHandler struct {
	gatherer prometheus.Gatherer
}

// NewAdminMetricsHandler creates a handler reading from gatherer, or the
// default registry when gatherer is nil
func NewAdminMetricsHandler(gatherer prometheus.Gatherer) *AdminMetricsHandler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &AdminMetricsHandler{gatherer: gatherer}
}

// HandleGetMetrics returns JSON-formatted metrics from Prometheus
// GET /api/v1/admin/metrics
func (h *AdminMetricsHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	resp, err := gatherMetrics(h.gatherer)
	if err != nil {
		logger.FromContext(r.Context()).Error(LogMsgGatherFailed, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGatherMetricsFailed)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func gatherMetrics(gatherer prometheus.Gatherer) (*AdminMetricsResponse, error) {
	metricFamilies, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}

	resp := &AdminMetricsResponse{
		HTTP: HTTPMetrics{
			RequestsTotalByStatus: make(map[string]float64),
		},
		Events: EventMetrics{
			PublishedTotalByType: make(map[string]float64),
			HandlerErrorsByType:  make(map[string]float64),
		},
		Rewards: RewardMetrics{
			GrantedByEntity: make(map[string]float64),
			SkippedByReason: make(map[string]float64),
		},
	}

	for _, mf := range metricFamilies {
		switch mf.GetName() {
		case metrics.MetricNameHTTPRequestsTotal:
			sumByLabel(mf, metrics.LabelStatus, resp.HTTP.RequestsTotalByStatus)
		case metrics.MetricNameHTTPRequestDuration:
			for _, m := range mf.GetMetric() {
				if hist := m.GetHistogram(); hist != nil {
					if hist.GetSampleCount() > 0 {
						resp.HTTP.AvgLatencyMs = (hist.GetSampleSum() / float64(hist.GetSampleCount())) * 1000
					}
					resp.HTTP.P95LatencyMs = estimateQuantile(hist, 0.95) * 1000
				}
			}
		case metrics.MetricNameHTTPRequestsInFlight:
			resp.HTTP.InFlight = gaugeValue(mf)
		case metrics.MetricNameEventsPublished:
			sumByLabel(mf, metrics.LabelType, resp.Events.PublishedTotalByType)
		case metrics.MetricNameEventHandlerErrors:
			sumByLabel(mf, metrics.LabelType, resp.Events.HandlerErrorsByType)
		case metrics.MetricNameRewardsGranted:
			sumByLabel(mf, metrics.LabelEntity, resp.Rewards.GrantedByEntity)
		case metrics.MetricNameRewardsSkipped:
			sumByLabel(mf, metrics.LabelReason, resp.Rewards.SkippedByReason)
		case metrics.MetricNameRewardAmount:
			resp.Rewards.AmountTotal = counterValue(mf)
		case metrics.MetricNameRewardDrops:
			resp.Rewards.DropsTotal = counterValue(mf)
		case metrics.MetricNameProcessingDuration:
			for _, m := range mf.GetMetric() {
				if hist := m.GetHistogram(); hist != nil {
					if hist.GetSampleCount() > 0 {
						resp.Processing.AvgMs = (hist.GetSampleSum() / float64(hist.GetSampleCount())) * 1000
					}
					resp.Processing.P95Ms = estimateQuantile(hist, 0.95) * 1000
				}
			}
		case metrics.MetricNameDedupSetSize:
			resp.Processing.DedupSetSize = gaugeValue(mf)
		case metrics.MetricNameRuleCount:
			resp.Processing.RuleCount = gaugeValue(mf)
		case metrics.MetricNameTickImpact:
			resp.Processing.TickImpact = gaugeValue(mf)
		}
	}

	return resp, nil
}

func sumByLabel(mf *dto.MetricFamily, labelName string, into map[string]float64) {
	for _, m := range mf.GetMetric() {
		if v := getLabelValue(m, labelName); v != "" {
			into[v] += m.GetCounter().GetValue()
		}
	}
}

func counterValue(mf *dto.MetricFamily) float64 {
	var total float64
	for _, m := range mf.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	return total
}

func gaugeValue(mf *dto.MetricFamily) float64 {
	var total float64
	for _, m := range mf.GetMetric() {
		total += m.GetGauge().GetValue()
	}
	return total
}

func getLabelValue(m *dto.Metric, labelName string) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == labelName {
			return label.GetValue()
		}
	}
	return ""
}

// estimateQuantile approximates the given quantile from a histogram
func estimateQuantile(hist *dto.Histogram, quantile float64) float64 {
	totalCount := hist.GetSampleCount()
	if totalCount == 0 {
		return 0
	}

	targetCount := float64(totalCount) * quantile
	buckets := hist.GetBucket()
	for _, bucket := range buckets {
		if float64(bucket.GetCumulativeCount()) >= targetCount {
			return bucket.GetUpperBound()
		}
	}

	if len(buckets) > 0 {
		return buckets[len(buckets)-1].GetUpperBound()
	}
	return 0
}
