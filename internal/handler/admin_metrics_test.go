package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/mobmoney/internal/metrics"
)

func TestHandleGetMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	granted := prometheus.NewCounterVec(prometheus.CounterOpts{Name: metrics.MetricNameRewardsGranted}, []string{metrics.LabelEntity})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{Name: metrics.MetricNameRewardsSkipped}, []string{metrics.LabelReason})
	amount := prometheus.NewCounter(prometheus.CounterOpts{Name: metrics.MetricNameRewardAmount})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    metrics.MetricNameProcessingDuration,
		Buckets: []float64{0.001, 0.01, 0.1},
	})
	dedup := prometheus.NewGauge(prometheus.GaugeOpts{Name: metrics.MetricNameDedupSetSize})
	reg.MustRegister(granted, skipped, amount, duration, dedup)

	granted.WithLabelValues("ZOMBIE").Add(3)
	granted.WithLabelValues("SKELETON").Inc()
	skipped.WithLabelValues("duplicate").Add(2)
	amount.Add(7.5)
	for i := 0; i < 10; i++ {
		duration.Observe(0.0005)
	}
	dedup.Set(12)

	w := httptest.NewRecorder()
	NewAdminMetricsHandler(reg).HandleGetMetrics(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp AdminMetricsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, map[string]float64{"ZOMBIE": 3, "SKELETON": 1}, resp.Rewards.GrantedByEntity)
	assert.Equal(t, map[string]float64{"duplicate": 2}, resp.Rewards.SkippedByReason)
	assert.Equal(t, 7.5, resp.Rewards.AmountTotal)
	assert.InDelta(t, 0.5, resp.Processing.AvgMs, 0.0001)
	assert.Equal(t, 1.0, resp.Processing.P95Ms)
	assert.Equal(t, 12.0, resp.Processing.DedupSetSize)
}

func TestEstimateQuantile_Empty(t *testing.T) {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{Name: "empty"})
	reg := prometheus.NewRegistry()
	reg.MustRegister(h)
	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 1)

	assert.Equal(t, 0.0, estimateQuantile(mfs[0].GetMetric()[0].GetHistogram(), 0.95))
}
