package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/mobmoney/internal/admin"
	"github.com/osse101/mobmoney/internal/domain"
	"github.com/osse101/mobmoney/internal/metrics"
)

func TestHandleReload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(admin.MockService)
		svc.On("Reload", mock.Anything).Return(admin.ReloadResult{
			RuleCount:  4,
			Categories: map[string]int{"hostile": 4},
			LoadedAt:   time.Now(),
		}, nil)

		w := httptest.NewRecorder()
		NewAdminHandler(svc).HandleReload(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/reload", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Message string             `json:"message"`
			Data    admin.ReloadResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, MsgConfigReloaded, resp.Message)
		assert.Equal(t, 4, resp.Data.RuleCount)
	})

	t.Run("config error hides details", func(t *testing.T) {
		svc := new(admin.MockService)
		svc.On("Reload", mock.Anything).
			Return(admin.ReloadResult{}, fmt.Errorf("%w: /etc/secret/mobmoney.json", domain.ErrConfigLoad))

		w := httptest.NewRecorder()
		NewAdminHandler(svc).HandleReload(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/reload", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgReloadConfigFailed)
		assert.NotContains(t, w.Body.String(), "secret")
	})
}

func TestHandleMetricsStatus(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		svc := new(admin.MockService)
		svc.On("Status", mock.Anything).Return(domain.MetricsStatus{
			Throughput: domain.ThroughputSnapshot{ProcessedCount: 9, RuleCount: 3},
		}, nil)

		w := httptest.NewRecorder()
		NewAdminHandler(svc).HandleMetricsStatus(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/metrics/status", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"processed_count":9`)
	})

	t.Run("disabled", func(t *testing.T) {
		svc := new(admin.MockService)
		svc.On("Status", mock.Anything).Return(domain.MetricsStatus{}, domain.ErrMetricsDisabled)

		w := httptest.NewRecorder()
		NewAdminHandler(svc).HandleMetricsStatus(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/metrics/status", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgMetricsDisabled)
	})
}

func TestHandleMetricsRecord(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(admin.MockService)
		svc.On("Record", mock.Anything).Return(metrics.Record{
			Processing: domain.ThroughputSnapshot{ProcessedCount: 5},
		}, nil)

		w := httptest.NewRecorder()
		NewAdminHandler(svc).HandleMetricsRecord(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/metrics/record", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgMetricsWritten)
	})

	t.Run("write failure", func(t *testing.T) {
		svc := new(admin.MockService)
		svc.On("Record", mock.Anything).Return(metrics.Record{}, errors.New("disk full"))

		w := httptest.NewRecorder()
		NewAdminHandler(svc).HandleMetricsRecord(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/metrics/record", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgRecordMetricsFailed)
		assert.NotContains(t, w.Body.String(), "disk full")
	})
}
