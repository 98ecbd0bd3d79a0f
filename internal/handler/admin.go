package handler

import (
	"net/http"

	"github.com/osse101/mobmoney/internal/admin"
	"github.com/osse101/mobmoney/internal/logger"
)

// AdminHandler exposes the operator surface over HTTP
type AdminHandler struct {
	svc admin.Service
}

// NewAdminHandler creates an AdminHandler
func NewAdminHandler(svc admin.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// HandleReload re-reads the reward configuration.
// POST /api/v1/admin/reload
func (h *AdminHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Reload(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error(LogMsgReloadFailed, "error", err)
		status, msg := mapServiceError(err, ErrMsgReloadConfigFailed)
		respondError(w, status, msg)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgConfigReloaded, Data: res})
}

// HandleMetricsStatus reports current throughput and processing cost.
// GET /api/v1/admin/metrics/status
func (h *AdminHandler) HandleMetricsStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.Status(r.Context())
	if err != nil {
		code, msg := mapServiceError(err, ErrMsgGenericServerError)
		respondError(w, code, msg)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: status})
}

// HandleMetricsRecord closes the throughput window and persists a record.
// POST /api/v1/admin/metrics/record
func (h *AdminHandler) HandleMetricsRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Record(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgRecordFailed, "error", err)
		code, msg := mapServiceError(err, ErrMsgRecordMetricsFailed)
		respondError(w, code, msg)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgMetricsWritten, Data: rec})
}
