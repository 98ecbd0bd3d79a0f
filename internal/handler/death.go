package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/mobmoney/internal/domain"
	"github.com/osse101/mobmoney/internal/logger"
	"github.com/osse101/mobmoney/internal/validation"
)

// DeathSink receives death events from the host bridge
type DeathSink interface {
	Enabled() bool
	OnDeath(ctx context.Context, ev domain.DeathEvent)
}

// DeathHandler ingests death events pushed over HTTP
type DeathHandler struct {
	sink DeathSink
	now  func() time.Time
}

// NewDeathHandler creates a DeathHandler
func NewDeathHandler(sink DeathSink) *DeathHandler {
	return &DeathHandler{sink: sink, now: time.Now}
}

// HandleDeath accepts one death event. The reward is processed
// asynchronously; 202 only means the event was handed to the pipeline.
// POST /api/v1/events/death
func (h *DeathHandler) HandleDeath(w http.ResponseWriter, r *http.Request) {
	var ev domain.DeathEvent
	if err := decodeJSON(w, r, &ev, "death event"); err != nil {
		return
	}
	ev.EntityType = validation.NormalizeEntityType(ev.EntityType)
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = h.now()
	}
	if err := validateRequest(w, r, &ev, "death event"); err != nil {
		return
	}

	if !h.sink.Enabled() {
		respondError(w, http.StatusServiceUnavailable, ErrMsgPipelineDisabled)
		return
	}

	if logger.DebugEnabled() {
		logger.FromContext(r.Context()).Debug(LogMsgDeathReceived,
			"entity_type", ev.EntityType,
			"entity_id", ev.EntityID,
			"has_killer", ev.HasKiller())
	}
	h.sink.OnDeath(r.Context(), ev)
	respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgDeathAccepted})
}
