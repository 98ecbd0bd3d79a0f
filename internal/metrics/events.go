package metrics

import (
	"context"

	"github.com/osse101/mobmoney/internal/event"
	"github.com/osse101/mobmoney/internal/logger"
)

// EventMetricsCollector turns pipeline events into prometheus samples
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every pipeline event type
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.RewardGranted,
		event.RewardSkipped,
		event.RulesReloaded,
		event.MetricsLogged,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent updates metrics for evt. It never returns an error so a retried
// publish cannot double count through a failing sibling handler.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.RewardGranted:
		p, err := event.DecodePayload[event.RewardGrantedPayloadV1](evt.Payload)
		if err != nil {
			e.invalid(ctx, evt, err)
			return nil
		}
		RewardsGranted.WithLabelValues(p.EntityType).Inc()
		RewardAmountTotal.Add(p.Amount)
		RewardDropsTotal.Add(float64(p.Drops))

	case event.RewardSkipped:
		p, err := event.DecodePayload[event.RewardSkippedPayloadV1](evt.Payload)
		if err != nil {
			e.invalid(ctx, evt, err)
			return nil
		}
		RewardsSkipped.WithLabelValues(p.Reason).Inc()

	case event.RulesReloaded:
		p, err := event.DecodePayload[event.RulesReloadedPayloadV1](evt.Payload)
		if err != nil {
			e.invalid(ctx, evt, err)
			return nil
		}
		RuleReloads.Inc()
		RuleCount.Set(float64(p.RuleCount))

	case event.MetricsLogged:
		p, err := event.DecodePayload[event.MetricsSummaryPayloadV1](evt.Payload)
		if err != nil {
			e.invalid(ctx, evt, err)
			return nil
		}
		DedupSetSize.Set(float64(p.DedupSetSize))
		TickImpact.Set(p.TickImpact)
	}

	if logger.DebugEnabled() {
		log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	}
	return nil
}

func (e *EventMetricsCollector) invalid(ctx context.Context, evt event.Event, err error) {
	EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
	logger.FromContext(ctx).Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
}
