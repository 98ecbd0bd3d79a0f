package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/mobmoney/internal/event"
)

// StreamedTypes are the bus events forwarded to stream clients
var StreamedTypes = []event.Type{
	event.RewardGranted,
	event.RewardSkipped,
	event.RulesReloaded,
	event.MetricsLogged,
}

// Subscriber bridges the outcome bus to the hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a Subscriber; call Subscribe to attach it
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe registers a forwarding handler for every streamed type
func (s *Subscriber) Subscribe() {
	for _, t := range StreamedTypes {
		s.bus.Subscribe(t, s.forward)
	}
	slog.Info(LogMsgSubscribed, "types", StreamedTypes)
}

func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Payload)
	slog.Debug(LogMsgEventBroadcast,
		"event_type", evt.Type,
		"entity_type", evt.GetMetadataValue(event.MetadataKeyEntityType))
	return nil
}
