package event

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/mobmoney/internal/logger"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Reward pipeline event types
const (
	RewardGranted Type = "reward.granted"
	RewardSkipped Type = "reward.skipped"
	RulesReloaded Type = "rules.reloaded"
	MetricsLogged Type = "metrics.summary"
)

// RewardGrantedPayloadV1 is published after a deposit succeeds
type RewardGrantedPayloadV1 struct {
	EntityID    uuid.UUID `json:"entity_id"`
	EntityType  string    `json:"entity_type"`
	DisplayName string    `json:"display_name"`
	Account     string    `json:"account"`
	PlayerName  string    `json:"player_name"`
	Amount      float64   `json:"amount"`
	Drops       int       `json:"drops"`
	Balance     string    `json:"balance,omitempty"`
	Timestamp   int64     `json:"timestamp"`
}

// RewardSkippedPayloadV1 is published when a death ends without a deposit
type RewardSkippedPayloadV1 struct {
	EntityID   uuid.UUID `json:"entity_id"`
	EntityType string    `json:"entity_type"`
	Stage      string    `json:"stage"`
	Reason     string    `json:"reason"`
	Error      string    `json:"error,omitempty"`
	Timestamp  int64     `json:"timestamp"`
}

// RulesReloadedPayloadV1 is published after a successful rule reload
type RulesReloadedPayloadV1 struct {
	RuleCount int   `json:"rule_count"`
	Warnings  int   `json:"warnings"`
	Timestamp int64 `json:"timestamp"`
}

// MetricsSummaryPayloadV1 is published by the periodic metrics summary
type MetricsSummaryPayloadV1 struct {
	Processed     int64   `json:"processed"`
	RatePerSecond float64 `json:"rate_per_second"`
	MeanMillis    float64 `json:"mean_ms"`
	TickImpact    float64 `json:"tick_impact"`
	DedupSetSize  int     `json:"dedup_set_size"`
	Timestamp     int64   `json:"timestamp"`
}

// NewRewardGrantedEvent creates a reward granted event
func NewRewardGrantedEvent(p RewardGrantedPayloadV1) Event {
	if p.Timestamp == 0 {
		p.Timestamp = time.Now().Unix()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardGranted,
		Payload: p,
		Metadata: map[string]interface{}{
			MetadataKeyEntityType: p.EntityType,
		},
	}
}

// NewRewardSkippedEvent creates a reward skipped event
func NewRewardSkippedEvent(entityID uuid.UUID, entityType, stage, reason string, cause error) Event {
	p := RewardSkippedPayloadV1{
		EntityID:   entityID,
		EntityType: entityType,
		Stage:      stage,
		Reason:     reason,
		Timestamp:  time.Now().Unix(),
	}
	if cause != nil {
		p.Error = cause.Error()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardSkipped,
		Payload: p,
		Metadata: map[string]interface{}{
			MetadataKeyEntityType: entityType,
		},
	}
}

// NewRulesReloadedEvent creates a rules reloaded event
func NewRulesReloadedEvent(ruleCount, warnings int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RulesReloaded,
		Payload: RulesReloadedPayloadV1{
			RuleCount: ruleCount,
			Warnings:  warnings,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewMetricsSummaryEvent creates a metrics summary event
func NewMetricsSummaryEvent(p MetricsSummaryPayloadV1) Event {
	if p.Timestamp == 0 {
		p.Timestamp = time.Now().Unix()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    MetricsLogged,
		Payload: p,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of event.Type synchronously.
// A panicking handler is reported as an error and does not stop the others.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := invoke(ctx, handler, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

func invoke(ctx context.Context, handler Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgHandlerPanic,
				"event_type", event.Type,
				"panic", r,
				"stack", string(debug.Stack()))
			err = fmt.Errorf("%s: %v", LogMsgHandlerPanic, r)
		}
	}()
	return handler(ctx, event)
}
