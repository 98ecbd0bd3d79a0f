package metrics

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/mobmoney/internal/event"
)

func TestEventMetricsCollector_Granted(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	before := testutil.ToFloat64(RewardsGranted.WithLabelValues("WITHER_SKELETON"))
	amountBefore := testutil.ToFloat64(RewardAmountTotal)

	err := bus.Publish(context.Background(), event.NewRewardGrantedEvent(event.RewardGrantedPayloadV1{
		EntityID:   uuid.New(),
		EntityType: "WITHER_SKELETON",
		Amount:     7.5,
		Drops:      3,
	}))
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(RewardsGranted.WithLabelValues("WITHER_SKELETON")))
	assert.InDelta(t, amountBefore+7.5, testutil.ToFloat64(RewardAmountTotal), 1e-9)
}

func TestEventMetricsCollector_Skipped(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	before := testutil.ToFloat64(RewardsSkipped.WithLabelValues("timeout"))
	require.NoError(t, bus.Publish(context.Background(),
		event.NewRewardSkippedEvent(uuid.New(), "ZOMBIE", "compute", "timeout", nil)))

	assert.Equal(t, before+1, testutil.ToFloat64(RewardsSkipped.WithLabelValues("timeout")))
}

func TestEventMetricsCollector_ReloadAndSummary(t *testing.T) {
	c := NewEventMetricsCollector()

	require.NoError(t, c.HandleEvent(context.Background(), event.NewRulesReloadedEvent(42, 1)))
	assert.Equal(t, 42.0, testutil.ToFloat64(RuleCount))

	require.NoError(t, c.HandleEvent(context.Background(), event.NewMetricsSummaryEvent(event.MetricsSummaryPayloadV1{
		DedupSetSize: 17,
		TickImpact:   0.25,
	})))
	assert.Equal(t, 17.0, testutil.ToFloat64(DedupSetSize))
	assert.Equal(t, 0.25, testutil.ToFloat64(TickImpact))
}

func TestEventMetricsCollector_BadPayloadNeverErrors(t *testing.T) {
	c := NewEventMetricsCollector()
	before := testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.RewardGranted)))

	err := c.HandleEvent(context.Background(), event.Event{Type: event.RewardGranted, Payload: "not a payload"})
	assert.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.RewardGranted))))
}
