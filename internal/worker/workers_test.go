package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/mobmoney/internal/domain"
	"github.com/osse101/mobmoney/internal/event"
	"github.com/osse101/mobmoney/internal/metrics"
)

type staticSettings struct {
	s     domain.Settings
	rules int
}

func (s staticSettings) Settings() domain.Settings { return s.s }
func (s staticSettings) RuleCount() int            { return s.rules }

type fakeGate struct {
	size      int
	compacted bool
}

func (g *fakeGate) Size() int { return g.size }

func (g *fakeGate) MaybeCompact(maxEntries int) bool {
	if g.size <= maxEntries {
		return false
	}
	g.size = 0
	g.compacted = true
	return true
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, rec metrics.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecorder) Cleanup(ctx context.Context, retentionDays int) (int, error) {
	args := m.Called(ctx, retentionDays)
	return args.Int(0), args.Error(1)
}

type capturePublisher struct {
	events []event.Event
}

func (p *capturePublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	p.events = append(p.events, evt)
}

func TestMaintenanceWorker_CompactsOverCeiling(t *testing.T) {
	s := domain.DefaultSettings()
	s.MaxRecentEntries = 10
	gate := &fakeGate{size: 11}

	w := NewMaintenanceWorker(staticSettings{s: s}, gate, nil)
	require.NoError(t, w.Process(context.Background()))

	assert.True(t, gate.compacted)
	assert.Zero(t, gate.size)
}

func TestMaintenanceWorker_KeepsAtCeiling(t *testing.T) {
	s := domain.DefaultSettings()
	s.MaxRecentEntries = 10
	gate := &fakeGate{size: 10}

	w := NewMaintenanceWorker(staticSettings{s: s}, gate, nil)
	require.NoError(t, w.Process(context.Background()))

	assert.False(t, gate.compacted)
	assert.Equal(t, 10, gate.size)
}

func TestMaintenanceWorker_CleansMetricsWhenEnabled(t *testing.T) {
	s := domain.DefaultSettings()
	s.EnableMetrics = true
	s.MetricsRetentionDays = 7

	rec := new(MockRecorder)
	rec.On("Cleanup", mock.Anything, 7).Return(2, nil)

	w := NewMaintenanceWorker(staticSettings{s: s}, &fakeGate{}, rec)
	require.NoError(t, w.Process(context.Background()))
	rec.AssertExpectations(t)
}

func TestMaintenanceWorker_SkipsMetricsWhenDisabled(t *testing.T) {
	rec := new(MockRecorder)

	w := NewMaintenanceWorker(staticSettings{s: domain.DefaultSettings()}, &fakeGate{}, rec)
	require.NoError(t, w.Process(context.Background()))
	rec.AssertNotCalled(t, "Cleanup", mock.Anything, mock.Anything)
}

func TestSummaryWorker_DrainsAndRecords(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	tp := metrics.NewThroughput(clock)
	tracker := metrics.NewTracker(10)
	for i := 0; i < 6; i++ {
		tp.Inc()
		tracker.Record(2 * time.Millisecond)
	}
	now = now.Add(3 * time.Second)

	rec := new(MockRecorder)
	rec.On("Record", mock.Anything, mock.MatchedBy(func(r metrics.Record) bool {
		return r.Processing.ProcessedCount == 6 &&
			r.Processing.RuleCount == 40 &&
			r.Processing.DedupSetSize == 3 &&
			r.Performance.SampleCount == 6
	})).Return(nil)
	pub := &capturePublisher{}

	w := NewSummaryWorker(tp, tracker, staticSettings{rules: 40}, &fakeGate{size: 3}, rec, pub)
	got, err := w.Summarize(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 2.0, got.Processing.RatePerSecond, 1e-9)
	assert.InDelta(t, 2.0/6, got.AvgMillisPerEntity, 1e-9)
	require.Len(t, pub.events, 1)
	assert.Equal(t, event.MetricsLogged, pub.events[0].Type)
	rec.AssertExpectations(t)

	count, _, _ := tp.Peek()
	assert.Zero(t, count, "summary drains the counter")
}

func TestSummaryWorker_RecordFailure(t *testing.T) {
	rec := new(MockRecorder)
	rec.On("Record", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	w := NewSummaryWorker(metrics.NewThroughput(nil), metrics.NewTracker(1), staticSettings{}, &fakeGate{}, rec, nil)
	assert.Error(t, w.Process(context.Background()))
}
