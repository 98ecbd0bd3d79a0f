package metrics

import (
	"sync"
	"time"

	"github.com/osse101/mobmoney/internal/domain"
)

// DefaultSampleCapacity keeps roughly ten minutes of samples at one per second
const DefaultSampleCapacity = 600

// Tracker is a fixed-capacity FIFO window of processing durations used to
// estimate the pipeline's own cost per host tick.
//
// Writers (EndTracking, Record) and readers (MeanMillis, TickImpact) share one
// mutex. Every operation is O(1): the window is a ring and the sum is kept
// incrementally.
type Tracker struct {
	mu       sync.Mutex
	samples  []time.Duration
	head     int // index of the oldest sample
	count    int
	sum      time.Duration
	lastMean float64
	lastTick float64
}

// NewTracker creates a tracker holding at most capacity samples
func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultSampleCapacity
	}
	return &Tracker{samples: make([]time.Duration, capacity)}
}

// StartTracking returns the timestamp to hand back to EndTracking
func (t *Tracker) StartTracking() time.Time {
	return time.Now()
}

// EndTracking records the time elapsed since start
func (t *Tracker) EndTracking(start time.Time) {
	t.Record(time.Since(start))
}

// Record appends one sample, evicting the oldest when full
func (t *Tracker) Record(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	capacity := len(t.samples)
	if t.count == capacity {
		t.sum -= t.samples[t.head]
		t.samples[t.head] = d
		t.head = (t.head + 1) % capacity
	} else {
		t.samples[(t.head+t.count)%capacity] = d
		t.count++
	}
	t.sum += d
	ProcessingDuration.Observe(d.Seconds())
}

// Len returns the number of samples currently in the window
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Samples returns the window oldest first
func (t *Tracker) Samples() []time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]time.Duration, t.count)
	for i := 0; i < t.count; i++ {
		out[i] = t.samples[(t.head+i)%len(t.samples)]
	}
	return out
}

// MeanMillis returns the mean sample in milliseconds.
// With an empty window the last computed mean is returned.
func (t *Tracker) MeanMillis() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.meanLocked()
}

// TickImpact estimates how many ticks per second the pipeline costs the host
func (t *Tracker) TickImpact() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tickImpactLocked()
}

// Snapshot returns mean, tick impact and estimated TPS from one consistent view
func (t *Tracker) Snapshot() domain.PerformanceSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	mean := t.meanLocked()
	impact := t.tickImpactLocked()
	return domain.PerformanceSnapshot{
		MeanMillis:   mean,
		TickImpact:   impact,
		EstimatedTPS: domain.NominalTicksPerSecond - impact,
		SampleCount:  t.count,
	}
}

// Reset empties the window and forgets the last computed values
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.samples {
		t.samples[i] = 0
	}
	t.head, t.count, t.sum = 0, 0, 0
	t.lastMean, t.lastTick = 0, 0
}

// caller must hold mu
func (t *Tracker) meanLocked() float64 {
	if t.count == 0 {
		return t.lastMean
	}
	t.lastMean = float64(t.sum) / float64(t.count) / float64(time.Millisecond)
	return t.lastMean
}

// caller must hold mu
func (t *Tracker) tickImpactLocked() float64 {
	mean := t.meanLocked()
	if mean <= 0 {
		return t.lastTick
	}
	t.lastTick = mean / domain.NominalTickMillis * domain.NominalTicksPerSecond
	return t.lastTick
}
