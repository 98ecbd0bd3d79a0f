package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Throughput counts committed rewards between summaries
type Throughput struct {
	count atomic.Int64

	mu    sync.Mutex
	since time.Time
	now   func() time.Time
}

// NewThroughput creates a counter whose window starts now
func NewThroughput(now func() time.Time) *Throughput {
	if now == nil {
		now = time.Now
	}
	return &Throughput{since: now(), now: now}
}

// Inc counts one committed reward
func (t *Throughput) Inc() {
	t.count.Add(1)
}

// Peek returns the count and rate since the window started without resetting it
func (t *Throughput) Peek() (count int64, rate float64, since time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	count = t.count.Load()
	return count, rateOf(count, t.now().Sub(t.since)), t.since
}

// Drain returns the count and rate for the closing window and starts a new one
func (t *Throughput) Drain() (count int64, rate float64, since time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	count = t.count.Swap(0)
	since = t.since
	rate = rateOf(count, now.Sub(t.since))
	t.since = now
	return count, rate, since
}

func rateOf(count int64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(count) / elapsed.Seconds()
}
