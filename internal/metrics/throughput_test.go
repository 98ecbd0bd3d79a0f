package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestThroughput_DrainResetsWindow(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tp := NewThroughput(clock.Now)

	for i := 0; i < 30; i++ {
		tp.Inc()
	}
	clock.Advance(10 * time.Second)

	count, rate, since := tp.Drain()
	assert.Equal(t, int64(30), count)
	assert.InDelta(t, 3.0, rate, 1e-9)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), since)

	count, rate, since = tp.Peek()
	assert.Zero(t, count)
	assert.Zero(t, rate)
	assert.Equal(t, clock.Now(), since)
}

func TestThroughput_PeekDoesNotReset(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	tp := NewThroughput(clock.Now)
	tp.Inc()
	tp.Inc()
	clock.Advance(time.Second)

	count, rate, _ := tp.Peek()
	assert.Equal(t, int64(2), count)
	assert.InDelta(t, 2.0, rate, 1e-9)

	count, _, _ = tp.Peek()
	assert.Equal(t, int64(2), count)
}

func TestThroughput_ZeroElapsed(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	tp := NewThroughput(clock.Now)
	tp.Inc()

	_, rate, _ := tp.Drain()
	assert.Zero(t, rate)
}
