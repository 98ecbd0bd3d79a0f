package leaktest

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoroutineChecker_NoLeak(t *testing.T) {
	checker := NewGoroutineChecker(t)
	checker.Check(0)
}

func TestGoroutineChecker_WithinTolerance(t *testing.T) {
	checker := NewGoroutineChecker(t)

	done := make(chan struct{})
	go func() { <-done }()
	defer close(done)

	checker.Check(1)
}

func TestSettle_ReportsLingeringGoroutine(t *testing.T) {
	before := settle(0, 0)

	done := make(chan struct{})
	defer close(done)
	go func() { <-done }()

	after := settle(before, 50*time.Millisecond)
	assert.Greater(t, after, before)
}

func TestCheckNoGoroutineLeak_WaitsForExit(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				time.Sleep(5 * time.Millisecond)
			}()
		}
		wg.Wait()
	})
}

func TestSettle_ReturnsAtTarget(t *testing.T) {
	start := time.Now()
	n := settle(1<<20, time.Second)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Positive(t, n)
}
