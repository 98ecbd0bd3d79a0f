package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/mobmoney/internal/logger"
	"github.com/osse101/mobmoney/internal/worker"
)

// core holds what both schedulers share: the worker pool behind RunAsync and
// the timers behind RunPeriodic.
type core struct {
	workerPool *worker.Pool
	quit       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

func (c *core) init(pool *worker.Pool) {
	c.workerPool = pool
	c.quit = make(chan struct{})
}

type asyncHandle struct {
	cancelled atomic.Bool
}

func (h *asyncHandle) Cancel() {
	h.cancelled.Store(true)
}

// RunAsync queues task on the worker pool without blocking
func (c *core) RunAsync(task Task) (Handle, bool) {
	h := &asyncHandle{}
	ok := c.workerPool.TryEnqueue(worker.JobFunc(func(ctx context.Context) error {
		if h.cancelled.Load() {
			return nil
		}
		task()
		return nil
	}))
	if !ok {
		return nil, false
	}
	return h, true
}

type periodicHandle struct {
	stop chan struct{}
	once sync.Once
}

func (h *periodicHandle) Cancel() {
	h.once.Do(func() { close(h.stop) })
}

// RunPeriodic enqueues task on the worker pool every period after
// initialDelay. A tick that finds the queue full is skipped.
func (c *core) RunPeriodic(task Task, initialDelay, period time.Duration) Handle {
	h := &periodicHandle{stop: make(chan struct{})}
	job := worker.JobFunc(func(ctx context.Context) error {
		task()
		return nil
	})

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		timer := time.NewTimer(initialDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-h.stop:
			return
		case <-c.quit:
			return
		}
		c.fire(job)

		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.fire(job)
			case <-h.stop:
				return
			case <-c.quit:
				return
			}
		}
	}()
	return h
}

func (c *core) fire(job worker.Job) {
	if !c.workerPool.TryEnqueue(job) {
		logger.Warn(LogMsgPeriodicSkipped)
	}
}

// stopTimers cancels every periodic task and waits for the timer goroutines
func (c *core) stopTimers() {
	c.stopOnce.Do(func() { close(c.quit) })
	c.wg.Wait()
}

// waitLoops waits for loops to finish their queues or ctx to expire
func waitLoops(ctx context.Context, loops ...*loop) error {
	for _, l := range loops {
		l.close()
	}
	for _, l := range loops {
		select {
		case <-l.done:
		case <-ctx.Done():
			logger.Warn(LogMsgSchedulerStopFailed, "loop", l.name)
			return ctx.Err()
		}
	}
	return nil
}
