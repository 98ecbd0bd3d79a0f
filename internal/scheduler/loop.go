package scheduler

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/osse101/mobmoney/internal/logger"
)

// loop is a single goroutine running tasks in submission order, standing in
// for one host thread (the main thread or one region thread).
type loop struct {
	name  string
	tasks chan Task
	quit  chan struct{}
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func newLoop(name string, queueSize int) *loop {
	l := &loop{
		name:  name,
		tasks: make(chan Task, queueSize),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *loop) run() {
	defer close(l.done)
	for {
		select {
		case task := <-l.tasks:
			l.exec(task)
		case <-l.quit:
			for {
				select {
				case task := <-l.tasks:
					l.exec(task)
				default:
					return
				}
			}
		}
	}
}

func (l *loop) exec(task Task) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(LogMsgTaskPanicked,
				"loop", l.name,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()))
		}
	}()
	task()
}

// submit queues task, blocking while the queue is full. It returns false once
// the loop is closed.
func (l *loop) submit(task Task) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return false
	}
	l.tasks <- task
	return true
}

// submitBefore queues task, waiting while the queue is full but no later than
// deadline. A zero deadline waits indefinitely.
func (l *loop) submitBefore(task Task, deadline time.Time) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrStopped
	}
	select {
	case l.tasks <- task:
		return nil
	default:
	}
	if deadline.IsZero() {
		l.tasks <- task
		return nil
	}
	wait := time.Until(deadline)
	if wait <= 0 {
		return ErrHandoffExpired
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case l.tasks <- task:
		return nil
	case <-timer.C:
		return ErrHandoffExpired
	}
}

// close stops accepting tasks; queued tasks still run
func (l *loop) close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()
	close(l.quit)
}
