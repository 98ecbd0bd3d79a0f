package scheduler

import (
	"context"
	"time"

	"github.com/osse101/mobmoney/internal/logger"
	"github.com/osse101/mobmoney/internal/worker"
)

// GlobalLoop models a host with one main thread: every owner maps to it.
type GlobalLoop struct {
	core
	main *loop
}

// NewGlobalLoop starts the main loop
func NewGlobalLoop(pool *worker.Pool) *GlobalLoop {
	g := &GlobalLoop{main: newLoop("main", DefaultLoopQueueSize)}
	g.init(pool)
	return g
}

// RunOnOwner runs task on the main loop regardless of owner
func (g *GlobalLoop) RunOnOwner(owner string, task Task) bool {
	return g.main.submit(task)
}

// RunOnOwnerBefore runs task on the main loop, giving up at deadline
func (g *GlobalLoop) RunOnOwnerBefore(owner string, deadline time.Time, task Task) error {
	return g.main.submitBefore(task, deadline)
}

// Mode returns ModeGlobal
func (g *GlobalLoop) Mode() Mode {
	return ModeGlobal
}

// Stop cancels periodic tasks then lets the main loop finish its queue
func (g *GlobalLoop) Stop(ctx context.Context) error {
	logger.Info(LogMsgSchedulerStopping, "mode", ModeGlobal)
	g.stopTimers()
	if err := waitLoops(ctx, g.main); err != nil {
		return err
	}
	logger.Info(LogMsgSchedulerStopped, "mode", ModeGlobal)
	return nil
}
