package scheduler

import (
	"github.com/osse101/mobmoney/internal/logger"
	"github.com/osse101/mobmoney/internal/worker"
)

// New builds the scheduler for mode. ModeAuto is resolved through Detect
// against host; regionCount is used in region mode when the host does not
// report one.
func New(host any, mode Mode, pool *worker.Pool, regionCount int) Scheduler {
	resolved := Detect(host, mode)
	if rh, ok := host.(RegionizedHost); ok && rh.RegionCount() > 0 {
		regionCount = rh.RegionCount()
	}
	logger.Info(LogMsgSchedulerSelected, "requested", mode, "mode", resolved)

	if resolved == ModeRegion {
		return NewRegionScheduler(pool, regionCount)
	}
	return NewGlobalLoop(pool)
}
