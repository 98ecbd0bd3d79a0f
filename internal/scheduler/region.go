package scheduler

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/osse101/mobmoney/internal/logger"
	"github.com/osse101/mobmoney/internal/worker"
)

// RegionScheduler models a host running one loop per region. Tasks for the
// same owner always land on the same region loop; tasks without an owner run
// on the global region loop.
type RegionScheduler struct {
	core
	global  *loop
	regions []*loop
}

// NewRegionScheduler starts the global loop and count region loops
func NewRegionScheduler(pool *worker.Pool, count int) *RegionScheduler {
	if count <= 0 {
		count = DefaultRegionCount
	}
	regions := make([]*loop, count)
	for i := range regions {
		regions[i] = newLoop(fmt.Sprintf("region-%d", i), DefaultLoopQueueSize)
	}
	r := &RegionScheduler{
		global:  newLoop("global-region", DefaultLoopQueueSize),
		regions: regions,
	}
	r.init(pool)
	return r
}

// RegionFor returns the index of the loop owning owner, or -1 for the global loop
func (r *RegionScheduler) RegionFor(owner string) int {
	if owner == "" {
		return -1
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(owner))
	return int(h.Sum32() % uint32(len(r.regions)))
}

// RunOnOwner runs task on the loop that owns owner
func (r *RegionScheduler) RunOnOwner(owner string, task Task) bool {
	return r.loopFor(owner).submit(task)
}

// RunOnOwnerBefore runs task on the loop that owns owner, giving up at deadline
func (r *RegionScheduler) RunOnOwnerBefore(owner string, deadline time.Time, task Task) error {
	return r.loopFor(owner).submitBefore(task, deadline)
}

func (r *RegionScheduler) loopFor(owner string) *loop {
	idx := r.RegionFor(owner)
	if idx < 0 {
		return r.global
	}
	return r.regions[idx]
}

// Mode returns ModeRegion
func (r *RegionScheduler) Mode() Mode {
	return ModeRegion
}

// Stop cancels periodic tasks then lets every loop finish its queue
func (r *RegionScheduler) Stop(ctx context.Context) error {
	logger.Info(LogMsgSchedulerStopping, "mode", ModeRegion, "regions", len(r.regions))
	r.stopTimers()
	if err := waitLoops(ctx, append([]*loop{r.global}, r.regions...)...); err != nil {
		return err
	}
	logger.Info(LogMsgSchedulerStopped, "mode", ModeRegion)
	return nil
}
