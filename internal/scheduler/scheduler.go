package scheduler

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrStopped is returned when the owner loop no longer accepts tasks
	ErrStopped = errors.New("owner loop stopped")
	// ErrHandoffExpired is returned when the owner loop queue stayed full until the deadline
	ErrHandoffExpired = errors.New("owner loop handoff deadline passed")
)

// Task is a unit of work handed to the host scheduler
type Task func()

// Handle cancels a scheduled task. Cancel is safe to call more than once and
// has no effect on a task that already started.
type Handle interface {
	Cancel()
}

// Mode selects the scheduling model
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeGlobal Mode = "global"
	ModeRegion Mode = "region"
)

// Scheduler is the host's execution facility.
//
// RunOnOwner runs task on the loop that owns owner's state; it is the only
// place ledger and messenger calls may happen. RunOnOwnerBefore does the same
// but gives up with ErrHandoffExpired if the loop's queue is still full at
// deadline; a zero deadline waits indefinitely. RunAsync runs task off the
// event thread and reports false when it could not be accepted.
// RunPeriodic runs task every period after initialDelay.
type Scheduler interface {
	RunOnOwner(owner string, task Task) bool
	RunOnOwnerBefore(owner string, deadline time.Time, task Task) error
	RunAsync(task Task) (Handle, bool)
	RunPeriodic(task Task, initialDelay, period time.Duration) Handle
	Mode() Mode
	Stop(ctx context.Context) error
}

// RegionizedHost is implemented by hosts that run several region loops
type RegionizedHost interface {
	RegionCount() int
}

// Detect picks the scheduling mode. An explicit global or region request wins;
// otherwise a host implementing RegionizedHost gets region mode.
func Detect(host any, requested Mode) Mode {
	switch requested {
	case ModeGlobal, ModeRegion:
		return requested
	}
	if rh, ok := host.(RegionizedHost); ok && rh.RegionCount() > 0 {
		return ModeRegion
	}
	return ModeGlobal
}

// ParseMode maps a config string to a Mode, defaulting to auto
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeGlobal, ModeRegion:
		return Mode(s)
	default:
		return ModeAuto
	}
}
