package concurrency

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// recentSet is one dedup window
type recentSet struct {
	ids  sync.Map
	size atomic.Int64
}

// DedupGate admits each entity id at most once per dedup window.
// Safe for any number of concurrent callers.
type DedupGate struct {
	current atomic.Pointer[recentSet]
}

// NewDedupGate creates an empty gate
func NewDedupGate() *DedupGate {
	g := &DedupGate{}
	g.current.Store(&recentSet{})
	return g
}

// TryAdmit records id and returns true if it was not already present.
// A false result means the id was already admitted in this window.
func (g *DedupGate) TryAdmit(id uuid.UUID) bool {
	set := g.current.Load()
	if _, loaded := set.ids.LoadOrStore(id, struct{}{}); loaded {
		return false
	}
	set.size.Add(1)
	return true
}

// Size returns the number of ids in the current window
func (g *DedupGate) Size() int {
	return int(g.current.Load().size.Load())
}

// MaybeCompact starts a new window if the current one holds more than maxEntries ids.
// Returns true if the set was cleared.
func (g *DedupGate) MaybeCompact(maxEntries int) bool {
	set := g.current.Load()
	if set.size.Load() <= int64(maxEntries) {
		return false
	}
	return g.current.CompareAndSwap(set, &recentSet{})
}

// Clear drops every recorded id
func (g *DedupGate) Clear() {
	g.current.Store(&recentSet{})
}
