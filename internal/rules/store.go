package rules

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/osse101/mobmoney/internal/domain"
	"github.com/osse101/mobmoney/internal/logger"
)

// Store publishes the active Snapshot. Readers take the current pointer and
// never observe a partially built rule set; Reload swaps the whole snapshot
// or leaves it alone.
type Store struct {
	loader  *Loader
	current atomic.Pointer[Snapshot]
	reload  sync.Mutex
}

// NewStore creates a store holding default settings and no rules
func NewStore(loader *Loader) *Store {
	s := &Store{loader: loader}
	s.current.Store(emptySnapshot())
	return s
}

// Current returns the active snapshot
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Settings returns the active settings
func (s *Store) Settings() domain.Settings {
	return s.Current().Settings
}

// RuleCount returns the number of active rules
func (s *Store) RuleCount() int {
	return s.Current().RuleCount()
}

// Reload loads the config directory and swaps it in on success
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	s.reload.Lock()
	defer s.reload.Unlock()

	log := logger.FromContext(ctx)
	snap, err := s.loader.Load(ctx)
	if err != nil {
		log.Error(LogMsgReloadFailed, "error", err)
		return nil, err
	}

	s.current.Store(snap)
	logger.SetDebug(snap.Settings.Debug)
	log.Info(LogMsgReloadSucceeded, "rules", snap.RuleCount())
	return snap, nil
}
