package rules

import (
	"time"

	"github.com/osse101/mobmoney/internal/domain"
	"github.com/osse101/mobmoney/internal/validation"
)

// Snapshot is one immutable, fully loaded configuration.
// Nothing mutates a Snapshot after it is published.
type Snapshot struct {
	Settings   domain.Settings
	Rules      map[string]domain.MobRewardRule
	Categories map[string]int
	Warnings   []string
	LoadedAt   time.Time
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		Settings:   domain.DefaultSettings(),
		Rules:      map[string]domain.MobRewardRule{},
		Categories: map[string]int{},
	}
}

// Rule looks up the rule for an entity type
func (s *Snapshot) Rule(entityType string) (domain.MobRewardRule, bool) {
	r, ok := s.Rules[validation.NormalizeEntityType(entityType)]
	return r, ok
}

// RuleCount returns the number of configured entity types
func (s *Snapshot) RuleCount() int {
	return len(s.Rules)
}
