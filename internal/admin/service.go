package admin

import (
	"context"
	"time"

	"github.com/osse101/mobmoney/internal/domain"
	"github.com/osse101/mobmoney/internal/metrics"
)

// Service is the operator surface shared by the HTTP admin routes and the
// in-game command. Status and Record fail with domain.ErrMetricsDisabled
// while metrics are switched off.
type Service interface {
	MetricsEnabled() bool
	Reload(ctx context.Context) (ReloadResult, error)
	Status(ctx context.Context) (domain.MetricsStatus, error)
	Record(ctx context.Context) (metrics.Record, error)
}

// ReloadResult describes the rule set a successful reload installed
type ReloadResult struct {
	RuleCount  int            `json:"rule_count"`
	Categories map[string]int `json:"categories"`
	Warnings   []string       `json:"warnings,omitempty"`
	LoadedAt   time.Time      `json:"loaded_at"`
}
