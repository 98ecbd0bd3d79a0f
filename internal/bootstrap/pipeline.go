package bootstrap

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/text/language"

	"github.com/osse101/mobmoney/internal/config"
	"github.com/osse101/mobmoney/internal/event"
	"github.com/osse101/mobmoney/internal/ledger"
	"github.com/osse101/mobmoney/internal/messaging"
	"github.com/osse101/mobmoney/internal/metrics"
	"github.com/osse101/mobmoney/internal/plugin"
	"github.com/osse101/mobmoney/internal/rules"
	"github.com/osse101/mobmoney/internal/scheduler"
	"github.com/osse101/mobmoney/internal/worker"
)

// Pipeline groups the long-lived pieces of the reward pipeline
type Pipeline struct {
	Plugin    *plugin.Plugin
	Scheduler scheduler.Scheduler
	Pool      *worker.Pool
}

// InitializePipeline builds the worker pool, the scheduler and the plugin.
// host is inspected for scheduler.RegionizedHost when SCHEDULER_MODE is auto.
// The plugin is not enabled yet.
func InitializePipeline(cfg *config.Config, host any, l ledger.Ledger, m messaging.Messenger, publisher event.Publisher) (*Pipeline, error) {
	if info, err := os.Stat(cfg.ConfigDir); err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("%s is not a directory", cfg.ConfigDir)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgRewardConfigDir, err)
	}
	slog.Info(LogMsgRewardConfigChecked, "dir", cfg.ConfigDir)

	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", ErrMsgInvalidLocale, cfg.Locale, err)
	}

	recorder, err := metrics.NewFileRecorder(cfg.MetricsDir, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgMetricsDir, err)
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()
	sched := scheduler.New(host, scheduler.ParseMode(cfg.SchedulerMode), pool, cfg.RegionCount)

	p := plugin.New(plugin.Deps{
		Store:     rules.NewStore(rules.NewLoader(cfg.ConfigDir)),
		Scheduler: sched,
		Ledger:    l,
		Messenger: m,
		Formatter: messaging.NewFormatter(tag),
		Recorder:  recorder,
		Publisher: publisher,
	})

	slog.Info(LogMsgPipelineInitialized,
		"scheduler", sched.Mode(),
		"workers", pool.Workers(),
		"queue_size", cfg.WorkerQueueSize,
		"locale", tag)

	return &Pipeline{Plugin: p, Scheduler: sched, Pool: pool}, nil
}
