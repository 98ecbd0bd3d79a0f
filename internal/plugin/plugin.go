package plugin

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/mobmoney/internal/admin"
	"github.com/osse101/mobmoney/internal/concurrency"
	"github.com/osse101/mobmoney/internal/domain"
	"github.com/osse101/mobmoney/internal/event"
	"github.com/osse101/mobmoney/internal/ledger"
	"github.com/osse101/mobmoney/internal/logger"
	"github.com/osse101/mobmoney/internal/messaging"
	"github.com/osse101/mobmoney/internal/metrics"
	"github.com/osse101/mobmoney/internal/pipeline"
	"github.com/osse101/mobmoney/internal/reward"
	"github.com/osse101/mobmoney/internal/rules"
	"github.com/osse101/mobmoney/internal/scheduler"
	"github.com/osse101/mobmoney/internal/worker"
)

// Deps are the host-provided collaborators of a Plugin. Recorder and
// Publisher may be nil.
type Deps struct {
	Store     *rules.Store
	Scheduler scheduler.Scheduler
	Ledger    ledger.Ledger
	Messenger messaging.Messenger
	Formatter *messaging.Formatter
	Recorder  metrics.Recorder
	Publisher event.Publisher
	Source    reward.Source
	Now       func() time.Time
}

// Plugin owns the process-wide state of the reward add-on: the dedup gate,
// the processing-time window and the throughput counter. It is created once,
// enabled by the host and torn down on Disable.
type Plugin struct {
	store       *rules.Store
	sched       scheduler.Scheduler
	gate        *concurrency.DedupGate
	tracker     *metrics.Tracker
	throughput  *metrics.Throughput
	pipeline    *pipeline.Pipeline
	maintenance *worker.MaintenanceWorker
	summary     *worker.SummaryWorker
	publisher   event.Publisher
	now         func() time.Time

	enabled atomic.Bool

	mu    sync.Mutex
	tasks []scheduler.Handle
}

var _ admin.Service = (*Plugin)(nil)

// New wires a Plugin. Nothing runs until Enable.
func New(d Deps) *Plugin {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Publisher == nil {
		d.Publisher = noopPublisher{}
	}

	gate := concurrency.NewDedupGate()
	tracker := metrics.NewTracker(metrics.DefaultSampleCapacity)
	throughput := metrics.NewThroughput(d.Now)

	return &Plugin{
		store:      d.Store,
		sched:      d.Scheduler,
		gate:       gate,
		tracker:    tracker,
		throughput: throughput,
		pipeline: pipeline.New(pipeline.Deps{
			Gate:       gate,
			Rules:      d.Store,
			Scheduler:  d.Scheduler,
			Ledger:     d.Ledger,
			Messenger:  d.Messenger,
			Formatter:  d.Formatter,
			Tracker:    tracker,
			Throughput: throughput,
			Publisher:  d.Publisher,
			Source:     d.Source,
			Now:        d.Now,
		}),
		maintenance: worker.NewMaintenanceWorker(d.Store, gate, d.Recorder),
		summary:     worker.NewSummaryWorker(throughput, tracker, d.Store, gate, d.Recorder, d.Publisher),
		publisher:   d.Publisher,
		now:         d.Now,
	}
}

// Enable loads the reward rules and starts the periodic tasks. A config that
// fails to load leaves the pipeline running on default settings and no rules.
func (p *Plugin) Enable(ctx context.Context) error {
	log := logger.FromContext(ctx)

	_, err := p.store.Reload(ctx)
	if err != nil {
		log.Error(LogMsgEnableFailed, "error", err)
	}

	p.reschedule(ctx)
	p.enabled.Store(true)
	log.Info(LogMsgEnabled,
		"scheduler", p.sched.Mode(),
		"rules", p.store.RuleCount())
	return err
}

// Enabled reports whether the pipeline accepts death events
func (p *Plugin) Enabled() bool {
	return p.enabled.Load()
}

// OnDeath hands a death to the pipeline. It returns immediately.
func (p *Plugin) OnDeath(ctx context.Context, ev domain.DeathEvent) {
	if !p.enabled.Load() {
		if logger.DebugEnabled() {
			logger.FromContext(ctx).Debug(LogMsgIgnoredWhenOff, "entity_id", ev.EntityID)
		}
		return
	}
	p.pipeline.OnDeath(ctx, ev)
}

// Reload re-reads the reward config. On failure the previous rules stay active.
func (p *Plugin) Reload(ctx context.Context) (admin.ReloadResult, error) {
	snap, err := p.store.Reload(ctx)
	if err != nil {
		return admin.ReloadResult{}, err
	}
	if p.enabled.Load() {
		p.reschedule(ctx)
	}

	p.publisher.PublishWithRetry(ctx, event.NewRulesReloadedEvent(snap.RuleCount(), len(snap.Warnings)))
	return admin.ReloadResult{
		RuleCount:  snap.RuleCount(),
		Categories: snap.Categories,
		Warnings:   snap.Warnings,
		LoadedAt:   snap.LoadedAt,
	}, nil
}

// MetricsEnabled reports the enable_metrics setting of the active config
func (p *Plugin) MetricsEnabled() bool {
	return p.store.Settings().EnableMetrics
}

// Status reports current throughput and processing cost without resetting
// the counter.
func (p *Plugin) Status(ctx context.Context) (domain.MetricsStatus, error) {
	if !p.MetricsEnabled() {
		return domain.MetricsStatus{}, domain.ErrMetricsDisabled
	}
	count, rate, since := p.throughput.Peek()
	return domain.MetricsStatus{
		Throughput: domain.ThroughputSnapshot{
			ProcessedCount: count,
			RatePerSecond:  rate,
			RuleCount:      p.store.RuleCount(),
			DedupSetSize:   p.gate.Size(),
			Since:          since,
		},
		Performance: p.tracker.Snapshot(),
	}, nil
}

// Record closes the current throughput window and persists it immediately
func (p *Plugin) Record(ctx context.Context) (metrics.Record, error) {
	if !p.MetricsEnabled() {
		return metrics.Record{}, domain.ErrMetricsDisabled
	}
	rec, err := p.summary.Summarize(ctx)
	if err != nil {
		return rec, fmt.Errorf("failed to write metrics record: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgMetricsRecorded, "processed", rec.Processing.ProcessedCount)
	return rec, nil
}

// Disable stops the periodic tasks and clears all in-memory state.
// Work already handed to the scheduler finishes on its own.
func (p *Plugin) Disable(ctx context.Context) {
	p.enabled.Store(false)
	p.cancelTasks()

	p.gate.Clear()
	p.tracker.Reset()
	p.throughput.Drain()
	metrics.DedupSetSize.Set(0)

	logger.FromContext(ctx).Info(LogMsgDisabled)
}

// DedupSize returns the number of remembered entity ids
func (p *Plugin) DedupSize() int {
	return p.gate.Size()
}

// reschedule replaces the periodic tasks using the current settings
func (p *Plugin) reschedule(ctx context.Context) {
	s := p.store.Settings()
	taskCtx := context.WithoutCancel(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, h := range p.tasks {
		h.Cancel()
	}
	p.tasks = p.tasks[:0]

	p.tasks = append(p.tasks, p.sched.RunPeriodic(
		p.runTask(taskCtx, "maintenance", p.maintenance),
		s.CleanupInterval(), s.CleanupInterval()))

	if s.EnableMetrics {
		p.tasks = append(p.tasks, p.sched.RunPeriodic(
			p.runTask(taskCtx, "metrics_summary", p.summary),
			s.SummaryInterval(), s.SummaryInterval()))
	}

	if logger.DebugEnabled() {
		logger.FromContext(ctx).Debug(LogMsgTasksScheduled,
			"tasks", len(p.tasks),
			"cleanup_interval", s.CleanupInterval(),
			"summary_interval", s.SummaryInterval())
	}
}

func (p *Plugin) runTask(ctx context.Context, name string, job worker.Job) scheduler.Task {
	return func() {
		if err := job.Process(ctx); err != nil {
			logger.FromContext(ctx).Warn(LogMsgTaskFailed, "task", name, "error", err)
		}
	}
}

func (p *Plugin) cancelTasks() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, h := range p.tasks {
		h.Cancel()
	}
	p.tasks = nil
}

type noopPublisher struct{}

func (noopPublisher) PublishWithRetry(context.Context, event.Event) {}
