package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/mobmoney/internal/domain"
	"github.com/osse101/mobmoney/internal/event"
	"github.com/osse101/mobmoney/internal/ledger"
	"github.com/osse101/mobmoney/internal/logger"
	"github.com/osse101/mobmoney/internal/messaging"
	"github.com/osse101/mobmoney/internal/metrics"
	"github.com/osse101/mobmoney/internal/reward"
	"github.com/osse101/mobmoney/internal/rules"
	"github.com/osse101/mobmoney/internal/scheduler"
)

// RuleProvider returns the active rule snapshot
type RuleProvider interface {
	Current() *rules.Snapshot
}

// Deps are the collaborators of a Pipeline
type Deps struct {
	Gate       Admitter
	Rules      RuleProvider
	Scheduler  scheduler.Scheduler
	Ledger     ledger.Ledger
	Messenger  messaging.Messenger
	Formatter  *messaging.Formatter
	Tracker    *metrics.Tracker
	Throughput *metrics.Throughput
	Publisher  event.Publisher
	Source     reward.Source
	Now        func() time.Time
}

// Pipeline reacts to death events. OnDeath never blocks on computation or the
// ledger and never reports an error to the host.
type Pipeline struct {
	gate       Admitter
	rules      RuleProvider
	sched      scheduler.Scheduler
	ledger     ledger.Ledger
	messenger  messaging.Messenger
	formatter  *messaging.Formatter
	tracker    *metrics.Tracker
	throughput *metrics.Throughput
	publisher  event.Publisher
	src        reward.Source
	now        func() time.Time
}

// New creates a Pipeline
func New(d Deps) *Pipeline {
	if d.Source == nil {
		d.Source = reward.DefaultSource{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Pipeline{
		gate:       d.Gate,
		rules:      d.Rules,
		sched:      d.Scheduler,
		ledger:     d.Ledger,
		messenger:  d.Messenger,
		formatter:  d.Formatter,
		tracker:    d.Tracker,
		throughput: d.Throughput,
		publisher:  d.Publisher,
		src:        d.Source,
		now:        d.Now,
	}
}

// job carries one admitted death from the host thread to the owner loop
type job struct {
	ev       domain.DeathEvent
	killer   domain.Player
	settings domain.Settings
	deadline time.Time
	hostCost time.Duration
}

// OnDeath handles a death event on the calling host thread
func (p *Pipeline) OnDeath(ctx context.Context, ev domain.DeathEvent) {
	start := time.Now()
	// Work outlives the caller; keep its values, drop its cancellation.
	ctx = context.WithoutCancel(ctx)
	defer p.recoverPanic(ctx, ev, nil, StateReceived, 0)

	snap := p.rules.Current()
	out := Admit(p.gate, snap, ev, p.src)
	if out.Skipped() {
		p.finishSkipped(ctx, ev, snap.Settings, out)
		return
	}

	j := job{
		ev:       ev,
		killer:   *ev.Killer,
		settings: snap.Settings,
		deadline: p.now().Add(snap.Settings.AsyncTimeout()),
	}
	rule := out.Rule
	j.hostCost = time.Since(start)

	if _, ok := p.sched.RunAsync(func() { p.compute(ctx, j, rule) }); !ok {
		p.finishSkipped(ctx, ev, j.settings, skip(StateEligible, ReasonOverloaded, domain.ErrQueueFull))
	}
}

// compute runs on the worker pool
func (p *Pipeline) compute(ctx context.Context, j job, rule domain.MobRewardRule) {
	defer p.recoverPanic(ctx, j.ev, &j.killer, StateEligible, 0)

	if Expired(j.deadline, p.now()) {
		p.finishSkipped(ctx, j.ev, j.settings, p.timeout(StateEligible, j))
		return
	}

	out := Compute(rule, p.src)
	if out.Skipped() {
		p.finishSkipped(ctx, j.ev, j.settings, out)
		return
	}

	if Expired(j.deadline, p.now()) {
		p.finishSkipped(ctx, j.ev, j.settings, p.timeout(StateComputed, j))
		return
	}

	out.State = StateAwaitingCommit
	err := p.sched.RunOnOwnerBefore(j.killer.Owner, j.deadline, func() { p.commit(ctx, j, out) })
	switch {
	case errors.Is(err, scheduler.ErrHandoffExpired):
		p.finishSkipped(ctx, j.ev, j.settings, p.timeout(StateAwaitingCommit, j))
	case err != nil:
		p.finishSkipped(ctx, j.ev, j.settings, skip(StateAwaitingCommit, ReasonShutdown, err))
	}
}

// commit runs on the killer's owner loop: deposit, then message, then metrics
func (p *Pipeline) commit(ctx context.Context, j job, out Outcome) {
	start := time.Now()
	account := j.killer.Account()
	defer p.recoverPanic(ctx, j.ev, &j.killer, StateAwaitingCommit, out.Amount)

	// A backed-up owner loop can run this long after dispatch.
	if Expired(j.deadline, p.now()) {
		p.finishSkipped(ctx, j.ev, j.settings, p.timeout(StateAwaitingCommit, j))
		return
	}

	res, err := p.ledger.Deposit(ctx, account, out.Amount)
	if err != nil || !res.Success {
		if err == nil {
			err = domain.ErrDepositRejected
		}
		logger.FromContext(ctx).Warn(LogMsgDepositFailed,
			"entity_type", j.ev.EntityType,
			"account", account,
			"amount", out.Amount,
			"error", err)
		p.publishSkipped(ctx, j.ev, skip(StateAwaitingCommit, ReasonLedgerFailed, err))
		return
	}

	p.notify(ctx, j, account, out)

	if j.settings.EnableMetrics {
		p.tracker.Record(j.hostCost + time.Since(start))
		p.throughput.Inc()
	}

	if j.settings.Debug {
		logger.FromContext(ctx).Debug(LogMsgRewardGranted,
			"entity_type", j.ev.EntityType,
			"account", account,
			"amount", out.Amount,
			"drops", out.Drops)
	}

	p.publisher.PublishWithRetry(ctx, event.NewRewardGrantedEvent(event.RewardGrantedPayloadV1{
		EntityID:    j.ev.EntityID,
		EntityType:  j.ev.EntityType,
		DisplayName: out.Rule.DisplayName,
		Account:     account,
		PlayerName:  j.killer.Name,
		Amount:      out.Amount,
		Drops:       out.Drops,
		Balance:     res.Balance.StringFixed(ledger.AmountScale),
	}))
}

// notify tells the killer about a deposit that already happened. Its failures,
// panics included, never undo the reward.
func (p *Pipeline) notify(ctx context.Context, j job, account string, out Outcome) {
	if p.formatter == nil || p.messenger == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Warn(LogMsgMessagePanicked, "account", account, "panic", r)
		}
	}()
	err := p.formatter.Deliver(ctx, p.messenger, j.settings, account, out.Rule.DisplayName, out.Amount)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgMessageFailed, "account", account, "error", err)
	}
}

func (p *Pipeline) timeout(state State, j job) Outcome {
	return skip(state, ReasonTimeout,
		fmt.Errorf("%w: after %s", domain.ErrComputeTimeout, j.settings.AsyncTimeout()))
}

// finishSkipped logs a skip at the level its reason deserves and publishes it
func (p *Pipeline) finishSkipped(ctx context.Context, ev domain.DeathEvent, s domain.Settings, out Outcome) {
	log := logger.FromContext(ctx)
	switch {
	case out.Warn():
		log.Warn(LogMsgEventSkipped,
			"entity_type", ev.EntityType,
			"entity_id", ev.EntityID,
			"state", out.State,
			"reason", out.Reason,
			"error", out.Err)
	case s.Debug:
		log.Debug(LogMsgEventSkipped,
			"entity_type", ev.EntityType,
			"entity_id", ev.EntityID,
			"state", out.State,
			"reason", out.Reason)
	}
	p.publishSkipped(ctx, ev, out)
}

func (p *Pipeline) publishSkipped(ctx context.Context, ev domain.DeathEvent, out Outcome) {
	p.publisher.PublishWithRetry(ctx,
		event.NewRewardSkippedEvent(ev.EntityID, ev.EntityType, string(out.State), string(out.Reason), out.Err))
}

// recoverPanic contains a panic at a task boundary
func (p *Pipeline) recoverPanic(ctx context.Context, ev domain.DeathEvent, killer *domain.Player, state State, amount float64) {
	r := recover()
	if r == nil {
		return
	}
	attrs := []any{"entity_type", ev.EntityType, "entity_id", ev.EntityID, "state", state, "panic", r}
	if killer != nil {
		attrs = append(attrs, "account", killer.Account())
	}
	if amount > 0 {
		attrs = append(attrs, "amount", amount)
	}
	logger.FromContext(ctx).Error(LogMsgPanicRecovered, attrs...)

	func() {
		// A panicking publisher must not escape either
		defer func() { _ = recover() }()
		p.publishSkipped(ctx, ev, skip(state, ReasonPanic, fmt.Errorf("%v", r)))
	}()
}
