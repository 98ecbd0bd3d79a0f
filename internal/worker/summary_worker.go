package worker

import (
	"context"
	"fmt"

	"github.com/osse101/mobmoney/internal/domain"
	"github.com/osse101/mobmoney/internal/event"
	"github.com/osse101/mobmoney/internal/logger"
	"github.com/osse101/mobmoney/internal/metrics"
)

// RuleCounter reports the size of the active rule set
type RuleCounter interface {
	RuleCount() int
}

// SummaryWorker closes the current throughput window, persists a metrics
// record and logs a summary line.
type SummaryWorker struct {
	throughput *metrics.Throughput
	tracker    *metrics.Tracker
	rules      RuleCounter
	gate       Compactor
	recorder   metrics.Recorder
	publisher  event.Publisher
}

// NewSummaryWorker creates a SummaryWorker. recorder and publisher may be nil.
func NewSummaryWorker(
	throughput *metrics.Throughput,
	tracker *metrics.Tracker,
	rules RuleCounter,
	gate Compactor,
	recorder metrics.Recorder,
	publisher event.Publisher,
) *SummaryWorker {
	return &SummaryWorker{
		throughput: throughput,
		tracker:    tracker,
		rules:      rules,
		gate:       gate,
		recorder:   recorder,
		publisher:  publisher,
	}
}

// Process runs one summary
func (w *SummaryWorker) Process(ctx context.Context) error {
	_, err := w.Summarize(ctx)
	return err
}

// Summarize drains the throughput counter and records the result
func (w *SummaryWorker) Summarize(ctx context.Context) (metrics.Record, error) {
	log := logger.FromContext(ctx)

	count, rate, since := w.throughput.Drain()
	throughput := domain.ThroughputSnapshot{
		ProcessedCount: count,
		RatePerSecond:  rate,
		RuleCount:      w.rules.RuleCount(),
		DedupSetSize:   w.gate.Size(),
		Since:          since,
	}
	perf := w.tracker.Snapshot()
	rec := metrics.NewRecord(throughput, perf)

	log.Info(LogMsgMetricsSummary,
		"processed", count,
		"rate_per_second", fmt.Sprintf("%.2f", rate),
		"rule_count", throughput.RuleCount,
		"recent_entries", throughput.DedupSetSize,
		"mspt", fmt.Sprintf("%.3f", perf.MeanMillis),
		"tps_impact", fmt.Sprintf("%.3f", perf.TickImpact))

	if w.publisher != nil {
		w.publisher.PublishWithRetry(ctx, event.NewMetricsSummaryEvent(event.MetricsSummaryPayloadV1{
			Processed:     count,
			RatePerSecond: rate,
			MeanMillis:    perf.MeanMillis,
			TickImpact:    perf.TickImpact,
			DedupSetSize:  throughput.DedupSetSize,
		}))
	}

	if w.recorder != nil {
		if err := w.recorder.Record(ctx, rec); err != nil {
			log.Warn(LogMsgMetricsWriteFailed, "error", err)
			return rec, err
		}
	}
	return rec, nil
}
