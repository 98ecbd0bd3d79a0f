package worker

import (
	"context"

	"github.com/osse101/mobmoney/internal/domain"
	"github.com/osse101/mobmoney/internal/logger"
	"github.com/osse101/mobmoney/internal/metrics"
)

// SettingsSource supplies the current pipeline settings
type SettingsSource interface {
	Settings() domain.Settings
}

// Compactor is the part of the dedup gate maintenance needs
type Compactor interface {
	MaybeCompact(maxEntries int) bool
	Size() int
}

// MaintenanceWorker compacts the dedup set and prunes expired metrics files.
// It runs on the periodic timer, never from the event path.
type MaintenanceWorker struct {
	settings SettingsSource
	gate     Compactor
	recorder metrics.Recorder
}

// NewMaintenanceWorker creates a MaintenanceWorker. recorder may be nil.
func NewMaintenanceWorker(settings SettingsSource, gate Compactor, recorder metrics.Recorder) *MaintenanceWorker {
	return &MaintenanceWorker{
		settings: settings,
		gate:     gate,
		recorder: recorder,
	}
}

// Process runs one maintenance pass
func (w *MaintenanceWorker) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	s := w.settings.Settings()

	size := w.gate.Size()
	if w.gate.MaybeCompact(s.MaxRecentEntries) && s.Debug {
		log.Info(LogMsgDedupCompacted, "entries", size, "max_entries", s.MaxRecentEntries)
	}
	metrics.DedupSetSize.Set(float64(w.gate.Size()))

	if !s.EnableMetrics || w.recorder == nil {
		return nil
	}

	removed, err := w.recorder.Cleanup(ctx, s.MetricsRetentionDays)
	if err != nil {
		log.Warn(LogMsgMetricsCleanupFailed, "error", err)
		return err
	}
	if removed > 0 {
		log.Info(LogMsgMetricsCleanupComplete, "removed", removed, "retention_days", s.MetricsRetentionDays)
	}
	return nil
}
