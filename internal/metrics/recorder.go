package metrics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/osse101/mobmoney/internal/domain"
	"github.com/osse101/mobmoney/internal/logger"
)

// Record is one persisted metrics entry
type Record struct {
	Performance        domain.PerformanceSnapshot `yaml:"performance"`
	Processing         domain.ThroughputSnapshot  `yaml:"processing"`
	AvgMillisPerEntity float64                    `yaml:"avg_ms_per_entity"`
}

// NewRecord builds an entry from the two snapshots
func NewRecord(throughput domain.ThroughputSnapshot, perf domain.PerformanceSnapshot) Record {
	rec := Record{Performance: perf, Processing: throughput}
	if throughput.ProcessedCount > 0 {
		rec.AvgMillisPerEntity = perf.MeanMillis / float64(throughput.ProcessedCount)
	}
	return rec
}

// merge folds a later entry for the same minute into r: counts add up and
// performance figures are weighted by sample count.
func (r Record) merge(later Record) Record {
	processing := later.Processing
	processing.ProcessedCount += r.Processing.ProcessedCount

	perf := later.Performance
	if n := r.Performance.SampleCount + later.Performance.SampleCount; n > 0 {
		weighted := func(a, b float64) float64 {
			return (a*float64(r.Performance.SampleCount) + b*float64(later.Performance.SampleCount)) / float64(n)
		}
		perf = domain.PerformanceSnapshot{
			MeanMillis:   weighted(r.Performance.MeanMillis, later.Performance.MeanMillis),
			TickImpact:   weighted(r.Performance.TickImpact, later.Performance.TickImpact),
			EstimatedTPS: weighted(r.Performance.EstimatedTPS, later.Performance.EstimatedTPS),
			SampleCount:  n,
		}
	}
	return NewRecord(processing, perf)
}

// Recorder persists metrics snapshots
type Recorder interface {
	Record(ctx context.Context, rec Record) error
	Cleanup(ctx context.Context, retentionDays int) (int, error)
}

// FileRecorder appends records to one YAML file per calendar day
type FileRecorder struct {
	dir string
	now func() time.Time
	mu  sync.Mutex
}

// NewFileRecorder creates the metrics directory if needed
func NewFileRecorder(dir string, now func() time.Time) (*FileRecorder, error) {
	if now == nil {
		now = time.Now
	}
	if err := os.MkdirAll(dir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateMetricsDir, err)
	}
	return &FileRecorder{dir: dir, now: now}, nil
}

// Dir returns the metrics directory
func (r *FileRecorder) Dir() string {
	return r.dir
}

// PathFor returns the file holding records for the given day
func (r *FileRecorder) PathFor(day time.Time) string {
	return filepath.Join(r.dir, day.Format(DayFileLayout)+MetricsFileExt)
}

// Record stores rec under the current minute in today's file, merging it with
// any entry already written in that minute
func (r *FileRecorder) Record(ctx context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	path := r.PathFor(now)

	entries, err := readDayFile(path)
	if err != nil {
		return err
	}
	key := now.Format(EntryKeyLayout)
	if prev, ok := entries[key]; ok {
		rec = prev.merge(rec)
	}
	entries[key] = rec

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncodeMetrics, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePermission); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteMetrics, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteMetrics, err)
	}

	logger.FromContext(ctx).Debug(LogMsgMetricsRecordWritten, "path", path)
	return nil
}

// Load returns every record stored for the given day
func (r *FileRecorder) Load(day time.Time) (map[string]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return readDayFile(r.PathFor(day))
}

// Cleanup deletes day files older than retentionDays.
// Files whose names are not dates are left alone.
func (r *FileRecorder) Cleanup(ctx context.Context, retentionDays int) (int, error) {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgReadMetricsDir, err)
	}

	now := r.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := today.AddDate(0, 0, -retentionDays)

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), MetricsFileExt) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), MetricsFileExt)
		day, err := time.ParseInLocation(DayFileLayout, name, now.Location())
		if err != nil {
			log.Warn(LogMsgUnparsableMetricsFile, "file", entry.Name())
			continue
		}
		if !day.Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(r.dir, entry.Name())); err != nil {
			log.Warn(LogMsgMetricsFileRemoveFailed, "file", entry.Name(), "error", err)
			continue
		}
		removed++
		log.Info(LogMsgMetricsFileRemoved, "file", entry.Name())
	}
	return removed, nil
}

func readDayFile(path string) (map[string]Record, error) {
	entries := make(map[string]Record)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadMetrics, err)
	}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgDecodeMetrics, path, err)
	}
	if entries == nil {
		entries = make(map[string]Record)
	}
	return entries, nil
}
