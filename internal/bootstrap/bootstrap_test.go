package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/mobmoney/internal/config"
	"github.com/osse101/mobmoney/internal/event"
	"github.com/osse101/mobmoney/internal/ledger"
	"github.com/osse101/mobmoney/internal/logger"
	"github.com/osse101/mobmoney/internal/messaging"
	"github.com/osse101/mobmoney/internal/scheduler"
	"github.com/osse101/mobmoney/internal/testing/leaktest"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfgDir := filepath.Join(root, "configs")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	return &config.Config{
		LogLevel:        "info",
		LogFormat:       "text",
		LogDir:          filepath.Join(root, "logs"),
		ServiceName:     "mobmoney",
		Version:         "test",
		Environment:     "dev",
		ConfigDir:       cfgDir,
		MetricsDir:      filepath.Join(root, "metrics"),
		DeadLetterPath:  filepath.Join(root, "dl", "deadletter.jsonl"),
		Locale:          "en",
		SchedulerMode:   "auto",
		RegionCount:     2,
		WorkerCount:     2,
		WorkerQueueSize: 16,
		Ledger:          config.LedgerMemory,
	}
}

func resetLogger(t *testing.T) {
	t.Cleanup(func() { logger.InitLoggerWithWriter(logger.DefaultConfig(), &bytes.Buffer{}) })
}

func TestSetupLogger_CreatesSessionFile(t *testing.T) {
	resetLogger(t)
	cfg := testConfig(t)
	var stdout bytes.Buffer
	now := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	f, err := setupLogger(cfg, &stdout, now)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, filepath.Join(cfg.LogDir, "session_2026-03-01_12-30-00.log"), f.Name())
	assert.Contains(t, stdout.String(), LogMsgStartingService)

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), LogMsgLoggingInitialized)
}

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("session_2026-01-%02d_00-00-00.log", i+1)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, LogFileRetentionCount+1)
	_, err = os.Stat(filepath.Join(dir, "session_2026-01-01_00-00-00.log"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "session_2026-01-12_00-00-00.log"))
	assert.NoError(t, err)
}

func TestInitializeEventSystem(t *testing.T) {
	cfg := testConfig(t)

	bus, publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, bus)
	require.NoError(t, RegisterEventHandlers(bus))

	_, err = os.Stat(cfg.DeadLetterPath)
	assert.NoError(t, err)
	require.NoError(t, publisher.Shutdown(context.Background()))
}

func TestInitializeLedger_Memory(t *testing.T) {
	cfg := testConfig(t)

	l, pool, err := InitializeLedger(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, pool)
	assert.IsType(t, &ledger.Memory{}, l)
}

func TestInitializeLedger_UnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Ledger = "redis"

	_, _, err := InitializeLedger(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgUnknownLedger)
}

type regionHost struct{}

func (regionHost) RegionCount() int { return 3 }

func TestInitializePipeline(t *testing.T) {
	cfg := testConfig(t)

	p, err := InitializePipeline(cfg, regionHost{}, ledger.NewMemory(), messaging.NewLogMessenger(), nil)
	require.NoError(t, err)
	assert.Equal(t, scheduler.ModeRegion, p.Scheduler.Mode())
	assert.False(t, p.Plugin.Enabled())

	_, err = os.Stat(cfg.MetricsDir)
	assert.NoError(t, err)

	GracefulShutdown(context.Background(), ShutdownComponents{Pipeline: p})
}

func TestInitializePipeline_Errors(t *testing.T) {
	t.Run("missing config dir", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.ConfigDir = filepath.Join(cfg.ConfigDir, "nope")

		_, err := InitializePipeline(cfg, nil, ledger.NewMemory(), messaging.NewLogMessenger(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgRewardConfigDir)
	})

	t.Run("bad locale", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Locale = "not a locale!"

		_, err := InitializePipeline(cfg, nil, ledger.NewMemory(), messaging.NewLogMessenger(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgInvalidLocale)
	})
}

func TestGracefulShutdown_NilComponents(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}

func TestInitializeStream_ForwardsAndStops(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		bus := event.NewMemoryBus()
		hub := InitializeStream(bus)

		client := hub.Register([]string{string(event.RulesReloaded)})
		require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

		require.NoError(t, bus.Publish(context.Background(), event.NewRulesReloadedEvent(2, 0)))
		select {
		case evt := <-client.EventChannel:
			assert.Equal(t, string(event.RulesReloaded), evt.Type)
		case <-time.After(time.Second):
			t.Fatal("stream did not forward the reload")
		}

		GracefulShutdown(context.Background(), ShutdownComponents{Stream: hub})
	})
}
