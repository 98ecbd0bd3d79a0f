package bootstrap

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/mobmoney/internal/event"
	"github.com/osse101/mobmoney/internal/server"
	"github.com/osse101/mobmoney/internal/sse"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil members are skipped.
type ShutdownComponents struct {
	Stream             *sse.Hub
	Server             *server.Server
	Pipeline           *Pipeline
	ResilientPublisher *event.ResilientPublisher
	DBPool             *pgxpool.Pool
}

// GracefulShutdown stops components in dependency order:
// 1. Outcome stream (open stream responses end so the server can go idle)
// 2. HTTP server (no new death events)
// 3. Plugin (periodic tasks cancelled, in-memory state cleared)
// 4. Scheduler loops, then the worker pool (in-flight commits finish)
// 5. Event publisher (pending outcomes flushed)
// 6. Ledger database pool
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	if c.Stream != nil {
		slog.Info(LogMsgShuttingDownStream)
		c.Stream.Stop()
	}

	if c.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Pipeline != nil {
		slog.Info(LogMsgShuttingDownPipeline)
		c.Pipeline.Plugin.Disable(ctx)
		if err := c.Pipeline.Scheduler.Stop(ctx); err != nil {
			slog.Error(LogMsgSchedulerStopFailed, "error", err)
		}
		c.Pipeline.Pool.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.DBPool != nil {
		c.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
