package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/mobmoney/internal/bootstrap"
	"github.com/osse101/mobmoney/internal/command"
	"github.com/osse101/mobmoney/internal/config"
	"github.com/osse101/mobmoney/internal/handler"
	"github.com/osse101/mobmoney/internal/messaging"
	"github.com/osse101/mobmoney/internal/server"
)

func main() {
	initBootLogger()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()
	for _, w := range warnings {
		slog.Warn("Environment warning", "warning", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}
	if err := bootstrap.RegisterEventHandlers(bus); err != nil {
		slog.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	stream := bootstrap.InitializeStream(bus)

	ledger, dbPool, err := bootstrap.InitializeLedger(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize ledger", "error", err)
		os.Exit(1)
	}

	pipeline, err := bootstrap.InitializePipeline(cfg, nil, ledger, messaging.NewLogMessenger(), publisher)
	if err != nil {
		slog.Error("Failed to initialize reward pipeline", "error", err)
		os.Exit(1)
	}
	if err := pipeline.Plugin.Enable(ctx); err != nil {
		slog.Warn("Reward pipeline started without rules, fix the config and reload", "error", err)
	}

	var ledgerDB handler.Pinger
	if dbPool != nil {
		ledgerDB = dbPool
	}
	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Service:        pipeline.Plugin,
		LedgerDB:       ledgerDB,
		Stream:         stream,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	go runConsole(ctx, os.Stdin, command.NewDispatcher(pipeline.Plugin))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Stream:             stream,
		Server:             srv,
		Pipeline:           pipeline,
		ResilientPublisher: publisher,
		DBPool:             dbPool,
	})
}
