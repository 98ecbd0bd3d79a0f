package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/mobmoney/internal/config"
	"github.com/osse101/mobmoney/internal/database"
	"github.com/osse101/mobmoney/internal/database/postgres"
	"github.com/osse101/mobmoney/internal/ledger"
)

// InitializeLedger builds the ledger backend selected by cfg. For Postgres it
// connects, applies the embedded migrations and returns the pool, which the
// caller must close. The in-memory ledger returns a nil pool.
func InitializeLedger(ctx context.Context, cfg *config.Config) (ledger.Ledger, *pgxpool.Pool, error) {
	if !cfg.UsePostgres() {
		if cfg.Ledger != config.LedgerMemory {
			return nil, nil, fmt.Errorf("%s: %q", ErrMsgUnknownLedger, cfg.Ledger)
		}
		slog.Info(LogMsgLedgerInitialized, "backend", config.LedgerMemory)
		return ledger.NewMemory(), nil, nil
	}

	slog.Info(LogMsgConnectingDatabase, "host", cfg.DBHost, "db", cfg.DBName)
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdle, cfg.DBMaxLife)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}

	slog.Info(LogMsgLedgerInitialized, "backend", config.LedgerPostgres)
	return postgres.NewLedger(pool), pool, nil
}
