package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/osse101/mobmoney/internal/ledger"
	"github.com/osse101/mobmoney/internal/logger"
)

const (
	upsertBalanceSQL = `
INSERT INTO mob_reward_balances (account, balance, updated_at)
VALUES ($1, $2::numeric, NOW())
ON CONFLICT (account) DO UPDATE
SET balance = mob_reward_balances.balance + EXCLUDED.balance,
    updated_at = NOW()
RETURNING balance::text`

	insertDepositSQL = `
INSERT INTO mob_reward_deposits (account, amount)
VALUES ($1, $2::numeric)`

	selectBalanceSQL = `
SELECT balance::text FROM mob_reward_balances WHERE account = $1`
)

// Ledger is a PostgreSQL-backed ledger.Ledger
type Ledger struct {
	db *pgxpool.Pool
}

// NewLedger creates a new Ledger
func NewLedger(db *pgxpool.Pool) *Ledger {
	return &Ledger{db: db}
}

// Deposit credits amount to account and records the deposit row in one transaction
func (l *Ledger) Deposit(ctx context.Context, account string, amount float64) (ledger.DepositResult, error) {
	value := ledger.Amount(amount)
	if account == "" || !value.IsPositive() {
		logger.FromContext(ctx).Warn(ledger.LogMsgDepositRejected, "account", account, "amount", amount)
		return ledger.DepositResult{Success: false}, nil
	}

	tx, err := l.db.Begin(ctx)
	if err != nil {
		return ledger.DepositResult{}, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	var raw string
	if err := tx.QueryRow(ctx, upsertBalanceSQL, account, value.String()).Scan(&raw); err != nil {
		return ledger.DepositResult{}, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBalance, err)
	}
	if _, err := tx.Exec(ctx, insertDepositSQL, account, value.String()); err != nil {
		return ledger.DepositResult{}, fmt.Errorf("%s: %w", ErrMsgFailedToRecordDeposit, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return ledger.DepositResult{}, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}

	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return ledger.DepositResult{}, fmt.Errorf("%s: %w", ErrMsgFailedToParseBalance, err)
	}
	return ledger.DepositResult{Success: true, Balance: balance}, nil
}

// Balance returns the stored balance of account, zero when it has none
func (l *Ledger) Balance(ctx context.Context, account string) (decimal.Decimal, error) {
	var raw string
	err := l.db.QueryRow(ctx, selectBalanceSQL, account).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToReadBalance, err)
	}
	return decimal.NewFromString(raw)
}

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
	}
}
