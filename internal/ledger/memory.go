package ledger

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/osse101/mobmoney/internal/logger"
)

// Memory is an in-process ledger for hosts without an economy backend
type Memory struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
}

// NewMemory creates an empty in-memory ledger
func NewMemory() *Memory {
	return &Memory{balances: make(map[string]decimal.Decimal)}
}

// Deposit credits amount to account. Non-positive amounts are rejected.
func (m *Memory) Deposit(ctx context.Context, account string, amount float64) (DepositResult, error) {
	value := Amount(amount)
	if account == "" || !value.IsPositive() {
		logger.FromContext(ctx).Warn(LogMsgDepositRejected, "account", account, "amount", amount)
		return DepositResult{Success: false}, nil
	}

	m.mu.Lock()
	balance := m.balances[account].Add(value)
	m.balances[account] = balance
	m.mu.Unlock()

	if logger.DebugEnabled() {
		logger.FromContext(ctx).Debug(LogMsgDeposited, "account", account, "amount", value.String(), "balance", balance.String())
	}
	return DepositResult{Success: true, Balance: balance}, nil
}

// Balance returns the current balance of account
func (m *Memory) Balance(account string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[account]
}

// Accounts returns the number of accounts holding a balance
func (m *Memory) Accounts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.balances)
}
