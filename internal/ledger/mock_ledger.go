package ledger

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockLedger is a mock implementation of the Ledger interface
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Deposit(ctx context.Context, account string, amount float64) (DepositResult, error) {
	args := m.Called(ctx, account, amount)
	return args.Get(0).(DepositResult), args.Error(1)
}
