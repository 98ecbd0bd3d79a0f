package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// DepositResult is the ledger's answer to a deposit
type DepositResult struct {
	Success bool
	Balance decimal.Decimal
}

// Ledger credits currency to player accounts.
// Deposits are only ever issued from the owner loop of the receiving player.
type Ledger interface {
	Deposit(ctx context.Context, account string, amount float64) (DepositResult, error)
}

// Amount converts a computed reward to the ledger's fixed-point representation
func Amount(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(AmountScale)
}
