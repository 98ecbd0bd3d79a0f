package ledger

// AmountScale is the number of decimal places balances are kept at
const AmountScale int32 = 2

// Log messages
const (
	LogMsgDepositRejected = "Deposit rejected"
	LogMsgDeposited       = "Deposited reward"
)
