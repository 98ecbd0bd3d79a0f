package postgres

// Error Messages - Ledger Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToUpdateBalance     = "failed to update balance"
	ErrMsgFailedToRecordDeposit     = "failed to record deposit"
	ErrMsgFailedToReadBalance       = "failed to read balance"
	ErrMsgFailedToParseBalance      = "failed to parse balance"
)

// Log Messages
const (
	LogMsgRollbackFailed = "Failed to rollback transaction"
)
