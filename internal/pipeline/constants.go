package pipeline

// Log messages
const (
	LogMsgEventSkipped    = "Mob death skipped"
	LogMsgRewardGranted   = "Mob reward granted"
	LogMsgDepositFailed   = "Failed to deposit mob reward"
	LogMsgMessageFailed   = "Failed to send reward message"
	LogMsgMessagePanicked = "Reward message delivery panicked"
	LogMsgPanicRecovered  = "Recovered from panic while processing mob death"
)
