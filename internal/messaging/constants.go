package messaging

// AmountFormat renders reward amounts
const AmountFormat = "%.2f"

// Log messages
const (
	LogMsgChat      = "Chat message"
	LogMsgTransient = "Action bar message"
)
