package messaging

import (
	"context"

	"github.com/osse101/mobmoney/internal/logger"
)

// Messenger delivers text to a player. Calls are made from the player's owner loop.
type Messenger interface {
	SendChat(ctx context.Context, account, text string) error
	SendTransient(ctx context.Context, account, text string) error
}

// LogMessenger writes player messages to the log for hosts without a chat surface
type LogMessenger struct{}

// NewLogMessenger creates a LogMessenger
func NewLogMessenger() *LogMessenger {
	return &LogMessenger{}
}

// SendChat logs a chat message
func (LogMessenger) SendChat(ctx context.Context, account, text string) error {
	logger.FromContext(ctx).Info(LogMsgChat, "account", account, "text", text)
	return nil
}

// SendTransient logs an action bar message
func (LogMessenger) SendTransient(ctx context.Context, account, text string) error {
	logger.FromContext(ctx).Info(LogMsgTransient, "account", account, "text", text)
	return nil
}
