package messaging

import (
	"context"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/mobmoney/internal/domain"
)

// Formatter renders reward messages from the configured templates
type Formatter struct {
	printer *message.Printer
}

// NewFormatter creates a formatter rendering amounts for tag
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Amount renders a reward amount with two decimals and digit grouping
func (f *Formatter) Amount(amount float64) string {
	return f.printer.Sprintf(AmountFormat, amount)
}

// Render substitutes the mob and amount placeholders in template
func (f *Formatter) Render(template, mob string, amount float64) string {
	return strings.NewReplacer(
		domain.PlaceholderMob, mob,
		domain.PlaceholderAmount, f.Amount(amount),
	).Replace(template)
}

// Deliver sends the reward message using the mode selected in settings:
// the action bar template when enabled, otherwise the chat template.
// An empty template sends nothing.
func (f *Formatter) Deliver(ctx context.Context, m Messenger, s domain.Settings, account, mob string, amount float64) error {
	if s.ActionBar.Enabled {
		if s.ActionBar.Message == "" {
			return nil
		}
		return m.SendTransient(ctx, account, f.Render(s.ActionBar.Message, mob, amount))
	}
	if s.ChatMessage == "" {
		return nil
	}
	return m.SendChat(ctx, account, f.Render(s.ChatMessage, mob, amount))
}
