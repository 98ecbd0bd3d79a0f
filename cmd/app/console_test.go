package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/mobmoney/internal/admin"
	"github.com/osse101/mobmoney/internal/command"
)

type bufferSender struct {
	lines []string
}

func (b *bufferSender) Name() string              { return "test-console" }
func (b *bufferSender) HasPermission(string) bool { return true }
func (b *bufferSender) SendMessage(text string)   { b.lines = append(b.lines, text) }

func TestRunConsole(t *testing.T) {
	svc := new(admin.MockService)
	svc.On("Reload", mock.Anything).Return(admin.ReloadResult{RuleCount: 2}, nil).Once()
	sender := &bufferSender{}

	in := strings.NewReader("\n/mm reload\nhelp\n")
	runConsoleTo(context.Background(), in, sender, command.NewDispatcher(svc))

	assert.Equal(t, []string{command.MsgReloaded, "unknown command, try: mm"}, sender.lines)
	svc.AssertExpectations(t)
}

func TestRunConsole_StopsOnCancel(t *testing.T) {
	svc := new(admin.MockService)
	sender := &bufferSender{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runConsoleTo(ctx, strings.NewReader("mm reload\n"), sender, command.NewDispatcher(svc))

	assert.Empty(t, sender.lines)
	svc.AssertNotCalled(t, "Reload", mock.Anything)
}
