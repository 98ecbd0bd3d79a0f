package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/osse101/mobmoney/internal/command"
)

// consoleSender is the operator at the process's stdin. It holds every
// permission.
type consoleSender struct {
	out io.Writer
}

func (consoleSender) Name() string { return "console" }

func (consoleSender) HasPermission(string) bool { return true }

func (c consoleSender) SendMessage(text string) {
	fmt.Fprintln(c.out, text)
}

// runConsole reads "mm <args>" lines from in until ctx ends or in closes
func runConsole(ctx context.Context, in io.Reader, d *command.Dispatcher) {
	runConsoleTo(ctx, in, consoleSender{out: slogWriter{}}, d)
}

func runConsoleTo(ctx context.Context, in io.Reader, sender command.Sender, d *command.Dispatcher) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if strings.TrimPrefix(fields[0], "/") != command.Label {
			sender.SendMessage("unknown command, try: " + command.Label)
			continue
		}
		d.Execute(ctx, sender, fields[1:])
	}
}

// slogWriter sends console replies through the default logger so they land
// in the session file too
type slogWriter struct{}

func (slogWriter) Write(p []byte) (int, error) {
	slog.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
