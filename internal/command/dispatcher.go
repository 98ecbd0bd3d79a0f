package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/mobmoney/internal/admin"
	"github.com/osse101/mobmoney/internal/domain"
	"github.com/osse101/mobmoney/internal/logger"
)

// Sender is whoever typed the command: a player or the console
type Sender interface {
	Name() string
	HasPermission(permission string) bool
	SendMessage(text string)
}

// Dispatcher executes the mm command against the admin service
type Dispatcher struct {
	svc admin.Service
}

// NewDispatcher creates a Dispatcher
func NewDispatcher(svc admin.Service) *Dispatcher {
	return &Dispatcher{svc: svc}
}

// Execute runs the command. Unknown or missing subcommands show help.
// Failures are reported to the sender as a fixed line; details go to the log.
func (d *Dispatcher) Execute(ctx context.Context, sender Sender, args []string) {
	if len(args) == 0 {
		d.sendAll(sender, helpLines())
		return
	}

	switch strings.ToLower(args[0]) {
	case CmdReload:
		if !d.allowed(ctx, sender, PermissionReload) {
			return
		}
		d.reload(ctx, sender)
	case CmdMetrics:
		if !d.allowed(ctx, sender, PermissionMetrics) {
			return
		}
		d.metrics(ctx, sender, args[1:])
	default:
		d.sendAll(sender, helpLines())
	}
}

func (d *Dispatcher) allowed(ctx context.Context, sender Sender, permission string) bool {
	if sender.HasPermission(permission) {
		return true
	}
	logger.FromContext(ctx).Info(LogMsgCommandDenied, "sender", sender.Name(), "permission", permission)
	sender.SendMessage(MsgNoPermission)
	return false
}

func (d *Dispatcher) reload(ctx context.Context, sender Sender) {
	res, err := d.svc.Reload(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgReloadFailed, "sender", sender.Name(), "error", err)
		sender.SendMessage(MsgReloadFailed)
		return
	}
	logger.FromContext(ctx).Info(LogMsgCommandExecuted,
		"sender", sender.Name(),
		"command", CmdReload,
		"rules", res.RuleCount)
	sender.SendMessage(MsgReloaded)
}

func (d *Dispatcher) metrics(ctx context.Context, sender Sender, args []string) {
	if !d.svc.MetricsEnabled() {
		sender.SendMessage(MsgMetricsDisabled)
		return
	}
	if len(args) == 0 {
		d.sendAll(sender, metricsHelpLines())
		return
	}

	switch strings.ToLower(args[0]) {
	case SubCmdRecord:
		if _, err := d.svc.Record(ctx); err != nil {
			if errors.Is(err, domain.ErrMetricsDisabled) {
				sender.SendMessage(MsgMetricsDisabled)
				return
			}
			logger.FromContext(ctx).Error(LogMsgRecordFailed, "sender", sender.Name(), "error", err)
			sender.SendMessage(MsgMetricsFailed)
			return
		}
		sender.SendMessage(MsgMetricsRecorded)
	case SubCmdStatus:
		status, err := d.svc.Status(ctx)
		if err != nil {
			sender.SendMessage(MsgMetricsDisabled)
			return
		}
		d.sendAll(sender, statusLines(status))
	default:
		d.sendAll(sender, metricsHelpLines())
	}
}

// Complete returns the completions for the last argument, filtered by the
// sender's permissions and a case-insensitive prefix match.
func (d *Dispatcher) Complete(sender Sender, args []string) []string {
	if len(args) == 0 {
		return nil
	}

	var candidates []string
	switch len(args) {
	case 1:
		if sender.HasPermission(PermissionReload) {
			candidates = append(candidates, CmdReload)
		}
		if sender.HasPermission(PermissionMetrics) {
			candidates = append(candidates, CmdMetrics)
		}
	case 2:
		if strings.EqualFold(args[0], CmdMetrics) && sender.HasPermission(PermissionMetrics) {
			candidates = append(candidates, SubCmdRecord, SubCmdStatus)
		}
	}

	prefix := strings.ToLower(args[len(args)-1])
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (d *Dispatcher) sendAll(sender Sender, lines []string) {
	for _, l := range lines {
		sender.SendMessage(l)
	}
}

func helpLines() []string {
	return []string{
		"========== [ MobMoney ] ==========",
		fmt.Sprintf("/%s %s - reload the configuration files", Label, CmdReload),
		fmt.Sprintf("/%s %s - performance metrics commands", Label, CmdMetrics),
		"==================================",
	}
}

func metricsHelpLines() []string {
	return []string{
		"========== [ Metrics ] ==========",
		fmt.Sprintf("/%s %s %s - record current performance now", Label, CmdMetrics, SubCmdRecord),
		fmt.Sprintf("/%s %s %s - show current performance", Label, CmdMetrics, SubCmdStatus),
		"=================================",
	}
}

func statusLines(s domain.MetricsStatus) []string {
	return []string{
		"========== [ Metrics ] ==========",
		fmt.Sprintf("Processed entities: %d", s.Throughput.ProcessedCount),
		fmt.Sprintf("Processing rate: %.2f/s", s.Throughput.RatePerSecond),
		fmt.Sprintf("Configured mobs: %d", s.Throughput.RuleCount),
		fmt.Sprintf("Recent entities: %d", s.Throughput.DedupSetSize),
		fmt.Sprintf("MSPT impact: +%.3f", s.Performance.MeanMillis),
		fmt.Sprintf("TPS impact: -%.3f", s.Performance.TickImpact),
		"=================================",
	}
}
