package pipeline

import "github.com/osse101/mobmoney/internal/domain"

// State is a position in the reward state machine
type State string

// States in the order a rewarded death passes through them
const (
	StateReceived       State = "received"
	StateAdmitted       State = "admitted"
	StateEligible       State = "eligible"
	StateComputed       State = "computed"
	StateAwaitingCommit State = "awaiting_commit"
	StateCommitted      State = "committed"
)

// Reason explains why a death ended without a deposit
type Reason string

// Skip reasons
const (
	ReasonNone          Reason = ""
	ReasonInvalid       Reason = "invalid"
	ReasonDuplicate     Reason = "duplicate"
	ReasonNoRule        Reason = "no_rule"
	ReasonDisabled      Reason = "disabled"
	ReasonNoKiller      Reason = "no_killer"
	ReasonChance        Reason = "chance"
	ReasonNoRecipient   Reason = "no_recipient"
	ReasonZeroReward    Reason = "zero_reward"
	ReasonMisconfigured Reason = "misconfigured"
	ReasonTimeout       Reason = "timeout"
	ReasonOverloaded    Reason = "overloaded"
	ReasonShutdown      Reason = "shutdown"
	ReasonLedgerFailed  Reason = "ledger_failed"
	ReasonPanic         Reason = "panic"
)

// Outcome is the result of running one step of the state machine.
// A non-empty Reason means the event was skipped while in State.
type Outcome struct {
	State  State
	Reason Reason
	Rule   domain.MobRewardRule
	Amount float64
	Drops  int
	Err    error
}

// Skipped reports whether the event left the machine without a deposit
func (o Outcome) Skipped() bool {
	return o.Reason != ReasonNone
}

// Warn reports whether the skip is a problem an operator should see.
// Expected filtering (duplicates, chance, disabled rules) is not.
func (o Outcome) Warn() bool {
	switch o.Reason {
	case ReasonMisconfigured, ReasonTimeout, ReasonOverloaded, ReasonShutdown, ReasonLedgerFailed, ReasonPanic:
		return true
	}
	return false
}

func skip(state State, reason Reason, err error) Outcome {
	return Outcome{State: state, Reason: reason, Err: err}
}
