package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/osse101/mobmoney/internal/domain"
	"github.com/osse101/mobmoney/internal/ledger"
	"github.com/osse101/mobmoney/internal/reward"
)

// Admitter is the dedup gate
type Admitter interface {
	TryAdmit(id uuid.UUID) bool
}

// RuleSet looks up the reward rule for an entity type
type RuleSet interface {
	Rule(entityType string) (domain.MobRewardRule, bool)
}

// Admit runs Received → Admitted → Eligible. It touches nothing but the gate
// and the random source.
func Admit(gate Admitter, rules RuleSet, ev domain.DeathEvent, src reward.Source) Outcome {
	if ev.EntityID == uuid.Nil || ev.EntityType == "" {
		return skip(StateReceived, ReasonInvalid, domain.ErrInvalidInput)
	}
	if !gate.TryAdmit(ev.EntityID) {
		return skip(StateReceived, ReasonDuplicate, nil)
	}

	rule, ok := rules.Rule(ev.EntityType)
	if !ok {
		return skip(StateAdmitted, ReasonNoRule, nil)
	}
	if !rule.Enabled {
		return skip(StateAdmitted, ReasonDisabled, nil)
	}
	if rule.KillerRequired && !ev.HasKiller() {
		return skip(StateAdmitted, ReasonNoKiller, nil)
	}
	if rule.DropChance <= 0 || reward.Roll(src) > rule.DropChance {
		return skip(StateAdmitted, ReasonChance, nil)
	}
	if !ev.HasKiller() {
		return skip(StateAdmitted, ReasonNoRecipient, nil)
	}

	return Outcome{State: StateEligible, Rule: rule}
}

// Compute runs Eligible → Computed for an admitted rule
func Compute(rule domain.MobRewardRule, src reward.Source) Outcome {
	total, drops, err := reward.ComputeTotal(rule, src)
	if err != nil {
		out := skip(StateEligible, ReasonMisconfigured, err)
		out.Rule = rule
		return out
	}
	// The ledger keeps AmountScale places; anything that rounds to zero pays nothing.
	if !ledger.Amount(total).IsPositive() {
		out := skip(StateEligible, ReasonZeroReward, nil)
		out.Rule = rule
		return out
	}
	return Outcome{State: StateComputed, Rule: rule, Amount: total, Drops: drops}
}

// Expired reports whether now is past the dispatch deadline
func Expired(deadline, now time.Time) bool {
	return now.After(deadline)
}
