package reward

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/osse101/mobmoney/internal/domain"
)

// DropSpecError reports a drop count spec that is neither "n" nor "lo-hi".
type DropSpecError struct {
	Spec   string
	Reason string
}

func (e *DropSpecError) Error() string {
	return fmt.Sprintf("%s %q: %s", domain.ErrMsgInvalidDropSpec, e.Spec, e.Reason)
}

func (e *DropSpecError) Unwrap() error {
	return domain.ErrInvalidDropSpec
}

// DropSpec is a parsed drop count: a fixed value when Lo == Hi.
type DropSpec struct {
	Lo int
	Hi int
}

// Fixed reports whether the drop count never varies.
func (d DropSpec) Fixed() bool {
	return d.Lo == d.Hi
}

// ParseDropSpec parses "n" or "lo-hi" (inclusive, lo <= hi, both >= 0).
func ParseDropSpec(spec string) (DropSpec, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return DropSpec{}, &DropSpecError{Spec: spec, Reason: reasonEmpty}
	}

	loStr, hiStr, isRange := strings.Cut(s, rangeSeparator)
	if !isRange {
		n, err := strconv.Atoi(s)
		if err != nil {
			return DropSpec{}, &DropSpecError{Spec: spec, Reason: reasonNotInteger}
		}
		return DropSpec{Lo: n, Hi: n}, nil
	}

	lo, errLo := strconv.Atoi(strings.TrimSpace(loStr))
	hi, errHi := strconv.Atoi(strings.TrimSpace(hiStr))
	if errLo != nil || errHi != nil {
		return DropSpec{}, &DropSpecError{Spec: spec, Reason: reasonBadBounds}
	}
	if lo < 0 || hi < 0 {
		return DropSpec{}, &DropSpecError{Spec: spec, Reason: reasonNegative}
	}
	if lo > hi {
		return DropSpec{}, &DropSpecError{Spec: spec, Reason: reasonInverted}
	}
	return DropSpec{Lo: lo, Hi: hi}, nil
}

// ComputeReward returns the per-drop amount for a rule.
// Fixed ranges return the configured value without drawing.
func ComputeReward(rule domain.MobRewardRule, src Source) (float64, error) {
	if rule.MinReward > rule.MaxReward {
		return 0, fmt.Errorf("%w: %s min=%.2f max=%.2f", domain.ErrInvertedRange, rule.EntityType, rule.MinReward, rule.MaxReward)
	}
	if rule.MinReward == rule.MaxReward {
		return rule.MinReward, nil
	}
	return rule.MinReward + (rule.MaxReward-rule.MinReward)*src.Float64(), nil
}

// ComputeDropCount resolves a drop count spec to a concrete count.
func ComputeDropCount(spec string, src Source) (int, error) {
	parsed, err := ParseDropSpec(spec)
	if err != nil {
		return 0, err
	}
	if parsed.Fixed() {
		return parsed.Lo, nil
	}
	return parsed.Lo + src.IntN(parsed.Hi-parsed.Lo+1), nil
}

// ComputeTotal multiplies the per-drop reward by the drop count.
func ComputeTotal(rule domain.MobRewardRule, src Source) (total float64, drops int, err error) {
	amount, err := ComputeReward(rule, src)
	if err != nil {
		return 0, 0, err
	}
	drops, err = ComputeDropCount(rule.DropCount, src)
	if err != nil {
		return 0, 0, err
	}
	return amount * float64(drops), drops, nil
}

// Roll draws a percentage in [0, 100).
func Roll(src Source) float64 {
	return src.Float64() * percentScale
}
