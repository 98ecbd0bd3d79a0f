package reward

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/mobmoney/internal/domain"
)

// fixedSource always returns the same draws
type fixedSource struct {
	f     float64
	n     int
	draws int
}

func (s *fixedSource) Float64() float64 {
	s.draws++
	return s.f
}

func (s *fixedSource) IntN(n int) int {
	s.draws++
	if s.n >= n {
		return n - 1
	}
	return s.n
}

func TestComputeReward_FixedRangeNoDraw(t *testing.T) {
	for _, v := range []float64{0, 0.1, 1.0, 2.5, 1234.56} {
		src := &fixedSource{f: 0.999}
		got, err := ComputeReward(domain.MobRewardRule{MinReward: v, MaxReward: v}, src)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Zero(t, src.draws, "fixed range must not draw")
	}
}

func TestComputeReward_WithinBounds(t *testing.T) {
	rule := domain.MobRewardRule{MinReward: 1.5, MaxReward: 4.25}
	src := NewSeededSource(7, 11)

	for i := 0; i < 10000; i++ {
		got, err := ComputeReward(rule, src)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, rule.MinReward)
		assert.LessOrEqual(t, got, rule.MaxReward)
	}
}

func TestComputeReward_Interpolates(t *testing.T) {
	got, err := ComputeReward(domain.MobRewardRule{MinReward: 10, MaxReward: 20}, &fixedSource{f: 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 15.0, got, 1e-9)
}

func TestComputeReward_InvertedRange(t *testing.T) {
	_, err := ComputeReward(domain.MobRewardRule{EntityType: "ZOMBIE", MinReward: 5, MaxReward: 1}, &fixedSource{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvertedRange))
}

func TestComputeDropCount(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		draw    int
		want    int
		wantErr bool
	}{
		{name: "fixed one", spec: "1", want: 1},
		{name: "fixed zero", spec: "0", want: 0},
		{name: "fixed with spaces", spec: " 3 ", want: 3},
		{name: "range low draw", spec: "2-5", draw: 0, want: 2},
		{name: "range high draw", spec: "2-5", draw: 3, want: 5},
		{name: "degenerate range", spec: "4-4", want: 4},
		{name: "inverted range", spec: "5-2", wantErr: true},
		{name: "garbage", spec: "lots", wantErr: true},
		{name: "empty", spec: "", wantErr: true},
		{name: "half range", spec: "3-", wantErr: true},
		{name: "negative", spec: "-3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeDropCount(tt.spec, &fixedSource{n: tt.draw})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidDropSpec))
				var specErr *DropSpecError
				assert.True(t, errors.As(err, &specErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeDropCount_RangeBounds(t *testing.T) {
	src := NewSeededSource(1, 2)
	seen := map[int]bool{}
	for i := 0; i < 5000; i++ {
		got, err := ComputeDropCount("1-3", src)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 1)
		assert.LessOrEqual(t, got, 3)
		seen[got] = true
	}
	assert.Len(t, seen, 3, "every value in the inclusive range should appear")
}

func TestComputeTotal(t *testing.T) {
	rule := domain.MobRewardRule{MinReward: 1.0, MaxReward: 1.0, DropCount: "2"}
	total, drops, err := ComputeTotal(rule, &fixedSource{})
	require.NoError(t, err)
	assert.Equal(t, 2, drops)
	assert.Equal(t, 2.0, total)
}

func TestRoll(t *testing.T) {
	assert.InDelta(t, 42.0, Roll(&fixedSource{f: 0.42}), 1e-9)
}
