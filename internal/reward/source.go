package reward

import (
	"math/rand/v2"
	"sync"
)

// Source is the random capability used by reward calculation.
// Implementations must be safe for concurrent use.
type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// IntN returns a value in [0, n). n must be > 0.
	IntN(n int) int
}

// DefaultSource draws from the runtime's goroutine-safe generator.
type DefaultSource struct{}

func (DefaultSource) Float64() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

func (DefaultSource) IntN(n int) int {
	return rand.IntN(n) //nolint:gosec // Game logic randomness, not security critical
}

// SeededSource is a deterministic Source for tests and replays.
type SeededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource creates a deterministic source from two seed words.
func NewSeededSource(seed1, seed2 uint64) *SeededSource {
	return &SeededSource{rng: rand.New(rand.NewPCG(seed1, seed2))} //nolint:gosec // deterministic by intent
}

func (s *SeededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *SeededSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
