package scoring

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source supplies uniform values in [0, 1) used for the per-model jitter.
type Source interface {
	Float64() float64
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// NewRandSource returns a seeded source that is safe for concurrent use.
// The same seed always produces the same sequence.
func NewRandSource(seed uint64) Source {
	return &lockedSource{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewSource returns a time seeded source.
func NewSource() Source {
	return NewRandSource(uint64(time.Now().UnixNano()))
}

// Fixed always returns v. Fixed(0.5) removes the jitter entirely.
type Fixed float64

func (f Fixed) Float64() float64 {
	return float64(f)
}

// NoJitter is a source with zero variance.
const NoJitter = Fixed(0.5)
