package analytics

import (
	"math/rand"
	"sync"
	"time"
)

// Sampler yields values in [0, 1) used to synthesize placeholder trend data.
// It is injectable so tests can pin the output.
type Sampler interface {
	Sample() float64
}

type randSampler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandSampler() Sampler {
	return &randSampler{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *randSampler) Sample() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// FixedSampler always yields the same value; the midpoint 0.5 makes trend
// values equal their baseline.
type FixedSampler float64

func (s FixedSampler) Sample() float64 { return float64(s) }
