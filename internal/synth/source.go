// Package synth holds the per-metric generators that produce synthetic wearable records.
// Every generator draws from an explicitly passed *Source, so a run seeded once is
// reproducible and independent runs never share random state.
package synth

import (
	"math"
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

// pcgStream is the fixed PCG stream selector; only the seed varies between runs.
const pcgStream = 0x9e3779b97f4a7c15

// Source is the random state of one generation run. It is not safe for concurrent use;
// parallel runs each take their own Source.
type Source struct {
	seed int64
	rng  *rand.Rand
}

// NewSource returns a Source seeded with seed.
func NewSource(seed int64) *Source {
	return &Source{
		seed: seed,
		rng:  rand.New(rand.NewPCG(uint64(seed), pcgStream)),
	}
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Fresh returns a new Source at the initial state of the same seed.
func (s *Source) Fresh() *Source {
	return NewSource(s.seed)
}

// IntRange returns a uniform integer in [lo, hi). It returns lo when hi <= lo.
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.IntN(hi-lo)
}

// IntN returns a uniform integer in [0, n). It returns 0 when n <= 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.IntN(n)
}

// Float64 returns a uniform float in [0, 1).
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// Uniform returns a uniform float between lo and hi. Inverted bounds are allowed and
// yield a value between hi and lo.
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}

// Normal returns a gaussian sample with the given mean and standard deviation.
func (s *Source) Normal(mean, std float64) float64 {
	return mean + std*s.rng.NormFloat64()
}

// Choice returns a uniformly chosen element of options.
func Choice[T any](s *Source, options []T) T {
	return options[s.IntN(len(options))]
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round rounds v half away from zero to places decimals, the precision the vendor reports.
func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
