package ribbon

import (
	"math"
	"math/rand/v2"
	"time"
)

// RandomInRange returns a uniformly distributed value in [min, max).
func RandomInRange(r *rand.Rand, min, max float64) float64 {
	return r.Float64()*(max-min) + min
}

// PickOne returns a random element of seq. The end elements are half as
// likely as the inner ones because the index is rounded from a continuous
// range. seq must not be empty.
func PickOne[T any](r *rand.Rand, seq []T) T {
	index := int(math.Round(RandomInRange(r, 0, float64(len(seq)-1))))
	return seq[index]
}

// NewRand returns a generator seeded from the wall clock.
func NewRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>32|seed<<32))
}
