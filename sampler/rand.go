package sampler

import (
	"math"
	"math/rand"
)

// weightedIndex picks an index from a weight list that sums to 1.
// The clamp covers floating-point shortfall at the top of the cumulative scan.
func weightedIndex(rng *rand.Rand, weights []float64) int {
	x := rng.Float64()
	var cum float64
	for i, w := range weights {
		cum += w
		if x < cum {
			return i
		}
	}
	return len(weights) - 1
}

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// uniformInt draws an integer from [lo, hi).
func uniformInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo)
}

// round2 rounds a monetary amount to 2 decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
