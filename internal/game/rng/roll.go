package rng

// Chance rolls once against probability p and reports success.
// p <= 0 never succeeds; p >= 1 always succeeds, without consuming a draw
// in either degenerate case.
//
// Precondition: src must be non-nil.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// Variance returns a multiplier drawn uniformly from [1-spread, 1+spread].
//
// Precondition: src must be non-nil; spread must be in [0, 1).
func Variance(src Source, spread float64) float64 {
	if spread < 0 || spread >= 1 {
		panic("rng: Variance called with spread outside [0, 1)")
	}
	return 1 - spread + src.Float64()*2*spread
}

// WeightedIndex selects an index from weights with probability proportional
// to each weight. Non-positive weights are treated as zero.
//
// Precondition: src must be non-nil; weights must contain at least one
// positive entry. Panics with "rng: WeightedIndex called with no positive
// weights" otherwise.
func WeightedIndex(src Source, weights []float64) int {
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		panic("rng: WeightedIndex called with no positive weights")
	}
	roll := src.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		roll -= w
		if roll < 0 {
			return i
		}
	}
	// Float accumulation can leave roll at exactly zero after the last
	// positive weight; fall back to the final positive entry.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return 0
}

// IntBetween returns a uniform int in [min, max] inclusive.
//
// Precondition: src must be non-nil; min <= max.
func IntBetween(src Source, min, max int) int {
	if min > max {
		panic("rng: IntBetween called with min > max")
	}
	if min == max {
		return min
	}
	return min + src.Intn(max-min+1)
}
