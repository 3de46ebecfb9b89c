package evo

import (
	"math/rand"

	"symreg/internal/expr"
)

// MutationConfig controls the single mutation applied to a fresh child tree.
type MutationConfig struct {
	// Rate is the probability that any mutation happens at all.
	Rate float64
	// SubtreeBias splits mutation kinds: below it, subtree replacement;
	// otherwise constant perturbation.
	SubtreeBias float64
	// PerturbStd is the standard deviation of the Gaussian noise added to a
	// constant during point mutation.
	PerturbStd float64
	MaxDepth   int
	Grow       expr.GrowConfig
}

// Mutate returns a new tree. With probability Rate it applies exactly one of:
// subtree replacement at a uniformly chosen position (the replacement is
// grown within the remaining depth budget, so the result never exceeds
// MaxDepth), or Gaussian perturbation of a uniformly chosen node when that
// node is a constant. The input tree is never modified.
func Mutate(rng *rand.Rand, tree expr.Node, cfg MutationConfig) expr.Node {
	if rng.Float64() >= cfg.Rate {
		return tree.Clone()
	}

	child := tree.Clone()
	slots := expr.CollectSlots(&child)
	target := slots[rng.Intn(len(slots))]

	if rng.Float64() < cfg.SubtreeBias {
		grow := cfg.Grow
		grow.MaxDepth = cfg.MaxDepth - target.Depth + 1
		*target.Ptr = expr.Grow(rng, grow)
		return child
	}

	if c, ok := (*target.Ptr).(*expr.Constant); ok {
		*target.Ptr = &expr.Constant{Value: c.Value + rng.NormFloat64()*cfg.PerturbStd}
	}
	return child
}
