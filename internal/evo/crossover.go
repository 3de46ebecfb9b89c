package evo

import (
	"math/rand"

	"symreg/internal/expr"
)

// crossoverRetries bounds how often crossover resamples splice points before
// giving up and returning a plain copy of the first parent.
const crossoverRetries = 8

// Crossover builds a child tree equal to a with a uniformly chosen subtree
// replaced by a copy of a uniformly chosen subtree of b. Children deeper than
// maxDepth are rejected and the points resampled.
func Crossover(rng *rand.Rand, a, b expr.Node, maxDepth int) expr.Node {
	donors := expr.CollectNodes(b)

	for try := 0; try < crossoverRetries; try++ {
		child := a.Clone()
		slots := expr.CollectSlots(&child)

		target := slots[rng.Intn(len(slots))]
		donor := donors[rng.Intn(len(donors))]
		*target.Ptr = donor.Clone()

		if child.Depth() <= maxDepth {
			return child
		}
	}
	return a.Clone()
}
