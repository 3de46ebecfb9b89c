package evo

import (
	"math"

	"symreg/internal/expr"
)

// nonFinitePenalty stands in for a squared error that overflowed. Keeping the
// penalty finite keeps every score totally ordered under <.
const nonFinitePenalty = 1e30

// Score computes the mean squared error of tree over data. Lower is better.
// Protected evaluation keeps node outputs finite, but the squared error can
// still overflow; such samples contribute the fixed penalty instead.
func Score(tree expr.Node, data *Dataset) float64 {
	total := 0.0
	for i := 0; i < data.Len(); i++ {
		x, y := data.At(i)
		diff := tree.Eval(x) - y
		se := diff * diff
		if math.IsInf(se, 0) || math.IsNaN(se) {
			se = nonFinitePenalty
		}
		total += se
	}
	return total / float64(data.Len())
}
