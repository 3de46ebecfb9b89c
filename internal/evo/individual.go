package evo

import "symreg/internal/expr"

// Individual pairs a candidate tree with its cached score. The cache is
// filled once per tree; clones carry it so elites are never rescored.
type Individual struct {
	Tree expr.Node

	fitness float64
	scored  bool
}

func NewIndividual(tree expr.Node) *Individual {
	return &Individual{Tree: tree}
}

// Fitness returns the cached score; 0 when not yet scored.
func (ind *Individual) Fitness() float64 {
	return ind.fitness
}

func (ind *Individual) Scored() bool {
	return ind.scored
}

func (ind *Individual) Clone() *Individual {
	return &Individual{
		Tree:    ind.Tree.Clone(),
		fitness: ind.fitness,
		scored:  ind.scored,
	}
}

func (ind *Individual) ensureScored(data *Dataset) {
	if ind.scored {
		return
	}
	ind.fitness = Score(ind.Tree, data)
	ind.scored = true
}
