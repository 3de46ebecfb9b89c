package evo

import (
	"math/rand"
	"testing"

	"symreg/internal/expr"
)

func growConfigForTests() expr.GrowConfig {
	return expr.GrowConfig{
		MaxDepth:  6,
		ConstProb: 0.5,
		ConstMin:  -5,
		ConstMax:  5,
		Unary:     []expr.UnaryOp{expr.OpNeg, expr.OpSin, expr.OpCos, expr.OpLog},
		Binary:    []expr.BinaryOp{expr.OpAdd, expr.OpSub, expr.OpMul, expr.OpDiv, expr.OpPow},
	}
}

func TestCrossoverRespectsMaxDepth(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	cfg := growConfigForTests()
	const maxDepth = 6

	for i := 0; i < 300; i++ {
		a := expr.Grow(rng, cfg)
		b := expr.Grow(rng, cfg)
		child := Crossover(rng, a, b, maxDepth)
		if d := child.Depth(); d > maxDepth {
			t.Fatalf("child %d has depth %d, max %d", i, d, maxDepth)
		}
	}
}

func TestCrossoverDoesNotModifyParents(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	cfg := growConfigForTests()

	a := expr.Grow(rng, cfg)
	b := expr.Grow(rng, cfg)
	aBefore, bBefore := a.String(), b.String()

	for i := 0; i < 50; i++ {
		_ = Crossover(rng, a, b, 6)
	}
	if a.String() != aBefore || b.String() != bBefore {
		t.Fatal("crossover modified a parent tree")
	}
}

func TestCrossoverLeafParents(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := expr.Node(&expr.Variable{})
	b := expr.Node(&expr.Constant{Value: 4})

	child := Crossover(rng, a, b, 6)
	s := child.String()
	if s != "x" && s != "4" {
		t.Fatalf("child of two leaves rendered %q", s)
	}
}

func TestCrossoverFallsBackToParentCopy(t *testing.T) {
	rng := rand.New(rand.NewSource(17))

	// With maxDepth 1 every splice of a non-leaf donor is rejected, so the
	// result is either a leaf donor or the fallback copy of the first
	// parent. Both have depth 1.
	a := expr.Node(&expr.Variable{})
	deep := expr.Node(&expr.Binary{
		Op:    expr.OpAdd,
		Left:  &expr.Binary{Op: expr.OpMul, Left: &expr.Variable{}, Right: &expr.Variable{}},
		Right: &expr.Variable{},
	})

	for i := 0; i < 100; i++ {
		child := Crossover(rng, a, deep, 1)
		if child.Depth() != 1 {
			t.Fatalf("child depth = %d, want 1", child.Depth())
		}
	}
}
