package expr

import (
	"math"
	"math/rand"
	"testing"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		name string
		tree Node
		want string
	}{
		{
			"constant folding",
			&Binary{Op: OpAdd, Left: &Constant{Value: 2}, Right: &Constant{Value: 3}},
			"5",
		},
		{
			"nested folding",
			&Binary{
				Op:    OpMul,
				Left:  &Binary{Op: OpAdd, Left: &Constant{Value: 1}, Right: &Constant{Value: 1}},
				Right: &Constant{Value: 4},
			},
			"8",
		},
		{
			"unary folding",
			&Unary{Op: OpCos, Child: &Constant{Value: 0}},
			"1",
		},
		{
			"add zero",
			&Binary{Op: OpAdd, Left: &Variable{}, Right: &Constant{Value: 0}},
			"x",
		},
		{
			"zero add",
			&Binary{Op: OpAdd, Left: &Constant{Value: 0}, Right: &Variable{}},
			"x",
		},
		{
			"sub zero",
			&Binary{Op: OpSub, Left: &Variable{}, Right: &Constant{Value: 0}},
			"x",
		},
		{
			"mul one",
			&Binary{Op: OpMul, Left: &Variable{}, Right: &Constant{Value: 1}},
			"x",
		},
		{
			"mul zero",
			&Binary{Op: OpMul, Left: &Unary{Op: OpSin, Child: &Variable{}}, Right: &Constant{Value: 0}},
			"0",
		},
		{
			"div one",
			&Binary{Op: OpDiv, Left: &Variable{}, Right: &Constant{Value: 1}},
			"x",
		},
		{
			"pow one",
			&Binary{Op: OpPow, Left: &Variable{}, Right: &Constant{Value: 1}},
			"x",
		},
		{
			"pow zero",
			&Binary{Op: OpPow, Left: &Variable{}, Right: &Constant{Value: 0}},
			"1",
		},
		{
			"double negation",
			&Unary{Op: OpNeg, Child: &Unary{Op: OpNeg, Child: &Variable{}}},
			"x",
		},
		{
			"irreducible",
			&Binary{Op: OpMul, Left: &Variable{}, Right: &Variable{}},
			"(x * x)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Simplify(tt.tree).String()
			if got != tt.want {
				t.Fatalf("Simplify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSimplifyPreservesEvaluation(t *testing.T) {
	rng := rand.New(rand.NewSource(77))
	cfg := GrowConfig{
		MaxDepth:  6,
		ConstProb: 0.5,
		ConstMin:  -5,
		ConstMax:  5,
		Unary:     []UnaryOp{OpNeg, OpSin, OpCos, OpLog},
		Binary:    []BinaryOp{OpAdd, OpSub, OpMul, OpDiv, OpPow},
	}

	for i := 0; i < 100; i++ {
		tree := Grow(rng, cfg)
		reduced := Simplify(tree)
		for _, x := range []float64{-2, -0.5, 0, 0.5, 2} {
			a := tree.Eval(x)
			b := reduced.Eval(x)
			if math.Abs(a-b) > 1e-9 {
				t.Fatalf("tree %d: Eval(%g) changed from %g to %g\n%s -> %s",
					i, x, a, b, tree, reduced)
			}
		}
	}
}

func TestSimplifyDoesNotModifyInput(t *testing.T) {
	tree := &Binary{Op: OpAdd, Left: &Variable{}, Right: &Constant{Value: 0}}
	before := tree.String()
	_ = Simplify(tree)
	if tree.String() != before {
		t.Fatalf("input changed from %q to %q", before, tree.String())
	}
}
