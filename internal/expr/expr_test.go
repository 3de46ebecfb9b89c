package expr

import (
	"math"
	"testing"
)

func TestEvalBasicOperations(t *testing.T) {
	tests := []struct {
		name string
		tree Node
		x    float64
		want float64
	}{
		{"constant", &Constant{Value: 3.5}, 0, 3.5},
		{"variable", &Variable{}, 2.25, 2.25},
		{"add", &Binary{Op: OpAdd, Left: &Variable{}, Right: &Constant{Value: 1}}, 2, 3},
		{"sub", &Binary{Op: OpSub, Left: &Variable{}, Right: &Constant{Value: 1}}, 2, 1},
		{"mul", &Binary{Op: OpMul, Left: &Variable{}, Right: &Variable{}}, 3, 9},
		{"div", &Binary{Op: OpDiv, Left: &Constant{Value: 6}, Right: &Constant{Value: 2}}, 0, 3},
		{"pow", &Binary{Op: OpPow, Left: &Variable{}, Right: &Constant{Value: 3}}, 2, 8},
		{"neg", &Unary{Op: OpNeg, Child: &Variable{}}, 4, -4},
		{"sin", &Unary{Op: OpSin, Child: &Constant{Value: 0}}, 0, 0},
		{"cos", &Unary{Op: OpCos, Child: &Constant{Value: 0}}, 0, 1},
		{"log", &Unary{Op: OpLog, Child: &Constant{Value: math.E}}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tree.Eval(tt.x)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("Eval(%g) = %g, want %g", tt.x, got, tt.want)
			}
		})
	}
}

func TestEvalProtectedCases(t *testing.T) {
	tests := []struct {
		name string
		tree Node
		x    float64
		want float64
	}{
		{
			"division by zero yields one",
			&Binary{Op: OpDiv, Left: &Variable{}, Right: &Constant{Value: 0}},
			5, 1,
		},
		{
			"log of zero yields zero",
			&Unary{Op: OpLog, Child: &Constant{Value: 0}},
			0, 0,
		},
		{
			"log of negative yields zero",
			&Unary{Op: OpLog, Child: &Constant{Value: -2}},
			0, 0,
		},
		{
			"pow domain error yields zero",
			&Binary{Op: OpPow, Left: &Constant{Value: -1}, Right: &Constant{Value: 0.5}},
			0, 0,
		},
		{
			"multiplicative overflow yields zero",
			&Binary{Op: OpMul, Left: &Constant{Value: math.MaxFloat64}, Right: &Constant{Value: 2}},
			0, 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tree.Eval(tt.x)
			if got != tt.want {
				t.Fatalf("Eval(%g) = %g, want %g", tt.x, got, tt.want)
			}
		})
	}
}

func TestEvalAlwaysFinite(t *testing.T) {
	// Nested irregularities must clamp at every level, never escape.
	tree := &Binary{
		Op: OpAdd,
		Left: &Binary{
			Op:    OpPow,
			Left:  &Variable{},
			Right: &Constant{Value: 1000},
		},
		Right: &Unary{Op: OpLog, Child: &Constant{Value: -1}},
	}
	for _, x := range []float64{-100, -1, 0, 1, 100, 1e10} {
		got := tree.Eval(x)
		if math.IsInf(got, 0) || math.IsNaN(got) {
			t.Fatalf("Eval(%g) = %g, want finite", x, got)
		}
	}
}

func TestSizeAndDepth(t *testing.T) {
	tests := []struct {
		name      string
		tree      Node
		wantSize  int
		wantDepth int
	}{
		{"leaf", &Constant{Value: 1}, 1, 1},
		{"unary", &Unary{Op: OpNeg, Child: &Variable{}}, 2, 2},
		{
			"binary over leaves",
			&Binary{Op: OpAdd, Left: &Variable{}, Right: &Constant{Value: 2}},
			3, 2,
		},
		{
			"unbalanced",
			&Binary{
				Op:    OpMul,
				Left:  &Unary{Op: OpSin, Child: &Unary{Op: OpNeg, Child: &Variable{}}},
				Right: &Constant{Value: 1},
			},
			5, 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tree.Size(); got != tt.wantSize {
				t.Fatalf("Size() = %d, want %d", got, tt.wantSize)
			}
			if got := tt.tree.Depth(); got != tt.wantDepth {
				t.Fatalf("Depth() = %d, want %d", got, tt.wantDepth)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		tree Node
		want string
	}{
		{"variable", &Variable{}, "x"},
		{"constant", &Constant{Value: 2.5}, "2.5"},
		{"neg", &Unary{Op: OpNeg, Child: &Variable{}}, "(-x)"},
		{"sin", &Unary{Op: OpSin, Child: &Variable{}}, "sin(x)"},
		{
			"nested binary",
			&Binary{
				Op:    OpMul,
				Left:  &Binary{Op: OpAdd, Left: &Variable{}, Right: &Constant{Value: 1}},
				Right: &Variable{},
			},
			"((x + 1) * x)",
		},
		{"pow", &Binary{Op: OpPow, Left: &Variable{}, Right: &Constant{Value: 2}}, "(x ^ 2)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tree.String(); got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original := &Binary{
		Op:    OpAdd,
		Left:  &Constant{Value: 2},
		Right: &Unary{Op: OpSin, Child: &Variable{}},
	}
	clone := original.Clone()

	original.Left.(*Constant).Value = 99
	if got := clone.Eval(0); got != 2 {
		t.Fatalf("clone changed with original: Eval(0) = %g, want 2", got)
	}
	if clone.String() != "(2 + sin(x))" {
		t.Fatalf("clone rendered %q", clone.String())
	}
}

func TestCollectSlotsSplicing(t *testing.T) {
	var tree Node = &Binary{
		Op:    OpAdd,
		Left:  &Variable{},
		Right: &Constant{Value: 3},
	}
	slots := CollectSlots(&tree)
	if len(slots) != 3 {
		t.Fatalf("got %d slots, want 3", len(slots))
	}
	if slots[0].Depth != 1 || slots[1].Depth != 2 || slots[2].Depth != 2 {
		t.Fatalf("unexpected slot depths: %+v", slots)
	}

	// Splice through the last slot and observe the change in the root.
	*slots[2].Ptr = &Constant{Value: 7}
	if got := tree.Eval(1); got != 8 {
		t.Fatalf("after splice Eval(1) = %g, want 8", got)
	}
}

func TestCollectNodesPreorder(t *testing.T) {
	tree := &Binary{
		Op:    OpMul,
		Left:  &Unary{Op: OpNeg, Child: &Variable{}},
		Right: &Constant{Value: 2},
	}
	nodes := CollectNodes(tree)
	if len(nodes) != 4 {
		t.Fatalf("got %d nodes, want 4", len(nodes))
	}
	if nodes[0] != Node(tree) {
		t.Fatal("first node is not the root")
	}
}
