package expr

// Node is the interface for all expression tree nodes. A tree represents a
// real-valued function of one variable x. Nodes exclusively own their
// children; Clone produces a fully independent tree.
type Node interface {
	Eval(x float64) float64
	String() string
	Clone() Node
	Size() int
	Depth() int
}

// UnaryOp identifies a unary operation.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpSin
	OpCos
	OpLog
)

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

// Constant is a fixed finite value.
type Constant struct {
	Value float64
}

// Variable denotes the input x.
type Variable struct{}

// Unary applies a unary operation to a child expression.
type Unary struct {
	Op    UnaryOp
	Child Node
}

// Binary applies a binary operation to two child expressions.
type Binary struct {
	Op          BinaryOp
	Left, Right Node
}

func (c *Constant) Size() int { return 1 }
func (v *Variable) Size() int { return 1 }

func (u *Unary) Size() int {
	return u.Child.Size() + 1
}

func (b *Binary) Size() int {
	return b.Left.Size() + b.Right.Size() + 1
}

func (c *Constant) Depth() int { return 1 }
func (v *Variable) Depth() int { return 1 }

func (u *Unary) Depth() int {
	return u.Child.Depth() + 1
}

func (b *Binary) Depth() int {
	left := b.Left.Depth()
	right := b.Right.Depth()
	if right > left {
		left = right
	}
	return left + 1
}
