package expr

import (
	"fmt"
	"strconv"
)

var unaryOpNames = map[UnaryOp]string{
	OpNeg: "-",
	OpSin: "sin",
	OpCos: "cos",
	OpLog: "log",
}

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPow: "^",
}

// Constants render with full precision so the printed form of a tree
// re-evaluates to the same value.
func (c *Constant) String() string {
	return strconv.FormatFloat(c.Value, 'g', -1, 64)
}

func (v *Variable) String() string {
	return "x"
}

func (u *Unary) String() string {
	child := u.Child.String()
	if u.Op == OpNeg {
		return fmt.Sprintf("(-%s)", child)
	}
	return fmt.Sprintf("%s(%s)", unaryOpNames[u.Op], child)
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, binaryOpSymbols[b.Op], b.Right)
}
