package expr

import "math"

// Evaluation is protected: a candidate expression must never surface a
// non-finite number, because fitness scoring requires a total order. Division
// by zero yields 1 (the divide-by-itself convention); every other numeric
// irregularity (pow domain error, log of a non-positive value, overflow)
// yields 0. Eval therefore always returns a finite float64.

func (c *Constant) Eval(_ float64) float64 {
	if !isFinite(c.Value) {
		return 0
	}
	return c.Value
}

func (v *Variable) Eval(x float64) float64 {
	if !isFinite(x) {
		return 0
	}
	return x
}

func (u *Unary) Eval(x float64) float64 {
	child := u.Child.Eval(x)

	switch u.Op {
	case OpNeg:
		return -child
	case OpSin:
		return math.Sin(child)
	case OpCos:
		return math.Cos(child)
	case OpLog:
		return finiteOrZero(math.Log(child))
	default:
		return 0
	}
}

func (b *Binary) Eval(x float64) float64 {
	left := b.Left.Eval(x)
	right := b.Right.Eval(x)

	switch b.Op {
	case OpAdd:
		return finiteOrZero(left + right)
	case OpSub:
		return finiteOrZero(left - right)
	case OpMul:
		return finiteOrZero(left * right)
	case OpDiv:
		if right == 0 {
			return 1
		}
		return finiteOrZero(left / right)
	case OpPow:
		return finiteOrZero(math.Pow(left, right))
	default:
		return 0
	}
}

func finiteOrZero(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
