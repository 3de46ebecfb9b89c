package expr

// Simplify returns an algebraically reduced copy of the tree: constant
// subtrees are folded through protected evaluation, and additive/multiplicative
// identities are eliminated. The result evaluates identically to the input at
// every finite x.
func Simplify(node Node) Node {
	switch n := node.(type) {
	case *Constant, *Variable:
		return n.Clone()
	case *Unary:
		return simplifyUnary(n)
	case *Binary:
		return simplifyBinary(n)
	default:
		return node.Clone()
	}
}

func simplifyUnary(u *Unary) Node {
	child := Simplify(u.Child)

	if _, ok := child.(*Constant); ok {
		folded := &Unary{Op: u.Op, Child: child}
		return &Constant{Value: folded.Eval(0)}
	}
	if u.Op == OpNeg {
		if inner, ok := child.(*Unary); ok && inner.Op == OpNeg {
			return inner.Child
		}
	}
	return &Unary{Op: u.Op, Child: child}
}

func simplifyBinary(b *Binary) Node {
	left := Simplify(b.Left)
	right := Simplify(b.Right)

	lc, leftConst := left.(*Constant)
	rc, rightConst := right.(*Constant)

	if leftConst && rightConst {
		folded := &Binary{Op: b.Op, Left: left, Right: right}
		return &Constant{Value: folded.Eval(0)}
	}

	switch b.Op {
	case OpAdd:
		if leftConst && lc.Value == 0 {
			return right
		}
		if rightConst && rc.Value == 0 {
			return left
		}
	case OpSub:
		if rightConst && rc.Value == 0 {
			return left
		}
	case OpMul:
		if leftConst && lc.Value == 0 || rightConst && rc.Value == 0 {
			return &Constant{Value: 0}
		}
		if leftConst && lc.Value == 1 {
			return right
		}
		if rightConst && rc.Value == 1 {
			return left
		}
	case OpDiv:
		if rightConst && rc.Value == 1 {
			return left
		}
	case OpPow:
		if rightConst && rc.Value == 1 {
			return left
		}
		if rightConst && rc.Value == 0 {
			return &Constant{Value: 1}
		}
	}

	return &Binary{Op: b.Op, Left: left, Right: right}
}
