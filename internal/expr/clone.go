package expr

func (c *Constant) Clone() Node {
	return &Constant{Value: c.Value}
}

func (v *Variable) Clone() Node {
	return &Variable{}
}

func (u *Unary) Clone() Node {
	return &Unary{
		Op:    u.Op,
		Child: u.Child.Clone(),
	}
}

func (b *Binary) Clone() Node {
	return &Binary{
		Op:    b.Op,
		Left:  b.Left.Clone(),
		Right: b.Right.Clone(),
	}
}
