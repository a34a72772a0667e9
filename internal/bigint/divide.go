package bigint

// QuoRem returns the truncated quotient x/y and the remainder x%y. The
// quotient is rounded toward zero and the remainder takes the sign of x, so
// q*y + r == x always holds.
func (x *Int) QuoRem(y *Int) (q, r *Int, err error) {
	return quoRem("quorem", x, y)
}

// Quo returns x/y rounded toward zero.
func (x *Int) Quo(y *Int) (*Int, error) {
	q, _, err := quoRem("quo", x, y)
	return q, err
}

// Rem returns x%y with the sign of x.
func (x *Int) Rem(y *Int) (*Int, error) {
	_, r, err := quoRem("rem", x, y)
	return r, err
}

func quoRem(op string, x, y *Int) (*Int, *Int, error) {
	if err := sameCapacity(op, x, y); err != nil {
		return nil, nil, err
	}
	if y.IsZero() {
		return nil, nil, opErr(op, ErrDivideByZero)
	}
	c := len(x.limbs)
	xneg, yneg := x.IsNegative(), y.IsNegative()
	qm, rm := divModMag(x.mag(), y.mag())
	q, ok := fromMag(qm, xneg != yneg, c)
	if !ok {
		// Only the minimum value divided by -1 lands here.
		return nil, nil, opErr(op, ErrOverflow)
	}
	r, ok := fromMag(rm, xneg, c)
	if !ok {
		return nil, nil, opErr(op, ErrOverflow)
	}
	return q, r, nil
}

// mod returns x mod m for m > 0 as a non-negative value.
func mod(op string, x, m *Int) (*Int, error) {
	_, r, err := quoRem(op, x, m)
	if err != nil {
		return nil, err
	}
	if r.IsNegative() {
		return add(op, r, m)
	}
	return r, nil
}
