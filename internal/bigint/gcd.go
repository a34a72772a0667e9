package bigint

// GCD returns the greatest common divisor of |x| and |y|. GCD(x, 0) is |x|.
func (x *Int) GCD(y *Int) (*Int, error) {
	if err := sameCapacity("gcd", x, y); err != nil {
		return nil, err
	}
	a, b := x.mag(), y.mag()
	for len(b) > 0 {
		_, r := divModMag(a, b)
		a, b = b, r
	}
	z, ok := fromMag(a, false, len(x.limbs))
	if !ok {
		return nil, opErr("gcd", ErrOverflow)
	}
	return z, nil
}

// ModInverse returns the y in [0, m) with x*y ≡ 1 (mod m).
//
// It runs the extended Euclidean algorithm on (m, x mod m), carrying only the
// coefficient sequence p[k] = p[k-2] - p[k-1]*q[k-2] (mod m) alongside the
// quotients. When the last non-zero remainder is not 1, x and m share a factor
// and ErrNoInverse is returned.
func (x *Int) ModInverse(m *Int) (*Int, error) {
	const op = "modinverse"
	if err := sameCapacity(op, x, m); err != nil {
		return nil, err
	}
	if m.Sign() <= 0 {
		return nil, opErrDetail(op, ErrInvalidArgument, "modulus must be positive")
	}
	c := len(m.limbs)
	if m.isOne() {
		return newZero(c), nil
	}
	a, err := mod(op, x, m)
	if err != nil {
		return nil, err
	}
	if a.IsZero() {
		return nil, opErr(op, ErrNoInverse)
	}
	if a.isOne() {
		return a, nil
	}

	p := [2]*Int{newZero(c), newSmall(c, 1)}
	var q, r [2]*Int
	dividend, divisor := m, a
	for step := 0; !divisor.IsZero(); step++ {
		quo, rem, err := quoRem(op, dividend, divisor)
		if err != nil {
			return nil, err
		}
		if step > 1 {
			next, err := nextCoefficient(op, p, q[0], m)
			if err != nil {
				return nil, err
			}
			p[0], p[1] = p[1], next
		}
		q[0], q[1] = q[1], quo
		r[0], r[1] = r[1], rem
		dividend, divisor = divisor, rem
	}
	if r[0] == nil || !r[0].isOne() {
		return nil, opErr(op, ErrNoInverse)
	}

	inv, err := nextCoefficient(op, p, q[0], m)
	if err != nil {
		return nil, err
	}
	if inv.IsNegative() {
		return add(op, inv, m)
	}
	return inv, nil
}

// nextCoefficient returns (p[0] - p[1]*q) % m, truncated.
func nextCoefficient(op string, p [2]*Int, q, m *Int) (*Int, error) {
	t, err := p[1].Mul(q)
	if err != nil {
		return nil, withOp(op, err)
	}
	t, err = sub(op, p[0], t)
	if err != nil {
		return nil, err
	}
	_, r, err := quoRem(op, t, m)
	return r, err
}
