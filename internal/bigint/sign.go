package bigint

// Neg returns -x. The minimum value has no positive counterpart.
func (x *Int) Neg() (*Int, error) {
	if err := sameCapacity("neg", x); err != nil {
		return nil, err
	}
	if x.isMin() {
		return nil, opErr("neg", ErrOverflow)
	}
	z := x.Clone()
	negateVV(z.limbs)
	return z.norm(), nil
}

// Abs returns |x|.
func (x *Int) Abs() (*Int, error) {
	if err := sameCapacity("abs", x); err != nil {
		return nil, err
	}
	if !x.IsNegative() {
		return x.Clone(), nil
	}
	z, err := x.Neg()
	if err != nil {
		return nil, withOp("abs", err)
	}
	return z, nil
}

// Cmp compares x and y and returns -1, 0 or +1. Values of different
// capacities compare by mathematical value.
func (x *Int) Cmp(y *Int) int {
	xs, ys := x.IsNegative(), y.IsNegative()
	if xs != ys {
		if xs {
			return -1
		}
		return 1
	}
	if len(x.limbs) != len(y.limbs) {
		c := cmpVV(x.mag(), y.mag())
		if xs {
			return -c
		}
		return c
	}
	// Same sign and width: two's complement patterns order like unsigned.
	for i := max(x.n, y.n) - 1; i >= 0; i-- {
		if x.limbs[i] != y.limbs[i] {
			if x.limbs[i] < y.limbs[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Equal reports whether x == y.
func (x *Int) Equal(y *Int) bool { return x.Cmp(y) == 0 }

// Less reports whether x < y.
func (x *Int) Less(y *Int) bool { return x.Cmp(y) < 0 }

// LessOrEqual reports whether x <= y.
func (x *Int) LessOrEqual(y *Int) bool { return x.Equal(y) || x.Less(y) }

// Greater reports whether x > y.
func (x *Int) Greater(y *Int) bool { return x.Cmp(y) > 0 }

// GreaterOrEqual reports whether x >= y.
func (x *Int) GreaterOrEqual(y *Int) bool { return x.Equal(y) || x.Greater(y) }

// Min returns a copy of the smaller of x and y.
func Min(x, y *Int) *Int {
	if x.Greater(y) {
		return y.Clone()
	}
	return x.Clone()
}

// Max returns a copy of the larger of x and y.
func Max(x, y *Int) *Int {
	if x.Less(y) {
		return y.Clone()
	}
	return x.Clone()
}
