package bigint

// Add returns x + y.
//
// Overflow is detected from the sign bits: operands of equal sign must produce
// a result of that sign. A positive overflow reports ErrOverflow and a negative
// one ErrUnderflow.
func (x *Int) Add(y *Int) (*Int, error) {
	return add("add", x, y)
}

// Sub returns x - y.
func (x *Int) Sub(y *Int) (*Int, error) {
	return sub("sub", x, y)
}

// Inc returns x + 1.
func (x *Int) Inc() (*Int, error) {
	if err := sameCapacity("inc", x); err != nil {
		return nil, err
	}
	return add("inc", x, newSmall(len(x.limbs), 1))
}

// Dec returns x - 1.
func (x *Int) Dec() (*Int, error) {
	if err := sameCapacity("dec", x); err != nil {
		return nil, err
	}
	return sub("dec", x, newSmall(len(x.limbs), 1))
}

func add(op string, x, y *Int) (*Int, error) {
	if err := sameCapacity(op, x, y); err != nil {
		return nil, err
	}
	z := newZero(len(x.limbs))
	addVV(z.limbs, x.limbs, y.limbs)
	xs, ys := x.IsNegative(), y.IsNegative()
	if xs == ys && z.IsNegative() != xs {
		return nil, rangeErr(op, xs)
	}
	return z.norm(), nil
}

func sub(op string, x, y *Int) (*Int, error) {
	if err := sameCapacity(op, x, y); err != nil {
		return nil, err
	}
	// A borrow escaping the significant limbs fills the capacity with ones,
	// which the full-width subtraction produces directly.
	z := newZero(len(x.limbs))
	subVV(z.limbs, x.limbs, y.limbs)
	xs, ys := x.IsNegative(), y.IsNegative()
	if xs != ys && z.IsNegative() != xs {
		return nil, rangeErr(op, xs)
	}
	return z.norm(), nil
}
