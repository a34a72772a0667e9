package bigint

// Jacobi returns the Jacobi symbol (a/b), which is -1, 0 or +1. b must be odd
// and positive.
func Jacobi(a, b *Int) (int, error) {
	const op = "jacobi"
	if err := sameCapacity(op, a, b); err != nil {
		return 0, err
	}
	if b.limbs[0]&1 == 0 {
		return 0, opErrDetail(op, ErrInvalidArgument, "modulus must be odd")
	}
	if b.IsNegative() {
		return 0, opErrDetail(op, ErrInvalidArgument, "modulus must be positive")
	}

	j := 1
	for {
		if b.isOne() {
			return j, nil
		}
		// A negative a is reduced before negation so that the minimum value
		// never has to be negated.
		if a.IsNegative() || a.GreaterOrEqual(b) {
			r, err := a.Rem(b)
			if err != nil {
				return 0, withOp(op, err)
			}
			a = r
		}
		if a.IsZero() {
			return 0, nil
		}
		if a.isOne() {
			return j, nil
		}
		if a.IsNegative() {
			// (-1/b) is -1 exactly when b ≡ 3 (mod 4).
			na, err := a.Neg()
			if err != nil {
				return 0, withOp(op, err)
			}
			if b.limbs[0]&3 == 3 {
				j = -j
			}
			a = na
			continue
		}

		e := a.trailingZeros()
		a1, err := a.Rsh(e)
		if err != nil {
			return 0, withOp(op, err)
		}
		// (2/b) is -1 exactly when b ≡ 3 or 5 (mod 8).
		if bm8 := b.limbs[0] & 7; e&1 == 1 && (bm8 == 3 || bm8 == 5) {
			j = -j
		}
		if b.limbs[0]&3 == 3 && a1.limbs[0]&3 == 3 {
			j = -j
		}
		if a1.isOne() {
			return j, nil
		}
		next, err := b.Rem(a1)
		if err != nil {
			return 0, withOp(op, err)
		}
		a, b = next, a1
	}
}
