package bigint

// Mul returns x * y.
//
// The product is formed on magnitudes and the sign applied afterwards, so the
// only product with the sign bit set that fits is -2^(32C-1) itself. Every
// other out-of-range product reports ErrOverflow.
func (x *Int) Mul(y *Int) (*Int, error) {
	if err := sameCapacity("mul", x, y); err != nil {
		return nil, err
	}
	neg := x.IsNegative() != y.IsNegative()
	z, ok := fromMag(mulMag(x.mag(), y.mag()), neg, len(x.limbs))
	if !ok {
		return nil, opErr("mul", ErrOverflow)
	}
	return z, nil
}
