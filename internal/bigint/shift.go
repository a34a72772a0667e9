package bigint

import (
	"fmt"

	"fortio.org/safecast"
)

// Lsh returns x << s. The shift is checked: if x·2^s does not fit the
// capacity the call fails with ErrOverflow or ErrUnderflow.
func (x *Int) Lsh(s int) (*Int, error) {
	if err := sameCapacity("lsh", x); err != nil {
		return nil, err
	}
	shift, err := shiftAmount("lsh", s)
	if err != nil {
		return nil, err
	}
	if x.IsZero() || shift == 0 {
		return x.Clone(), nil
	}
	c := len(x.limbs)
	neg := x.IsNegative()
	if shift >= uint(c*limbBits) {
		return nil, rangeErr("lsh", neg)
	}
	z, ok := fromMag(shlMag(x.mag(), shift), neg, c)
	if !ok {
		return nil, rangeErr("lsh", neg)
	}
	return z, nil
}

// Rsh returns x >> s with sign extension, i.e. floor(x / 2^s).
func (x *Int) Rsh(s int) (*Int, error) {
	if err := sameCapacity("rsh", x); err != nil {
		return nil, err
	}
	shift, err := shiftAmount("rsh", s)
	if err != nil {
		return nil, err
	}
	c := len(x.limbs)
	neg := x.IsNegative()
	z := newZero(c)
	if shift >= uint(c*limbBits) {
		if neg {
			for i := range z.limbs {
				z.limbs[i] = limbMask
			}
		}
		return z.norm(), nil
	}
	q, r := int(shift/limbBits), shift%limbBits
	shrVU(z.limbs[:c-q], x.limbs[q:], r)
	if neg {
		for i := c - q; i < c; i++ {
			z.limbs[i] = limbMask
		}
		if r > 0 {
			z.limbs[c-q-1] |= uint32(limbMask) << (limbBits - r)
		}
	}
	return z.norm(), nil
}

func shiftAmount(op string, s int) (uint, error) {
	shift, err := safecast.Conv[uint](s)
	if err != nil {
		return 0, opErrDetail(op, ErrInvalidArgument, fmt.Sprintf("negative shift %d", s))
	}
	return shift, nil
}
