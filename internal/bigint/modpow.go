package bigint

import "fmt"

// ModPow returns x^e mod m using right-to-left square-and-multiply with
// Barrett reduction.
//
// A negative modulus is replaced by its absolute value. For a negative x the
// power of |x| is computed and negated when e is odd, so the result carries
// the sign truncated division would give it. The loop stops as soon as the
// running square reaches 1.
func (x *Int) ModPow(e, m *Int) (*Int, error) {
	const op = "modpow"
	if err := sameCapacity(op, x, e, m); err != nil {
		return nil, err
	}
	if e.IsNegative() {
		return nil, opErr(op, ErrNonPositiveExponent)
	}
	if m.IsZero() {
		return nil, opErr(op, ErrDivideByZero)
	}
	c := len(x.limbs)
	n := m.mag()
	k := len(n)
	if 2*k+3 > c {
		return nil, opErrDetail(op, ErrOverflow,
			fmt.Sprintf("%d-limb modulus needs capacity %d", k, 2*k+3))
	}
	if k == 1 && n[0] == 1 {
		return newZero(c), nil
	}

	r := newBarrett(n)
	_, base := divModMag(x.mag(), n)
	result := []uint32{1}
	for i, bl := 0, e.BitLen(); i < bl; i++ {
		if e.Bit(i) == 1 {
			result = r.reduce(mulMag(result, base))
		}
		base = r.reduce(mulMag(base, base))
		if len(base) == 1 && base[0] == 1 {
			break
		}
	}

	z, ok := fromMag(result, x.IsNegative() && e.Bit(0) == 1, c)
	if !ok {
		return nil, opErr(op, ErrOverflow)
	}
	return z, nil
}

// barrett holds a modulus n of k limbs and mu = floor(b^(2k) / n).
type barrett struct {
	n  []uint32
	mu []uint32
	k  int
}

func newBarrett(n []uint32) *barrett {
	k := len(n)
	b2k := make([]uint32, 2*k+1)
	b2k[2*k] = 1
	mu, _ := divModMag(b2k, n)
	return &barrett{n: n, mu: mu, k: k}
}

// reduce returns x mod n for x < b^(2k).
func (r *barrett) reduce(x []uint32) []uint32 {
	k := r.k
	x = trimVV(x)

	var q1, q3 []uint32
	if len(x) > k-1 {
		q1 = x[k-1:]
	}
	q2 := mulMag(q1, r.mu)
	if len(q2) > k+1 {
		q3 = q2[k+1:]
	}

	// r1 - r2 mod b^(k+1); the discarded borrow adds b^(k+1) back.
	r1 := make([]uint32, k+1)
	copy(r1, x)
	r2 := make([]uint32, k+1)
	copy(r2, mulLowMag(q3, r.n, k+1))
	rem := make([]uint32, k+1)
	subVV(rem, r1, r2)

	out := trimVV(rem)
	for cmpVV(out, r.n) >= 0 {
		out = subMag(out, r.n)
	}
	return out
}

// subMag returns x - y for x >= y.
func subMag(x, y []uint32) []uint32 {
	z := make([]uint32, len(x))
	b := subVV(z[:len(y)], x[:len(y)], y)
	subVW(z[len(y):], x[len(y):], b)
	return trimVV(z)
}
