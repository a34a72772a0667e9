package bigint

import "math/bits"

// Unsigned magnitude algorithms. Inputs are little-endian limb slices that may
// carry high zero limbs; outputs are freshly allocated and trimmed.

// mulMag returns x*y using the schoolbook method.
func mulMag(x, y []uint32) []uint32 {
	x, y = trimVV(x), trimVV(y)
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make([]uint32, len(x)+len(y))
	for i, d := range y {
		if d != 0 {
			z[len(x)+i] = addMulVVW(z[i:i+len(x)], x, d)
		}
	}
	return trimVV(z)
}

// mulLowMag returns x*y mod b^k, computing only the low k limbs.
func mulLowMag(x, y []uint32, k int) []uint32 {
	x, y = trimVV(x), trimVV(y)
	z := make([]uint32, k)
	for i := 0; i < len(y) && i < k; i++ {
		d := y[i]
		if d == 0 {
			continue
		}
		m := min(len(x), k-i)
		c := addMulVVW(z[i:i+m], x[:m], d)
		if i+m < k {
			z[i+m] = c
		}
	}
	return trimVV(z)
}

// divWMag divides x by a single limb.
func divWMag(x []uint32, y uint32) (q []uint32, r uint32) {
	x = trimVV(x)
	q = make([]uint32, len(x))
	r = divWVW(q, 0, x, y)
	return trimVV(q), r
}

// divModMag returns u/v and u%v for a non-zero v. Multi-limb divisors use
// Knuth's Algorithm D (TAOCP vol. 2, 4.3.1).
func divModMag(u, v []uint32) (q, r []uint32) {
	u, v = trimVV(u), trimVV(v)
	if cmpVV(u, v) < 0 {
		return nil, cloneVV(u)
	}
	if len(v) == 1 {
		q, rw := divWMag(u, v[0])
		if rw == 0 {
			return q, nil
		}
		return q, []uint32{rw}
	}

	n := len(v)
	m := len(u) - n

	// D1: normalize so the top divisor bit is set.
	s := uint(bits.LeadingZeros32(v[n-1]))
	vn := make([]uint32, n)
	shlVU(vn, v, s)
	un := make([]uint32, len(u)+1)
	un[len(u)] = shlVU(un[:len(u)], u, s)

	q = make([]uint32, m+1)
	qhatv := make([]uint32, n+1)
	vtop, vnext := vn[n-1], vn[n-2]

	for j := m; j >= 0; j-- {
		// D3: estimate qhat from the top two remainder limbs.
		qhat := uint32(limbMask)
		if ujn := un[j+n]; ujn != vtop {
			var rhat uint32
			qhat, rhat = bits.Div32(ujn, un[j+n-1], vtop)
			ujn2 := un[j+n-2]
			for {
				hi, lo := bits.Mul32(qhat, vnext)
				if hi < rhat || (hi == rhat && lo <= ujn2) {
					break
				}
				qhat--
				prev := rhat
				rhat += vtop
				if rhat < prev {
					break
				}
			}
		}

		// D4: multiply and subtract.
		qhatv[n] = mulAddVWW(qhatv[:n], vn, qhat, 0)
		if c := subVV(un[j:j+n+1], un[j:j+n+1], qhatv); c != 0 {
			// D6: add back.
			c := addVV(un[j:j+n], un[j:j+n], vn)
			un[j+n] += c
			qhat--
		}
		q[j] = qhat
	}

	// D8: unnormalize the remainder.
	r = make([]uint32, n)
	shrVU(r, un[:n], s)
	return trimVV(q), trimVV(r)
}

// shlMag returns x << s for any s >= 0.
func shlMag(x []uint32, s uint) []uint32 {
	x = trimVV(x)
	if len(x) == 0 {
		return nil
	}
	limbs := int(s / limbBits)
	z := make([]uint32, len(x)+limbs+1)
	z[len(x)+limbs] = shlVU(z[limbs:len(x)+limbs], x, s%limbBits)
	return trimVV(z)
}
