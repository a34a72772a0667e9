package bigint

import "math/bits"

// Vector kernels over little-endian 32-bit limbs. Callers size z; the
// kernels never allocate.

const (
	limbBits = 32
	limbMask = 1<<limbBits - 1
	signBit  = uint32(1) << (limbBits - 1)
)

// addVV computes z = x + y and returns the carry.
func addVV(z, x, y []uint32) (c uint32) {
	for i := range z {
		z[i], c = bits.Add32(x[i], y[i], c)
	}
	return c
}

// subVV computes z = x - y and returns the borrow.
func subVV(z, x, y []uint32) (b uint32) {
	for i := range z {
		z[i], b = bits.Sub32(x[i], y[i], b)
	}
	return b
}

// addVW computes z = x + y where y is a single limb, and returns the carry.
func addVW(z, x []uint32, y uint32) (c uint32) {
	c = y
	for i := range z {
		z[i], c = bits.Add32(x[i], c, 0)
	}
	return c
}

// subVW computes z = x - y where y is a single limb, and returns the borrow.
func subVW(z, x []uint32, y uint32) (b uint32) {
	b = y
	for i := range z {
		z[i], b = bits.Sub32(x[i], b, 0)
	}
	return b
}

// shlVU computes z = x << s for 0 <= s < 32 and returns the bits shifted out.
func shlVU(z, x []uint32, s uint) (c uint32) {
	if len(z) == 0 {
		return 0
	}
	if s == 0 {
		copy(z, x)
		return 0
	}
	ŝ := limbBits - s
	c = x[len(z)-1] >> ŝ
	for i := len(z) - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>ŝ
	}
	z[0] = x[0] << s
	return c
}

// shrVU computes z = x >> s for 0 <= s < 32 and returns the bits shifted out,
// left-aligned.
func shrVU(z, x []uint32, s uint) (c uint32) {
	if len(z) == 0 {
		return 0
	}
	if s == 0 {
		copy(z, x)
		return 0
	}
	ŝ := limbBits - s
	c = x[0] << ŝ
	for i := 0; i < len(z)-1; i++ {
		z[i] = x[i]>>s | x[i+1]<<ŝ
	}
	z[len(z)-1] = x[len(z)-1] >> s
	return c
}

// mulAddVWW computes z = x*y + r and returns the carry limb.
func mulAddVWW(z, x []uint32, y, r uint32) (c uint32) {
	c = r
	for i := range z {
		t := uint64(x[i])*uint64(y) + uint64(c)
		z[i] = uint32(t)
		c = uint32(t >> limbBits)
	}
	return c
}

// addMulVVW computes z += x*y and returns the carry limb.
func addMulVVW(z, x []uint32, y uint32) (c uint32) {
	for i := range z {
		t := uint64(x[i])*uint64(y) + uint64(z[i]) + uint64(c)
		z[i] = uint32(t)
		c = uint32(t >> limbBits)
	}
	return c
}

// divWVW computes z = (xn:x) / y and returns the remainder. xn must be < y.
func divWVW(z []uint32, xn uint32, x []uint32, y uint32) (r uint32) {
	r = xn
	for i := len(z) - 1; i >= 0; i-- {
		z[i], r = bits.Div32(r, x[i], y)
	}
	return r
}

// cmpVV compares two trimmed magnitudes.
func cmpVV(x, y []uint32) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// trimVV drops high zero limbs. The zero magnitude is the empty slice.
func trimVV(x []uint32) []uint32 {
	i := len(x)
	for i > 0 && x[i-1] == 0 {
		i--
	}
	return x[:i]
}

func cloneVV(x []uint32) []uint32 {
	z := make([]uint32, len(x))
	copy(z, x)
	return z
}

// bitLenVV returns the bit length of a trimmed magnitude.
func bitLenVV(x []uint32) int {
	if len(x) == 0 {
		return 0
	}
	return (len(x)-1)*limbBits + bits.Len32(x[len(x)-1])
}
