package bigint

import (
	"fmt"
	"math"
	"math/bits"
)

const (
	// DefaultCapacity holds 9216 bits, wide enough for Barrett reduction
	// against a 4096-bit modulus.
	DefaultCapacity = 288
	// MinCapacity is the smallest capacity a value may be built with.
	MinCapacity = 2
	// MaxCapacity bounds the limb array of a single value.
	MaxCapacity = 1 << 16
)

// Int is a signed integer stored in two's complement across a fixed number of
// 32-bit limbs. Values are immutable: every operation returns a new Int and
// never writes into its operands.
//
// The zero value is not usable; build values with NewInt, NewUint, Parse,
// FromLimbs or FromBytes.
type Int struct {
	limbs []uint32 // little-endian, len(limbs) is the capacity
	n     int      // significant limbs, trailing zero limbs trimmed, at least 1
}

// Option configures value construction.
type Option func(*settings)

type settings struct {
	capacity int
}

// WithCapacity sets the limb capacity of the constructed value.
func WithCapacity(limbs int) Option {
	return func(s *settings) { s.capacity = limbs }
}

func resolveCapacity(op string, opts []Option) (int, error) {
	s := settings{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&s)
	}
	if s.capacity < MinCapacity || s.capacity > MaxCapacity {
		return 0, opErrDetail(op, ErrCapacityExceeded,
			fmt.Sprintf("capacity %d outside [%d, %d]", s.capacity, MinCapacity, MaxCapacity))
	}
	return s.capacity, nil
}

func newZero(c int) *Int {
	return &Int{limbs: make([]uint32, c), n: 1}
}

func newSmall(c int, v uint32) *Int {
	z := newZero(c)
	z.limbs[0] = v
	return z
}

// norm recomputes the significant limb count.
func (z *Int) norm() *Int {
	i := len(z.limbs)
	for i > 1 && z.limbs[i-1] == 0 {
		i--
	}
	z.n = i
	return z
}

func negateVV(x []uint32) {
	for i := range x {
		x[i] = ^x[i]
	}
	addVW(x, x, 1)
}

func isMinPattern(x []uint32) bool {
	if x[len(x)-1] != signBit {
		return false
	}
	for _, d := range x[:len(x)-1] {
		if d != 0 {
			return false
		}
	}
	return true
}

// fromMag builds a value of capacity c from an unsigned magnitude. It reports
// false when the signed result does not fit. A negative result may reach
// exactly 2^(32c-1) in magnitude.
func fromMag(mag []uint32, neg bool, c int) (*Int, bool) {
	mag = trimVV(mag)
	if len(mag) > c {
		return nil, false
	}
	z := newZero(c)
	copy(z.limbs, mag)
	if z.limbs[c-1]&signBit != 0 {
		if !neg || !isMinPattern(z.limbs) {
			return nil, false
		}
		z.n = c
		return z, true
	}
	if neg && len(mag) > 0 {
		negateVV(z.limbs)
	}
	return z.norm(), true
}

// mag returns the absolute value as a trimmed magnitude. The minimum value
// yields 2^(32C-1).
func (x *Int) mag() []uint32 {
	if !x.IsNegative() {
		return trimVV(cloneVV(x.limbs[:x.n]))
	}
	z := cloneVV(x.limbs)
	negateVV(z)
	return trimVV(z)
}

func (x *Int) isMin() bool {
	return x.IsNegative() && isMinPattern(x.limbs)
}

func (x *Int) isOne() bool {
	return x.n == 1 && x.limbs[0] == 1
}

func sameCapacity(op string, xs ...*Int) error {
	c := -1
	for _, x := range xs {
		if x == nil || len(x.limbs) == 0 {
			return opErrDetail(op, ErrInvalidArgument, "uninitialized operand")
		}
		if c >= 0 && len(x.limbs) != c {
			return opErrDetail(op, ErrInvalidArgument,
				fmt.Sprintf("capacity mismatch %d != %d", c, len(x.limbs)))
		}
		c = len(x.limbs)
	}
	return nil
}

// NewInt returns v as an Int.
func NewInt(v int64, opts ...Option) (*Int, error) {
	c, err := resolveCapacity("new", opts)
	if err != nil {
		return nil, err
	}
	u := uint64(v)
	if v < 0 {
		u = -u
	}
	z, ok := fromMag([]uint32{uint32(u), uint32(u >> limbBits)}, v < 0, c)
	if !ok {
		return nil, rangeErr("new", v < 0)
	}
	return z, nil
}

// NewUint returns v as an Int. A capacity of two limbs cannot hold values at
// or above 2^63.
func NewUint(v uint64, opts ...Option) (*Int, error) {
	c, err := resolveCapacity("new", opts)
	if err != nil {
		return nil, err
	}
	z, ok := fromMag([]uint32{uint32(v), uint32(v >> limbBits)}, false, c)
	if !ok {
		return nil, opErr("new", ErrOverflow)
	}
	return z, nil
}

// FromLimbs builds a value from raw two's complement limbs given most
// significant first. Leading zero limbs are ignored; more remaining limbs
// than the capacity is an error.
func FromLimbs(limbs []uint32, opts ...Option) (*Int, error) {
	c, err := resolveCapacity("from limbs", opts)
	if err != nil {
		return nil, err
	}
	i := 0
	for i < len(limbs)-1 && limbs[i] == 0 {
		i++
	}
	limbs = limbs[i:]
	if len(limbs) > c {
		return nil, opErrDetail("from limbs", ErrCapacityExceeded,
			fmt.Sprintf("%d limbs, capacity %d", len(limbs), c))
	}
	z := newZero(c)
	for j, d := range limbs {
		z.limbs[len(limbs)-1-j] = d
	}
	return z.norm(), nil
}

// FromBytes interprets b as a big-endian unsigned magnitude.
func FromBytes(b []byte, opts ...Option) (*Int, error) {
	c, err := resolveCapacity("from bytes", opts)
	if err != nil {
		return nil, err
	}
	z, ok := fromMag(bytesToMag(b), false, c)
	if !ok {
		return nil, opErr("from bytes", ErrOverflow)
	}
	return z, nil
}

func bytesToMag(b []byte) []uint32 {
	mag := make([]uint32, (len(b)+3)/4)
	for i := range b {
		pos := len(b) - 1 - i
		mag[pos/4] |= uint32(b[i]) << (8 * uint(pos%4))
	}
	return mag
}

// Clone returns a deep copy of x.
func (x *Int) Clone() *Int {
	return &Int{limbs: cloneVV(x.limbs), n: x.n}
}

// Capacity returns the number of limbs backing x.
func (x *Int) Capacity() int { return len(x.limbs) }

// Len returns the number of significant limbs.
func (x *Int) Len() int { return x.n }

// Limbs returns the significant limbs of the two's complement representation,
// most significant first.
func (x *Int) Limbs() []uint32 {
	out := make([]uint32, x.n)
	for i := range out {
		out[i] = x.limbs[x.n-1-i]
	}
	return out
}

// Bytes returns the absolute value of x as big-endian bytes. Zero is empty.
func (x *Int) Bytes() []byte {
	mag := x.mag()
	out := make([]byte, 0, len(mag)*4)
	for i := len(mag) - 1; i >= 0; i-- {
		d := mag[i]
		out = append(out, byte(d>>24), byte(d>>16), byte(d>>8), byte(d))
	}
	for len(out) > 0 && out[0] == 0 {
		out = out[1:]
	}
	return out
}

// IsNegative reports whether the sign bit is set.
func (x *Int) IsNegative() bool {
	return x.limbs[len(x.limbs)-1]&signBit != 0
}

// IsZero reports whether x == 0.
func (x *Int) IsZero() bool {
	return x.n == 1 && x.limbs[0] == 0
}

// Sign returns -1, 0 or +1.
func (x *Int) Sign() int {
	switch {
	case x.IsNegative():
		return -1
	case x.IsZero():
		return 0
	default:
		return 1
	}
}

// BitLen returns the bit length of |x|. Zero has length 0.
func (x *Int) BitLen() int {
	return bitLenVV(x.mag())
}

// Bit returns bit i of the two's complement representation. Positions past
// the capacity repeat the sign bit.
func (x *Int) Bit(i int) uint {
	if i < 0 {
		return 0
	}
	if i >= len(x.limbs)*limbBits {
		if x.IsNegative() {
			return 1
		}
		return 0
	}
	return uint(x.limbs[i/limbBits]>>(uint(i)%limbBits)) & 1
}

// Int64 returns x as an int64 and whether it fits.
func (x *Int) Int64() (int64, bool) {
	mag := x.mag()
	if len(mag) > 2 {
		return 0, false
	}
	var u uint64
	for i := len(mag) - 1; i >= 0; i-- {
		u = u<<limbBits | uint64(mag[i])
	}
	if x.IsNegative() {
		if u > 1<<63 {
			return 0, false
		}
		return -int64(u - 1) - 1, true
	}
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

// Uint64 returns x as a uint64 and whether it fits.
func (x *Int) Uint64() (uint64, bool) {
	if x.IsNegative() || x.n > 2 {
		return 0, false
	}
	u := uint64(x.limbs[0])
	if x.n == 2 {
		u |= uint64(x.limbs[1]) << limbBits
	}
	return u, true
}

// trailingZeros returns the number of trailing zero bits of a non-zero x.
func (x *Int) trailingZeros() int {
	for i, d := range x.limbs {
		if d != 0 {
			return i*limbBits + bits.TrailingZeros32(d)
		}
	}
	return 0
}
