// Package bigint implements fixed-capacity signed integers over 32-bit limbs.
//
// Each value stores its two's complement representation across a limb array
// whose length, the capacity, is fixed when the value is built. Arithmetic
// reports ErrOverflow or ErrUnderflow instead of wrapping, which makes the
// package suitable as the arithmetic core of textbook RSA: modular
// exponentiation uses Barrett reduction, division follows Knuth's
// Algorithm D, and the modular inverse is an extended Euclidean algorithm.
//
// Values are immutable and may be shared between goroutines. All operands of
// a binary operation must have the same capacity.
//
// The package performs no constant-time arithmetic and must not be used where
// timing side channels matter.
package bigint
