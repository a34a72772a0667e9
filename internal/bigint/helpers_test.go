package bigint

import (
	"errors"
	"math/big"
	"testing"
)

func mustParse(t testing.TB, s string, capacity int) *Int {
	t.Helper()
	x, err := Parse(s, 10, WithCapacity(capacity))
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", s, err)
	}
	return x
}

func mustInt(t testing.TB, v int64, capacity int) *Int {
	t.Helper()
	x, err := NewInt(v, WithCapacity(capacity))
	if err != nil {
		t.Fatalf("NewInt(%d) failed: %v", v, err)
	}
	return x
}

func toBig(x *Int) *big.Int {
	b, ok := new(big.Int).SetString(x.String(), 10)
	if !ok {
		panic("unparseable value " + x.String())
	}
	return b
}

func fromBig(t testing.TB, b *big.Int, capacity int) *Int {
	t.Helper()
	return mustParse(t, b.String(), capacity)
}

// checkErr fails unless err matches want; a nil want expects success.
func checkErr(t testing.TB, err, want error) {
	t.Helper()
	switch {
	case want == nil && err != nil:
		t.Fatalf("unexpected error: %v", err)
	case want != nil && !errors.Is(err, want):
		t.Fatalf("expected error %v, got %v", want, err)
	}
}

// checkInvariants verifies the representation invariants of x.
func checkInvariants(t testing.TB, x *Int) {
	t.Helper()
	if x.n < 1 || x.n > len(x.limbs) {
		t.Fatalf("significant limbs %d outside [1, %d]", x.n, len(x.limbs))
	}
	for i := x.n; i < len(x.limbs); i++ {
		if x.limbs[i] != 0 {
			t.Fatalf("limb %d beyond n=%d is %#x", i, x.n, x.limbs[i])
		}
	}
	if x.n > 1 && x.limbs[x.n-1] == 0 {
		t.Fatalf("untrimmed top limb at n=%d", x.n)
	}
	if x.IsNegative() && x.n != len(x.limbs) {
		t.Fatalf("negative value with n=%d, capacity %d", x.n, len(x.limbs))
	}
}
