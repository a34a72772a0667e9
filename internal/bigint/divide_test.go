package bigint

import (
	"math/big"
	"math/rand/v2"
	"testing"
)

func TestQuoRem(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		a, b    string
		q, r    string
		wantErr error
	}{
		{"exact", "3990", "-95", "-42", "0", nil},
		{"positive", "7", "2", "3", "1", nil},
		{"negative dividend", "-7", "2", "-3", "-1", nil},
		{"negative divisor", "7", "-2", "-3", "1", nil},
		{"both negative", "-7", "-2", "3", "-1", nil},
		{"dividend smaller", "1", "5", "0", "1", nil},
		{"negative dividend smaller", "-1", "5", "0", "-1", nil},
		{"two-limb divisor", max64, "4294967297", "2147483647", "2147483648", nil},
		{"minimum by one", min64, "1", min64, "0", nil},
		{"minimum by two", min64, "2", "-4611686018427387904", "0", nil},
		{"minimum by itself", min64, min64, "1", "0", nil},
		{"minimum by minus one", min64, "-1", "", "", ErrOverflow},
		{"by zero", "1", "0", "", "", ErrDivideByZero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, b := mustParse(t, tt.a, 2), mustParse(t, tt.b, 2)
			q, r, err := a.QuoRem(b)
			checkErr(t, err, tt.wantErr)
			if tt.wantErr != nil {
				return
			}
			checkInvariants(t, q)
			checkInvariants(t, r)
			if q.String() != tt.q || r.String() != tt.r {
				t.Errorf("%s / %s = %s r %s, want %s r %s", tt.a, tt.b, q, r, tt.q, tt.r)
			}
			quo, err := a.Quo(b)
			checkErr(t, err, nil)
			rem, err := a.Rem(b)
			checkErr(t, err, nil)
			if !quo.Equal(q) || !rem.Equal(r) {
				t.Errorf("Quo/Rem disagree with QuoRem: %s, %s", quo, rem)
			}
		})
	}
}

// randomLimbValue builds a value whose limbs favour the patterns that drive
// Algorithm D into its correction and add-back branches.
func randomLimbValue(rng *rand.Rand, limbs int) *big.Int {
	v := new(big.Int)
	for range limbs {
		var d uint32
		switch rng.IntN(4) {
		case 0:
			d = 0
		case 1:
			d = 0xFFFFFFFF
		case 2:
			d = 0x80000000
		default:
			d = rng.Uint32()
		}
		v.Lsh(v, 32).Or(v, big.NewInt(int64(d)))
	}
	return v
}

func TestQuoRemAgainstMathBig(t *testing.T) {
	t.Parallel()
	const capacity = 24
	rng := rand.New(rand.NewPCG(1, 2))
	for i := range 2000 {
		a := randomLimbValue(rng, 1+rng.IntN(capacity-2))
		b := randomLimbValue(rng, 1+rng.IntN(capacity-2))
		if b.Sign() == 0 {
			continue
		}
		if rng.IntN(2) == 0 {
			a.Neg(a)
		}
		if rng.IntN(2) == 0 {
			b.Neg(b)
		}
		wantQ, wantR := new(big.Int).QuoRem(a, b, new(big.Int))

		q, r, err := fromBig(t, a, capacity).QuoRem(fromBig(t, b, capacity))
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if toBig(q).Cmp(wantQ) != 0 || toBig(r).Cmp(wantR) != 0 {
			t.Fatalf("case %d: %s / %s = %s r %s, want %s r %s", i, a, b, q, r, wantQ, wantR)
		}
	}
}

func TestMulAgainstMathBig(t *testing.T) {
	t.Parallel()
	const capacity = 24
	rng := rand.New(rand.NewPCG(3, 4))
	for i := range 1000 {
		a := randomLimbValue(rng, 1+rng.IntN(11))
		b := randomLimbValue(rng, 1+rng.IntN(11))
		if rng.IntN(2) == 0 {
			a.Neg(a)
		}
		want := new(big.Int).Mul(a, b)
		got, err := fromBig(t, a, capacity).Mul(fromBig(t, b, capacity))
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if toBig(got).Cmp(want) != 0 {
			t.Fatalf("case %d: %s * %s = %s, want %s", i, a, b, got, want)
		}
	}
}

func FuzzQuoRem(f *testing.F) {
	f.Add([]byte{0x07}, []byte{0x02}, false, true)
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, []byte{0x01, 0x00, 0x00, 0x00, 0x01}, true, false)
	f.Add([]byte{0x80, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 1}, false, false)

	f.Fuzz(func(t *testing.T, a, b []byte, negA, negB bool) {
		const capacity = 16
		if len(a) > 60 || len(b) > 60 {
			return
		}
		x, err := FromBytes(a, WithCapacity(capacity))
		if err != nil {
			t.Fatal(err)
		}
		y, err := FromBytes(b, WithCapacity(capacity))
		if err != nil {
			t.Fatal(err)
		}
		if y.IsZero() {
			return
		}
		if negA {
			x, _ = x.Neg()
		}
		if negB {
			y, _ = y.Neg()
		}
		q, r, err := x.QuoRem(y)
		if err != nil {
			t.Fatalf("%s / %s: %v", x, y, err)
		}
		wantQ, wantR := new(big.Int).QuoRem(toBig(x), toBig(y), new(big.Int))
		if toBig(q).Cmp(wantQ) != 0 || toBig(r).Cmp(wantR) != 0 {
			t.Fatalf("%s / %s = %s r %s, want %s r %s", x, y, q, r, wantQ, wantR)
		}
	})
}
