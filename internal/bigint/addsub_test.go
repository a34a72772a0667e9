package bigint

import (
	"math"
	"strconv"
	"testing"
)

const (
	max64 = "9223372036854775807"
	min64 = "-9223372036854775808"
)

func TestAddSub(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		op       string
		a, b     string
		capacity int
		want     string
		wantErr  error
	}{
		{"small add", "add", "2", "3", 4, "5", nil},
		{"carry into next limb", "add", "4294967295", "1", 4, "4294967296", nil},
		{"opposite signs cancel", "add", "-5", "5", 4, "0", nil},
		{"negative sum", "add", "-7", "-8", 4, "-15", nil},
		{"max plus one", "add", max64, "1", 2, "", ErrOverflow},
		{"min plus minus one", "add", min64, "-1", 2, "", ErrUnderflow},
		{"max plus min", "add", max64, min64, 2, "-1", nil},
		{"difference goes negative", "sub", "123", "143", 4, "-20", nil},
		{"borrow fills capacity", "sub", "0", "1", 4, "-1", nil},
		{"min minus one", "sub", min64, "1", 2, "", ErrUnderflow},
		{"max minus minus one", "sub", max64, "-1", 2, "", ErrOverflow},
		{"zero minus min", "sub", "0", min64, 2, "", ErrOverflow},
		{"min minus min", "sub", min64, min64, 2, "0", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := mustParse(t, tt.a, tt.capacity)
			b := mustParse(t, tt.b, tt.capacity)
			var got *Int
			var err error
			if tt.op == "add" {
				got, err = a.Add(b)
			} else {
				got, err = a.Sub(b)
			}
			checkErr(t, err, tt.wantErr)
			if tt.wantErr != nil {
				return
			}
			checkInvariants(t, got)
			if got.String() != tt.want {
				t.Errorf("%s %s %s = %s, want %s", tt.a, tt.op, tt.b, got, tt.want)
			}
		})
	}
}

func TestIncDec(t *testing.T) {
	t.Parallel()
	_, err := mustParse(t, max64, 2).Inc()
	checkErr(t, err, ErrOverflow)
	_, err = mustParse(t, min64, 2).Dec()
	checkErr(t, err, ErrUnderflow)

	x := mustInt(t, -1, 4)
	inc, err := x.Inc()
	checkErr(t, err, nil)
	if !inc.IsZero() || inc.Len() != 1 {
		t.Errorf("-1 + 1 = %s with %d limbs", inc, inc.Len())
	}
	dec, err := inc.Dec()
	checkErr(t, err, nil)
	if !dec.Equal(x) {
		t.Errorf("0 - 1 = %s", dec)
	}
}

func TestAddDoesNotMutateOperands(t *testing.T) {
	t.Parallel()
	a := mustInt(t, math.MaxInt32, 4)
	b := mustInt(t, 99, 4)
	if _, err := a.Add(b); err != nil {
		t.Fatal(err)
	}
	if a.String() != strconv.Itoa(math.MaxInt32) || b.String() != "99" {
		t.Errorf("operands changed: %s, %s", a, b)
	}
}
