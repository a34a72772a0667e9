package bigint

import "testing"

func TestLsh(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		x       string
		s       int
		want    string
		wantErr error
	}{
		{"by zero", "5", 0, "5", nil},
		{"within a limb", "5", 3, "40", nil},
		{"across limbs", "1", 40, "1099511627776", nil},
		{"largest positive power", "1", 62, "4611686018427387904", nil},
		{"into the sign bit", "1", 63, "", ErrOverflow},
		{"negative reaches minimum", "-1", 63, min64, nil},
		{"negative past minimum", "-1", 64, "", ErrUnderflow},
		{"negative value", "-3", 4, "-48", nil},
		{"zero any amount", "0", 1000, "0", nil},
		{"past the width", "1", 1000, "", ErrOverflow},
		{"negative amount", "1", -1, "", ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := mustParse(t, tt.x, 2).Lsh(tt.s)
			checkErr(t, err, tt.wantErr)
			if tt.wantErr != nil {
				return
			}
			checkInvariants(t, got)
			if got.String() != tt.want {
				t.Errorf("%s << %d = %s, want %s", tt.x, tt.s, got, tt.want)
			}
		})
	}
}

func TestRsh(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		x       string
		s       int
		want    string
		wantErr error
	}{
		{"positive", "7", 1, "3", nil},
		{"negative rounds down", "-7", 1, "-4", nil},
		{"minus one stays", "-1", 5, "-1", nil},
		{"across limbs", "-1099511627776", 33, "-128", nil},
		{"across limbs inexact", "-1099511627777", 33, "-129", nil},
		{"positive past width", "5", 1000, "0", nil},
		{"negative past width", "-5", 1000, "-1", nil},
		{"minimum by full width minus one", min64, 63, "-1", nil},
		{"negative amount", "1", -3, "", ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := mustParse(t, tt.x, 2).Rsh(tt.s)
			checkErr(t, err, tt.wantErr)
			if tt.wantErr != nil {
				return
			}
			checkInvariants(t, got)
			if got.String() != tt.want {
				t.Errorf("%s >> %d = %s, want %s", tt.x, tt.s, got, tt.want)
			}
		})
	}
}
