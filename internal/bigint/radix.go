package bigint

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

const digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// MinRadix and MaxRadix bound the radix accepted by Parse and Text.
const (
	MinRadix = 2
	MaxRadix = len(digits)
)

func checkRadix(op string, radix int) (uint32, error) {
	if radix < MinRadix || radix > MaxRadix {
		return 0, opErrDetail(op, ErrInvalidRadix, fmt.Sprintf("radix %d outside [%d, %d]", radix, MinRadix, MaxRadix))
	}
	r, err := safecast.Conv[uint32](radix)
	if err != nil {
		return 0, opErr(op, ErrInvalidRadix)
	}
	return r, nil
}

func digitValue(ch byte) (uint32, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return uint32(ch - '0'), true
	case 'a' <= ch && ch <= 'z':
		return uint32(ch-'a') + 10, true
	case 'A' <= ch && ch <= 'Z':
		return uint32(ch-'A') + 10, true
	}
	return 0, false
}

// Parse reads an optionally signed integer written in the given radix.
// Digits are case-insensitive and surrounding whitespace is ignored.
func Parse(s string, radix int, opts ...Option) (*Int, error) {
	const op = "parse"
	c, err := resolveCapacity(op, opts)
	if err != nil {
		return nil, err
	}
	r, err := checkRadix(op, radix)
	if err != nil {
		return nil, err
	}

	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" {
		return nil, opErrDetail(op, ErrInvalidDigit, "no digits")
	}

	acc := make([]uint32, c)
	for i := 0; i < len(s); i++ {
		d, ok := digitValue(s[i])
		if !ok || d >= r {
			return nil, opErrDetail(op, ErrInvalidDigit, fmt.Sprintf("%q at offset %d", s[i], i))
		}
		if mulAddVWW(acc, acc, r, d) != 0 {
			return nil, rangeErr(op, neg)
		}
	}
	z, ok := fromMag(acc, neg, c)
	if !ok {
		return nil, rangeErr(op, neg)
	}
	return z, nil
}

// Text returns x in the given radix using upper-case digits.
func (x *Int) Text(radix int) (string, error) {
	r, err := checkRadix("text", radix)
	if err != nil {
		return "", err
	}
	if x.IsZero() {
		return "0", nil
	}
	mag := x.mag()
	buf := make([]byte, 0, bitLenVV(mag)+1)
	for len(mag) > 0 {
		d := divWVW(mag, 0, mag, r)
		mag = trimVV(mag)
		buf = append(buf, digits[d])
	}
	if x.IsNegative() {
		buf = append(buf, '-')
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

// String returns the decimal form of x.
func (x *Int) String() string {
	if x == nil || len(x.limbs) == 0 {
		return "<nil>"
	}
	s, _ := x.Text(10)
	return s
}

// Format implements fmt.Formatter for the verbs d, s, v, x, X, o and b.
// Width and the '-' and '0' flags are honoured.
func (x *Int) Format(s fmt.State, ch rune) {
	radix, lower := 10, false
	switch ch {
	case 'd', 's', 'v':
	case 'x':
		radix, lower = 16, true
	case 'X':
		radix = 16
	case 'o':
		radix = 8
	case 'b':
		radix = 2
	default:
		fmt.Fprintf(s, "%%!%c(bigint.Int=%s)", ch, x.String())
		return
	}
	if x == nil || len(x.limbs) == 0 {
		fmt.Fprint(s, "<nil>")
		return
	}
	text, _ := x.Text(radix)
	if lower {
		text = strings.ToLower(text)
	}
	if w, ok := s.Width(); ok && len(text) < w {
		pad := w - len(text)
		switch {
		case s.Flag('-'):
			text += strings.Repeat(" ", pad)
		case s.Flag('0'):
			sign := ""
			if strings.HasPrefix(text, "-") {
				sign, text = "-", text[1:]
			}
			text = sign + strings.Repeat("0", pad) + text
		default:
			text = strings.Repeat(" ", pad) + text
		}
	}
	fmt.Fprint(s, text)
}
