package operation

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/agbru/bigrsa/internal/bigint"
	apperrors "github.com/agbru/bigrsa/internal/errors"
)

// Operation is a named engine operation with a fixed number of operands.
type Operation interface {
	// Name is the lowercase identifier used on the command line.
	Name() string
	// Arity is the exact number of operands Apply expects.
	Arity() int
	// Usage is a one-line synopsis, e.g. "modpow <base> <exp> <mod>".
	Usage() string
	// Apply runs the operation. Engine failures are returned unchanged.
	Apply(args []*bigint.Int) (*bigint.Int, error)
}

type builtin struct {
	name  string
	usage string
	arity int
	fn    func(args []*bigint.Int) (*bigint.Int, error)
}

func (b builtin) Name() string  { return b.name }
func (b builtin) Arity() int    { return b.arity }
func (b builtin) Usage() string { return b.name + " " + b.usage }

func (b builtin) Apply(args []*bigint.Int) (*bigint.Int, error) {
	if err := CheckArity(b, len(args)); err != nil {
		return nil, err
	}
	return b.fn(args)
}

// CheckArity reports a ValidationError when got differs from op's arity.
func CheckArity(op Operation, got int) error {
	if got == op.Arity() {
		return nil
	}
	return apperrors.ValidationError{
		Field:   op.Name(),
		Message: fmt.Sprintf("expects %d operand(s), got %d (usage: %s)", op.Arity(), got, op.Usage()),
	}
}

func unary(name string, fn func(x *bigint.Int) (*bigint.Int, error)) builtin {
	return builtin{name: name, usage: "<x>", arity: 1, fn: func(a []*bigint.Int) (*bigint.Int, error) {
		return fn(a[0])
	}}
}

func binary(name, usage string, fn func(x, y *bigint.Int) (*bigint.Int, error)) builtin {
	return builtin{name: name, usage: usage, arity: 2, fn: func(a []*bigint.Int) (*bigint.Int, error) {
		return fn(a[0], a[1])
	}}
}

// smallResult widens an int result to the capacity of like.
func smallResult(v int, like *bigint.Int) (*bigint.Int, error) {
	return bigint.NewInt(int64(v), bigint.WithCapacity(like.Capacity()))
}

// shiftCount narrows a shift operand to an int. Negative counts are passed
// through so the engine reports them.
func shiftCount(name string, s *bigint.Int) (int, error) {
	v, ok := s.Int64()
	n, err := safecast.Conv[int](v)
	if !ok || err != nil {
		return 0, apperrors.ValidationError{
			Field:   name,
			Message: fmt.Sprintf("shift count %s out of range", s),
			Cause:   bigint.ErrInvalidArgument,
		}
	}
	return n, nil
}

func shift(name string, fn func(x *bigint.Int, s int) (*bigint.Int, error)) builtin {
	return binary(name, "<x> <bits>", func(x, s *bigint.Int) (*bigint.Int, error) {
		n, err := shiftCount(name, s)
		if err != nil {
			return nil, err
		}
		return fn(x, n)
	})
}

func builtins() []Operation {
	return []Operation{
		binary("add", "<x> <y>", (*bigint.Int).Add),
		binary("sub", "<x> <y>", (*bigint.Int).Sub),
		binary("mul", "<x> <y>", (*bigint.Int).Mul),
		binary("quo", "<x> <y>", (*bigint.Int).Quo),
		binary("rem", "<x> <y>", (*bigint.Int).Rem),
		unary("neg", (*bigint.Int).Neg),
		unary("abs", (*bigint.Int).Abs),
		unary("inc", (*bigint.Int).Inc),
		unary("dec", (*bigint.Int).Dec),
		shift("shl", (*bigint.Int).Lsh),
		shift("shr", (*bigint.Int).Rsh),
		binary("gcd", "<x> <y>", (*bigint.Int).GCD),
		binary("modinv", "<x> <mod>", (*bigint.Int).ModInverse),
		builtin{name: "modpow", usage: "<base> <exp> <mod>", arity: 3, fn: func(a []*bigint.Int) (*bigint.Int, error) {
			return a[0].ModPow(a[1], a[2])
		}},
		binary("jacobi", "<a> <b>", func(a, b *bigint.Int) (*bigint.Int, error) {
			j, err := bigint.Jacobi(a, b)
			if err != nil {
				return nil, err
			}
			return smallResult(j, a)
		}),
		binary("min", "<x> <y>", func(x, y *bigint.Int) (*bigint.Int, error) {
			return bigint.Min(x, y), nil
		}),
		binary("max", "<x> <y>", func(x, y *bigint.Int) (*bigint.Int, error) {
			return bigint.Max(x, y), nil
		}),
		binary("cmp", "<x> <y>", func(x, y *bigint.Int) (*bigint.Int, error) {
			return smallResult(x.Cmp(y), x)
		}),
	}
}
