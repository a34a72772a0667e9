package operation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agbru/bigrsa/internal/bigint"
	apperrors "github.com/agbru/bigrsa/internal/errors"
)

// ErrUnknownOperation is returned by Get for a name nobody registered.
var ErrUnknownOperation = errors.New("unknown operation")

// Factory looks up operations by name.
type Factory interface {
	// Register adds op. Registering a name twice is an error.
	Register(op Operation) error
	// Get returns the operation registered under name (case-insensitive).
	Get(name string) (Operation, error)
	// List returns the registered names in sorted order.
	List() []string
}

// DefaultFactory is a concurrency-safe Factory backed by a map.
type DefaultFactory struct {
	mu  sync.RWMutex
	ops map[string]Operation
}

// NewFactory returns an empty factory.
func NewFactory() *DefaultFactory {
	return &DefaultFactory{ops: make(map[string]Operation)}
}

// NewDefaultFactory returns a factory holding every built-in operation.
func NewDefaultFactory() *DefaultFactory {
	f := NewFactory()
	for _, op := range builtins() {
		if err := f.Register(op); err != nil {
			panic(err)
		}
	}
	return f
}

var globalFactory = sync.OnceValue(NewDefaultFactory)

// GlobalFactory returns the process-wide factory of built-in operations.
func GlobalFactory() *DefaultFactory {
	return globalFactory()
}

// Register implements Factory.
func (f *DefaultFactory) Register(op Operation) error {
	name := strings.ToLower(op.Name())
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.ops[name]; exists {
		return fmt.Errorf("operation %q already registered", name)
	}
	f.ops[name] = op
	return nil
}

// Get implements Factory.
func (f *DefaultFactory) Get(name string) (Operation, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	op, ok := f.ops[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	return op, nil
}

// List implements Factory.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.ops))
	for name := range f.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseArgs parses raw operands in the given radix at the given capacity.
// A malformed operand is reported as a ValidationError naming its position.
func ParseArgs(raw []string, radix, capacity int) ([]*bigint.Int, error) {
	args := make([]*bigint.Int, len(raw))
	for i, s := range raw {
		v, err := bigint.Parse(s, radix, bigint.WithCapacity(capacity))
		if err != nil {
			return nil, apperrors.ValidationError{
				Field:   fmt.Sprintf("operand %d", i+1),
				Message: fmt.Sprintf("cannot parse %q in radix %d", s, radix),
				Cause:   err,
			}
		}
		args[i] = v
	}
	return args, nil
}
