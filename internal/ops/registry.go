package ops

import (
	"fmt"
	"sort"
	"sync"

	"github.com/born-ml/lazygraph/internal/tensor"
)

// Kind identifies an operator.
type Kind int

// Supported operators.
const (
	Placeholder Kind = iota
	Add
	Sub
	Mul
	Div
	Dot
)

var kindNames = map[Kind]string{
	Placeholder: "placeholder",
	Add:         "add",
	Sub:         "sub",
	Mul:         "mul",
	Div:         "div",
	Dot:         "dot",
}

// String returns the operator name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Elementwise reports whether k is a broadcasting elementwise operator.
func (k Kind) Elementwise() bool {
	switch k {
	case Add, Sub, Mul, Div:
		return true
	default:
		return false
	}
}

// Op is the operator bound to a graph node.
type Op struct {
	Kind     Kind
	Reversed bool // Operands arrive as (right, left).
}

// String returns e.g. "sub" or "sub(reversed)".
func (op Op) String() string {
	if op.Reversed {
		return op.Kind.String() + "(reversed)"
	}
	return op.Kind.String()
}

// Backend is the compute surface kernels delegate to.
type Backend interface {
	Add(a, b *tensor.Tensor) (*tensor.Tensor, error)
	Sub(a, b *tensor.Tensor) (*tensor.Tensor, error)
	Mul(a, b *tensor.Tensor) (*tensor.Tensor, error)
	Div(a, b *tensor.Tensor) (*tensor.Tensor, error)
	Dot(a, b *tensor.Tensor) (*tensor.Tensor, error)
	Neg(x *tensor.Tensor) *tensor.Tensor
}

// Kernel evaluates an operator on the concrete values of a node's predecessors.
type Kernel func(b Backend, operands []*tensor.Tensor) (*tensor.Tensor, error)

// Entry binds a Kind to its forward and reversed kernels.
// Reversed is nil for operators that are never bound in reverse.
type Entry struct {
	Kind     Kind
	Forward  Kernel
	Reversed Kernel
}

// Registry maps operator kinds to kernels.
type Registry struct {
	mu      sync.RWMutex
	entries map[Kind]Entry
}

// NewRegistry creates a new operator registry with all supported operators.
func NewRegistry() *Registry {
	r := &Registry{
		entries: make(map[Kind]Entry),
	}

	r.Register(Entry{Kind: Placeholder, Forward: evalPlaceholder, Reversed: evalPlaceholder})
	r.registerMathOps()

	return r
}

var defaultRegistry = NewRegistry()

// Default returns the shared registry holding the built-in kernels.
func Default() *Registry {
	return defaultRegistry
}

// Register adds or replaces the kernels for e.Kind.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.Kind] = e
}

// Get returns the entry for an operator kind.
func (r *Registry) Get(kind Kind) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[kind]
	return e, ok
}

// Eval runs op on operands with backend b.
func (r *Registry) Eval(b Backend, op Op, operands []*tensor.Tensor) (*tensor.Tensor, error) {
	e, ok := r.Get(op.Kind)
	if !ok {
		return nil, fmt.Errorf("unsupported operator: %s", op.Kind)
	}

	kernel := e.Forward
	if op.Reversed {
		kernel = e.Reversed
	}
	if kernel == nil {
		return nil, fmt.Errorf("operator %s has no kernel", op)
	}
	return kernel(b, operands)
}

// SupportedOps returns all registered operator kinds in ascending order.
func (r *Registry) SupportedOps() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.entries))
	for k := range r.entries {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// evalPlaceholder accepts any operand list and always fails:
// a placeholder only ever acquires a value through a feed.
func evalPlaceholder(_ Backend, _ []*tensor.Tensor) (*tensor.Tensor, error) {
	return nil, ErrUnfedPlaceholder
}
