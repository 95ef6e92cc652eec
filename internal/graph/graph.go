// Package graph holds the lazy computation graph: an append-only arena of
// immutable nodes addressed by stable integer handles.
package graph

import (
	"errors"
	"fmt"
	"sync"

	"github.com/born-ml/lazygraph/internal/ops"
	"github.com/born-ml/lazygraph/internal/tensor"
)

// Common errors.
var (
	ErrInvalidShape = errors.New("invalid shape")
	ErrInvalidNode  = errors.New("invalid node")
	ErrForeignNode  = errors.New("node belongs to a different graph")
	ErrInvalidOp    = errors.New("invalid operator")
)

// ID is a node's position in its graph's arena.
type ID int

// record is the immutable payload behind a Node handle.
type record struct {
	shape tensor.Shape
	name  string
	op    ops.Op
	preds []ID
}

// Graph is an arena of nodes. Nodes can only reference nodes that already
// exist in the same graph, so the graph is acyclic by construction.
//
// A Graph is safe for concurrent use; node construction is serialized.
type Graph struct {
	mu    sync.RWMutex
	nodes []*record
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// Placeholder creates a node whose value must be supplied by a feed.
// name may be empty.
func (g *Graph) Placeholder(shape tensor.Shape, name string) (Node, error) {
	if err := shape.Validate(); err != nil {
		return Node{}, fmt.Errorf("%w: placeholder %q: %v", ErrInvalidShape, name, err)
	}
	return g.append(&record{
		shape: shape.Clone(),
		name:  name,
		op:    ops.Op{Kind: ops.Placeholder},
	}), nil
}

// Add returns a node computing l + r with broadcasting.
func (g *Graph) Add(l, r Node) (Node, error) {
	return g.elementwise(ops.Add, l, r)
}

// Sub returns a node computing l - r with broadcasting.
func (g *Graph) Sub(l, r Node) (Node, error) {
	return g.elementwise(ops.Sub, l, r)
}

// Mul returns a node computing l * r with broadcasting.
func (g *Graph) Mul(l, r Node) (Node, error) {
	return g.elementwise(ops.Mul, l, r)
}

// Div returns a node computing l / r with broadcasting.
func (g *Graph) Div(l, r Node) (Node, error) {
	return g.elementwise(ops.Div, l, r)
}

// Dot returns a node computing the inner product of l and r
// (last dimension of l against first dimension of r).
func (g *Graph) Dot(l, r Node) (Node, error) {
	lr, rr, err := g.operands(ops.Dot, l, r)
	if err != nil {
		return Node{}, err
	}

	shape, err := tensor.DotShape(lr.shape, rr.shape)
	if err != nil {
		return Node{}, err
	}

	return g.append(&record{
		shape: shape,
		op:    ops.Op{Kind: ops.Dot},
		preds: []ID{l.id, r.id},
	}), nil
}

// elementwise builds l OP r. When l has the smaller rank the predecessors
// are stored as (r, l) and the reversed kernel is bound, so the node still
// evaluates to l OP r.
func (g *Graph) elementwise(kind ops.Kind, l, r Node) (Node, error) {
	if !kind.Elementwise() {
		return Node{}, fmt.Errorf("%w: %s is not elementwise", ErrInvalidOp, kind)
	}
	lr, rr, err := g.operands(kind, l, r)
	if err != nil {
		return Node{}, err
	}

	shape, err := tensor.BroadcastShapes(lr.shape, rr.shape)
	if err != nil {
		return Node{}, err
	}

	rec := &record{
		shape: shape,
		op:    ops.Op{Kind: kind},
		preds: []ID{l.id, r.id},
	}
	if lr.shape.Rank() < rr.shape.Rank() {
		rec.op.Reversed = true
		rec.preds = []ID{r.id, l.id}
	}
	return g.append(rec), nil
}

func (g *Graph) operands(kind ops.Kind, l, r Node) (*record, *record, error) {
	lr, err := g.own(l)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: left operand: %w", kind, err)
	}
	rr, err := g.own(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: right operand: %w", kind, err)
	}
	return lr, rr, nil
}

// own returns n's record after checking n belongs to g.
func (g *Graph) own(n Node) (*record, error) {
	if n.g == nil {
		return nil, ErrInvalidNode
	}
	if n.g != g {
		return nil, ErrForeignNode
	}
	return g.lookup(n.id)
}

func (g *Graph) lookup(id ID) (*record, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if id < 0 || int(id) >= len(g.nodes) {
		return nil, fmt.Errorf("%w: id %d out of range", ErrInvalidNode, id)
	}
	return g.nodes[id], nil
}

func (g *Graph) append(rec *record) Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := ID(len(g.nodes))
	g.nodes = append(g.nodes, rec)
	return Node{g: g, id: id}
}

// Placeholders returns every placeholder node in creation order.
func (g *Graph) Placeholders() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Node
	for i, rec := range g.nodes {
		if rec.op.Kind == ops.Placeholder {
			out = append(out, Node{g: g, id: ID(i)})
		}
	}
	return out
}

// Lookup returns the first node created with the given name.
func (g *Graph) Lookup(name string) (Node, bool) {
	if name == "" {
		return Node{}, false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	for i, rec := range g.nodes {
		if rec.name == name {
			return Node{g: g, id: ID(i)}, true
		}
	}
	return Node{}, false
}
