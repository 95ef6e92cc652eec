package graph

import (
	"fmt"

	"github.com/born-ml/lazygraph/internal/ops"
	"github.com/born-ml/lazygraph/internal/tensor"
)

// Node is a handle to a vertex of a Graph.
//
// Nodes compare by identity: two handles are equal only if they address the
// same vertex of the same graph, regardless of shape or structure. Node is
// comparable and intended to be used directly as a map key.
// The zero Node is invalid.
type Node struct {
	g  *Graph
	id ID
}

// Valid reports whether n addresses an existing vertex of a Graph.
func (n Node) Valid() bool {
	if n.g == nil {
		return false
	}
	_, err := n.g.lookup(n.id)
	return err == nil
}

// Graph returns the graph n belongs to.
func (n Node) Graph() *Graph {
	return n.g
}

// ID returns n's stable position in its graph.
func (n Node) ID() ID {
	return n.id
}

func (n Node) rec() *record {
	if n.g == nil {
		panic("graph: use of zero Node")
	}
	rec, err := n.g.lookup(n.id)
	if err != nil {
		panic(err)
	}
	return rec
}

// Shape returns a copy of the node's declared shape.
func (n Node) Shape() tensor.Shape {
	return n.rec().shape.Clone()
}

// Name returns the node's human-readable name, or "".
func (n Node) Name() string {
	return n.rec().name
}

// Op returns the operator bound to the node.
func (n Node) Op() ops.Op {
	return n.rec().op
}

// IsPlaceholder reports whether n must be fed.
func (n Node) IsPlaceholder() bool {
	return n.rec().op.Kind == ops.Placeholder
}

// NumPreds returns the number of predecessors.
func (n Node) NumPreds() int {
	return len(n.rec().preds)
}

// Preds returns the node's predecessors in operand order.
func (n Node) Preds() []Node {
	ids := n.rec().preds
	preds := make([]Node, len(ids))
	for i, id := range ids {
		preds[i] = Node{g: n.g, id: id}
	}
	return preds
}

// String returns e.g. "x#0[2 2]" for a named node or "add#2[2 2]" otherwise.
func (n Node) String() string {
	if n.g == nil {
		return "<invalid node>"
	}
	rec, err := n.g.lookup(n.id)
	if err != nil {
		return fmt.Sprintf("<invalid node #%d>", n.id)
	}
	label := rec.name
	if label == "" {
		label = rec.op.Kind.String()
	}
	return fmt.Sprintf("%s#%d%v", label, n.id, rec.shape)
}
