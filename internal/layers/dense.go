// Package layers builds common neural-network blocks out of graph nodes.
package layers

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/born-ml/lazygraph/internal/graph"
	"github.com/born-ml/lazygraph/internal/tensor"
)

// Dense attaches a fully connected layer to x.
//
// Performs: y = x · W
// where:
//   - x has shape [..., in]
//   - W is a new placeholder named name+"/weights" with shape [in, size]
//   - y has shape [..., size]
//
// The weights are a placeholder, so they must be fed on every Run
// (see Xavier for initial values).
//
// Example:
//
//	x, _ := g.Placeholder(tensor.Shape{32, 784}, "x")
//	hidden, weights, err := layers.Dense(g, x, 128, "hidden") // hidden: [32 128]
func Dense(g *graph.Graph, x graph.Node, size int, name string) (graph.Node, graph.Node, error) {
	if size <= 0 {
		return graph.Node{}, graph.Node{}, fmt.Errorf("dense %q: %w: size %d", name, graph.ErrInvalidShape, size)
	}
	if !x.Valid() {
		return graph.Node{}, graph.Node{}, fmt.Errorf("dense %q: %w", name, graph.ErrInvalidNode)
	}

	shape := x.Shape()
	if shape.Rank() == 0 {
		return graph.Node{}, graph.Node{}, fmt.Errorf("dense %q: %w: scalar input", name, graph.ErrInvalidShape)
	}
	in := shape[shape.Rank()-1]

	weights, err := g.Placeholder(tensor.Shape{in, size}, name+"/weights")
	if err != nil {
		return graph.Node{}, graph.Node{}, fmt.Errorf("dense %q: %w", name, err)
	}

	y, err := g.Dot(x, weights)
	if err != nil {
		return graph.Node{}, graph.Node{}, fmt.Errorf("dense %q: %w", name, err)
	}
	return y, weights, nil
}

// Xavier returns a tensor for a weights node with values drawn from
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
//
// fan_in and fan_out are the first and last dimensions of shape.
func Xavier(shape tensor.Shape, rng *rand.Rand) *tensor.Tensor {
	t := tensor.Zeros(shape)
	if shape.Rank() == 0 {
		return t
	}

	fanIn, fanOut := shape[0], shape[shape.Rank()-1]
	if fanIn+fanOut == 0 {
		return t
	}
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	data := t.Data()
	for i := range data {
		//nolint:gosec // Weight initialization is not security-critical
		data[i] = float32((rng.Float64()*2.0 - 1.0) * bound)
	}
	return t
}
