// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package layers builds neural-network blocks out of graph nodes.
package layers

import (
	"math/rand"

	"github.com/born-ml/lazygraph/graph"
	"github.com/born-ml/lazygraph/internal/layers"
	"github.com/born-ml/lazygraph/tensor"
)

// Dense attaches y = x · W to g, where W is a new placeholder named
// name+"/weights" with shape [last(x), size]. It returns y and W.
func Dense(g *graph.Graph, x graph.Node, size int, name string) (graph.Node, graph.Node, error) {
	return layers.Dense(g, x, size, name)
}

// Xavier returns Glorot-uniform initial values for a weights placeholder.
func Xavier(shape tensor.Shape, rng *rand.Rand) *tensor.Tensor {
	return layers.Xavier(shape, rng)
}
