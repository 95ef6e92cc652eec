// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph builds lazy computation graphs.
//
// Nodes are immutable and compare by identity. Building a node only infers
// its shape; values are computed later by a session.
//
// Example:
//
//	g := graph.New()
//	x, _ := g.Placeholder(tensor.Shape{2, 2}, "x")
//	y, _ := g.Placeholder(tensor.Shape{2}, "y")
//	sum, _ := g.Add(y, x)        // [2 2]
//	product, _ := g.Mul(sum, x)  // [2 2]
package graph

import (
	"github.com/born-ml/lazygraph/internal/graph"
)

// Graph is an append-only arena of nodes.
type Graph = graph.Graph

// Node is a handle to a vertex of a Graph.
type Node = graph.Node

// ID is a node's stable position in its graph.
type ID = graph.ID

// Errors.
var (
	ErrInvalidShape = graph.ErrInvalidShape
	ErrInvalidNode  = graph.ErrInvalidNode
	ErrForeignNode  = graph.ErrForeignNode
	ErrInvalidOp    = graph.ErrInvalidOp
)

// New creates an empty graph.
func New() *Graph {
	return graph.New()
}
