// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense float32 tensors for lazygraph.
//
// # Overview
//
// Tensors are the values flowing through a graph: placeholders are fed
// tensors and every fetched node evaluates to one. This package provides:
//   - Row-major float32 tensors with an immutable shape
//   - NumPy-style broadcasting of shapes
//   - Constructors for vectors, matrices and rank-3 cubes
//
// # Basic Usage
//
//	x, _ := tensor.FromMatrix([][]float32{{1, 2}, {3, 4}})
//	y := tensor.FromVector([]float32{5, 6})
//
//	out, _ := tensor.BroadcastShapes(x.Shape(), y.Shape()) // [2 2]
//
// # Broadcasting
//
// Shapes are aligned from the trailing dimension. Two aligned dimensions are
// compatible when they are equal or one of them is 1; leading dimensions of
// the longer shape are copied through:
//
//	[20 50 5] with [80 20 1 5] -> [80 20 50 5]
//	[3 4] with [3 5]           -> error
package tensor
