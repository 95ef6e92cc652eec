// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/lazygraph/internal/tensor"
)

// Type aliases for public API

// Tensor is a dense row-major float32 tensor.
type Tensor = tensor.Tensor

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// ShapeError describes two shapes that cannot be combined.
type ShapeError = tensor.ShapeError

// Errors.
var (
	ErrShapeMismatch = tensor.ErrShapeMismatch
	ErrDataLength    = tensor.ErrDataLength
	ErrRagged        = tensor.ErrRagged
)

// New creates a zero-filled tensor.
func New(shape Shape) (*Tensor, error) {
	return tensor.New(shape)
}

// FromSlice creates a tensor from a flat row-major slice.
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// FromVector creates a rank-1 tensor.
func FromVector(v []float32) *Tensor {
	return tensor.FromVector(v)
}

// FromMatrix creates a rank-2 tensor from equal-length rows.
func FromMatrix(rows [][]float32) (*Tensor, error) {
	return tensor.FromMatrix(rows)
}

// FromCube creates a rank-3 tensor from equally shaped planes.
func FromCube(planes [][][]float32) (*Tensor, error) {
	return tensor.FromCube(planes)
}

// Zeros creates a tensor filled with zeros.
// Panics on negative dimensions.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return tensor.Ones(shape)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float32) *Tensor {
	return tensor.Full(shape, value)
}

// Scalar creates a rank-0 tensor.
func Scalar(value float32) *Tensor {
	return tensor.Scalar(value)
}

// BroadcastShapes returns the shape two operands broadcast to.
func BroadcastShapes(a, b Shape) (Shape, error) {
	return tensor.BroadcastShapes(a, b)
}
