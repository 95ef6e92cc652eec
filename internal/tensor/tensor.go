// Package tensor provides the dense float32 tensor and shape types used by lazygraph.
package tensor

import (
	"fmt"
	"math"
	"strings"
)

// Tensor is a dense, row-major n-dimensional array of float32.
//
// A Tensor is a concrete value: graph nodes describe deferred computations,
// tensors are what a session feeds in and gets back.
type Tensor struct {
	data   []float32
	shape  Shape
	stride []int
}

// New allocates a zero-filled tensor of the given shape.
func New(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &Tensor{
		data:   make([]float32, shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}, nil
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, but got %d",
			ErrDataLength, shape, shape.NumElements(), len(data))
	}

	t, err := New(shape)
	if err != nil {
		return nil, err
	}
	copy(t.data, data)
	return t, nil
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Strides returns the tensor's row-major strides.
func (t *Tensor) Strides() []int {
	return t.stride
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the underlying flat slice.
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor) Data() []float32 {
	return t.data
}

// At returns the element at the given multi-dimensional index.
func (t *Tensor) At(indices ...int) float32 {
	return t.data[t.flatIndex(indices)]
}

// Set writes the element at the given multi-dimensional index.
func (t *Tensor) Set(value float32, indices ...int) {
	t.data[t.flatIndex(indices)] = value
}

func (t *Tensor) flatIndex(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("tensor: %d indices for rank-%d tensor", len(indices), len(t.shape)))
	}
	idx := 0
	for i, v := range indices {
		if v < 0 || v >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d of size %d", v, i, t.shape[i]))
		}
		idx += v * t.stride[i]
	}
	return idx
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	return &Tensor{
		data:   append([]float32(nil), t.data...),
		shape:  t.shape.Clone(),
		stride: append([]int(nil), t.stride...),
	}
}

// Reshape returns a tensor sharing t's data with a new shape.
func (t *Tensor) Reshape(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != len(t.data) {
		return nil, fmt.Errorf("%w: cannot reshape %v (%d elements) to %v",
			ErrDataLength, t.shape, len(t.data), shape)
	}
	return &Tensor{
		data:   t.data,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}, nil
}

// Equal reports whether t and other have the same shape and identical elements.
func (t *Tensor) Equal(other *Tensor) bool {
	if other == nil || !t.shape.Equal(other.shape) {
		return false
	}
	for i := range t.data {
		if t.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// AllClose reports whether t and other have the same shape and every element
// differs by at most tol.
func (t *Tensor) AllClose(other *Tensor, tol float64) bool {
	if other == nil || !t.shape.Equal(other.shape) {
		return false
	}
	for i := range t.data {
		if math.Abs(float64(t.data[i]-other.data[i])) > tol {
			return false
		}
	}
	return true
}

// String formats the tensor as nested brackets, e.g. [[1 2] [3 4]].
func (t *Tensor) String() string {
	var sb strings.Builder
	if len(t.shape) == 0 {
		fmt.Fprintf(&sb, "%g", t.data[0])
		return sb.String()
	}
	t.format(&sb, 0, 0)
	return sb.String()
}

func (t *Tensor) format(sb *strings.Builder, dim, offset int) {
	sb.WriteByte('[')
	for i := 0; i < t.shape[dim]; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if dim == len(t.shape)-1 {
			fmt.Fprintf(sb, "%g", t.data[offset+i])
			continue
		}
		t.format(sb, dim+1, offset+i*t.stride[dim])
	}
	sb.WriteByte(']')
}
