package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// Validate checks if the shape is valid (all dimensions >= 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Rules:
// 1. Compare shapes element-wise from right to left
// 2. Dimensions are compatible if:
//   - They are equal, OR
//   - One of them is 1
//
// 3. Leading dimensions of the longer shape are copied through unchanged
//
// Examples:
//
//	(3, 1) + (3, 5)    → (3, 5)
//	(20, 50, 5) + (1, 5) → (20, 50, 5)
//	(2, 2) + (2)       → (2, 2)
//	(3, 4) + (3, 5)    → *ShapeError
func BroadcastShapes(a, b Shape) (Shape, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)

	for i := 0; i < maxLen; i++ {
		aIdx := len(a) - 1 - i
		bIdx := len(b) - 1 - i
		outIdx := maxLen - 1 - i

		// Past the shorter shape: copy through.
		if aIdx < 0 {
			result[outIdx] = b[bIdx]
			continue
		}
		if bIdx < 0 {
			result[outIdx] = a[aIdx]
			continue
		}

		aDim, bDim := a[aIdx], b[bIdx]
		switch {
		case aDim == bDim:
			result[outIdx] = aDim
		case aDim == 1:
			result[outIdx] = bDim
		case bDim == 1:
			result[outIdx] = aDim
		default:
			return nil, &ShapeError{
				Op:   "broadcast",
				A:    a.Clone(),
				B:    b.Clone(),
				Axis: outIdx,
				ADim: aDim,
				BDim: bDim,
			}
		}
	}

	return result, nil
}

// DotShape returns the shape of the inner product of a and b:
// the last dimension of a is contracted with the first dimension of b,
// leaving a[:-1] ++ b[1:]. A fully contracted result has shape [1].
func DotShape(a, b Shape) (Shape, error) {
	if len(a) == 0 || len(b) == 0 || a[len(a)-1] != b[0] {
		shapeErr := &ShapeError{Op: "dot", A: a.Clone(), B: b.Clone(), Axis: len(a) - 1}
		if len(a) > 0 {
			shapeErr.ADim = a[len(a)-1]
		}
		if len(b) > 0 {
			shapeErr.BDim = b[0]
		}
		return nil, shapeErr
	}

	shape := make(Shape, 0, len(a)+len(b)-2)
	shape = append(shape, a[:len(a)-1]...)
	shape = append(shape, b[1:]...)
	if len(shape) == 0 {
		// The inner product is a scalar
		shape = append(shape, 1)
	}
	return shape, nil
}
