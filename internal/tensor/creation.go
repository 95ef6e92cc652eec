package tensor

import "fmt"

// Zeros creates a tensor filled with zeros.
//
// Panics on negative dimensions.
func Zeros(shape Shape) *Tensor {
	t, err := New(shape)
	if err != nil {
		panic(err)
	}
	return t
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return Full(shape, 1)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full(Shape{3, 3}, 3.14)
func Full(shape Shape, value float32) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Scalar creates a rank-0 tensor holding value.
func Scalar(value float32) *Tensor {
	return Full(Shape{}, value)
}

// FromVector creates a rank-1 tensor from a slice.
func FromVector(v []float32) *Tensor {
	t := Zeros(Shape{len(v)})
	copy(t.data, v)
	return t
}

// FromMatrix creates a rank-2 tensor from a slice of equal-length rows.
//
// Example:
//
//	x, _ := tensor.FromMatrix([][]float32{{1, 2}, {3, 4}}) // shape [2 2]
func FromMatrix(rows [][]float32) (*Tensor, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	data := make([]float32, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d elements, want %d", ErrRagged, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return FromSlice(data, Shape{len(rows), cols})
}

// FromCube creates a rank-3 tensor from a slice of equally shaped matrices.
func FromCube(planes [][][]float32) (*Tensor, error) {
	if len(planes) == 0 {
		return New(Shape{0, 0, 0})
	}
	first, err := FromMatrix(planes[0])
	if err != nil {
		return nil, fmt.Errorf("plane 0: %w", err)
	}
	inner := first.shape
	data := make([]float32, 0, len(planes)*inner.NumElements())
	for i, plane := range planes {
		m, err := FromMatrix(plane)
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		if !m.shape.Equal(inner) {
			return nil, fmt.Errorf("%w: plane %d has shape %v, want %v", ErrRagged, i, m.shape, inner)
		}
		data = append(data, m.data...)
	}
	return FromSlice(data, Shape{len(planes), inner[0], inner[1]})
}
