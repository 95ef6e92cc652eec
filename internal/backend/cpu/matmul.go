package cpu

import (
	"github.com/born-ml/lazygraph/internal/tensor"
)

// Dot computes the inner product of a and b (see tensor.DotShape).
// Higher-rank operands are flattened to (M, K) @ (K, N).
func (cpu *CPUBackend) Dot(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	outShape, err := tensor.DotShape(a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}

	aShape := a.Shape()
	k := aShape[len(aShape)-1]
	m := aShape[:len(aShape)-1].NumElements()
	n := b.Shape()[1:].NumElements()

	result, err := tensor.New(outShape)
	if err != nil {
		return nil, err
	}

	matmulFloat32(result.Data(), a.Data(), b.Data(), m, k, n)
	return result, nil
}

// matmulFloat32 performs naive matrix multiplication for float32.
// C[i,j] = sum_k A[i,k] * B[k,j]
func matmulFloat32(c, a, b []float32, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			sum := float32(0)
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a[i*k+kIdx] * b[kIdx*n+j]
			}
			c[i*n+j] = sum
		}
	}
}
