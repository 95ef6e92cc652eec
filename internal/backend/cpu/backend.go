// Package cpu implements the elementwise and inner-product kernels lazygraph evaluates on the CPU.
package cpu

import (
	"fmt"

	"github.com/born-ml/lazygraph/internal/parallel"
	"github.com/born-ml/lazygraph/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
// Large elementwise operations are split across goroutines per its parallel config.
type CPUBackend struct {
	parallel parallel.Config
}

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithParallel overrides the worker fan-out used by elementwise kernels.
func WithParallel(cfg parallel.Config) Option {
	return func(cpu *CPUBackend) {
		cpu.parallel = cfg
	}
}

// New creates a new CPU backend.
func New(opts ...Option) *CPUBackend {
	cpu := &CPUBackend{
		parallel: parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(cpu)
	}
	return cpu
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

type vectorizedFunc func(dst, a, b []float32)

type broadcastFunc func(dst, a, b []float32, bc *broadcaster, start, end int)

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	return cpu.binary("add", a, b, addVectorizedFloat32, addBroadcastFloat32)
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	return cpu.binary("sub", a, b, subVectorizedFloat32, subBroadcastFloat32)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	return cpu.binary("mul", a, b, mulVectorizedFloat32, mulBroadcastFloat32)
}

// Div performs element-wise division with broadcasting.
// Division by zero follows IEEE 754 (±Inf or NaN).
func (cpu *CPUBackend) Div(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	return cpu.binary("div", a, b, divVectorizedFloat32, divBroadcastFloat32)
}

// Neg returns -x.
func (cpu *CPUBackend) Neg(x *tensor.Tensor) *tensor.Tensor {
	result := tensor.Zeros(x.Shape())
	dst, src := result.Data(), x.Data()
	parallel.ForRange(len(dst), func(start, end int) {
		negFloat32(dst[start:end], src[start:end])
	}, cpu.parallel)
	return result
}

func (cpu *CPUBackend) binary(name string, a, b *tensor.Tensor, vec vectorizedFunc, bcast broadcastFunc) (*tensor.Tensor, error) {
	outShape, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	result, err := tensor.New(outShape)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create result tensor: %w", name, err)
	}

	dst, aData, bData := result.Data(), a.Data(), b.Data()

	if a.Shape().Equal(b.Shape()) {
		// Fast path: same shape
		parallel.ForRange(len(dst), func(start, end int) {
			vec(dst[start:end], aData[start:end], bData[start:end])
		}, cpu.parallel)
		return result, nil
	}

	// Slow path: broadcasting required
	bc := newBroadcaster(a.Shape(), b.Shape(), outShape)
	parallel.ForRange(len(dst), func(start, end int) {
		bcast(dst, aData, bData, bc, start, end)
	}, cpu.parallel)
	return result, nil
}
