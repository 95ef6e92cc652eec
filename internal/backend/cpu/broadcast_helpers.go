package cpu

import (
	"github.com/born-ml/lazygraph/internal/tensor"
)

// broadcaster maps flat output indices back to flat input indices.
type broadcaster struct {
	outStrides []int
	aStrides   []int
	bStrides   []int
}

func newBroadcaster(aShape, bShape, outShape tensor.Shape) *broadcaster {
	return &broadcaster{
		outStrides: outShape.ComputeStrides(),
		aStrides:   computeBroadcastStridesForShape(aShape, outShape),
		bStrides:   computeBroadcastStridesForShape(bShape, outShape),
	}
}

// indices returns the flat positions in a and b feeding output element outIdx.
func (bc *broadcaster) indices(outIdx int) (aIdx, bIdx int) {
	for i, stride := range bc.outStrides {
		// Extract coordinate along dimension i
		coord := outIdx / stride
		outIdx %= stride

		aIdx += coord * bc.aStrides[i]
		bIdx += coord * bc.bStrides[i]
	}
	return aIdx, bIdx
}

// computeBroadcastStridesForShape computes strides for broadcasting a shape to outShape.
// Returns strides where dimensions of size 1 have stride 0 (for broadcasting).
func computeBroadcastStridesForShape(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	// Pad input shape with 1s on the left
	inDim := len(inShape)
	offset := outDim - inDim

	// Compute original strides
	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0 || inIdx >= inDim:
			// Padded dimension, stride is 0
			strides[i] = 0
		case inShape[inIdx] == 1:
			// Broadcast dimension, stride is 0
			strides[i] = 0
		default:
			// Normal dimension, use original stride
			strides[i] = origStrides[inIdx]
		}
	}

	return strides
}
