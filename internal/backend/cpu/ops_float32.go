package cpu

// Float32 vectorized operations (same shape)

func addVectorizedFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subVectorizedFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mulVectorizedFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func divVectorizedFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] / b[i]
	}
}

func negFloat32(dst, src []float32) {
	for i := range dst {
		dst[i] = -src[i]
	}
}

// Float32 broadcasting operations over output range [start, end)

func addBroadcastFloat32(dst, a, b []float32, bc *broadcaster, start, end int) {
	for i := start; i < end; i++ {
		aIdx, bIdx := bc.indices(i)
		dst[i] = a[aIdx] + b[bIdx]
	}
}

func subBroadcastFloat32(dst, a, b []float32, bc *broadcaster, start, end int) {
	for i := start; i < end; i++ {
		aIdx, bIdx := bc.indices(i)
		dst[i] = a[aIdx] - b[bIdx]
	}
}

func mulBroadcastFloat32(dst, a, b []float32, bc *broadcaster, start, end int) {
	for i := start; i < end; i++ {
		aIdx, bIdx := bc.indices(i)
		dst[i] = a[aIdx] * b[bIdx]
	}
}

func divBroadcastFloat32(dst, a, b []float32, bc *broadcaster, start, end int) {
	for i := start; i < end; i++ {
		aIdx, bIdx := bc.indices(i)
		dst[i] = a[aIdx] / b[bIdx]
	}
}
