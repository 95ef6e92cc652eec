// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go backend lazygraph sessions evaluate on.
//
// Elementwise kernels broadcast with stride-0 indexing and split large
// outputs across goroutines. Dot contracts the last dimension of its left
// operand with the first dimension of its right operand.
//
// Example:
//
//	s := session.New(session.WithBackend(cpu.New(cpu.WithWorkers(4))))
package cpu

import (
	internalcpu "github.com/born-ml/lazygraph/internal/backend/cpu"
	"github.com/born-ml/lazygraph/internal/ops"
	"github.com/born-ml/lazygraph/internal/parallel"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Option configures a Backend.
type Option = internalcpu.Option

// Compile-time check that Backend can run graph kernels.
var _ ops.Backend = (*Backend)(nil)

// New creates a new CPU backend.
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}

// WithWorkers bounds the goroutines a single elementwise kernel may use.
// n <= 1 runs every kernel on the calling goroutine.
func WithWorkers(n int) Option {
	cfg := parallel.DefaultConfig()
	cfg.Enabled = n > 1
	cfg.NumWorkers = n
	return internalcpu.WithParallel(cfg)
}
