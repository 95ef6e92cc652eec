// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package session evaluates graph nodes.
//
// Example:
//
//	s := session.New()
//	out, err := s.Run(session.Feeds{x: xv, y: yv}, []graph.Node{product})
package session

import (
	"context"
	"log/slog"

	"github.com/born-ml/lazygraph/graph"
	"github.com/born-ml/lazygraph/internal/ops"
	"github.com/born-ml/lazygraph/internal/session"
	"github.com/born-ml/lazygraph/tensor"
)

// Session evaluates fetched nodes. Not safe for concurrent Run calls.
type Session = session.Session

// Feeds binds values to nodes for one Run.
type Feeds = session.Feeds

// State is a node's progress during a Run.
type State = session.State

// Option configures a Session.
type Option = session.Option

// Backend runs kernels. *cpu.Backend implements it.
type Backend = ops.Backend

// BatchOptions configures RunBatch.
type BatchOptions = session.BatchOptions

// FeedError reports a fed value whose shape differs from its node.
type FeedError = session.FeedError

// Node states.
const (
	Unvisited = session.Unvisited
	Pending   = session.Pending
	Ready     = session.Ready
	Computed  = session.Computed
	Fed       = session.Fed
)

// Errors.
var (
	ErrFeedShape        = session.ErrFeedShape
	ErrNilFeed          = session.ErrNilFeed
	ErrArity            = ops.ErrArity
	ErrUnfedPlaceholder = ops.ErrUnfedPlaceholder
)

// New creates a Session on the CPU backend.
func New(opts ...Option) *Session {
	return session.New(opts...)
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return session.WithLogger(logger)
}

// WithFeedValidation toggles fed shape checks (on by default).
func WithFeedValidation(enabled bool) Option {
	return session.WithFeedValidation(enabled)
}

// WithBackend sets the compute backend.
func WithBackend(b Backend) Option {
	return session.WithBackend(b)
}

// RunBatch evaluates fetches once per feed set, one Session per worker.
func RunBatch(ctx context.Context, batch []Feeds, fetches []graph.Node, opts BatchOptions) ([][]*tensor.Tensor, error) {
	return session.RunBatch(ctx, batch, fetches, opts)
}
