// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package session_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/born-ml/lazygraph/backend/cpu"
	"github.com/born-ml/lazygraph/graph"
	"github.com/born-ml/lazygraph/layers"
	"github.com/born-ml/lazygraph/session"
	"github.com/born-ml/lazygraph/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() session.Option {
	return session.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func TestPublicRun(t *testing.T) {
	g := graph.New()
	x, err := g.Placeholder(tensor.Shape{2, 2}, "x")
	require.NoError(t, err)
	y, err := g.Placeholder(tensor.Shape{2}, "y")
	require.NoError(t, err)
	sum, err := g.Add(y, x)
	require.NoError(t, err)
	product, err := g.Mul(sum, x)
	require.NoError(t, err)

	xv, err := tensor.FromMatrix([][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)

	s := session.New(quiet(), session.WithBackend(cpu.New(cpu.WithWorkers(1))))
	out, err := s.Run(session.Feeds{x: xv, y: tensor.FromVector([]float32{5, 6})}, []graph.Node{product})
	require.NoError(t, err)
	assert.Equal(t, []float32{6, 16, 24, 40}, out[0].Data())
	assert.Equal(t, session.Computed, s.State(sum))

	_, err = s.Run(session.Feeds{x: xv}, []graph.Node{product})
	assert.True(t, errors.Is(err, session.ErrUnfedPlaceholder))
}

func TestPublicDense(t *testing.T) {
	g := graph.New()
	x, err := g.Placeholder(tensor.Shape{4, 3}, "x")
	require.NoError(t, err)
	y, w, err := layers.Dense(g, x, 2, "dense")
	require.NoError(t, err)

	s := session.New(quiet())
	out, err := s.Run(session.Feeds{
		x: tensor.Ones(tensor.Shape{4, 3}),
		w: tensor.Full(tensor.Shape{3, 2}, 0.5),
	}, []graph.Node{y})
	require.NoError(t, err)
	assert.True(t, tensor.Full(tensor.Shape{4, 2}, 1.5).Equal(out[0]))
}
