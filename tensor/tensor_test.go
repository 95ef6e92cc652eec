// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"testing"

	"github.com/born-ml/lazygraph/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicConstructors(t *testing.T) {
	m, err := tensor.FromMatrix([][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, m.Shape())

	c, err := tensor.FromCube([][][]float32{{{1, 1}, {1, 1}}, {{1, 1}, {1, 1}}})
	require.NoError(t, err)
	assert.True(t, tensor.Ones(tensor.Shape{2, 2, 2}).Equal(c))

	_, err = tensor.FromMatrix([][]float32{{1, 2}, {3}})
	assert.True(t, errors.Is(err, tensor.ErrRagged))
}

func TestPublicBroadcastShapes(t *testing.T) {
	got, err := tensor.BroadcastShapes(tensor.Shape{20, 50, 5}, tensor.Shape{80, 20, 1, 5})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{80, 20, 50, 5}, got)

	_, err = tensor.BroadcastShapes(tensor.Shape{3, 4}, tensor.Shape{3, 5})
	var shapeErr *tensor.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.True(t, errors.Is(err, tensor.ErrShapeMismatch))
}
