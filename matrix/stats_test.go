// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/radial/matrix"
)

func TestCenterColumns(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 3, 2, []float64{1, 10, 2, 20, 3, 30})
	Xc, means, err := matrix.CenterColumns(X)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 20}, means)
	CompareClose(t, Xc, NewFilledDense(t, 3, 2, []float64{-1, -10, 0, 0, 1, 10}), 0, 1e-12)

	// Input untouched.
	assert.Equal(t, 1.0, MustAt(t, X, 0, 0))
}

func TestColumnStd(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 4, 1, []float64{2, 4, 4, 6})
	pop, err := matrix.ColumnStd(X, 0)
	require.NoError(t, err)
	sliceClose(t, pop, []float64{math.Sqrt(2)}, 0, 1e-12)

	smp, err := matrix.ColumnStd(hide{X}, 1)
	require.NoError(t, err)
	sliceClose(t, smp, []float64{math.Sqrt(8.0 / 3.0)}, 0, 1e-12)

	one := NewFilledDense(t, 1, 1, []float64{5})
	_, err = matrix.ColumnStd(one, 1)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.ColumnStd(X, -1)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestStandardize_ConstantColumn(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 4, 2, []float64{
		2, 7,
		4, 7,
		4, 7,
		6, 7,
	})
	Z, means, scales, err := matrix.Standardize(X)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 7}, means)
	sliceClose(t, scales, []float64{math.Sqrt(2), 1}, 0, 1e-12)

	s := 1 / math.Sqrt(2)
	CompareClose(t, Z, NewFilledDense(t, 4, 2, []float64{-2 * s, 0, 0, 0, 0, 0, 2 * s, 0}), 0, 1e-12)
}

func TestCovariance(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 3, 2, []float64{1, 2, 2, 4, 3, 6})
	C, means, err := matrix.Covariance(X)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, means)
	CompareClose(t, C, NewFilledDense(t, 2, 2, []float64{1, 2, 2, 4}), 0, 1e-12)

	_, _, err = matrix.Covariance(NewFilledDense(t, 1, 2, []float64{1, 2}))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, _, err = matrix.Covariance(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}
