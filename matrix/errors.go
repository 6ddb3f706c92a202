// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Algorithms return these sentinels (optionally wrapped with an operation
// tag via matrixErrorf) and tests match them with errors.Is. No exported
// function panics on user-triggered error conditions.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are negative,
	// or zero where the constructor requires a non-empty shape.
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes
	// (Mul inner mismatch, non-square input, wrong vector or buffer length).
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals a matrix expected to be symmetric within tolerance was not.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within tolerance")

	// ErrNaNInf signals a NaN or ±Inf where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix was passed.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrEigenFailed indicates that Jacobi sweeps did not converge within maxIter.
	ErrEigenFailed = errors.New("matrix: eigen decomposition failed")
)

// Operation tags used in wrapped errors.
const (
	opMul          = "Mul"
	opTranspose    = "Transpose"
	opScale        = "Scale"
	opMatVec       = "MatVec"
	opEigen        = "Eigen"
	opCenter       = "CenterColumns"
	opColumnStd    = "ColumnStd"
	opStandardize  = "Standardize"
	opCovariance   = "Covariance"
	opNewDenseFrom = "NewDenseFrom"
)

// matrixErrorf wraps err with an operation tag, keeping errors.Is/As working.
// Call only with err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
