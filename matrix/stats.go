// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column statistics used by projection pipelines: centering, standard
//     deviation, z-scoring and sample covariance.
//
// Determinism & Performance:
//   - Fixed i→j traversal; Dense fast paths read the flat buffer directly.

package matrix

import "math"

// columnMeans returns per-column means in a deterministic pass.
func columnMeans(X Matrix) ([]float64, error) {
	r, c := X.Rows(), X.Cols()
	means := make([]float64, c)

	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			base := i * c
			for j := 0; j < c; j++ {
				means[j] += d.data[base+j]
			}
		}
	} else {
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				v, err := X.At(i, j)
				if err != nil {
					return nil, err
				}
				means[j] += v
			}
		}
	}
	for j := range means {
		means[j] /= float64(r)
	}

	return means, nil
}

// applyColumns returns a Dense with out[i,j] = (X[i,j] − shift[j]) * scale[j].
func applyColumns(X Matrix, shift, scale []float64) (*Dense, error) {
	r, c := X.Rows(), X.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			base := i * c
			for j := 0; j < c; j++ {
				out.data[base+j] = (d.data[base+j] - shift[j]) * scale[j]
			}
		}

		return out, nil
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := X.At(i, j)
			if err != nil {
				return nil, err
			}
			out.data[i*c+j] = (v - shift[j]) * scale[j]
		}
	}

	return out, nil
}

// ones returns a slice of n ones.
func ones(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = 1
	}

	return s
}

// CenterColumns subtracts each column's mean.
//
// Returns the centered copy and the column means (len = Cols).
// Errors: ErrNilMatrix, wrapped At errors.
// Complexity: O(r*c).
func CenterColumns(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenter, err)
	}
	means, err := columnMeans(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenter, err)
	}
	Xc, err := applyColumns(X, means, ones(X.Cols()))
	if err != nil {
		return nil, nil, matrixErrorf(opCenter, err)
	}

	return Xc, means, nil
}

// ColumnStd returns per-column standard deviations with the given delta
// degrees of freedom (0 = population, 1 = sample).
//
// Errors: ErrNilMatrix; ErrDimensionMismatch when Rows <= ddof or ddof < 0.
func ColumnStd(X Matrix, ddof int) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnStd, err)
	}
	r, c := X.Rows(), X.Cols()
	if ddof < 0 || r <= ddof {
		return nil, matrixErrorf(opColumnStd, ErrDimensionMismatch)
	}
	means, err := columnMeans(X)
	if err != nil {
		return nil, matrixErrorf(opColumnStd, err)
	}

	sumsq := make([]float64, c)
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(opColumnStd, err)
			}
			d := v - means[j]
			sumsq[j] += d * d
		}
	}
	denom := float64(r - ddof)
	for j := range sumsq {
		sumsq[j] = math.Sqrt(sumsq[j] / denom)
	}

	return sumsq, nil
}

// Standardize z-scores every column with the population standard deviation.
// Zero-variance columns keep scale 1, so they become all zeros after centering.
//
// Returns the standardized copy, the column means and the scales used.
// Complexity: O(r*c).
func Standardize(X Matrix) (Matrix, []float64, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, nil, matrixErrorf(opStandardize, err)
	}
	means, err := columnMeans(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opStandardize, err)
	}
	stds, err := ColumnStd(X, 0)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opStandardize, err)
	}
	scales := make([]float64, len(stds))
	inv := make([]float64, len(stds))
	for j, s := range stds {
		if s > 0 {
			scales[j] = s
			inv[j] = 1.0 / s
		} else {
			scales[j] = 1
			inv[j] = 1
		}
	}
	Z, err := applyColumns(X, means, inv)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opStandardize, err)
	}

	return Z, means, scales, nil
}

// Covariance returns the sample covariance of columns, (Xcᵀ Xc)/(r−1).
//
// Errors: ErrNilMatrix; ErrDimensionMismatch when Rows < 2.
// Complexity: O(r*c²).
func Covariance(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	r := X.Rows()
	if r < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}
	Xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	Xct, err := Transpose(Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	G, err := Mul(Xct, Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	Cov, err := Scale(G, 1.0/float64(r-1))
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	return Cov, means, nil
}
