// SPDX-License-Identifier: MIT

package pca

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/radial/matrix"
)

// powerPairs extracts the k dominant eigenpairs of the symmetric matrix A by
// power iteration with Hotelling deflation (A ← A − λ·v·vᵀ).
//
// Each start vector is drawn from rng (standard normal entries) and kept
// orthogonal to the vectors already found. A component converges when the
// residual ‖A·v − λ·v‖ drops to tol; a zero image (A·v = 0) is an exact
// eigenpair with λ = 0.
//
// Errors: ErrNotConverged after maxIter iterations on any component.
func powerPairs(A matrix.Matrix, k int, tol float64, maxIter int, rng *rand.Rand) ([]float64, [][]float64, error) {
	n := A.Rows()
	work := A.Clone()
	vals := make([]float64, 0, k)
	vecs := make([][]float64, 0, k)

	for comp := 0; comp < k; comp++ {
		v := make([]float64, n)
		for i := range v {
			v[i] = rng.NormFloat64()
		}
		orthonormalize(v, vecs)

		var (
			lambda    float64
			converged bool
		)
		for iter := 0; iter < maxIter; iter++ {
			w, err := matrix.MatVec(work, v)
			if err != nil {
				return nil, nil, err
			}
			lambda = dot(v, w)

			resid := 0.0
			for i := range w {
				d := w[i] - lambda*v[i]
				resid += d * d
			}
			if math.Sqrt(resid) <= tol {
				converged = true
				break
			}

			orthonormalize(w, vecs)
			if norm(w) == 0 {
				lambda, converged = 0, true
				break
			}
			v = w
		}
		if !converged {
			return nil, nil, fmt.Errorf("%w: power iteration, component %d after %d iterations",
				ErrNotConverged, comp, maxIter)
		}
		vals = append(vals, lambda)
		vecs = append(vecs, v)

		// Deflate.
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				a, _ := work.At(i, j)
				if err := work.Set(i, j, a-lambda*v[i]*v[j]); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	return vals, vecs, nil
}

// orthonormalize removes from v its projections on basis (Gram–Schmidt) and
// scales it to unit length. A vector that collapses to zero is left at zero.
func orthonormalize(v []float64, basis [][]float64) {
	for _, b := range basis {
		d := dot(v, b)
		for i := range v {
			v[i] -= d * b[i]
		}
	}
	nv := norm(v)
	if nv == 0 {
		return
	}
	for i := range v {
		v[i] /= nv
	}
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}

	return s
}

func norm(v []float64) float64 { return math.Sqrt(dot(v, v)) }
