// SPDX-License-Identifier: MIT

package matrix

import "math"

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via
// classical Jacobi rotations.
//
// Implementation:
//   - Stage 1: ValidateSymmetric(m, tol); copy m into a Dense work buffer A.
//   - Stage 2: repeatedly pick (p,q) maximizing |A[p,q]| in i→j order and
//     zero it with one rotation, accumulating the rotation into Q.
//   - Stage 3: stop when max |A[p,q]| <= tol; eigenvalues are diag(A).
//
// Returns:
//   - []float64: eigenvalues, unordered (diagonal order of the rotated matrix).
//   - Matrix: Q whose column i is the unit eigenvector of eigenvalue i.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrAsymmetry, ErrNaNInf (bad tol).
//   - ErrEigenFailed when max |A[p,q]| > tol after maxIter rotations.
//
// Determinism:
//   - Fixed pivot scan and update order.
//
// Complexity:
//   - O(n²) per rotation (pivot scan dominates), O(maxIter·n²) total; O(n²) memory.
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, Matrix, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	tol = math.Abs(tol)
	n := m.Rows()

	A, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	if d, ok := m.(*Dense); ok {
		copy(A.data, d.data)
	} else {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v, aErr := m.At(i, j)
				if aErr != nil {
					return nil, nil, matrixErrorf(opEigen, aErr)
				}
				A.data[i*n+j] = v
			}
		}
	}
	Q, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	for i := 0; i < n; i++ {
		Q.data[i*n+i] = 1
	}

	var (
		i, j, p, q     int
		maxOff, off    float64
		app, aqq, apq  float64
		aip, aiq       float64
		theta, t, c, s float64
	)
	for iter := 0; iter < maxIter; iter++ {
		// J.1: pivot search over the strict upper triangle.
		maxOff = 0
		for i = 0; i < n; i++ {
			base := i * n
			for j = i + 1; j < n; j++ {
				off = math.Abs(A.data[base+j])
				if off > maxOff {
					maxOff, p, q = off, i, j
				}
			}
		}
		if maxOff <= tol {
			break
		}

		// J.2: rotation parameters.
		app = A.data[p*n+p]
		aqq = A.data[q*n+q]
		apq = A.data[p*n+q]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		// J.3: rotate rows/columns p and q of A.
		for i = 0; i < n; i++ {
			if i == p || i == q {
				continue
			}
			aip = A.data[i*n+p]
			aiq = A.data[i*n+q]
			nip := c*aip - s*aiq
			niq := s*aip + c*aiq
			A.data[i*n+p], A.data[p*n+i] = nip, nip
			A.data[i*n+q], A.data[q*n+i] = niq, niq
		}
		A.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		A.data[q*n+q] = s*s*app + 2*c*s*apq + c*c*aqq
		A.data[p*n+q], A.data[q*n+p] = 0, 0

		// J.4: accumulate into Q.
		for i = 0; i < n; i++ {
			qip := Q.data[i*n+p]
			qiq := Q.data[i*n+q]
			Q.data[i*n+p] = c*qip - s*qiq
			Q.data[i*n+q] = s*qip + c*qiq
		}
	}

	// Final convergence check.
	maxOff = 0
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if off = math.Abs(A.data[i*n+j]); off > maxOff {
				maxOff = off
			}
		}
	}
	if maxOff > tol {
		return nil, nil, matrixErrorf(opEigen, ErrEigenFailed)
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = A.data[i*n+i]
	}

	return eigs, Q, nil
}
