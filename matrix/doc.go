// Package matrix offers a small dense linear-algebra toolkit for projecting
// survey responses into the plane.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set that
//     refuses NaN and ±Inf.
//   - Kernels (Mul, Transpose, Scale, MatVec) with a *Dense fast path and a
//     generic At/Set fallback for any Matrix implementation.
//   - Column statistics (CenterColumns, ColumnStd, Standardize, Covariance).
//   - Eigen, a Jacobi eigen-solver for symmetric matrices.
//
// All functions return sentinel errors (see errors.go) wrapped with an
// operation tag; match them with errors.Is. Loop orders are fixed so results
// are reproducible bit for bit.
//
// Matrices here are meant for questionnaire-sized data (hundreds of rows,
// tens of columns); nothing is blocked or parallelized.
package matrix
