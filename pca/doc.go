// Package pca projects a response table into the plane with principal
// component analysis.
//
// It provides a single entry point:
//
//   - Project: optional z-scoring, sample covariance, eigen-decomposition,
//     and scores on the leading components.
//
//   - Complexity: O(r·c² + c³·sweeps)
//
//   - Memory:     O(r·c + c²)
//
// Two eigen-solvers are available:
//
//   - SolverJacobi (default): deterministic Jacobi rotations from the matrix package.
//   - SolverPower: power iteration with deflation from a seeded random start.
//     The same Seed always yields the same projection.
//
// Components are ordered by eigenvalue (descending, ties by column index) and
// every component is sign-normalized so its largest-magnitude loading is
// positive. Projections are therefore stable across solvers and runs.
package pca
