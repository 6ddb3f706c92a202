// SPDX-License-Identifier: MIT

package pca

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/radial/matrix"
)

var (
	// ErrInsufficientData is returned for fewer than 2 rows or fewer columns than components.
	ErrInsufficientData = errors.New("pca: insufficient data")

	// ErrBadComponents is returned when Options.Components < 1.
	ErrBadComponents = errors.New("pca: component count must be positive")

	// ErrUnknownSolver is returned for a Solver value outside the known set.
	ErrUnknownSolver = errors.New("pca: unknown solver")

	// ErrNotConverged is returned when an eigen-solver exhausts its iteration budget.
	ErrNotConverged = errors.New("pca: eigen-solver did not converge")

	// ErrIDCount is returned by Points when the id slice does not match the score rows.
	ErrIDCount = errors.New("pca: id count does not match rows")
)

// Solver selects the eigen-decomposition method.
type Solver int

const (
	// SolverJacobi uses matrix.Eigen (classical Jacobi rotations).
	SolverJacobi Solver = iota

	// SolverPower uses power iteration with deflation from a seeded start vector.
	SolverPower
)

// String returns the lower-case solver name used in configuration files.
func (s Solver) String() string {
	switch s {
	case SolverJacobi:
		return "jacobi"
	case SolverPower:
		return "power"
	default:
		return fmt.Sprintf("solver(%d)", int(s))
	}
}

// ParseSolver maps a configuration name to a Solver.
func ParseSolver(name string) (Solver, error) {
	switch name {
	case "", "jacobi":
		return SolverJacobi, nil
	case "power":
		return SolverPower, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSolver, name)
	}
}

// Options configures Project.
type Options struct {
	// Components is the number of leading components kept (default 2).
	Components int

	// Standardize z-scores columns (population std) before the covariance step.
	Standardize bool

	// Solver picks the eigen-decomposition method.
	Solver Solver

	// Seed drives SolverPower's start vectors; 0 selects a fixed default seed.
	Seed int64

	// Tolerance is the convergence threshold, relative to the largest
	// covariance diagonal entry (default 1e-10).
	Tolerance float64

	// MaxIter bounds Jacobi rotations, or power iterations per component.
	// 0 selects max(1000, 50·c²).
	MaxIter int
}

// DefaultOptions returns the projection used by the partitioning pipeline:
// two standardized components from the Jacobi solver.
func DefaultOptions() Options {
	return Options{
		Components:  2,
		Standardize: true,
		Solver:      SolverJacobi,
		Tolerance:   1e-10,
	}
}

// Projection is the fitted model plus the scores of the input rows.
type Projection struct {
	// Scores is r×k: row i holds the coordinates of input row i.
	Scores *matrix.Dense

	// Components is k×c: row j is the unit loading vector of component j.
	Components *matrix.Dense

	// Eigenvalues are the variances along each kept component (descending).
	Eigenvalues []float64

	// ExplainedVarianceRatio is Eigenvalues divided by the total variance.
	ExplainedVarianceRatio []float64

	// Means and Scales are the per-column centering and scaling applied.
	// Scales are all 1 when standardization is off.
	Means, Scales []float64
}
