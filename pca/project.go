// SPDX-License-Identifier: MIT

package pca

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/radial/matrix"
	"github.com/katalvlaran/radial/sector"
)

// Project fits a PCA model on X (rows = observations) and returns the scores
// of every row on the leading opts.Components components.
//
// Implementation:
//   - Stage 1: Standardize (or center) the columns.
//   - Stage 2: Covariance (XcᵀXc)/(r−1).
//   - Stage 3: Eigen-decompose with the selected solver.
//   - Stage 4: Order by eigenvalue, fix signs, compute Scores = Xs·Wᵀ.
//
// A nil opts means DefaultOptions().
//
// Errors: ErrInsufficientData, ErrBadComponents, ErrUnknownSolver,
// ErrNotConverged, and wrapped matrix sentinels (ErrNilMatrix, ErrNaNInf).
func Project(X matrix.Matrix, opts *Options) (*Projection, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, fmt.Errorf("Project: %w", err)
	}
	if o.Components < 1 {
		return nil, fmt.Errorf("Project: %w (got %d)", ErrBadComponents, o.Components)
	}
	r, c := X.Rows(), X.Cols()
	if r < 2 || c < o.Components {
		return nil, fmt.Errorf("Project: %w (%d rows, %d columns, %d components)",
			ErrInsufficientData, r, c, o.Components)
	}
	if o.Tolerance <= 0 || math.IsNaN(o.Tolerance) || math.IsInf(o.Tolerance, 0) {
		o.Tolerance = DefaultOptions().Tolerance
	}
	if o.MaxIter <= 0 {
		o.MaxIter = max(1000, 50*c*c)
	}

	// Stage 1: center or z-score.
	var (
		Xs     matrix.Matrix
		means  []float64
		scales []float64
		err    error
	)
	if o.Standardize {
		Xs, means, scales, err = matrix.Standardize(X)
	} else {
		Xs, means, err = matrix.CenterColumns(X)
		scales = make([]float64, c)
		for j := range scales {
			scales[j] = 1
		}
	}
	if err != nil {
		return nil, fmt.Errorf("Project: %w", err)
	}

	// Stage 2: covariance of the already-centered columns.
	cov, _, err := matrix.Covariance(Xs)
	if err != nil {
		return nil, fmt.Errorf("Project: %w", err)
	}
	trace, diagMax := 0.0, 0.0
	for j := 0; j < c; j++ {
		v, _ := cov.At(j, j)
		trace += v
		diagMax = math.Max(diagMax, math.Abs(v))
	}
	tol := o.Tolerance * math.Max(1, diagMax)

	// Stage 3: eigenpairs, one unit vector per entry of vecs.
	var (
		vals []float64
		vecs [][]float64
	)
	switch o.Solver {
	case SolverJacobi:
		vals, vecs, err = jacobiPairs(cov, tol, o.MaxIter)
	case SolverPower:
		vals, vecs, err = powerPairs(cov, o.Components, tol, o.MaxIter, rngFromSeed(o.Seed))
	default:
		return nil, fmt.Errorf("Project: %w: %v", ErrUnknownSolver, o.Solver)
	}
	if err != nil {
		return nil, fmt.Errorf("Project: %w", err)
	}

	// Stage 4: order, sign, project.
	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case vals[a] > vals[b]:
			return -1
		case vals[a] < vals[b]:
			return 1
		default:
			return 0
		}
	})

	k := o.Components
	W, err := matrix.NewDense(k, c)
	if err != nil {
		return nil, fmt.Errorf("Project: %w", err)
	}
	p := &Projection{
		Components:             W,
		Eigenvalues:            make([]float64, k),
		ExplainedVarianceRatio: make([]float64, k),
		Means:                  means,
		Scales:                 scales,
	}
	for comp := 0; comp < k; comp++ {
		src := order[comp]
		v := fixSign(vecs[src])
		for j := 0; j < c; j++ {
			if err = W.Set(comp, j, v[j]); err != nil {
				return nil, fmt.Errorf("Project: %w", err)
			}
		}
		// Rounding can leave a tiny negative variance on rank-deficient data.
		lambda := math.Max(vals[src], 0)
		p.Eigenvalues[comp] = lambda
		if trace > 0 {
			p.ExplainedVarianceRatio[comp] = lambda / trace
		}
	}

	Wt, err := matrix.Transpose(W)
	if err != nil {
		return nil, fmt.Errorf("Project: %w", err)
	}
	S, err := matrix.Mul(Xs, Wt)
	if err != nil {
		return nil, fmt.Errorf("Project: %w", err)
	}
	p.Scores = S.(*matrix.Dense)

	return p, nil
}

// Points turns the first two score columns into participants, pairing row i
// with ids[i]. A single-component projection puts everyone on Y = 0.
//
// Errors: ErrIDCount when len(ids) != number of score rows.
func (p *Projection) Points(ids []string) ([]sector.Participant, error) {
	r, k := p.Scores.Shape()
	if len(ids) != r {
		return nil, fmt.Errorf("Points: %w (%d ids, %d rows)", ErrIDCount, len(ids), r)
	}
	out := make([]sector.Participant, r)
	for i := 0; i < r; i++ {
		row, err := p.Scores.Row(i)
		if err != nil {
			return nil, fmt.Errorf("Points: %w", err)
		}
		out[i] = sector.Participant{ID: ids[i], X: row[0]}
		if k > 1 {
			out[i].Y = row[1]
		}
	}

	return out, nil
}

// jacobiPairs runs matrix.Eigen and splits Q into column vectors.
func jacobiPairs(cov matrix.Matrix, tol float64, maxIter int) ([]float64, [][]float64, error) {
	vals, Q, err := matrix.Eigen(cov, tol, maxIter)
	if err != nil {
		if errors.Is(err, matrix.ErrEigenFailed) {
			return nil, nil, fmt.Errorf("%w: %w", ErrNotConverged, err)
		}

		return nil, nil, err
	}
	n := len(vals)
	vecs := make([][]float64, n)
	for j := 0; j < n; j++ {
		vecs[j] = make([]float64, n)
		for i := 0; i < n; i++ {
			vecs[j][i], _ = Q.At(i, j)
		}
	}

	return vals, vecs, nil
}

// fixSign flips v in place so its largest-magnitude entry is positive.
// Ties go to the lowest index.
func fixSign(v []float64) []float64 {
	best := 0
	for i := 1; i < len(v); i++ {
		if math.Abs(v[i]) > math.Abs(v[best]) {
			best = i
		}
	}
	if v[best] < 0 {
		for i := range v {
			v[i] = -v[i]
		}
	}

	return v
}
