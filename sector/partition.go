// SPDX-License-Identifier: MIT

package sector

import (
	"fmt"
	"math"
	"slices"
)

// Partition splits participants into k contiguous angular sectors around
// their centroid so that group sizes differ by at most one.
//
// Algorithm:
//  1. centroid = (mean x, mean y).
//  2. For offset = 0, 360/R, 2·360/R, … (R = Resolution):
//     a. angle_i = (−atan2(y_i−cy, x_i−cx)° + offset + 360) mod 360
//     b. stable sort by angle, ties by input order
//     c. cut into k runs; the first n mod k runs get ⌊n/k⌋+1 members
//     d. label run j with Labels[j]
//     e. verify exact cover and size bounds
//     f. first valid offset wins
//  3. No valid offset ⇒ ErrSearchExhausted.
//
// The split in step 2c is structural, so offset 0 succeeds for any valid
// input; the scan is kept so that the winning offset is reported explicitly.
//
// Errors:
//   - ErrInvalidGroupCount (k <= 0 or k > n), ErrEmptyInput (n == 0)
//   - ErrDuplicateID, ErrNonFinite, ErrLabelCount, ErrBadResolution
//   - ErrSearchExhausted
//
// Complexity: O(R · n log n) time worst case, O(n) memory per candidate.
func Partition(ps []Participant, k int, opts *Options) (*Result, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Resolution < 0 {
		return nil, ErrBadResolution
	}
	if o.Resolution == 0 {
		o.Resolution = DefaultResolution
	}

	// Stage 1: reject impossible shapes before any work.
	if k <= 0 {
		return nil, fmt.Errorf("Partition: k=%d: %w", k, ErrInvalidGroupCount)
	}
	n := len(ps)
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if k > n {
		return nil, fmt.Errorf("Partition: k=%d > n=%d: %w", k, n, ErrInvalidGroupCount)
	}
	if err := validateParticipants(ps); err != nil {
		return nil, err
	}
	labels, err := resolveLabels(o.Labels, k)
	if err != nil {
		return nil, err
	}

	// Stage 2: the mirrored polar angle does not depend on the offset, so it is computed once.
	c := Centroid(ps)
	base := make([]float64, n)
	for i, p := range ps {
		base[i] = mirroredDegrees(delta(Point{X: p.X, Y: p.Y}, c))
	}

	// Stage 3: scan offsets.
	var t *trial
	if o.Workers > 1 {
		t, err = searchParallel(base, k, o.Resolution, o.Workers)
		if err != nil {
			return nil, err
		}
	} else {
		t = searchSequential(base, k, o.Resolution)
	}
	if t == nil {
		return nil, ErrSearchExhausted
	}

	// Stage 4: materialize the assignment.
	assign := make(Assignment, n)
	for i, p := range ps {
		assign[p.ID] = labels[t.group[i]]
	}

	return &Result{
		Labels:     labels,
		Assignment: assign,
		Offset:     t.offset,
		Centroid:   c,
		Angles:     t.angles,
		Order:      t.order,
		Sizes:      t.sizes,
		group:      t.group,
	}, nil
}

// Centroid returns the arithmetic mean of all participant coordinates.
// An empty slice yields the origin. Coordinates near the float64 limit do
// not overflow the mean.
func Centroid(ps []Participant) Point {
	if len(ps) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range ps {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(ps))
	if math.IsInf(sx, 0) || math.IsInf(sy, 0) {
		// Sum of pre-divided terms stays within max |coordinate|.
		sx, sy = 0, 0
		for _, p := range ps {
			sx += p.X / n
			sy += p.Y / n
		}

		return Point{X: sx, Y: sy}
	}

	return Point{X: sx / n, Y: sy / n}
}

// delta returns p − c, halved when the difference overflows.
// atan2 only depends on the ratio, so the angle is unchanged.
func delta(p, c Point) (dx, dy float64) {
	dx, dy = p.X-c.X, p.Y-c.Y
	if math.IsInf(dx, 0) || math.IsInf(dy, 0) {
		dx, dy = p.X/2-c.X/2, p.Y/2-c.Y/2
	}

	return dx, dy
}

// Angle returns the angle of p around c in the partition frame for the given offset.
// The direction is mirrored (clockwise-positive) so sector order matches rendering order.
func Angle(p, c Point, offset float64) float64 {
	return Normalize(mirroredDegrees(delta(p, c)) + offset)
}

// PlaneAngle converts an angle from the partition frame back to a standard
// counter-clockwise plane angle, undoing the mirror and the offset.
func PlaneAngle(a, offset float64) float64 {
	return Normalize(offset - a)
}

// Normalize reduces a into [0, 360).
func Normalize(a float64) float64 {
	a = math.Mod(a+FullTurn, FullTurn)
	if a < 0 {
		a += FullTurn
	}
	if a >= FullTurn {
		a -= FullTurn
	}

	return a
}

// mirroredDegrees is −atan2(dy, dx) in degrees, in (−180, 180].
func mirroredDegrees(dx, dy float64) float64 {
	return -math.Atan2(dy, dx) * 180 / math.Pi
}

// validateParticipants enforces unique IDs and finite coordinates.
func validateParticipants(ps []Participant) error {
	seen := make(map[string]struct{}, len(ps))
	for i, p := range ps {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("Partition: participant %d id %q: %w", i, p.ID, ErrDuplicateID)
		}
		seen[p.ID] = struct{}{}
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return fmt.Errorf("Partition: participant %d id %q: %w", i, p.ID, ErrNonFinite)
		}
	}

	return nil
}

// trial is one evaluated candidate offset.
type trial struct {
	offset float64
	angles []float64
	order  []int
	group  []int
	sizes  []int
}

// offsetAt returns the i-th candidate offset for the given resolution.
func offsetAt(i, resolution int) float64 {
	return float64(i) * FullTurn / float64(resolution)
}

// evaluate runs steps 2a–2e for one offset. It returns nil when the split
// fails verification.
func evaluate(base []float64, offset float64, k int) *trial {
	n := len(base)

	// 2a: rotate every base angle by the offset.
	angles := make([]float64, n)
	for i, b := range base {
		angles[i] = Normalize(b + offset)
	}

	// 2b: stable sort of input indices; equal angles keep input order.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case angles[a] < angles[b]:
			return -1
		case angles[a] > angles[b]:
			return 1
		default:
			return 0
		}
	})

	// 2c/2d: fixed run lengths, labelled in angular order.
	q, rem := n/k, n%k
	group := make([]int, n)
	for i := range group {
		group[i] = -1
	}
	sizes := make([]int, k)
	pos := 0
	for g := 0; g < k; g++ {
		size := q
		if g < rem {
			size++
		}
		for j := 0; j < size && pos < n; j++ {
			idx := order[pos]
			if group[idx] != -1 {
				return nil // duplicated index
			}
			group[idx] = g
			sizes[g]++
			pos++
		}
	}

	// 2e: exact cover and size bounds.
	if pos != n {
		return nil
	}
	for _, g := range group {
		if g < 0 {
			return nil
		}
	}
	for _, s := range sizes {
		if s < q || s > q+1 {
			return nil
		}
	}

	return &trial{offset: offset, angles: angles, order: order, group: group, sizes: sizes}
}

// searchSequential scans offsets in ascending order and stops at the first success.
func searchSequential(base []float64, k, resolution int) *trial {
	for i := 0; i < resolution; i++ {
		if t := evaluate(base, offsetAt(i, resolution), k); t != nil {
			return t
		}
	}

	return nil
}
