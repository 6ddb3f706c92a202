// SPDX-License-Identifier: MIT

package sector

import (
	"fmt"
	"slices"
)

// Boundaries computes the K cut lines of a completed partition.
//
// Groups are ordered by their smallest member angle. For every cyclic pair
// (cur, next) the cut is the midpoint between max(cur) and min(next); when
// min(next) < max(cur) the pair straddles the 0°/360° seam and 360 is added
// to min(next) before averaging. The midpoint is reduced into [0, 360).
//
// Errors:
//   - ErrDegenerateGroup if any group has no members.
//
// Complexity: O(n + k log k).
func (r *Result) Boundaries() ([]Boundary, error) {
	return boundariesFromAngles(r.Angles, r.group, r.Labels)
}

// Boundaries recomputes the angle table of ps at the given offset and
// returns the cut lines for an externally supplied assignment.
//
// Errors:
//   - ErrEmptyInput when ps is empty.
//   - ErrLabelCount when labels is empty or holds duplicates.
//   - ErrDegenerateGroup when a label has no members, or a participant is
//     missing from the assignment or carries an unknown label.
func Boundaries(ps []Participant, a Assignment, labels []Label, offset float64) ([]Boundary, error) {
	if len(ps) == 0 {
		return nil, ErrEmptyInput
	}
	if len(labels) == 0 {
		return nil, ErrLabelCount
	}
	index := make(map[Label]int, len(labels))
	for i, l := range labels {
		if _, dup := index[l]; dup {
			return nil, ErrLabelCount
		}
		index[l] = i
	}

	c := Centroid(ps)
	angles := make([]float64, len(ps))
	group := make([]int, len(ps))
	for i, p := range ps {
		l, ok := a[p.ID]
		if !ok {
			return nil, fmt.Errorf("Boundaries: participant %q unassigned: %w", p.ID, ErrDegenerateGroup)
		}
		g, ok := index[l]
		if !ok {
			return nil, fmt.Errorf("Boundaries: participant %q has unknown label %q: %w", p.ID, l, ErrDegenerateGroup)
		}
		angles[i] = Angle(Point{X: p.X, Y: p.Y}, c, offset)
		group[i] = g
	}

	return boundariesFromAngles(angles, group, labels)
}

// Angles extracts the cut angles of bs in order.
func Angles(bs []Boundary) []float64 {
	out := make([]float64, len(bs))
	for i, b := range bs {
		out[i] = b.Angle
	}

	return out
}

// boundariesFromAngles is the shared kernel: per-group min/max, ordering by
// min, then cyclic midpoints with seam handling.
func boundariesFromAngles(angles []float64, group []int, labels []Label) ([]Boundary, error) {
	k := len(labels)
	lo := make([]float64, k)
	hi := make([]float64, k)
	count := make([]int, k)
	for i, a := range angles {
		g := group[i]
		if count[g] == 0 || a < lo[g] {
			lo[g] = a
		}
		if count[g] == 0 || a > hi[g] {
			hi[g] = a
		}
		count[g]++
	}
	for g, c := range count {
		if c == 0 {
			return nil, fmt.Errorf("Boundaries: group %q: %w", labels[g], ErrDegenerateGroup)
		}
	}

	// Order groups by smallest member angle; equal minima fall back to label index.
	order := make([]int, k)
	for g := range order {
		order[g] = g
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case lo[a] < lo[b]:
			return -1
		case lo[a] > lo[b]:
			return 1
		default:
			return 0
		}
	})

	out := make([]Boundary, k)
	for i, cur := range order {
		next := order[(i+1)%k]
		maxCur := hi[cur]
		minNext := lo[next]
		if minNext < maxCur {
			minNext += FullTurn // wrap across the seam
		}
		out[i] = Boundary{
			After:  labels[cur],
			Before: labels[next],
			Angle:  Normalize((maxCur + minNext) / 2),
		}
	}

	return out, nil
}
