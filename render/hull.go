// SPDX-License-Identifier: MIT

package render

import (
	"cmp"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/katalvlaran/radial/sector"
)

// Hull returns the convex hull of pts as a closed counter-clockwise ring
// (first point repeated at the end), using Andrew's monotone chain.
// Collinear points are dropped. Fewer than three distinct, non-collinear
// points yield nil.
//
// Complexity: O(n log n).
func Hull(pts []sector.Point) orb.Ring {
	if len(pts) < 3 {
		return nil
	}
	ps := make([]orb.Point, len(pts))
	for i, p := range pts {
		ps[i] = orb.Point{p.X, p.Y}
	}
	slices.SortFunc(ps, func(a, b orb.Point) int {
		if c := cmp.Compare(a[0], b[0]); c != 0 {
			return c
		}

		return cmp.Compare(a[1], b[1])
	})
	ps = slices.Compact(ps)
	if len(ps) < 3 {
		return nil
	}

	hull := make([]orb.Point, 0, 2*len(ps))
	// Lower chain.
	for _, p := range ps {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// Upper chain.
	lower := len(hull) + 1
	for i := len(ps) - 2; i >= 0; i-- {
		p := ps[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// hull now ends with ps[0] again, which closes the ring.
	ring := orb.Ring(hull)
	if len(ring) < 4 || planar.Area(ring) == 0 {
		return nil
	}

	return ring
}

// cross is the z component of (a→b) × (a→c); positive for a left turn.
func cross(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}
