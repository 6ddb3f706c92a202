// Package sector splits 2D points into balanced, contiguous angular sectors
// ("pizza slices") around their centroid.
//
// 🍕 What it does
//
//	Given one projected point per participant and a group count k, Partition
//	sorts participants by polar angle around the centroid and cuts the sorted
//	ring into k runs whose sizes differ by at most one. Boundaries then
//	reports the k cut lines between angularly adjacent groups, so a renderer
//	can draw the slices.
//
// ✨ Guarantees
//   - Balance: every group has ⌊n/k⌋ or ⌊n/k⌋+1 members, sizes sum to n.
//   - Contiguity: each group is one run of the angular order.
//   - Determinism: equal angles keep input order; the lowest successful
//     rotation offset wins, also in parallel mode (Options.Workers > 1).
//   - No clustering-quality guarantee: only size balance and contiguity.
//
// ⚙️ Usage:
//
//	res, err := sector.Partition(points, 6, nil)
//	if err != nil {
//	  // ErrInvalidGroupCount, ErrEmptyInput, ...
//	}
//	cuts, err := res.Boundaries()
//
// Angles live in a mirrored frame (clockwise-positive, rotated by the winning
// offset). Use PlaneAngle to convert a cut angle back to a standard
// counter-clockwise plane angle for drawing.
//
// The package is pure: no I/O, no logging, no shared state.
package sector
