// Package render draws a partitioned population as a PNG "pizza" chart.
//
// A Scene carries the projected participants, their group indices, the
// centroid and the boundary rays (standard plane angles, degrees). PNG then
// paints, in order:
//
//   - a translucent convex hull per group with at least three members,
//   - dashed rays from the centroid along every boundary,
//   - participants coloured by group,
//   - a red centroid marker,
//   - legend, title and axis labels.
//
// The view keeps an equal aspect ratio so rays meet the canvas at their true
// angles. Drawing uses fogleman/gg with its built-in bitmap font; geometry
// (hulls, bounds) uses paulmach/orb.
package render
