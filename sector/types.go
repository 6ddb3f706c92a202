// SPDX-License-Identifier: MIT

// Package sector: domain types, options and sentinel errors.
package sector

import "errors"

// FullTurn is the number of degrees in a full rotation.
const FullTurn = 360.0

// DefaultResolution is the number of candidate offsets scanned per full turn
// (one candidate per integer degree).
const DefaultResolution = 360

var (
	// ErrInvalidGroupCount is returned when k <= 0 or k exceeds the participant count.
	ErrInvalidGroupCount = errors.New("sector: invalid group count")

	// ErrEmptyInput is returned when there are no participants to place.
	ErrEmptyInput = errors.New("sector: no participants")

	// ErrSearchExhausted is returned when no candidate offset produced a
	// balanced partition. For valid input this indicates a defect.
	ErrSearchExhausted = errors.New("sector: no balanced offset found")

	// ErrDegenerateGroup is returned by the boundary calculator when a group has no members.
	ErrDegenerateGroup = errors.New("sector: empty group")

	// ErrDuplicateID is returned when two participants share an identifier.
	ErrDuplicateID = errors.New("sector: duplicate participant id")

	// ErrNonFinite is returned when a coordinate is NaN or ±Inf.
	ErrNonFinite = errors.New("sector: non-finite coordinate")

	// ErrLabelCount is returned when the label alphabet does not hold exactly k unique labels.
	ErrLabelCount = errors.New("sector: label alphabet must hold k unique labels")

	// ErrBadResolution is returned when Options.Resolution is negative.
	ErrBadResolution = errors.New("sector: resolution must be >= 0")
)

// Point is a position in the projection plane.
type Point struct {
	X, Y float64
}

// Participant is one member of the population, already projected to 2D.
// Input order is the stable tie-break key.
type Participant struct {
	ID string
	X  float64
	Y  float64
}

// Label is an opaque group token.
type Label string

// Assignment maps participant ID to its group label.
type Assignment map[string]Label

// Options configures Partition.
//
// Fields:
//   - Labels: ordered group alphabet; len must equal k. Nil generates A, B, C, …
//   - Resolution: candidate offsets per full turn; 0 means DefaultResolution.
//   - Workers: offsets evaluated concurrently; <= 1 scans sequentially.
type Options struct {
	Labels     []Label
	Resolution int
	Workers    int
}

// DefaultOptions returns the sequential, one-degree search configuration.
func DefaultOptions() Options {
	return Options{Resolution: DefaultResolution, Workers: 1}
}

// Result is the outcome of a successful Partition call.
type Result struct {
	// Labels is the alphabet used, in run order (Labels[0] is the first sector).
	Labels []Label

	// Assignment maps participant ID to label.
	Assignment Assignment

	// Offset is the winning rotation offset in degrees.
	Offset float64

	// Centroid is the mean of all participant coordinates.
	Centroid Point

	// Angles holds each participant's angle at the winning offset, in input order.
	Angles []float64

	// Order lists input indices sorted by angle (ties by input index).
	Order []int

	// Sizes holds the member count of each group, aligned with Labels.
	Sizes []int

	// group holds the label index of each participant, in input order.
	group []int
}

// GroupOf returns the label index assigned to the participant at input index i.
func (r *Result) GroupOf(i int) int { return r.group[i] }

// Members returns the participant input indices of group g, in angular order.
func (r *Result) Members(g int) []int {
	out := make([]int, 0, r.Sizes[g])
	for _, idx := range r.Order {
		if r.group[idx] == g {
			out = append(out, idx)
		}
	}

	return out
}

// Boundary marks the cut line between two angularly adjacent groups.
type Boundary struct {
	After  Label   // group whose largest angle precedes the cut
	Before Label   // group whose smallest angle follows the cut
	Angle  float64 // degrees in [0, 360), in the partition's angle frame
}
