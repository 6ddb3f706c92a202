// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/katalvlaran/radial/sector"
)

// NewScene assembles a Scene from a partition result and the participants it
// was computed on (same order as passed to sector.Partition).
//
// Errors: ErrEmptyScene, ErrSceneMismatch, or the boundary error from res.
func NewScene(res *sector.Result, ps []sector.Participant) (Scene, error) {
	if len(ps) == 0 {
		return Scene{}, ErrEmptyScene
	}
	if res == nil || len(res.Angles) != len(ps) {
		return Scene{}, fmt.Errorf("NewScene: %w", ErrSceneMismatch)
	}
	bs, err := res.Boundaries()
	if err != nil {
		return Scene{}, fmt.Errorf("NewScene: %w", err)
	}

	s := Scene{
		Participants: ps,
		Groups:       make([]int, len(ps)),
		Labels:       res.Labels,
		Centroid:     res.Centroid,
		Rays:         make([]float64, len(bs)),
	}
	for i := range ps {
		s.Groups[i] = res.GroupOf(i)
	}
	for i, b := range bs {
		s.Rays[i] = sector.PlaneAngle(b.Angle, res.Offset)
	}

	return s, nil
}

// validate checks slice alignment and group indices.
func (s Scene) validate() error {
	if len(s.Participants) == 0 {
		return ErrEmptyScene
	}
	if len(s.Groups) != len(s.Participants) {
		return fmt.Errorf("%w: %d groups for %d participants", ErrSceneMismatch, len(s.Groups), len(s.Participants))
	}
	for i, g := range s.Groups {
		if g < 0 || g >= len(s.Labels) {
			return fmt.Errorf("%w: participant %d has group %d of %d", ErrSceneMismatch, i, g, len(s.Labels))
		}
	}

	return nil
}

// members returns the points of group g.
func (s Scene) members(g int) []sector.Point {
	var out []sector.Point
	for i, p := range s.Participants {
		if s.Groups[i] == g {
			out = append(out, sector.Point{X: p.X, Y: p.Y})
		}
	}

	return out
}
