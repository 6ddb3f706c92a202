// SPDX-License-Identifier: MIT

package render

import (
	"errors"

	"github.com/katalvlaran/radial/sector"
)

var (
	// ErrEmptyScene is returned when a scene has no participants.
	ErrEmptyScene = errors.New("render: empty scene")

	// ErrBadCanvas is returned for non-positive sizes or a margin that leaves no plot area.
	ErrBadCanvas = errors.New("render: bad canvas size")

	// ErrBadColor is returned for a palette entry that is not #rgb, #rrggbb or #rrggbbaa.
	ErrBadColor = errors.New("render: bad hex color")

	// ErrSceneMismatch is returned when scene slices disagree in length or
	// reference an unknown group.
	ErrSceneMismatch = errors.New("render: inconsistent scene")
)

// DefaultPalette is the six-colour group palette, cycled when there are more groups.
var DefaultPalette = []string{"#264653", "#e76f51", "#2a9d8f", "#e9c46a", "#f4a261", "#00b4d8"}

// Scene is everything PNG needs to draw one partition.
type Scene struct {
	Participants []sector.Participant
	Groups       []int // label index per participant, aligned with Participants
	Labels       []sector.Label
	Centroid     sector.Point
	Rays         []float64 // boundary directions, counter-clockwise degrees from +X
}

// Options configures PNG.
type Options struct {
	Width, Height int
	Margin        int
	Palette       []string
	Rotation      float64 // degrees added to every ray
	PointRadius   float64
	Title         string
	XLabel        string
	YLabel        string
}

// DefaultOptions returns a 1000×800 canvas with the default palette.
func DefaultOptions() Options {
	return Options{
		Width:       1000,
		Height:      800,
		Margin:      60,
		Palette:     DefaultPalette,
		PointRadius: 4,
		Title:       "Radial Clustering of Participants",
		XLabel:      "Principal Component 1",
		YLabel:      "Principal Component 2",
	}
}
