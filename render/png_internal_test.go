// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/radial/sector"
)

func TestPNG_CentroidMarkerIsRed(t *testing.T) {
	t.Parallel()

	s := Scene{
		Participants: []sector.Participant{
			{ID: "a", X: -1, Y: -1}, {ID: "b", X: 1, Y: -1},
			{ID: "c", X: 1, Y: 1}, {ID: "d", X: -1, Y: 1},
		},
		Groups:   []int{0, 0, 1, 1},
		Labels:   []sector.Label{"A", "B"},
		Centroid: sector.Point{},
		Rays:     []float64{0, 180},
	}
	o := Options{Width: 200, Height: 200, Margin: 20, Title: "", XLabel: "", YLabel: ""}
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, s, &o))
	img, err := png.Decode(&buf)
	require.NoError(t, err)

	v := newViewport(s, fillDefaults(&o))
	x, y := v.toCanvas(0, 0)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 100, y, 1e-9)

	r, g, b, _ := img.At(int(x), int(y)).RGBA()
	assert.Equal(t, uint32(0xd6), r>>8)
	assert.Equal(t, uint32(0x27), g>>8)
	assert.Equal(t, uint32(0x28), b>>8)
}

func TestViewport_EqualAspect(t *testing.T) {
	t.Parallel()

	s := Scene{Participants: []sector.Participant{{X: 0, Y: 0}, {X: 4, Y: 1}}}
	v := newViewport(s, Options{Width: 500, Height: 300, Margin: 50})
	x0, y0 := v.toCanvas(0, 0)
	x1, y1 := v.toCanvas(4, 1)
	assert.InDelta(t, 4*(y0-y1), x1-x0, 1e-9)
}

func TestOpaque(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#ff0000", opaque("#f00"))
	assert.Equal(t, "#123456", opaque("#12345678"))
	assert.Equal(t, "#abcdef", opaque("#abcdef"))
	assert.True(t, validHex("#ABCDEF"))
	assert.False(t, validHex("ABCDEF"))
}

func TestPNG_LegendHasCenterPoint(t *testing.T) {
	t.Parallel()

	s := Scene{
		Participants: []sector.Participant{{ID: "a", X: -1, Y: 0}, {ID: "b", X: 1, Y: 0}, {ID: "c", X: 0, Y: 1}},
		Groups:       []int{0, 1, 2},
		Labels:       []sector.Label{"A", "B", "C"},
		Rays:         []float64{90, 210, 330},
	}
	o := Options{Width: 400, Height: 300, Margin: 40}
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, s, &o))
	img, err := png.Decode(&buf)
	require.NoError(t, err)

	// The entry follows the three group swatches.
	x := o.Width - o.Margin - 110 + int(legendSwatch/2)
	y := o.Margin + 3*int(legendSwatch+6) + int(legendSwatch/2)
	r, g, b, _ := img.At(x, y).RGBA()
	assert.Equal(t, uint32(0xd6), r>>8)
	assert.Equal(t, uint32(0x27), g>>8)
	assert.Equal(t, uint32(0x28), b>>8)
}
