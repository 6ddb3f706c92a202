// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"

	"github.com/katalvlaran/radial/sector"
)

const (
	hullAlpha    = 0x33 // fill alpha for hulls (#rrggbb33)
	centroidHex  = "#d62728"
	rayHex       = "#555555"
	legendSwatch = 12.0
)

// viewport maps data coordinates to canvas pixels with equal aspect ratio.
type viewport struct {
	scale     float64
	cx, cy    float64 // data-space centre
	px, py    float64 // canvas-space centre
	rayLength float64 // canvas-space length that reaches past every corner
}

// newViewport fits every participant and the centroid into the plot area.
func newViewport(s Scene, o Options) viewport {
	mp := make(orb.MultiPoint, 0, len(s.Participants)+1)
	for _, p := range s.Participants {
		mp = append(mp, orb.Point{p.X, p.Y})
	}
	mp = append(mp, orb.Point{s.Centroid.X, s.Centroid.Y})
	b := mp.Bound()

	// A degenerate extent (single point, vertical or horizontal line) must
	// not divide by zero.
	eps := math.Max(math.Max(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]), 1) * 1e-9
	w := math.Max(b.Max[0]-b.Min[0], eps)
	h := math.Max(b.Max[1]-b.Min[1], eps)
	plotW := float64(o.Width - 2*o.Margin)
	plotH := float64(o.Height - 2*o.Margin)
	c := b.Center()

	return viewport{
		scale:     math.Min(plotW/w, plotH/h) * 0.95,
		cx:        c[0],
		cy:        c[1],
		px:        float64(o.Margin) + plotW/2,
		py:        float64(o.Margin) + plotH/2,
		rayLength: 2 * math.Hypot(float64(o.Width), float64(o.Height)),
	}
}

// toCanvas maps a data point to pixel coordinates (Y grows downward).
func (v viewport) toCanvas(x, y float64) (float64, float64) {
	return v.px + (x-v.cx)*v.scale, v.py - (y-v.cy)*v.scale
}

// PNG renders the scene to w.
//
// A nil opts means DefaultOptions(). Zero Width/Height/Margin and an empty
// Palette fall back to the defaults individually.
//
// Errors: ErrEmptyScene, ErrSceneMismatch, ErrBadCanvas, ErrBadColor, or the encoder error.
func PNG(w io.Writer, s Scene, opts *Options) error {
	o := fillDefaults(opts)
	if err := s.validate(); err != nil {
		return fmt.Errorf("PNG: %w", err)
	}
	if o.Width <= 0 || o.Height <= 0 || o.Margin < 0 ||
		o.Width <= 2*o.Margin || o.Height <= 2*o.Margin {
		return fmt.Errorf("PNG: %w: %dx%d margin %d", ErrBadCanvas, o.Width, o.Height, o.Margin)
	}
	if err := checkPalette(o.Palette); err != nil {
		return fmt.Errorf("PNG: %w", err)
	}

	dc := gg.NewContext(o.Width, o.Height)
	dc.SetHexColor("#ffffff")
	dc.Clear()
	v := newViewport(s, o)

	drawHulls(dc, s, o, v)
	drawRays(dc, s, o, v)
	drawPoints(dc, s, o, v)
	drawCentroid(dc, s, v)
	drawLegend(dc, s, o)
	drawText(dc, o)

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("PNG: %w", err)
	}

	return nil
}

// PNGFile renders the scene into a new file at path.
func PNGFile(path string, s Scene, opts *Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("PNGFile: %w", err)
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("PNGFile: %w", cErr)
		}
	}()

	return PNG(f, s, opts)
}

func fillDefaults(opts *Options) Options {
	d := DefaultOptions()
	if opts == nil {
		return d
	}
	o := *opts
	if o.Width == 0 {
		o.Width = d.Width
	}
	if o.Height == 0 {
		o.Height = d.Height
	}
	if o.Margin == 0 {
		o.Margin = d.Margin
	}
	if len(o.Palette) == 0 {
		o.Palette = d.Palette
	}
	if o.PointRadius <= 0 {
		o.PointRadius = d.PointRadius
	}

	return o
}

func drawHulls(dc *gg.Context, s Scene, o Options, v viewport) {
	for g := range s.Labels {
		ring := Hull(s.members(g))
		if ring == nil {
			continue
		}
		for i, p := range ring[:len(ring)-1] {
			x, y := v.toCanvas(p[0], p[1])
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		dc.SetHexColor(fmt.Sprintf("%s%02x", opaque(colorFor(o.Palette, g)), hullAlpha))
		dc.FillPreserve()
		dc.SetHexColor(colorFor(o.Palette, g))
		dc.SetLineWidth(1)
		dc.Stroke()
	}
}

func drawRays(dc *gg.Context, s Scene, o Options, v viewport) {
	cx, cy := v.toCanvas(s.Centroid.X, s.Centroid.Y)
	dc.SetHexColor(rayHex)
	dc.SetLineWidth(1.5)
	dc.SetDash(6, 4)
	for _, a := range s.Rays {
		rad := sector.Normalize(a+o.Rotation) * math.Pi / 180
		// Canvas Y is flipped, so a counter-clockwise data angle subtracts from y.
		dc.DrawLine(cx, cy, cx+v.rayLength*math.Cos(rad), cy-v.rayLength*math.Sin(rad))
		dc.Stroke()
	}
	dc.SetDash()
}

func drawPoints(dc *gg.Context, s Scene, o Options, v viewport) {
	for i, p := range s.Participants {
		x, y := v.toCanvas(p.X, p.Y)
		dc.DrawCircle(x, y, o.PointRadius)
		dc.SetHexColor(colorFor(o.Palette, s.Groups[i]))
		dc.Fill()
	}
}

func drawCentroid(dc *gg.Context, s Scene, v viewport) {
	x, y := v.toCanvas(s.Centroid.X, s.Centroid.Y)
	dc.SetHexColor(centroidHex)
	dc.DrawCircle(x, y, 7)
	dc.Fill()
}

func drawLegend(dc *gg.Context, s Scene, o Options) {
	counts := make([]int, len(s.Labels))
	for _, g := range s.Groups {
		counts[g]++
	}
	x := float64(o.Width - o.Margin - 110)
	y := float64(o.Margin)
	for g, l := range s.Labels {
		dc.SetHexColor(colorFor(o.Palette, g))
		dc.DrawRectangle(x, y, legendSwatch, legendSwatch)
		dc.Fill()
		dc.SetHexColor("#000000")
		dc.DrawStringAnchored(fmt.Sprintf("Group %s (%d)", l, counts[g]), x+legendSwatch+6, y+legendSwatch/2, 0, 0.5)
		y += legendSwatch + 6
	}
	dc.SetHexColor(centroidHex)
	dc.DrawCircle(x+legendSwatch/2, y+legendSwatch/2, legendSwatch/2)
	dc.Fill()
	dc.SetHexColor("#000000")
	dc.DrawStringAnchored("Center Point", x+legendSwatch+6, y+legendSwatch/2, 0, 0.5)
}

func drawText(dc *gg.Context, o Options) {
	dc.SetHexColor("#000000")
	w, h := float64(o.Width), float64(o.Height)
	if o.Title != "" {
		dc.DrawStringAnchored(o.Title, w/2, float64(o.Margin)/2, 0.5, 0.5)
	}
	if o.XLabel != "" {
		dc.DrawStringAnchored(o.XLabel, w/2, h-float64(o.Margin)/2, 0.5, 0.5)
	}
	if o.YLabel != "" {
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), float64(o.Margin)/2, h/2)
		dc.DrawStringAnchored(o.YLabel, float64(o.Margin)/2, h/2, 0.5, 0.5)
		dc.Pop()
	}
}

// opaque strips an alpha channel and expands #rgb to #rrggbb.
func opaque(hex string) string {
	h := hex[1:]
	switch len(h) {
	case 3:
		return "#" + string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 8:
		return "#" + h[:6]
	default:
		return hex
	}
}
