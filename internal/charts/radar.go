package charts

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

// The canvas is wider than the plot: side axis labels are anchored at
// radarLabelRadius and lead away from the plot, so each side needs room for
// a full label beyond the label radius.
const (
	radarWidth       = 760
	radarHeight      = 560
	radarPlotRadius  = 165.0
	radarLabelRadius = radarPlotRadius * 7.5 / maxScale
)

type point struct {
	X, Y float64
}

type anchor struct {
	AX, AY float64
}

// axisAngle returns the screen angle of axis i of n: axis 0 points to the
// visual top and angles advance clockwise. Screen y grows downward, so a
// positive sine moves up.
func axisAngle(i, n int) float64 {
	return math.Pi/2 - float64(i)*2*math.Pi/float64(n)
}

func radialPoint(cx, cy, radius float64, i, n int) point {
	phi := axisAngle(i, n)
	return point{
		X: cx + radius*math.Cos(phi),
		Y: cy - radius*math.Sin(phi),
	}
}

// polygonVertices maps values onto the radar axes and closes the polygon by
// repeating vertex 0, so the result always holds len(values)+1 points.
func polygonVertices(values []float64, cx, cy float64) []point {
	n := len(values)
	out := make([]point, 0, n+1)
	for i, v := range values {
		out = append(out, radialPoint(cx, cy, v/maxScale*radarPlotRadius, i, n))
	}
	if n > 0 {
		out = append(out, out[0])
	}
	return out
}

// labelAnchor picks text alignment by quadrant so axis labels sit clear of
// the plot: top labels hang above their point, right labels lead away to the
// right, and so on.
func labelAnchor(i, n int) anchor {
	phi := axisAngle(i, n)
	dx, dy := math.Cos(phi), math.Sin(phi)
	switch {
	case dy > 0.92:
		return anchor{AX: 0.5, AY: 0} // top: centred, text above the point
	case dy < -0.92:
		return anchor{AX: 0.5, AY: 1} // bottom: centred, text below the point
	case dx > 0:
		return anchor{AX: 0, AY: 0.4} // right: left-aligned, vertically centred
	default:
		return anchor{AX: 1, AY: 0.4} // left: right-aligned, vertically centred
	}
}

func tracePolygon(dc *gg.Context, vertices []point) {
	for i, v := range vertices {
		if i == 0 {
			dc.MoveTo(v.X, v.Y)
		} else {
			dc.LineTo(v.X, v.Y)
		}
	}
}

func (r *Renderer) radarBase(axes []Axis) (*gg.Context, float64, float64) {
	dc := gg.NewContext(radarWidth, radarHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	cx, cy := float64(radarWidth)/2, float64(radarHeight)/2

	// Grid rings at each scale step, numbered up the top axis.
	dc.SetFontFace(r.smallFace)
	for step := 1; step <= int(maxScale); step++ {
		ring := float64(step) / maxScale * radarPlotRadius
		setHexAlpha(dc, gridGrey, 1)
		dc.SetLineWidth(1)
		dc.DrawCircle(cx, cy, ring)
		dc.Stroke()

		setHexAlpha(dc, outlineGrey, 1)
		dc.DrawStringAnchored(fmt.Sprintf("%d", step), cx+4, cy-ring, 0, 0.4)
	}

	// Axis labels outside the rings, in each axis's brand colour.
	dc.SetFontFace(r.labelFace)
	n := len(axes)
	for i, ax := range axes {
		p := radialPoint(cx, cy, radarLabelRadius, i, n)
		a := labelAnchor(i, n)
		setHexAlpha(dc, ax.Colour, 1)
		dc.DrawStringAnchored(ax.Label, p.X, p.Y, a.AX, a.AY)
	}

	return dc, cx, cy
}

func drawRadarPolygon(dc *gg.Context, vertices []point, colour string, fillAlpha, lineWidth float64, dashed bool) {
	tracePolygon(dc, vertices)
	setHexAlpha(dc, colour, fillAlpha)
	dc.FillPreserve()
	setHexAlpha(dc, colour, 1)
	dc.SetLineWidth(lineWidth)
	if dashed {
		dc.SetDash(7, 5)
	}
	dc.Stroke()
	dc.SetDash()
}

func drawMarker(dc *gg.Context, p point, colour string, radius float64) {
	dc.DrawCircle(p.X, p.Y, radius)
	setHexAlpha(dc, colour, 1)
	dc.FillPreserve()
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(2)
	dc.Stroke()
}

// Radar renders a single readiness profile: one value per axis on the fixed
// 1-6 radial scale (the origin represents 0).
func (r *Renderer) Radar(values []float64, axes []Axis) ([]byte, error) {
	if len(values) != len(axes) {
		return nil, fmt.Errorf("radar: %d values for %d axes", len(values), len(axes))
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	dc, cx, cy := r.radarBase(axes)

	vertices := polygonVertices(values, cx, cy)
	drawRadarPolygon(dc, vertices, brandPurple, 0.2, 3, false)
	for i, ax := range axes {
		drawMarker(dc, vertices[i], ax.Colour, 7)
	}

	return encodePNG(dc)
}

// ComparisonRadar renders pre and post profiles on shared axes. The pre
// polygon is drawn first (muted grey, dashed) and the post polygon on top
// (brand colour, solid), so post stays visually dominant where they meet.
func (r *Renderer) ComparisonRadar(pre, post []float64, axes []Axis) ([]byte, error) {
	if len(pre) != len(axes) || len(post) != len(axes) {
		return nil, fmt.Errorf("comparison radar: %d/%d values for %d axes", len(pre), len(post), len(axes))
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	dc, cx, cy := r.radarBase(axes)

	preVertices := polygonVertices(pre, cx, cy)
	postVertices := polygonVertices(post, cx, cy)

	drawRadarPolygon(dc, preVertices, preGrey, 0.1, 2, true)
	drawRadarPolygon(dc, postVertices, brandGreen, 0.2, 3, false)

	for i := range axes {
		drawMarker(dc, preVertices[i], preGrey, 4)
	}
	for i, ax := range axes {
		drawMarker(dc, postVertices[i], ax.Colour, 7)
	}

	r.drawLegend(dc)

	return encodePNG(dc)
}

func (r *Renderer) drawLegend(dc *gg.Context) {
	x := 18.0
	y := float64(radarHeight) - 36.0
	dc.SetFontFace(r.smallFace)

	setHexAlpha(dc, preGrey, 1)
	dc.SetLineWidth(2)
	dc.SetDash(7, 5)
	dc.DrawLine(x, y, x+28, y)
	dc.Stroke()
	dc.SetDash()
	dc.DrawStringAnchored("Pre-Programme", x+34, y, 0, 0.4)

	y += 18
	setHexAlpha(dc, brandGreen, 1)
	dc.SetLineWidth(3)
	dc.DrawLine(x, y, x+28, y)
	dc.Stroke()
	setHexAlpha(dc, "#3B3B3B", 1)
	dc.DrawStringAnchored("Post-Programme", x+34, y, 0, 0.4)
}
