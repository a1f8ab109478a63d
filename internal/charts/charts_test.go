package charts

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"testing"
)

var testAxes = []Axis{
	{Label: "Self-Readiness", Colour: "#461E96"},
	{Label: "Practical Readiness", Colour: "#00B4E6"},
	{Label: "Professional Readiness", Colour: "#E6008C"},
	{Label: "Team Readiness", Colour: "#00DC8C"},
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}

func TestPolygonVerticesClosesForAnyAxisCount(t *testing.T) {
	for n := 3; n <= 8; n++ {
		values := make([]float64, n)
		for i := range values {
			values[i] = float64(i%6) + 1
		}
		vertices := polygonVertices(values, 275, 275)
		if len(vertices) != n+1 {
			t.Fatalf("n=%d: got %d vertices, want %d", n, len(vertices), n+1)
		}
		first, last := vertices[0], vertices[n]
		if first != last {
			t.Fatalf("n=%d: polygon not closed: %v vs %v", n, first, last)
		}
	}
}

func TestAxisZeroPointsUpAndAnglesAdvanceClockwise(t *testing.T) {
	const n = 4
	top := radialPoint(275, 275, 100, 0, n)
	if math.Abs(top.X-275) > 1e-9 || top.Y >= 275 {
		t.Fatalf("axis 0 should point to the visual top, got %+v", top)
	}
	right := radialPoint(275, 275, 100, 1, n)
	if right.X <= 275 || math.Abs(right.Y-275) > 1e-9 {
		t.Fatalf("axis 1 should point right (clockwise), got %+v", right)
	}
	bottom := radialPoint(275, 275, 100, 2, n)
	if bottom.Y <= 275 {
		t.Fatalf("axis 2 should point down, got %+v", bottom)
	}
	left := radialPoint(275, 275, 100, 3, n)
	if left.X >= 275 {
		t.Fatalf("axis 3 should point left, got %+v", left)
	}
}

func TestLabelAnchorsByQuadrant(t *testing.T) {
	const n = 4
	cases := []struct {
		axis int
		want anchor
	}{
		{0, anchor{AX: 0.5, AY: 0}},
		{1, anchor{AX: 0, AY: 0.4}},
		{2, anchor{AX: 0.5, AY: 1}},
		{3, anchor{AX: 1, AY: 0.4}},
	}
	for _, tc := range cases {
		if got := labelAnchor(tc.axis, n); got != tc.want {
			t.Errorf("axis %d anchor = %+v, want %+v", tc.axis, got, tc.want)
		}
	}
}

func TestRadarProducesDecodablePNG(t *testing.T) {
	r := newTestRenderer(t)
	data, err := r.Radar([]float64{4.2, 3.8, 5.0, 4.5}, testAxes)
	if err != nil {
		t.Fatalf("Radar: %v", err)
	}
	img := decodePNG(t, data)
	if img.Bounds().Dx() != radarWidth || img.Bounds().Dy() != radarHeight {
		t.Fatalf("unexpected radar dimensions %v", img.Bounds())
	}
}

// colouredPixelsInColumn counts pixels in column x that are neither white
// nor grey. Grid rings, ring numbers and the legend are all achromatic, so
// any coloured pixel on an edge column is a clipped axis label or polygon.
func colouredPixelsInColumn(img image.Image, x int) int {
	count := 0
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		cr, cg, cb := samplePixel(img, x, y)
		if cr != cg || cg != cb {
			count++
		}
	}
	return count
}

func TestRadarLabelsStayInsideCanvas(t *testing.T) {
	r := newTestRenderer(t)

	single, err := r.Radar([]float64{6, 6, 6, 6}, testAxes)
	if err != nil {
		t.Fatalf("Radar: %v", err)
	}
	comparison, err := r.ComparisonRadar(
		[]float64{3, 3, 3, 3},
		[]float64{6, 6, 6, 6},
		testAxes,
	)
	if err != nil {
		t.Fatalf("ComparisonRadar: %v", err)
	}

	for name, data := range map[string][]byte{"radar": single, "comparison": comparison} {
		img := decodePNG(t, data)
		for _, x := range []int{0, 1, radarWidth - 2, radarWidth - 1} {
			if n := colouredPixelsInColumn(img, x); n != 0 {
				t.Errorf("%s: column %d has %d coloured pixels; axis labels reach the canvas edge", name, x, n)
			}
		}
	}
}

func TestComparisonRadarProducesDecodablePNG(t *testing.T) {
	r := newTestRenderer(t)
	data, err := r.ComparisonRadar(
		[]float64{3.0, 3.2, 2.8, 3.5},
		[]float64{4.1, 4.4, 4.0, 4.6},
		testAxes,
	)
	if err != nil {
		t.Fatalf("ComparisonRadar: %v", err)
	}
	decodePNG(t, data)
}

func TestRadarRejectsMismatchedValueCount(t *testing.T) {
	r := newTestRenderer(t)
	if _, err := r.Radar([]float64{1, 2}, testAxes); err == nil {
		t.Fatal("expected error for mismatched value count")
	}
}

func TestRenderingIsOrderIndependent(t *testing.T) {
	r := newTestRenderer(t)
	values := []float64{4.2, 3.8, 5.0, 4.5}

	first, err := r.Radar(values, testAxes)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	if _, err := r.ComparisonBar(2, 5, "#00B4E6"); err != nil {
		t.Fatalf("interleaved render: %v", err)
	}
	again, err := r.Radar(values, testAxes)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(first, again) {
		t.Fatal("radar output changed after an interleaved render")
	}
}

func samplePixel(img image.Image, x, y int) (r, g, b uint32) {
	cr, cg, cb, _ := img.At(x, y).RGBA()
	return cr >> 8, cg >> 8, cb >> 8
}

func TestComparisonBarPostFillStaysOnTop(t *testing.T) {
	r := newTestRenderer(t)
	pairs := [][2]float64{{1, 6}, {6, 1}, {3, 4}, {4, 3}, {2, 2.5}, {5.5, 5.0}}
	for _, pair := range pairs {
		pre, post := pair[0], pair[1]
		data, err := r.ComparisonBar(pre, post, "#00B4E6")
		if err != nil {
			t.Fatalf("ComparisonBar(%v, %v): %v", pre, post, err)
		}
		img := decodePNG(t, data)

		// A pixel well inside the post fill, away from the dashed pre
		// outline edges, must keep the indicator colour.
		x := int(barLength(post)/2) + 3
		y := barHeight / 2
		cr, cg, cb := samplePixel(img, x, y)
		if cr != 0x00 || cg != 0xB4 || cb != 0xE6 {
			t.Errorf("pre=%v post=%v: pixel (%d,%d) = #%02X%02X%02X, want #00B4E6", pre, post, x, y, cr, cg, cb)
		}
	}
}

func TestBarFillMatchesScore(t *testing.T) {
	r := newTestRenderer(t)
	data, err := r.Bar(3, "#E6008C")
	if err != nil {
		t.Fatalf("Bar: %v", err)
	}
	img := decodePNG(t, data)

	// Halfway through a 3/6 score the fill is present; at 5/6 of the track
	// only the grey background remains.
	cr, cg, cb := samplePixel(img, barWidth/4, barHeight/2)
	if cr != 0xE6 || cg != 0x00 || cb != 0x8C {
		t.Fatalf("fill pixel = #%02X%02X%02X, want #E6008C", cr, cg, cb)
	}
	cr, cg, cb = samplePixel(img, barWidth*5/6+5, barHeight/2)
	if cr != 0xE8 || cg != 0xE8 || cb != 0xE8 {
		t.Fatalf("track pixel = #%02X%02X%02X, want #E8E8E8", cr, cg, cb)
	}
}
