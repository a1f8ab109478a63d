package charts

import (
	"github.com/fogleman/gg"
)

const (
	barWidth  = 150
	barHeight = 24
)

func barTrack(dc *gg.Context) {
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	setHexAlpha(dc, trackGrey, 1)
	dc.DrawRectangle(0, 0, barWidth, barHeight)
	dc.Fill()
}

func barLength(score float64) float64 {
	if score < 0 {
		score = 0
	}
	if score > maxScale {
		score = maxScale
	}
	return score / maxScale * barWidth
}

// Bar renders a single score as a horizontal fill over a fixed 6-unit track.
func (r *Renderer) Bar(score float64, colour string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dc := gg.NewContext(barWidth, barHeight)
	barTrack(dc)

	setHexAlpha(dc, colour, 1)
	dc.DrawRectangle(0, 0, barLength(score), barHeight)
	dc.Fill()

	return encodePNG(dc)
}

// ComparisonBar renders post as the solid fill and pre as a dashed outline
// at its own length, so both values read at a glance with post on top.
func (r *Renderer) ComparisonBar(pre, post float64, colour string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dc := gg.NewContext(barWidth, barHeight)
	barTrack(dc)

	setHexAlpha(dc, colour, 1)
	dc.DrawRectangle(0, 0, barLength(post), barHeight)
	dc.Fill()

	// Inset the outline so the stroke stays inside the canvas.
	preLength := barLength(pre)
	if preLength > 2 {
		setHexAlpha(dc, outlineGrey, 1)
		dc.SetLineWidth(2)
		dc.SetDash(5, 3)
		dc.DrawRectangle(1, 1, preLength-2, barHeight-2)
		dc.Stroke()
		dc.SetDash()
	}

	return encodePNG(dc)
}
