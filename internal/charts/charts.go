// Package charts renders the radar and bar visualizations embedded in
// readiness reports as PNG images.
//
// The renderer holds shared font faces, which are not safe for concurrent
// use, so every draw runs under a mutex. No other state is carried between
// calls: rendering one chart never perturbs a later rendering of another.
package charts

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Axis is one radar axis: its display label and brand colour.
type Axis struct {
	Label  string
	Colour string
}

const (
	maxScale = 6.0

	brandPurple = "#461E96"
	brandGreen  = "#00DC8C"

	preGrey     = "#999999"
	gridGrey    = "#E0E0E0"
	trackGrey   = "#E8E8E8"
	outlineGrey = "#888888"
)

// Renderer produces report chart images. Construct once and share; draws
// are serialised internally.
type Renderer struct {
	mu        sync.Mutex
	labelFace font.Face
	smallFace font.Face
}

// NewRenderer builds a renderer with the embedded Go fonts.
func NewRenderer() (*Renderer, error) {
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	return &Renderer{
		labelFace: truetype.NewFace(bold, &truetype.Options{Size: 14}),
		smallFace: truetype.NewFace(regular, &truetype.Options{Size: 10}),
	}, nil
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode chart png: %w", err)
	}
	return buf.Bytes(), nil
}

// setHexAlpha sets the context colour from a #rrggbb string with an explicit
// alpha in [0,1].
func setHexAlpha(dc *gg.Context, hex string, alpha float64) {
	r, g, b := parseHex(hex)
	dc.SetRGBA(r, g, b, alpha)
}

func parseHex(hex string) (r, g, b float64) {
	var ri, gi, bi int
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	fmt.Sscanf(hex, "%02x%02x%02x", &ri, &gi, &bi)
	return float64(ri) / 255, float64(gi) / 255, float64(bi) / 255
}
