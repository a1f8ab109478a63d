// Package reportdoc models a report as a flat list of blocks and marshals
// it to a DOCX file. The model carries only what the readiness reports
// need: headings, styled text, tables with shading, embedded PNG charts,
// metric tiles and page breaks.
package reportdoc

// Alignment values accepted by paragraphs, images and table cells.
const (
	AlignLeft   = ""
	AlignCenter = "center"
	AlignRight  = "right"
)

// Block is one vertical element of a document body.
type Block interface {
	isBlock()
}

// Document is an ordered list of blocks marshalled into word/document.xml.
type Document struct {
	Blocks []Block
}

// Add appends blocks to the document body.
func (d *Document) Add(blocks ...Block) {
	d.Blocks = append(d.Blocks, blocks...)
}

// Run is a span of text with uniform formatting. Size is in points; zero
// means the document default (10pt). Colour is a hex string without '#'.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Size   int
	Colour string
}

// Heading is a bold paragraph at one of three levels (1 largest).
type Heading struct {
	Text   string
	Level  int
	Colour string
	Align  string
}

func (Heading) isBlock() {}

// Paragraph is a sequence of runs with optional alignment and spacing.
// SpaceBefore and SpaceAfter are in twentieths of a point.
type Paragraph struct {
	Runs        []Run
	Align       string
	SpaceBefore int
	SpaceAfter  int
}

func (Paragraph) isBlock() {}

// Text builds a plain single-run paragraph.
func Text(s string) Paragraph {
	return Paragraph{Runs: []Run{{Text: s}}}
}

// Spacer is an empty paragraph.
type Spacer struct{}

func (Spacer) isBlock() {}

// PageBreak forces the following block onto a new page.
type PageBreak struct{}

func (PageBreak) isBlock() {}

// Image embeds a PNG scaled to WidthInches; height follows the PNG's
// aspect ratio.
type Image struct {
	PNG         []byte
	WidthInches float64
	Align       string
}

func (Image) isBlock() {}

// Cell is one table cell. Runs override Text when set; Image renders
// instead of text when non-nil. Shade is a hex fill without '#'.
type Cell struct {
	Text   string
	Runs   []Run
	Image  *Image
	Shade  string
	Bold   bool
	Colour string
	Align  string
}

// Table renders a bordered table. When Zebra is set, body rows without an
// explicit cell shade alternate white and cream. HeaderShade colours the
// header row; header text is white and bold.
type Table struct {
	Headers     []string
	HeaderShade string
	ColWidths   []int // twips; optional, len must match column count when set
	Rows        [][]Cell
	Zebra       bool
}

func (Table) isBlock() {}

// MetricTile is one cell of a metrics strip: a large coloured value over a
// small label.
type MetricTile struct {
	Value  string
	Label  string
	Colour string
}

// MetricTiles renders a single-row strip of equally sized shaded tiles.
type MetricTiles struct {
	Tiles []MetricTile
}

func (MetricTiles) isBlock() {}

// List renders one paragraph per item, bulleted or numbered.
type List struct {
	Items    []string
	Numbered bool
}

func (List) isBlock() {}
