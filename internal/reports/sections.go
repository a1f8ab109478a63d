package reports

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"readiness-backend/internal/charts"
	"readiness-backend/internal/framework"
	"readiness-backend/internal/reportdoc"
)

// Brand colours for document text and shading (hex without '#').
const (
	colourPurple       = "461E96"
	colourMagenta      = "E6008C"
	colourMidGrey      = "6E6E6E"
	colourLightGrey    = "F5F5F5"
	colourSuccessGreen = "2E7D32"
)

const (
	radarWidthInches = 4.0
	barWidthInches   = 0.8
)

// docHex strips the '#' prefix framework colours carry; DOCX colour values
// are bare hex.
func docHex(colour string) string {
	return strings.TrimPrefix(colour, "#")
}

func formatScore(f float64) string {
	return fmt.Sprintf("%.1f", f)
}

func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[0]
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// titleBlocks renders the shared report masthead.
func titleBlocks(subtitle string) []reportdoc.Block {
	return []reportdoc.Block{
		reportdoc.Paragraph{Runs: []reportdoc.Run{
			{Text: "THE READINESS FRAMEWORK", Bold: true, Size: 14, Colour: colourPurple},
		}},
		reportdoc.Paragraph{Runs: []reportdoc.Run{
			{Text: subtitle, Size: 12, Colour: colourMagenta},
		}},
	}
}

func sectionHeading(text string, size int) reportdoc.Paragraph {
	return headingIn(text, size, colourPurple)
}

func headingIn(text string, size int, colour string) reportdoc.Paragraph {
	return reportdoc.Paragraph{
		Runs:        []reportdoc.Run{{Text: text, Bold: true, Size: size, Colour: colour}},
		SpaceBefore: 120,
		SpaceAfter:  60,
	}
}

func noteParagraph(text, align string) reportdoc.Paragraph {
	return reportdoc.Paragraph{
		Runs:  []reportdoc.Run{{Text: text, Italic: true, Size: 8, Colour: colourMidGrey}},
		Align: align,
	}
}

// infoTable renders the label/value header table: shaded bold labels in a
// narrow first column.
func infoTable(pairs [][2]string) reportdoc.Table {
	rows := make([][]reportdoc.Cell, 0, len(pairs))
	for _, pair := range pairs {
		rows = append(rows, []reportdoc.Cell{
			{Text: pair[0], Bold: true, Shade: colourLightGrey},
			{Text: pair[1]},
		})
	}
	return reportdoc.Table{
		ColWidths: []int{2200, 7438},
		Rows:      rows,
	}
}

// indicatorAxes maps the four indicators to radar axes in survey order.
func indicatorAxes() []charts.Axis {
	axes := make([]charts.Axis, 0, len(framework.Indicators))
	for _, ind := range framework.Indicators {
		axes = append(axes, charts.Axis{Label: ind.Name, Colour: ind.Colour})
	}
	return axes
}

// indicatorValues orders a name-keyed score map by survey order.
func indicatorValues(byName map[string]float64) []float64 {
	values := make([]float64, 0, len(framework.Indicators))
	for _, ind := range framework.Indicators {
		values = append(values, byName[ind.Name])
	}
	return values
}

// overallCells styles the trailing OVERALL summary row: grey shade, bold,
// first cell left-aligned, the rest centred.
func overallCells(values []string) []reportdoc.Cell {
	cells := make([]reportdoc.Cell, len(values))
	for i, value := range values {
		align := reportdoc.AlignCenter
		if i == 0 {
			align = reportdoc.AlignLeft
		}
		cells[i] = reportdoc.Cell{Text: value, Bold: true, Shade: colourLightGrey, Align: align}
	}
	return cells
}

func centredCells(first string, rest ...string) []reportdoc.Cell {
	cells := make([]reportdoc.Cell, 0, 1+len(rest))
	cells = append(cells, reportdoc.Cell{Text: first})
	for _, value := range rest {
		cells = append(cells, reportdoc.Cell{Text: value, Align: reportdoc.AlignCenter})
	}
	return cells
}

// reflectionBlocks renders question/answer pairs in question order.
// extra, when non-nil, may inject blocks between a question and its answer.
func reflectionBlocks(questions map[int]string, responses map[int]string, extra func(qNum int) []reportdoc.Block) []reportdoc.Block {
	numbers := make([]int, 0, len(questions))
	for n := range questions {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	var blocks []reportdoc.Block
	for _, n := range numbers {
		blocks = append(blocks, reportdoc.Paragraph{
			Runs: []reportdoc.Run{{Text: questions[n], Bold: true}},
		})
		if extra != nil {
			blocks = append(blocks, extra(n)...)
		}
		response := responses[n]
		if strings.TrimSpace(response) == "" {
			response = "No response provided"
		}
		blocks = append(blocks,
			reportdoc.Paragraph{Runs: []reportdoc.Run{{Text: response, Italic: true}}},
			reportdoc.Spacer{},
		)
	}
	return blocks
}

// appendixBlocks closes every report with the rating-scale legend and the
// focus-area glossary.
func appendixBlocks() []reportdoc.Block {
	blocks := []reportdoc.Block{
		reportdoc.PageBreak{},
		sectionHeading("Appendix", 14),
		headingIn("Rating Scale", 11, colourPurple),
	}

	scaleRows := make([][]reportdoc.Cell, 0, framework.MaxRating)
	for score := framework.MinRating; score <= framework.MaxRating; score++ {
		scaleRows = append(scaleRows, []reportdoc.Cell{
			{Text: fmt.Sprintf("%d", score), Align: reportdoc.AlignCenter},
			{Text: framework.RatingScale[score]},
		})
	}
	blocks = append(blocks, reportdoc.Table{
		Headers:     []string{"Score", "Meaning"},
		HeaderShade: colourPurple,
		ColWidths:   []int{1200, 8438},
		Rows:        scaleRows,
		Zebra:       true,
	})

	blocks = append(blocks, headingIn("Focus Areas", 11, colourPurple))
	focusRows := make([][]reportdoc.Cell, 0, len(framework.FocusTags))
	for _, ft := range framework.FocusTags {
		focusRows = append(focusRows, []reportdoc.Cell{
			{Text: string(ft.Tag)},
			{Text: ft.Description},
		})
	}
	blocks = append(blocks, reportdoc.Table{
		Headers:     []string{"Focus Area", "What It Measures"},
		HeaderShade: colourPurple,
		ColWidths:   []int{2200, 7438},
		Rows:        focusRows,
		Zebra:       true,
	})

	return blocks
}
