package reportdoc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image/png"
	"strings"
)

const (
	wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	emuPerInch = 914400

	defaultHalfPoints = 20 // 10pt body text

	zebraShade = "FDF6E3"
	tileShade  = "F5F5F5"
	borderGrey = "D9D9D9"

	// A4 portrait with 2cm margins, in twips.
	pageWidthTwips   = 11906
	pageHeightTwips  = 16838
	pageMarginTwips  = 1134
	contentWidthTwip = pageWidthTwips - 2*pageMarginTwips
)

type imagePart struct {
	relID string
	name  string
	data  []byte
}

type marshaller struct {
	body   strings.Builder
	images []imagePart
	drawID int
}

// Marshal encodes the document as a DOCX byte slice.
func Marshal(doc Document) ([]byte, error) {
	if len(doc.Blocks) == 0 {
		return nil, errors.New("document has no blocks")
	}

	m := &marshaller{}
	for _, block := range doc.Blocks {
		if err := m.writeBlock(block); err != nil {
			return nil, err
		}
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/document.xml", m.documentXML()},
		{"word/_rels/document.xml.rels", m.documentRelsXML()},
		{"word/styles.xml", []byte(stylesXML)},
	}
	for _, part := range parts {
		if err := writeZipPart(writer, part.name, part.content); err != nil {
			return nil, err
		}
	}
	for _, img := range m.images {
		if err := writeZipPart(writer, "word/media/"+img.name, img.data); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

func writeZipPart(writer *zip.Writer, name string, content []byte) error {
	dst, err := writer.Create(name)
	if err != nil {
		return err
	}
	_, err = dst.Write(content)
	return err
}

func (m *marshaller) documentXML() []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="` + wmlNamespace + `" xmlns:r="` + relNamespace + `"`)
	b.WriteString(` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"`)
	b.WriteString(` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`)
	b.WriteString(` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	b.WriteString(`<w:body>`)
	b.WriteString(m.body.String())
	fmt.Fprintf(&b, `<w:sectPr><w:pgSz w:w="%d" w:h="%d"/><w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="709" w:footer="709" w:gutter="0"/></w:sectPr>`,
		pageWidthTwips, pageHeightTwips, pageMarginTwips, pageMarginTwips, pageMarginTwips, pageMarginTwips)
	b.WriteString(`</w:body></w:document>`)
	return []byte(b.String())
}

func (m *marshaller) documentRelsXML() []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="` + relNamespace + `/styles" Target="styles.xml"/>`)
	for _, img := range m.images {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s/image" Target="media/%s"/>`, img.relID, relNamespace, img.name)
	}
	b.WriteString(`</Relationships>`)
	return []byte(b.String())
}

func (m *marshaller) writeBlock(block Block) error {
	switch v := block.(type) {
	case Heading:
		m.writeHeading(v)
	case Paragraph:
		m.writeParagraph(v)
	case Spacer:
		m.body.WriteString(`<w:p/>`)
	case PageBreak:
		m.body.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
	case Image:
		return m.writeImageParagraph(v)
	case Table:
		return m.writeTable(v)
	case MetricTiles:
		return m.writeMetricTiles(v)
	case List:
		m.writeList(v)
	default:
		return fmt.Errorf("unsupported block type %T", block)
	}
	return nil
}

func headingSize(level int) int {
	switch level {
	case 1:
		return 36
	case 2:
		return 28
	default:
		return 24
	}
}

func (m *marshaller) writeHeading(h Heading) {
	m.writeParagraph(Paragraph{
		Runs:        []Run{{Text: h.Text, Bold: true, Size: headingSize(h.Level) / 2, Colour: h.Colour}},
		Align:       h.Align,
		SpaceBefore: 120,
		SpaceAfter:  120,
	})
}

func (m *marshaller) writeParagraph(p Paragraph) {
	m.body.WriteString(`<w:p>`)
	m.writeParagraphProps(p.Align, p.SpaceBefore, p.SpaceAfter)
	for _, run := range p.Runs {
		m.writeRun(run)
	}
	m.body.WriteString(`</w:p>`)
}

func (m *marshaller) writeParagraphProps(align string, before, after int) {
	if align == "" && before == 0 && after == 0 {
		return
	}
	m.body.WriteString(`<w:pPr>`)
	if before != 0 || after != 0 {
		fmt.Fprintf(&m.body, `<w:spacing w:before="%d" w:after="%d"/>`, before, after)
	}
	if align != "" {
		fmt.Fprintf(&m.body, `<w:jc w:val="%s"/>`, align)
	}
	m.body.WriteString(`</w:pPr>`)
}

func (m *marshaller) writeRun(r Run) {
	m.body.WriteString(`<w:r>`)
	if r.Bold || r.Italic || r.Size != 0 || r.Colour != "" {
		m.body.WriteString(`<w:rPr>`)
		if r.Bold {
			m.body.WriteString(`<w:b/>`)
		}
		if r.Italic {
			m.body.WriteString(`<w:i/>`)
		}
		if r.Colour != "" {
			fmt.Fprintf(&m.body, `<w:color w:val="%s"/>`, r.Colour)
		}
		if r.Size != 0 {
			fmt.Fprintf(&m.body, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, r.Size*2, r.Size*2)
		}
		m.body.WriteString(`</w:rPr>`)
	}
	m.body.WriteString(`<w:t xml:space="preserve">`)
	m.body.WriteString(escapeXML(r.Text))
	m.body.WriteString(`</w:t></w:r>`)
}

func (m *marshaller) writeImageParagraph(img Image) error {
	m.body.WriteString(`<w:p>`)
	m.writeParagraphProps(img.Align, 0, 0)
	m.body.WriteString(`<w:r>`)
	if err := m.writeDrawing(img); err != nil {
		return err
	}
	m.body.WriteString(`</w:r></w:p>`)
	return nil
}

func (m *marshaller) writeDrawing(img Image) error {
	if len(img.PNG) == 0 {
		return errors.New("image has no PNG data")
	}
	if img.WidthInches <= 0 {
		return errors.New("image width must be positive")
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(img.PNG))
	if err != nil {
		return fmt.Errorf("decode PNG header: %w", err)
	}

	m.drawID++
	id := m.drawID
	relID := fmt.Sprintf("rId%d", 1+id)
	name := fmt.Sprintf("image%d.png", id)
	m.images = append(m.images, imagePart{relID: relID, name: name, data: img.PNG})

	cx := int64(img.WidthInches * emuPerInch)
	cy := cx * int64(cfg.Height) / int64(cfg.Width)

	fmt.Fprintf(&m.body, `<w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
		`<wp:extent cx="%d" cy="%d"/><wp:docPr id="%d" name="chart%d"/>`+
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:pic><pic:nvPicPr><pic:cNvPr id="%d" name="chart%d"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing>`,
		cx, cy, id, id, id, id, relID, cx, cy)
	return nil
}

func (m *marshaller) writeTable(t Table) error {
	columns := len(t.Headers)
	if columns == 0 && len(t.Rows) > 0 {
		columns = len(t.Rows[0])
	}
	if columns == 0 {
		return errors.New("table has no columns")
	}
	widths := t.ColWidths
	if len(widths) == 0 {
		widths = evenColumnWidths(columns)
	}
	if len(widths) != columns {
		return fmt.Errorf("table has %d columns but %d widths", columns, len(widths))
	}

	m.writeTableOpen(widths)

	if len(t.Headers) > 0 {
		m.body.WriteString(`<w:tr>`)
		for i, header := range t.Headers {
			cell := Cell{
				Runs:  []Run{{Text: header, Bold: true, Colour: "FFFFFF"}},
				Shade: t.HeaderShade,
				Align: AlignCenter,
			}
			if err := m.writeCell(cell, widths[i]); err != nil {
				return err
			}
		}
		m.body.WriteString(`</w:tr>`)
	}

	for rowIdx, row := range t.Rows {
		if len(row) != columns {
			return fmt.Errorf("table row %d has %d cells, want %d", rowIdx, len(row), columns)
		}
		m.body.WriteString(`<w:tr>`)
		for i, cell := range row {
			if cell.Shade == "" && t.Zebra && rowIdx%2 == 1 {
				cell.Shade = zebraShade
			}
			if err := m.writeCell(cell, widths[i]); err != nil {
				return err
			}
		}
		m.body.WriteString(`</w:tr>`)
	}

	m.body.WriteString(`</w:tbl>`)
	// A table immediately followed by another table or the body end confuses
	// some consumers; Word expects a paragraph between them.
	m.body.WriteString(`<w:p/>`)
	return nil
}

func (m *marshaller) writeTableOpen(widths []int) {
	m.body.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/><w:tblBorders>`)
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		fmt.Fprintf(&m.body, `<w:%s w:val="single" w:sz="4" w:space="0" w:color="%s"/>`, side, borderGrey)
	}
	m.body.WriteString(`</w:tblBorders></w:tblPr><w:tblGrid>`)
	for _, width := range widths {
		fmt.Fprintf(&m.body, `<w:gridCol w:w="%d"/>`, width)
	}
	m.body.WriteString(`</w:tblGrid>`)
}

func (m *marshaller) writeCell(cell Cell, width int) error {
	fmt.Fprintf(&m.body, `<w:tc><w:tcPr><w:tcW w:w="%d" w:type="dxa"/>`, width)
	if cell.Shade != "" {
		fmt.Fprintf(&m.body, `<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, cell.Shade)
	}
	m.body.WriteString(`<w:tcMar><w:top w:w="60" w:type="dxa"/><w:left w:w="80" w:type="dxa"/><w:bottom w:w="60" w:type="dxa"/><w:right w:w="80" w:type="dxa"/></w:tcMar>`)
	m.body.WriteString(`<w:vAlign w:val="center"/></w:tcPr>`)

	if cell.Image != nil {
		img := *cell.Image
		if img.Align == "" {
			img.Align = cell.Align
		}
		if err := m.writeImageParagraph(img); err != nil {
			return err
		}
		m.body.WriteString(`</w:tc>`)
		return nil
	}

	runs := cell.Runs
	if runs == nil {
		runs = []Run{{Text: cell.Text, Bold: cell.Bold, Colour: cell.Colour}}
	}
	m.writeParagraph(Paragraph{Runs: runs, Align: cell.Align})
	m.body.WriteString(`</w:tc>`)
	return nil
}

func (m *marshaller) writeMetricTiles(tiles MetricTiles) error {
	if len(tiles.Tiles) == 0 {
		return errors.New("metric strip has no tiles")
	}
	widths := evenColumnWidths(len(tiles.Tiles))
	m.writeTableOpen(widths)
	m.body.WriteString(`<w:tr>`)
	for i, tile := range tiles.Tiles {
		fmt.Fprintf(&m.body, `<w:tc><w:tcPr><w:tcW w:w="%d" w:type="dxa"/>`, widths[i])
		fmt.Fprintf(&m.body, `<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, tileShade)
		m.body.WriteString(`<w:tcMar><w:top w:w="120" w:type="dxa"/><w:left w:w="80" w:type="dxa"/><w:bottom w:w="120" w:type="dxa"/><w:right w:w="80" w:type="dxa"/></w:tcMar>`)
		m.body.WriteString(`<w:vAlign w:val="center"/></w:tcPr>`)
		m.writeParagraph(Paragraph{
			Runs:  []Run{{Text: tile.Value, Bold: true, Size: 16, Colour: tile.Colour}},
			Align: AlignCenter,
		})
		m.writeParagraph(Paragraph{
			Runs:  []Run{{Text: tile.Label, Size: 8, Colour: "555555"}},
			Align: AlignCenter,
		})
		m.body.WriteString(`</w:tc>`)
	}
	m.body.WriteString(`</w:tr></w:tbl><w:p/>`)
	return nil
}

// writeList renders list markers as literal text, which keeps the package
// free of a numbering part.
func (m *marshaller) writeList(list List) {
	for i, item := range list.Items {
		marker := "• "
		if list.Numbered {
			marker = fmt.Sprintf("%d. ", i+1)
		}
		m.writeParagraph(Paragraph{
			Runs:       []Run{{Text: marker + item}},
			SpaceAfter: 60,
		})
	}
}

func evenColumnWidths(columns int) []int {
	widths := make([]int, columns)
	each := contentWidthTwip / columns
	for i := range widths {
		widths[i] = each
	}
	return widths
}

func escapeXML(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
