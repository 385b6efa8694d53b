/*
pdf.go - PDF layout primitives

PURPOSE:
  Thin wrapper around fpdf with the handful of layout blocks the
  document builders need: titles, headings, paragraphs, bullet lists,
  label/value field tables, signature grids and checkbox grids.

MARKER STYLING:
  Field values that need attention ([REQUIRED]/[REVIEW]) are printed
  bold in a dark orange so they stand out when the document is
  reviewed on screen or in print.
*/
package docgen

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

const (
	pageWidth  = 170.0 // A4 minus 20mm margins
	labelWidth = 62.0
	valueWidth = pageWidth - labelWidth
	lineHeight = 5.0
)

type pdf struct {
	f *fpdf.Fpdf
}

func newPDF() *pdf {
	f := fpdf.New("P", "mm", "A4", "")
	f.SetMargins(20, 18, 20)
	f.SetAutoPageBreak(true, 18)
	f.AddPage()
	return &pdf{f: f}
}

func (p *pdf) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.f.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *pdf) title(text string) {
	p.f.SetFont("Helvetica", "B", 15)
	p.f.CellFormat(pageWidth, 9, text, "", 1, "C", false, 0, "")
	p.f.Ln(2)
}

func (p *pdf) subtitle(text string) {
	p.f.SetFont("Helvetica", "", 11)
	p.f.CellFormat(pageWidth, 6, text, "", 1, "C", false, 0, "")
	p.f.Ln(2)
}

func (p *pdf) heading(text string) {
	p.f.SetFont("Helvetica", "B", 12)
	p.f.CellFormat(pageWidth, 7, text, "", 1, "L", false, 0, "")
	p.f.Ln(1)
}

func (p *pdf) subheading(text string) {
	p.f.SetFont("Helvetica", "B", 10.5)
	p.f.CellFormat(pageWidth, 6, text, "", 1, "L", false, 0, "")
}

func (p *pdf) para(text string) {
	p.f.SetFont("Helvetica", "", 10)
	p.f.MultiCell(pageWidth, lineHeight, text, "", "L", false)
	p.f.Ln(2)
}

// markerPara prints a highlighted marker followed by explanatory text.
func (p *pdf) markerPara(marker, text string) {
	p.f.SetFont("Helvetica", "B", 10)
	p.f.SetTextColor(204, 102, 0)
	p.f.CellFormat(p.f.GetStringWidth(marker)+2, lineHeight, marker, "", 0, "L", false, 0, "")
	p.f.SetTextColor(0, 0, 0)
	p.f.SetFont("Helvetica", "", 10)
	p.f.MultiCell(pageWidth-p.f.GetStringWidth(marker)-2, lineHeight, text, "", "L", false)
	p.f.Ln(2)
}

func (p *pdf) bullets(items []string) {
	p.f.SetFont("Helvetica", "", 10)
	for _, item := range items {
		p.f.CellFormat(5, lineHeight, "-", "", 0, "R", false, 0, "")
		p.f.MultiCell(pageWidth-5, lineHeight, item, "", "L", false)
	}
	p.f.Ln(2)
}

func (p *pdf) gap() {
	p.f.Ln(3)
}

type fieldRow struct {
	label string
	value Field
}

// fieldTable renders a bordered two-column label/value table. Values
// needing attention are highlighted.
func (p *pdf) fieldTable(rows []fieldRow) {
	for _, r := range rows {
		text := r.value.Render()

		p.f.SetFont("Helvetica", "", 9.5)
		lines := p.f.SplitText(text, valueWidth-3)
		if len(lines) == 0 {
			lines = []string{""}
		}
		h := lineHeight * float64(len(lines))

		x, y := p.f.GetXY()
		p.f.SetFont("Helvetica", "B", 9.5)
		p.f.CellFormat(labelWidth, h, r.label, "1", 0, "L", false, 0, "")

		p.f.Rect(x+labelWidth, y, valueWidth, h, "D")
		if r.value.NeedsAttention() {
			p.f.SetFont("Helvetica", "B", 9.5)
			p.f.SetTextColor(204, 102, 0)
		} else {
			p.f.SetFont("Helvetica", "", 9.5)
		}
		p.f.SetXY(x+labelWidth+1.5, y)
		p.f.MultiCell(valueWidth-3, lineHeight, text, "", "L", false)
		p.f.SetTextColor(0, 0, 0)
		p.f.SetXY(x, y+h)
	}
	p.f.Ln(3)
}

// grid renders a bordered table with a bold header row. Cells are
// single-line; widths must sum to pageWidth.
func (p *pdf) grid(widths []float64, header []string, rows [][]string) {
	p.f.SetFont("Helvetica", "B", 9)
	for i, h := range header {
		p.f.CellFormat(widths[i], 6, h, "1", 0, "L", false, 0, "")
	}
	p.f.Ln(-1)

	p.f.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			p.f.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		p.f.Ln(-1)
	}
	p.f.Ln(3)
}

// signatureGrid renders the standard party / signature / date block.
func (p *pdf) signatureGrid(parties []string) {
	rows := make([][]string, len(parties))
	for i, party := range parties {
		rows[i] = []string{party, "", ""}
	}
	p.grid([]float64{50, 60, 60}, []string{"", "Signature", "Date"}, rows)
}

// factorGrid renders an investigation checklist: one factor per row
// with empty Y / N / N/A tick boxes.
func (p *pdf) factorGrid(caption string, factors []string) {
	p.subheading(caption)
	rows := make([][]string, len(factors))
	for i, f := range factors {
		rows[i] = []string{f, "", "", ""}
	}
	p.grid([]float64{110, 20, 20, 20}, []string{"Factor", "Y", "N", "N/A"}, rows)
}
