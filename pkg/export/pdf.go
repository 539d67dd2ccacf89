// Package export renders printable schedule sheets.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// SheetRow is one printed line of the schedule table. Highlight rows (gaps,
// warnings) are rendered in italics with a shaded background.
type SheetRow struct {
	Columns   []string
	Highlight bool
}

// Sheet describes a printable schedule: a title, free-form meta lines under
// it, a column header and the table body.
type Sheet struct {
	Title   string
	Meta    []string
	Headers []string
	Rows    []SheetRow
}

// PDFRenderer turns sheets into PDF documents.
type PDFRenderer struct{}

// NewPDFRenderer constructs a renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render lays the sheet out on A4 portrait pages.
func (r *PDFRenderer) Render(sheet Sheet) ([]byte, error) {
	if len(sheet.Headers) == 0 {
		return nil, fmt.Errorf("sheet requires at least one header")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if sheet.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, sheet.Title, "", 1, "C", false, 0, "")
	}
	if len(sheet.Meta) > 0 {
		pdf.SetFont("Arial", "", 10)
		for _, line := range sheet.Meta {
			pdf.CellFormat(0, 6, line, "", 1, "C", false, 0, "")
		}
	}
	pdf.Ln(4)

	colWidth := 190.0 / float64(len(sheet.Headers))

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, header := range sheet.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	for _, row := range sheet.Rows {
		if row.Highlight {
			pdf.SetFont("Arial", "I", 9)
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFont("Arial", "", 9)
		}
		for i := 0; i < len(sheet.Headers); i++ {
			var value string
			if i < len(row.Columns) {
				value = row.Columns[i]
			}
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", row.Highlight, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
