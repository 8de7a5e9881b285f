package out

import (
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"libtrack/internal/modules/export/domain"
	exportout "libtrack/internal/modules/export/port/out"
)

// GofpdfWriter renders tables as A4 portrait documents with a grid and
// an indigo header band, repeating the header on every page.
type GofpdfWriter struct{}

func NewGofpdfWriter() exportout.DocumentWriter {
	return GofpdfWriter{}
}

const (
	pdfMarginLeft  = 14.0
	pdfMarginTop   = 15.0
	pdfRowHeight   = 7.0
	pdfPageBreakAt = 275.0
	pdfTableWidth  = 182.0
)

func (GofpdfWriter) WriteTable(_ context.Context, table domain.Table, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(pdfMarginLeft, pdfMarginTop, table.Title)
	pdf.SetY(pdfMarginTop + 5)

	colWidth := pdfTableWidth / float64(len(table.Headers))
	writeHeader(pdf, table.Headers, colWidth)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range table.Rows {
		if pdf.GetY()+pdfRowHeight > pdfPageBreakAt {
			pdf.AddPage()
			pdf.SetY(pdfMarginTop)
			writeHeader(pdf, table.Headers, colWidth)
			pdf.SetFont("Helvetica", "", 8)
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.SetX(pdfMarginLeft)
		for _, cell := range row {
			pdf.CellFormat(colWidth, pdfRowHeight, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(pdfRowHeight)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

func writeHeader(pdf *gofpdf.Fpdf, headers []string, colWidth float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(79, 70, 229)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetX(pdfMarginLeft)
	for _, h := range headers {
		pdf.CellFormat(colWidth, pdfRowHeight, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(pdfRowHeight)
}
