package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// pdfText converts UTF-8 text to PDF-safe encoding.
// The € sign in UTF-8 is 0xE2 0x82 0xAC, but the PDF core fonts use
// cp1252 where it is the single byte 0x80.
func pdfText(s string) string {
	return strings.ReplaceAll(s, "€", "\x80")
}

// FormatEuroPDF formats money for PDF output (handles € encoding).
func FormatEuroPDF(amount float64) string {
	return pdfText(FormatEuro(amount))
}

// GeneratePDFReport renders the breakdown tables for all sample incomes
// to a PDF file.
func GeneratePDFReport(schedule *Schedule, incomes []float64, title, filename string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(100, 116, 139)
		pdf.CellFormat(0, 10, "Page "+strconv.Itoa(pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// Title block
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(37, 99, 235)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format("2 January 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Schedule summary
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 5, pdfText("Bracket: "+FormatPercent(schedule.Bracket.LowRate)+" up to "+
		FormatEuro(schedule.Bracket.Threshold)+", "+FormatPercent(schedule.Bracket.HighRate)+" above"),
		"", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, pdfText("General credit: max "+FormatEuro(schedule.GeneralCredit.Maximum)+
		", phased out at "+FormatPercent(schedule.GeneralCredit.PhaseOutRate)+" from "+
		FormatEuro(schedule.GeneralCredit.PhaseOutStart)),
		"", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, pdfText("Labour credit: max "+FormatEuro(schedule.LabourCredit.Anchor3)+
		", zero from "+FormatEuro(schedule.LabourCredit.Threshold4)),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	labelWidth := 70.0
	valueWidth := 50.0

	for _, income := range incomes {
		// Keep each table on one page: heading plus 8 rows.
		if pdf.GetY() > 297-20-8*6-10 {
			pdf.AddPage()
		}

		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(37, 99, 235)
		pdf.CellFormat(0, 8, "Gross income "+FormatEuroPDF(income), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(30, 41, 59)
		for i, row := range breakdownRows(schedule, income) {
			fill := i%2 == 1
			pdf.SetFillColor(241, 245, 249)
			pdf.CellFormat(labelWidth, 6, pdfText(row[0]), "1", 0, "L", fill, 0, "")
			pdf.CellFormat(valueWidth, 6, pdfText(row[1]), "1", 1, "R", fill, 0, "")
		}
		pdf.Ln(4)
	}

	return pdf.OutputFileAndClose(filename)
}
