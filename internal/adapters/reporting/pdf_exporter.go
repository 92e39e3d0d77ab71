// Package reporting renders the installation's roster sheet: the document
// posted next to the piece describing what it transmits.
package reporting

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/lcalzada-xor/ghostfield/internal/core/domain"
)

// PDFExporter exports roster sheets to PDF format.
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// RosterSheet describes what the sheet documents.
type RosterSheet struct {
	Title          string
	Roster         domain.Roster
	Plan           domain.ChannelPlan
	BeaconInterval time.Duration
	GeneratedAt    time.Time
}

// ExportRosterSheet generates a one-page PDF listing every advertised
// identity and the rotation plan.
func (e *PDFExporter) ExportRosterSheet(sheet RosterSheet) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, sheet)
	e.addCadence(pdf, sheet)
	e.addRosterTable(pdf, sheet)
	e.addFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, sheet RosterSheet) {
	title := sheet.Title
	if title == "" {
		title = "Ghostfield Roster Sheet"
	}

	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 14, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	dateStr := fmt.Sprintf("Generated: %s", sheet.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.CellFormat(0, 6, dateStr, "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (e *PDFExporter) addCadence(pdf *gofpdf.Fpdf, sheet RosterSheet) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "Transmission", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 6, fmt.Sprintf("Beacon interval: %s", sheet.BeaconInterval), "", 1, "L", false, 0, "")

	plan := ""
	for i, ch := range sheet.Plan.All() {
		if i > 0 {
			plan += ", "
		}
		plan += fmt.Sprintf("%d", ch)
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Channel rotation: %s", plan), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (e *PDFExporter) addRosterTable(pdf *gofpdf.Fpdf, sheet RosterSheet) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, fmt.Sprintf("Advertised Networks (%d)", sheet.Roster.Len()), "", 1, "L", false, 0, "")

	// Table header
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 235, 245)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "BSSID", "1", 0, "L", true, 0, "")
	pdf.CellFormat(80, 7, "SSID", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Epoch Offset", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetFillColor(248, 248, 248)
	for i, ap := range sheet.Roster.All() {
		fill := i%2 == 1
		pdf.CellFormat(12, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(45, 6, ap.BSSID.String(), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(80, 6, ap.Name(), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(40, 6, ap.EpochOffset.String(), "1", 1, "L", fill, 0, "")
	}
	pdf.Ln(4)
}

func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf) {
	pdf.SetY(-20)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 5, "All identities are synthetic. Nothing on this list accepts connections.", "", 1, "C", false, 0, "")
}
