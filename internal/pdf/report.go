package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/BornToCode265/ADIS/internal/models"
)

// OverviewReport is the data the admin PDF export renders.
type OverviewReport struct {
	TotalUsers     int
	TotalProducts  int
	ActiveProducts int
	TotalTickets   int
	OpenTickets    int
	Health         *models.SystemHealth
	GeneratedAt    time.Time
}

// ReportGenerator renders admin reports. Kept as an interface so
// handlers can be tested without gofpdf in the loop.
type ReportGenerator interface {
	GenerateOverview(report OverviewReport) ([]byte, error)
}

type reportGenerator struct{}

func NewReportGenerator() ReportGenerator {
	return &reportGenerator{}
}

func (g *reportGenerator) GenerateOverview(report OverviewReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("ADIS System Overview", false)
	pdf.SetAuthor("ADIS", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "ADIS System Overview", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Generated "+report.GeneratedAt.Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	line := func(label string, value int) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(80, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("%d", value), "", 1, "L", false, 0, "")
	}

	line("Registered farmers", report.TotalUsers)
	line("Registered systems", report.TotalProducts)
	line("Active systems", report.ActiveProducts)
	line("Support tickets", report.TotalTickets)
	line("Open tickets", report.OpenTickets)

	if report.Health != nil {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 9, "System health", "", 1, "L", false, 0, "")
		line("Systems reporting", report.Health.TotalSystems)
		line("Systems in error", report.Health.ErrorSystems)
		line("Low soil moisture", report.Health.LowMoistureSystems)
		line("High temperature", report.Health.HighTempSystems)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render overview pdf: %w", err)
	}
	return buf.Bytes(), nil
}
