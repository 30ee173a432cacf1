package infra

// pdf.go — inventory report generation using go-pdf/fpdf.
// Layout: a title page (report name, total count, generation timestamp)
// followed by a paginated table of cylinders. The table header is re-drawn
// at the top of every page.

import (
	"bytes"
	"fmt"
	"time"

	"github.com/amirda88/gas-cylinder-tracker/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateInventoryPDF renders the cylinder report and returns the PDF bytes.
func GenerateInventoryPDF(cylinders []model.Cylinder, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(12, 12, 12)

	// ── Title page ───────────────────────────────────────────────────────────
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(0, pageH/3)
	pdf.CellFormat(pageW, 10, "Cylinder Inventory Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(pageW, 8, fmt.Sprintf("Total Cylinders: %d", len(cylinders)), "", 1, "C", false, 0, "")
	pdf.CellFormat(pageW, 8, generatedAt.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")

	// ── Table ────────────────────────────────────────────────────────────────
	contentW := pageW - 24
	cols := []struct {
		title string
		w     float64
	}{
		{"Barcode", contentW * 0.18},
		{"Type", contentW * 0.12},
		{"Gas", contentW * 0.14},
		{"Size", contentW * 0.12},
		{"Status", contentW * 0.14},
		{"Registered", contentW * 0.15},
		{"Updated", contentW * 0.15},
	}

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		for _, col := range cols {
			pdf.CellFormat(col.w, 7, col.title, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}

	pdf.AddPage()
	drawHeader()

	for _, cyl := range cylinders {
		if pdf.GetY() > pageH-20 {
			pdf.AddPage()
			drawHeader()
		}

		updated := ""
		if cyl.UpdatedBy != "" {
			updated = cyl.UpdatedAt.Format("2006-01-02")
		}
		values := []string{
			cyl.Barcode,
			cyl.CylinderType,
			cyl.GasType,
			cyl.Size,
			cyl.Status,
			cyl.CreatedAt.Format("2006-01-02"),
			updated,
		}
		for i, v := range values {
			pdf.CellFormat(cols[i].w, 6, v, "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render report: %w", err)
	}
	return buf.Bytes(), nil
}
