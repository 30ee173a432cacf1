package handler

import (
	"net/http"

	"github.com/amirda88/gas-cylinder-tracker/internal/dto"
	"github.com/amirda88/gas-cylinder-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	svc service.ReportService
}

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// ExportCSV streams the filtered inventory as a CSV attachment.
func (h *ReportsHandler) ExportCSV(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindAndValidateQuery(c, &filter) {
		return
	}
	data, err := h.svc.ExportCSV(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="cylinders_export.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportPDF streams the filtered inventory report as a PDF attachment.
func (h *ReportsHandler) ExportPDF(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindAndValidateQuery(c, &filter) {
		return
	}
	data, err := h.svc.ExportPDF(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="cylinder_report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
