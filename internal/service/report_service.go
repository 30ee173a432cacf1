package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/amirda88/gas-cylinder-tracker/internal/dto"
	"github.com/amirda88/gas-cylinder-tracker/internal/infra"
	"github.com/amirda88/gas-cylinder-tracker/internal/model"
	"github.com/amirda88/gas-cylinder-tracker/internal/repository"
)

// csvHeader mirrors the columns of the legacy export, with barcode-first
// ordering kept intact for downstream spreadsheets.
var csvHeader = []string{
	"ID", "Cylinder Type", "Gas Type", "Size", "Status",
	"Barcode", "Capacity Kg", "Registered On", "Last Updated",
}

// ReportService produces tabular exports of the current inventory. Reads only
// — never mutates the store.
type ReportService interface {
	ExportCSV(ctx context.Context, filter dto.ReportFilter) ([]byte, error)
	ExportPDF(ctx context.Context, filter dto.ReportFilter) ([]byte, error)
}

type reportService struct {
	repo repository.CylinderRepository
}

func NewReportService(repo repository.CylinderRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) fetch(ctx context.Context, filter dto.ReportFilter) ([]model.Cylinder, error) {
	if filter.Status != "" && !model.ValidStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, filter.Status)
	}
	start, err := parseDate(filter.Start, false)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(filter.End, true)
	if err != nil {
		return nil, err
	}
	return s.repo.ListForReport(ctx, filter.Status, start, end)
}

func (s *reportService) ExportCSV(ctx context.Context, filter dto.ReportFilter) ([]byte, error) {
	cylinders, err := s.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i := range cylinders {
		cyl := &cylinders[i]
		capacity := ""
		if cyl.CapacityKg != nil {
			capacity = cyl.CapacityKg.StringFixed(2)
		}
		updated := ""
		if cyl.UpdatedBy != "" {
			updated = cyl.UpdatedAt.Format("2006-01-02 15:04")
		}
		if err := w.Write([]string{
			cyl.ID.String(),
			cyl.CylinderType,
			cyl.GasType,
			cyl.Size,
			cyl.Status,
			cyl.Barcode,
			capacity,
			cyl.CreatedAt.Format("2006-01-02 15:04"),
			updated,
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *reportService) ExportPDF(ctx context.Context, filter dto.ReportFilter) ([]byte, error) {
	cylinders, err := s.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	return infra.GenerateInventoryPDF(cylinders, time.Now())
}

// parseDate turns a "2006-01-02" filter value into a bound. End dates are
// pushed to the last instant of the day so the range is inclusive.
func parseDate(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %s", ErrValidation, strconv.Quote(value))
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
