package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterCylinderRequest struct {
	CylinderType string           `json:"cylinder_type"`
	GasType      string           `json:"gas_type"      validate:"required,min=1,max=100"`
	Size         string           `json:"size"          validate:"required,max=50"`
	Status       string           `json:"status"        validate:"required"`
	CapacityKg   *decimal.Decimal `json:"capacity_kg"`
	TareWeightKg *decimal.Decimal `json:"tare_weight_kg"`
}

type UpdateStatusRequest struct {
	NewStatus string `json:"new_status" validate:"required"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type CylinderFilter struct {
	GasType string `form:"gas_type"`
	Status  string `form:"status"`
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ReportFilter narrows the report/export queries. Start/End bound created_at
// and accept "2006-01-02" dates.
type ReportFilter struct {
	Status string `form:"status"`
	Start  string `form:"start" validate:"omitempty,datetime=2006-01-02"`
	End    string `form:"end"   validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CylinderResponse struct {
	ID           string           `json:"id"`
	CylinderType string           `json:"cylinder_type"`
	GasType      string           `json:"gas_type"`
	Size         string           `json:"size"`
	Status       string           `json:"status"`
	Barcode      string           `json:"barcode"`
	LabelURL     string           `json:"label_url"`
	CapacityKg   *decimal.Decimal `json:"capacity_kg,omitempty"`
	TareWeightKg *decimal.Decimal `json:"tare_weight_kg,omitempty"`
	CreatedBy    string           `json:"created_by"`
	UpdatedBy    string           `json:"updated_by,omitempty"`
	CreatedAt    string           `json:"created_at"`
	UpdatedAt    string           `json:"updated_at"`
}

type CylinderListResponse struct {
	Data       []CylinderResponse `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

type StatusHistoryResponse struct {
	ID        string `json:"id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	ChangedBy string `json:"changed_by"`
	CreatedAt string `json:"created_at"`
}

type MovementResponse struct {
	ID          string `json:"id"`
	Action      string `json:"action"`
	Note        string `json:"note"`
	PerformedBy string `json:"performed_by"`
	CreatedAt   string `json:"created_at"`
}

// ─── Dashboard ───────────────────────────────────────────────────────────────

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type GasTypeCount struct {
	GasType string `json:"gas_type"`
	Count   int64  `json:"count"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type DashboardResponse struct {
	TotalCount     int64          `json:"total_count"`
	AvailableCount int64          `json:"available_count"`
	ReturnedCount  int64          `json:"returned_count"`
	ByStatus       []StatusCount  `json:"by_status"`
	ByGasType      []GasTypeCount `json:"by_gas_type"`
	Registrations  []DailyCount   `json:"registrations"`
}
