package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cylinder statuses form a fixed enumeration. There is no transition table:
// any status may follow any status, and "Returned" / "On Service" are also
// set by the checkout flow.
const (
	StatusFull      = "Full"
	Status75        = "75%"
	Status50        = "50%"
	Status25        = "25%"
	StatusEmpty     = "Empty"
	StatusReturned  = "Returned"
	StatusOnService = "On Service"
)

// AllStatuses lists every valid cylinder status, in fill order.
var AllStatuses = []string{
	StatusFull, Status75, Status50, Status25,
	StatusEmpty, StatusReturned, StatusOnService,
}

// FillStatuses are the fill-level statuses, Full through Empty. The dashboard
// status breakdown covers only these; Returned and On Service cylinders are
// out of circulation.
var FillStatuses = []string{
	StatusFull, Status75, Status50, Status25, StatusEmpty,
}

// ValidStatus reports whether s is a member of the status enumeration.
func ValidStatus(s string) bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Cylinder is a physical gas-cylinder asset record.
// Barcode is assigned once at registration and never changes.
type Cylinder struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CylinderType string    `gorm:"not null;default:'Simple'"`
	GasType      string    `gorm:"index;not null"` // normalized to uppercase
	Size         string    `gorm:"not null"`
	Status       string    `gorm:"type:varchar(20);not null;index"`
	Barcode      string    `gorm:"uniqueIndex;not null"`
	// LabelPNG holds the QR label rendered at registration. Nullable: the
	// label can always be re-derived from the barcode.
	LabelPNG []byte `gorm:"type:bytea"`
	// Physical fill data — optional, supplied by the registrar when known.
	CapacityKg   *decimal.Decimal `gorm:"type:decimal(8,2)"`
	TareWeightKg *decimal.Decimal `gorm:"type:decimal(8,2)"`
	CreatedBy    string           `gorm:"not null"`
	UpdatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BarcodeSequence backs the per-prefix barcode allocator. Rows are only ever
// touched through an atomic upsert that reserves the next number, so two
// concurrent registrations for the same prefix can never observe the same n.
type BarcodeSequence struct {
	Prefix string `gorm:"primaryKey;type:varchar(2)"`
	NextN  int64  `gorm:"not null;default:0"`
}

func (BarcodeSequence) TableName() string { return "barcode_sequences" }
