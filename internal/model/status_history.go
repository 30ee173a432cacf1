package model

import (
	"time"

	"github.com/google/uuid"
)

// StatusHistory records one status transition of a cylinder.
// Entries are immutable — never updated, deleted only when the owning
// cylinder is deleted (cascade).
type StatusHistory struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CylinderID uuid.UUID `gorm:"type:uuid;not null;index"`
	OldStatus  string    `gorm:"type:varchar(20);not null"`
	NewStatus  string    `gorm:"type:varchar(20);not null"`
	ChangedBy  string    `gorm:"not null"`
	CreatedAt  time.Time

	Cylinder *Cylinder `gorm:"foreignKey:CylinderID"`
}

// TableName overrides GORM's default pluralization (status_histories → status_history).
func (StatusHistory) TableName() string { return "status_history" }
