package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement actions.
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

// MovementLog records a physical check-in/check-out event for a cylinder.
// Entries are immutable, same cascade rule as StatusHistory.
type MovementLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CylinderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Action      string    `gorm:"type:varchar(10);not null"` // "IN" | "OUT"
	Note        string    `gorm:"type:varchar(200)"`
	PerformedBy string    `gorm:"not null"`
	CreatedAt   time.Time

	Cylinder *Cylinder `gorm:"foreignKey:CylinderID"`
}

func (MovementLog) TableName() string { return "movement_logs" }
