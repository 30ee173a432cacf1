package repository

import (
	"context"

	"github.com/amirda88/gas-cylinder-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusHistoryRepository appends and lists immutable transition records.
// There is deliberately no Update or Delete — cascade removal happens through
// CylinderRepository.DeleteTx.
type StatusHistoryRepository interface {
	CreateTx(tx *gorm.DB, h *model.StatusHistory) error
	ListByCylinder(ctx context.Context, cylinderID uuid.UUID) ([]model.StatusHistory, error)
}

type statusHistoryRepo struct{ db *gorm.DB }

func NewStatusHistoryRepository(db *gorm.DB) StatusHistoryRepository {
	return &statusHistoryRepo{db: db}
}

func (r *statusHistoryRepo) CreateTx(tx *gorm.DB, h *model.StatusHistory) error {
	return tx.Create(h).Error
}

func (r *statusHistoryRepo) ListByCylinder(ctx context.Context, cylinderID uuid.UUID) ([]model.StatusHistory, error) {
	var entries []model.StatusHistory
	err := r.db.WithContext(ctx).
		Where("cylinder_id = ?", cylinderID).
		Order("created_at DESC").Find(&entries).Error
	return entries, err
}

// MovementLogRepository appends and lists immutable movement records.
type MovementLogRepository interface {
	CreateTx(tx *gorm.DB, m *model.MovementLog) error
	ListByCylinder(ctx context.Context, cylinderID uuid.UUID) ([]model.MovementLog, error)
}

type movementLogRepo struct{ db *gorm.DB }

func NewMovementLogRepository(db *gorm.DB) MovementLogRepository {
	return &movementLogRepo{db: db}
}

func (r *movementLogRepo) CreateTx(tx *gorm.DB, m *model.MovementLog) error {
	return tx.Create(m).Error
}

func (r *movementLogRepo) ListByCylinder(ctx context.Context, cylinderID uuid.UUID) ([]model.MovementLog, error) {
	var entries []model.MovementLog
	err := r.db.WithContext(ctx).
		Where("cylinder_id = ?", cylinderID).
		Order("created_at DESC").Find(&entries).Error
	return entries, err
}
