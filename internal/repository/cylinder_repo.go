package repository

import (
	"context"
	"time"

	"github.com/amirda88/gas-cylinder-tracker/internal/dto"
	"github.com/amirda88/gas-cylinder-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CylinderRepository defines the data access contract for cylinders.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type CylinderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cylinder, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Cylinder, error)
	List(ctx context.Context, filter dto.CylinderFilter) ([]model.Cylinder, int64, error)
	ListForReport(ctx context.Context, status string, start, end *time.Time) ([]model.Cylinder, error)

	// InTx runs fn inside a single transaction. All *Tx methods below must be
	// called with the transaction handle fn receives.
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// FindForUpdateTx re-reads a row with a row lock. Status transitions use it
	// so the recorded old status is exact even when two writers race.
	FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Cylinder, error)

	// NextSequenceTx atomically reserves the next barcode number for a prefix
	// (insert-or-increment in one statement — safe under concurrency).
	NextSequenceTx(tx *gorm.DB, prefix string) (int64, error)
	CreateTx(tx *gorm.DB, c *model.Cylinder) error
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status, actor string, at time.Time) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	// Dashboard aggregates
	CountByStatus(ctx context.Context) ([]dto.StatusCount, error)
	CountByGasType(ctx context.Context) ([]dto.GasTypeCount, error)
	RegistrationsPerDay(ctx context.Context) ([]dto.DailyCount, error)
	CountTotal(ctx context.Context) (int64, error)
	CountWithStatus(ctx context.Context, status string, negate bool) (int64, error)
}

type cylinderRepo struct{ db *gorm.DB }

func NewCylinderRepository(db *gorm.DB) CylinderRepository { return &cylinderRepo{db: db} }

func (r *cylinderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cylinder, error) {
	var c model.Cylinder
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cylinderRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Cylinder, error) {
	var c model.Cylinder
	err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&c).Error
	return &c, err
}

func (r *cylinderRepo) List(ctx context.Context, filter dto.CylinderFilter) ([]model.Cylinder, int64, error) {
	var cylinders []model.Cylinder
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Cylinder{})
	if filter.GasType != "" {
		q = q.Where("gas_type = ?", filter.GasType)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&cylinders).Error
	return cylinders, total, err
}

func (r *cylinderRepo) ListForReport(ctx context.Context, status string, start, end *time.Time) ([]model.Cylinder, error) {
	q := r.db.WithContext(ctx).Model(&model.Cylinder{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if start != nil {
		q = q.Where("created_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("created_at <= ?", *end)
	}
	var cylinders []model.Cylinder
	err := q.Order("created_at ASC").Find(&cylinders).Error
	return cylinders, err
}

func (r *cylinderRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *cylinderRepo) FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Cylinder, error) {
	var c model.Cylinder
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cylinderRepo) NextSequenceTx(tx *gorm.DB, prefix string) (int64, error) {
	var n int64
	err := tx.Raw(`
		INSERT INTO barcode_sequences (prefix, next_n) VALUES (?, 1)
		ON CONFLICT (prefix) DO UPDATE SET next_n = barcode_sequences.next_n + 1
		RETURNING next_n`, prefix).Scan(&n).Error
	return n, err
}

func (r *cylinderRepo) CreateTx(tx *gorm.DB, c *model.Cylinder) error {
	return tx.Create(c).Error
}

func (r *cylinderRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status, actor string, at time.Time) error {
	return tx.Model(&model.Cylinder{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_by": actor,
		"updated_at": at,
	}).Error
}

// DeleteTx removes the cylinder and cascades over its audit records.
func (r *cylinderRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("cylinder_id = ?", id).Delete(&model.StatusHistory{}).Error; err != nil {
		return err
	}
	if err := tx.Where("cylinder_id = ?", id).Delete(&model.MovementLog{}).Error; err != nil {
		return err
	}
	res := tx.Where("id = ?", id).Delete(&model.Cylinder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cylinderRepo) CountByStatus(ctx context.Context) ([]dto.StatusCount, error) {
	var counts []dto.StatusCount
	err := r.db.WithContext(ctx).Model(&model.Cylinder{}).
		Where("status IN ?", model.FillStatuses).
		Select("status, COUNT(*) AS count").Group("status").Scan(&counts).Error
	return counts, err
}

func (r *cylinderRepo) CountByGasType(ctx context.Context) ([]dto.GasTypeCount, error) {
	var counts []dto.GasTypeCount
	err := r.db.WithContext(ctx).Model(&model.Cylinder{}).
		Where("status <> ?", model.StatusReturned).
		Select("gas_type, COUNT(*) AS count").Group("gas_type").Scan(&counts).Error
	return counts, err
}

func (r *cylinderRepo) RegistrationsPerDay(ctx context.Context) ([]dto.DailyCount, error) {
	var counts []dto.DailyCount
	err := r.db.WithContext(ctx).Model(&model.Cylinder{}).
		Where("status <> ?", model.StatusReturned).
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') AS date, COUNT(*) AS count").
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Order("date ASC").Scan(&counts).Error
	return counts, err
}

func (r *cylinderRepo) CountTotal(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Cylinder{}).Count(&total).Error
	return total, err
}

func (r *cylinderRepo) CountWithStatus(ctx context.Context, status string, negate bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Cylinder{})
	if negate {
		q = q.Where("status <> ?", status)
	} else {
		q = q.Where("status = ?", status)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}
