package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/amirda88/gas-cylinder-tracker/internal/dto"
	"github.com/amirda88/gas-cylinder-tracker/internal/infra"
	"github.com/amirda88/gas-cylinder-tracker/internal/model"
	"github.com/amirda88/gas-cylinder-tracker/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxAllocAttempts bounds the register retry loop. The per-prefix sequence
// upsert already serializes allocation; the retries only cover barcodes that
// predate the sequence table (e.g. imported data).
const maxAllocAttempts = 3

// CylinderService covers registration (barcode issuance + label rendering),
// lookups, and deletion.
type CylinderService interface {
	Register(ctx context.Context, req dto.RegisterCylinderRequest, actor string) (*dto.CylinderResponse, error)
	GetByBarcode(ctx context.Context, barcode string) (*dto.CylinderResponse, error)
	List(ctx context.Context, filter dto.CylinderFilter) (*dto.CylinderListResponse, error)
	Label(ctx context.Context, barcode string) ([]byte, error)
	Delete(ctx context.Context, id uuid.UUID) error
	History(ctx context.Context, barcode string) ([]dto.StatusHistoryResponse, error)
	Movements(ctx context.Context, barcode string) ([]dto.MovementResponse, error)
}

type cylinderService struct {
	repo         repository.CylinderRepository
	historyRepo  repository.StatusHistoryRepository
	movementRepo repository.MovementLogRepository
}

func NewCylinderService(
	repo repository.CylinderRepository,
	historyRepo repository.StatusHistoryRepository,
	movementRepo repository.MovementLogRepository,
) CylinderService {
	return &cylinderService{repo: repo, historyRepo: historyRepo, movementRepo: movementRepo}
}

// BarcodePrefix derives the allocator prefix from a gas type: the first two
// runes, uppercased. A single-rune gas type yields a single-rune prefix; an
// empty or blank gas type is invalid.
func BarcodePrefix(gasType string) (string, error) {
	runes := []rune(strings.ToUpper(strings.TrimSpace(gasType)))
	if len(runes) == 0 {
		return "", fmt.Errorf("%w: gas type must not be empty", ErrValidation)
	}
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes), nil
}

// Register allocates a unique barcode, renders the QR label, and persists the
// cylinder. Sequence reservation and insert run in one transaction; a
// uniqueness violation restarts allocation from scratch up to maxAllocAttempts.
func (s *cylinderService) Register(ctx context.Context, req dto.RegisterCylinderRequest, actor string) (*dto.CylinderResponse, error) {
	if !model.ValidStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}
	prefix, err := BarcodePrefix(req.GasType)
	if err != nil {
		return nil, err
	}

	cylinderType := req.CylinderType
	if cylinderType == "" {
		cylinderType = "Simple"
	}

	var cyl *model.Cylinder
	for attempt := 0; attempt < maxAllocAttempts; attempt++ {
		cyl = &model.Cylinder{
			CylinderType: cylinderType,
			GasType:      strings.ToUpper(strings.TrimSpace(req.GasType)),
			Size:         req.Size,
			Status:       req.Status,
			CapacityKg:   req.CapacityKg,
			TareWeightKg: req.TareWeightKg,
			CreatedBy:    actor,
		}

		err = s.repo.InTx(ctx, func(tx *gorm.DB) error {
			n, err := s.repo.NextSequenceTx(tx, prefix)
			if err != nil {
				return err
			}
			cyl.Barcode = fmt.Sprintf("CYL-%s-%d", prefix, n)

			label, err := infra.EncodeLabel(cyl.Barcode)
			if err != nil {
				return err
			}
			cyl.LabelPNG = label

			return s.repo.CreateTx(tx, cyl)
		})
		if err == nil {
			resp := toCylinderResponse(cyl)
			return &resp, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// barcode taken by a row that predates the sequence — reserve again
	}
	return nil, fmt.Errorf("%w: barcode allocation for prefix %q exhausted %d attempts", ErrConflict, prefix, maxAllocAttempts)
}

func (s *cylinderService) GetByBarcode(ctx context.Context, barcode string) (*dto.CylinderResponse, error) {
	cyl, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := toCylinderResponse(cyl)
	return &resp, nil
}

func (s *cylinderService) List(ctx context.Context, filter dto.CylinderFilter) (*dto.CylinderListResponse, error) {
	cylinders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CylinderResponse, len(cylinders))
	for i := range cylinders {
		data[i] = toCylinderResponse(&cylinders[i])
	}
	return &dto.CylinderListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// Label returns the stored QR image, re-deriving it when the stored copy is
// missing.
func (s *cylinderService) Label(ctx context.Context, barcode string) ([]byte, error) {
	cyl, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(cyl.LabelPNG) > 0 {
		return cyl.LabelPNG, nil
	}
	return infra.EncodeLabel(cyl.Barcode)
}

// Delete removes a cylinder and all of its history and movement records in a
// single transaction.
func (s *cylinderService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.InTx(ctx, func(tx *gorm.DB) error {
		return s.repo.DeleteTx(tx, id)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *cylinderService) History(ctx context.Context, barcode string) ([]dto.StatusHistoryResponse, error) {
	cyl, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	entries, err := s.historyRepo.ListByCylinder(ctx, cyl.ID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StatusHistoryResponse, len(entries))
	for i, e := range entries {
		resp[i] = dto.StatusHistoryResponse{
			ID:        e.ID.String(),
			OldStatus: e.OldStatus,
			NewStatus: e.NewStatus,
			ChangedBy: e.ChangedBy,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *cylinderService) Movements(ctx context.Context, barcode string) ([]dto.MovementResponse, error) {
	cyl, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	entries, err := s.movementRepo.ListByCylinder(ctx, cyl.ID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovementResponse, len(entries))
	for i, e := range entries {
		resp[i] = dto.MovementResponse{
			ID:          e.ID.String(),
			Action:      e.Action,
			Note:        e.Note,
			PerformedBy: e.PerformedBy,
			CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return resp, nil
}

func toCylinderResponse(c *model.Cylinder) dto.CylinderResponse {
	resp := dto.CylinderResponse{
		ID:           c.ID.String(),
		CylinderType: c.CylinderType,
		GasType:      c.GasType,
		Size:         c.Size,
		Status:       c.Status,
		Barcode:      c.Barcode,
		LabelURL:     "/v1/cylinders/" + c.Barcode + "/label",
		CapacityKg:   c.CapacityKg,
		TareWeightKg: c.TareWeightKg,
		CreatedBy:    c.CreatedBy,
		UpdatedBy:    c.UpdatedBy,
		CreatedAt:    c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.UTC().Format(time.RFC3339),
	}
	return resp
}
