package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirda88/gas-cylinder-tracker/internal/dto"
	"github.com/amirda88/gas-cylinder-tracker/internal/model"
	"github.com/amirda88/gas-cylinder-tracker/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Notes stamped on movement entries.
const (
	checkoutNote = "Returned to supplier"
	checkinNote  = "Received from supplier"
)

// MovementNotification is handed to the async notifier after a check-in or
// check-out commits.
type MovementNotification struct {
	Barcode string    `json:"barcode"`
	Action  string    `json:"action"`
	Note    string    `json:"note"`
	Actor   string    `json:"actor"`
	At      time.Time `json:"at"`
}

// MovementNotifier enqueues a notification for asynchronous delivery.
type MovementNotifier interface {
	NotifyMovement(ctx context.Context, n MovementNotification) error
}

// StatusService applies status transitions and check-in/check-out movements.
// Every mutation is one transaction: the cylinder row and its audit entries
// never diverge.
type StatusService interface {
	Transition(ctx context.Context, barcode, newStatus, actor string) (*dto.CylinderResponse, error)
	Checkout(ctx context.Context, barcode, actor string) (*dto.CylinderResponse, error)
	Checkin(ctx context.Context, barcode, actor string) (*dto.CylinderResponse, error)
}

type statusService struct {
	repo         repository.CylinderRepository
	historyRepo  repository.StatusHistoryRepository
	movementRepo repository.MovementLogRepository
	notifier     MovementNotifier // nil disables notifications
}

func NewStatusService(
	repo repository.CylinderRepository,
	historyRepo repository.StatusHistoryRepository,
	movementRepo repository.MovementLogRepository,
	notifier MovementNotifier,
) StatusService {
	return &statusService{
		repo:         repo,
		historyRepo:  historyRepo,
		movementRepo: movementRepo,
		notifier:     notifier,
	}
}

// Transition sets the cylinder's status and appends exactly one history entry.
// A transition to the current status is permitted and still recorded.
func (s *statusService) Transition(ctx context.Context, barcode, newStatus, actor string) (*dto.CylinderResponse, error) {
	if !model.ValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	cyl, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()

	err = s.repo.InTx(ctx, func(tx *gorm.DB) error {
		// re-read under lock: the status seen outside the tx may be stale
		locked, err := s.repo.FindForUpdateTx(tx, cyl.ID)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateStatusTx(tx, cyl.ID, newStatus, actor, now); err != nil {
			return err
		}
		return s.historyRepo.CreateTx(tx, &model.StatusHistory{
			CylinderID: cyl.ID,
			OldStatus:  locked.Status,
			NewStatus:  newStatus,
			ChangedBy:  actor,
		})
	})
	if err != nil {
		return nil, err
	}

	cyl.Status = newStatus
	cyl.UpdatedBy = actor
	cyl.UpdatedAt = now
	resp := toCylinderResponse(cyl)
	return &resp, nil
}

// Checkout marks a cylinder as returned to the supplier: one OUT movement
// entry, one matching history entry, status set to Returned — atomically.
func (s *statusService) Checkout(ctx context.Context, barcode, actor string) (*dto.CylinderResponse, error) {
	return s.move(ctx, barcode, actor, model.MovementOut, checkoutNote, model.StatusReturned)
}

// Checkin records a cylinder received back from the supplier: one IN movement
// entry, one history entry, status reset to Full.
func (s *statusService) Checkin(ctx context.Context, barcode, actor string) (*dto.CylinderResponse, error) {
	return s.move(ctx, barcode, actor, model.MovementIn, checkinNote, model.StatusFull)
}

func (s *statusService) move(ctx context.Context, barcode, actor, action, note, targetStatus string) (*dto.CylinderResponse, error) {
	cyl, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()

	err = s.repo.InTx(ctx, func(tx *gorm.DB) error {
		locked, err := s.repo.FindForUpdateTx(tx, cyl.ID)
		if err != nil {
			return err
		}
		if err := s.movementRepo.CreateTx(tx, &model.MovementLog{
			CylinderID:  cyl.ID,
			Action:      action,
			Note:        note,
			PerformedBy: actor,
		}); err != nil {
			return err
		}
		if err := s.historyRepo.CreateTx(tx, &model.StatusHistory{
			CylinderID: cyl.ID,
			OldStatus:  locked.Status,
			NewStatus:  targetStatus,
			ChangedBy:  actor,
		}); err != nil {
			return err
		}
		return s.repo.UpdateStatusTx(tx, cyl.ID, targetStatus, actor, now)
	})
	if err != nil {
		return nil, err
	}

	// Notification is best effort — the movement is already committed.
	if s.notifier != nil {
		if err := s.notifier.NotifyMovement(ctx, MovementNotification{
			Barcode: cyl.Barcode,
			Action:  action,
			Note:    note,
			Actor:   actor,
			At:      now,
		}); err != nil {
			log.Warn().Err(err).Str("barcode", cyl.Barcode).Msg("failed to enqueue movement notification")
		}
	}

	cyl.Status = targetStatus
	cyl.UpdatedBy = actor
	cyl.UpdatedAt = now
	resp := toCylinderResponse(cyl)
	return &resp, nil
}
