package service

import (
	"context"
	"strings"
	"time"

	"github.com/amirda88/gas-cylinder-tracker/internal/dto"
	"github.com/amirda88/gas-cylinder-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ───────────────────────────────────────────────

type stubHistoryRepo struct {
	entries []model.StatusHistory
}

func (r *stubHistoryRepo) CreateTx(_ *gorm.DB, h *model.StatusHistory) error {
	h.ID = uuid.New()
	h.CreatedAt = time.Now().UTC()
	r.entries = append(r.entries, *h)
	return nil
}

func (r *stubHistoryRepo) ListByCylinder(_ context.Context, cylinderID uuid.UUID) ([]model.StatusHistory, error) {
	var out []model.StatusHistory
	for _, e := range r.entries {
		if e.CylinderID == cylinderID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubMovementRepo struct {
	entries []model.MovementLog
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.MovementLog) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now().UTC()
	r.entries = append(r.entries, *m)
	return nil
}

func (r *stubMovementRepo) ListByCylinder(_ context.Context, cylinderID uuid.UUID) ([]model.MovementLog, error) {
	var out []model.MovementLog
	for _, e := range r.entries {
		if e.CylinderID == cylinderID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubCylinderRepo struct {
	cylinders map[uuid.UUID]*model.Cylinder
	seq       map[string]int64

	// failCreates makes the next N CreateTx calls report a uniqueness
	// violation, to exercise the allocator retry loop.
	failCreates int

	// staleReadStatus, when set, is reported by FindByBarcode instead of the
	// stored status, simulating a concurrent writer committing between the
	// lookup and the transaction.
	staleReadStatus string

	history  *stubHistoryRepo
	movement *stubMovementRepo
}

func newStubCylinderRepo(history *stubHistoryRepo, movement *stubMovementRepo) *stubCylinderRepo {
	return &stubCylinderRepo{
		cylinders: make(map[uuid.UUID]*model.Cylinder),
		seq:       make(map[string]int64),
		history:   history,
		movement:  movement,
	}
}

func (r *stubCylinderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cylinder, error) {
	c, ok := r.cylinders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCylinderRepo) FindByBarcode(_ context.Context, barcode string) (*model.Cylinder, error) {
	for _, c := range r.cylinders {
		if c.Barcode == barcode {
			// return a copy so callers can't mutate the store
			cc := *c
			if r.staleReadStatus != "" {
				cc.Status = r.staleReadStatus
			}
			return &cc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCylinderRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Cylinder, error) {
	c, ok := r.cylinders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cc := *c
	return &cc, nil
}

func (r *stubCylinderRepo) List(_ context.Context, filter dto.CylinderFilter) ([]model.Cylinder, int64, error) {
	var out []model.Cylinder
	for _, c := range r.cylinders {
		if filter.GasType != "" && c.GasType != filter.GasType {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCylinderRepo) ListForReport(_ context.Context, status string, start, end *time.Time) ([]model.Cylinder, error) {
	var out []model.Cylinder
	for _, c := range r.cylinders {
		if status != "" && c.Status != status {
			continue
		}
		if start != nil && c.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && c.CreatedAt.After(*end) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCylinderRepo) InTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (r *stubCylinderRepo) NextSequenceTx(_ *gorm.DB, prefix string) (int64, error) {
	r.seq[prefix]++
	return r.seq[prefix], nil
}

func (r *stubCylinderRepo) CreateTx(_ *gorm.DB, c *model.Cylinder) error {
	if r.failCreates > 0 {
		r.failCreates--
		return gorm.ErrDuplicatedKey
	}
	for _, existing := range r.cylinders {
		if existing.Barcode == c.Barcode {
			return gorm.ErrDuplicatedKey
		}
	}
	c.ID = uuid.New()
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	cc := *c
	r.cylinders[c.ID] = &cc
	return nil
}

func (r *stubCylinderRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status, actor string, at time.Time) error {
	c, ok := r.cylinders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Status = status
	c.UpdatedBy = actor
	c.UpdatedAt = at
	return nil
}

func (r *stubCylinderRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.cylinders[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.cylinders, id)
	if r.history != nil {
		kept := r.history.entries[:0]
		for _, e := range r.history.entries {
			if e.CylinderID != id {
				kept = append(kept, e)
			}
		}
		r.history.entries = kept
	}
	if r.movement != nil {
		kept := r.movement.entries[:0]
		for _, e := range r.movement.entries {
			if e.CylinderID != id {
				kept = append(kept, e)
			}
		}
		r.movement.entries = kept
	}
	return nil
}

func (r *stubCylinderRepo) CountByStatus(_ context.Context) ([]dto.StatusCount, error) {
	fill := make(map[string]bool, len(model.FillStatuses))
	for _, s := range model.FillStatuses {
		fill[s] = true
	}
	counts := make(map[string]int64)
	for _, c := range r.cylinders {
		if fill[c.Status] {
			counts[c.Status]++
		}
	}
	var out []dto.StatusCount
	for status, n := range counts {
		out = append(out, dto.StatusCount{Status: status, Count: n})
	}
	return out, nil
}

func (r *stubCylinderRepo) CountByGasType(_ context.Context) ([]dto.GasTypeCount, error) {
	counts := make(map[string]int64)
	for _, c := range r.cylinders {
		if c.Status != model.StatusReturned {
			counts[c.GasType]++
		}
	}
	var out []dto.GasTypeCount
	for gas, n := range counts {
		out = append(out, dto.GasTypeCount{GasType: gas, Count: n})
	}
	return out, nil
}

func (r *stubCylinderRepo) RegistrationsPerDay(_ context.Context) ([]dto.DailyCount, error) {
	counts := make(map[string]int64)
	for _, c := range r.cylinders {
		if c.Status != model.StatusReturned {
			counts[c.CreatedAt.Format("2006-01-02")]++
		}
	}
	var out []dto.DailyCount
	for date, n := range counts {
		out = append(out, dto.DailyCount{Date: date, Count: n})
	}
	return out, nil
}

func (r *stubCylinderRepo) CountTotal(_ context.Context) (int64, error) {
	return int64(len(r.cylinders)), nil
}

func (r *stubCylinderRepo) CountWithStatus(_ context.Context, status string, negate bool) (int64, error) {
	var n int64
	for _, c := range r.cylinders {
		match := c.Status == status
		if negate {
			match = !match
		}
		if match {
			n++
		}
	}
	return n, nil
}

type stubUserRepo struct {
	users map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if _, exists := r.users[u.Username]; exists {
		return gorm.ErrDuplicatedKey
	}
	u.ID = uuid.New()
	r.users[u.Username] = u
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := r.users[username]
	if !ok || !u.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.Username] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Active = false
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Active = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Notifier stub ────────────────────────────────────────────────────────────

type stubNotifier struct {
	notifications []MovementNotification
}

func (n *stubNotifier) NotifyMovement(_ context.Context, m MovementNotification) error {
	n.notifications = append(n.notifications, m)
	return nil
}

// findByGas is a small test helper for asserting on stored rows.
func (r *stubCylinderRepo) findByGas(gas string) *model.Cylinder {
	for _, c := range r.cylinders {
		if strings.EqualFold(c.GasType, gas) {
			return c
		}
	}
	return nil
}
