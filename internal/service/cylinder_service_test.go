package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/amirda88/gas-cylinder-tracker/internal/dto"
	"github.com/amirda88/gas-cylinder-tracker/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCylinderFixture() (*stubCylinderRepo, *stubHistoryRepo, *stubMovementRepo, CylinderService) {
	history := &stubHistoryRepo{}
	movement := &stubMovementRepo{}
	repo := newStubCylinderRepo(history, movement)
	return repo, history, movement, NewCylinderService(repo, history, movement)
}

func TestBarcodePrefix(t *testing.T) {
	cases := []struct {
		gasType string
		want    string
	}{
		{"oxygen", "OX"},
		{"Oxygen", "OX"},
		{"co2", "CO"},
		{"n", "N"},
		{"  helium  ", "HE"},
	}
	for _, tc := range cases {
		got, err := BarcodePrefix(tc.gasType)
		require.NoError(t, err, tc.gasType)
		assert.Equal(t, tc.want, got, tc.gasType)
	}
}

func TestBarcodePrefixEmpty(t *testing.T) {
	for _, gasType := range []string{"", "   "} {
		_, err := BarcodePrefix(gasType)
		assert.ErrorIs(t, err, ErrValidation, "gas type %q", gasType)
	}
}

func TestRegisterIssuesSequentialBarcodes(t *testing.T) {
	_, history, _, svc := newCylinderFixture()
	ctx := context.Background()

	first, err := svc.Register(ctx, dto.RegisterCylinderRequest{
		GasType: "oxygen", Size: "50L", Status: model.StatusFull,
	}, "carlos")
	require.NoError(t, err)

	assert.Equal(t, "CYL-OX-1", first.Barcode)
	assert.Equal(t, "OXYGEN", first.GasType)
	assert.Equal(t, model.StatusFull, first.Status)
	assert.Equal(t, "Simple", first.CylinderType)
	assert.Equal(t, "carlos", first.CreatedBy)
	assert.Equal(t, "/v1/cylinders/CYL-OX-1/label", first.LabelURL)
	assert.Empty(t, history.entries, "registration must not write history")

	second, err := svc.Register(ctx, dto.RegisterCylinderRequest{
		GasType: "oxygen", Size: "10L", Status: model.StatusFull,
	}, "carlos")
	require.NoError(t, err)
	assert.Equal(t, "CYL-OX-2", second.Barcode)

	other, err := svc.Register(ctx, dto.RegisterCylinderRequest{
		GasType: "nitrogen", Size: "50L", Status: model.StatusEmpty,
	}, "carlos")
	require.NoError(t, err)
	assert.Equal(t, "CYL-NI-1", other.Barcode, "each prefix counts independently")
}

func TestRegisterStoresLabel(t *testing.T) {
	repo, _, _, svc := newCylinderFixture()

	resp, err := svc.Register(context.Background(), dto.RegisterCylinderRequest{
		GasType: "argon", Size: "20L", Status: model.StatusFull,
	}, "carlos")
	require.NoError(t, err)

	stored := repo.findByGas("argon")
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.LabelPNG)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, stored.LabelPNG[:4])

	label, err := svc.Label(context.Background(), resp.Barcode)
	require.NoError(t, err)
	assert.Equal(t, stored.LabelPNG, label)
}

func TestRegisterRejectsUnknownStatus(t *testing.T) {
	_, _, _, svc := newCylinderFixture()

	_, err := svc.Register(context.Background(), dto.RegisterCylinderRequest{
		GasType: "oxygen", Size: "50L", Status: "Overflowing",
	}, "carlos")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterRetriesOnDuplicateBarcode(t *testing.T) {
	repo, _, _, svc := newCylinderFixture()
	repo.failCreates = 2

	resp, err := svc.Register(context.Background(), dto.RegisterCylinderRequest{
		GasType: "oxygen", Size: "50L", Status: model.StatusFull,
	}, "carlos")
	require.NoError(t, err)
	// two duplicate hits burned CYL-OX-1 and CYL-OX-2
	assert.Equal(t, "CYL-OX-3", resp.Barcode)
}

func TestRegisterGivesUpAfterRetries(t *testing.T) {
	repo, _, _, svc := newCylinderFixture()
	repo.failCreates = maxAllocAttempts

	_, err := svc.Register(context.Background(), dto.RegisterCylinderRequest{
		GasType: "oxygen", Size: "50L", Status: model.StatusFull,
	}, "carlos")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGetByBarcode(t *testing.T) {
	_, _, _, svc := newCylinderFixture()

	created, err := svc.Register(context.Background(), dto.RegisterCylinderRequest{
		GasType: "oxygen", Size: "50L", Status: model.StatusFull,
	}, "carlos")
	require.NoError(t, err)

	found, err := svc.GetByBarcode(context.Background(), created.Barcode)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetByBarcode(context.Background(), "CYL-XX-999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPagination(t *testing.T) {
	_, _, _, svc := newCylinderFixture()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Register(ctx, dto.RegisterCylinderRequest{
			GasType: "oxygen", Size: fmt.Sprintf("%dL", 10+i), Status: model.StatusFull,
		}, "carlos")
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, dto.CylinderFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), list.Total)
	assert.Equal(t, 3, list.TotalPages)
}

func TestDeleteCascades(t *testing.T) {
	repo, history, movement, svc := newCylinderFixture()
	statusSvc := NewStatusService(repo, history, movement, nil)
	ctx := context.Background()

	created, err := svc.Register(ctx, dto.RegisterCylinderRequest{
		GasType: "oxygen", Size: "50L", Status: model.StatusFull,
	}, "carlos")
	require.NoError(t, err)

	_, err = statusSvc.Transition(ctx, created.Barcode, model.Status50, "carlos")
	require.NoError(t, err)
	_, err = statusSvc.Checkout(ctx, created.Barcode, "carlos")
	require.NoError(t, err)
	require.NotEmpty(t, history.entries)
	require.NotEmpty(t, movement.entries)

	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, id))

	_, err = svc.GetByBarcode(ctx, created.Barcode)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, history.entries, "history rows must go with the cylinder")
	assert.Empty(t, movement.entries, "movement rows must go with the cylinder")

	assert.ErrorIs(t, svc.Delete(ctx, id), ErrNotFound)
}

func TestHistoryUnknownBarcode(t *testing.T) {
	_, _, _, svc := newCylinderFixture()

	_, err := svc.History(context.Background(), "CYL-XX-1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Movements(context.Background(), "CYL-XX-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
