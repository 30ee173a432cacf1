package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirda88/gas-cylinder-tracker/internal/dto"
	"github.com/amirda88/gas-cylinder-tracker/internal/middleware"
	"github.com/amirda88/gas-cylinder-tracker/internal/model"
	"github.com/amirda88/gas-cylinder-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeCylinderSvc returns canned results; embedding the interface leaves the
// untested methods panicking if a test reaches them by accident.
type fakeCylinderSvc struct {
	service.CylinderService

	registerResp *dto.CylinderResponse
	registerErr  error
	getResp      *dto.CylinderResponse
	getErr       error
	deleteErr    error
	deletedID    uuid.UUID
}

func (f *fakeCylinderSvc) Register(_ context.Context, _ dto.RegisterCylinderRequest, _ string) (*dto.CylinderResponse, error) {
	return f.registerResp, f.registerErr
}

func (f *fakeCylinderSvc) GetByBarcode(_ context.Context, _ string) (*dto.CylinderResponse, error) {
	return f.getResp, f.getErr
}

func (f *fakeCylinderSvc) Delete(_ context.Context, id uuid.UUID) error {
	f.deletedID = id
	return f.deleteErr
}

type fakeStatusSvc struct {
	service.StatusService

	transitionResp *dto.CylinderResponse
	transitionErr  error
}

func (f *fakeStatusSvc) Transition(_ context.Context, _, _, _ string) (*dto.CylinderResponse, error) {
	return f.transitionResp, f.transitionErr
}

func testClaims() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &middleware.JWTClaims{Username: "alice"})
		c.Next()
	}
}

func newCylindersRouter(svc service.CylinderService, statusSvc service.StatusService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCylindersHandler(svc, statusSvc)
	r := gin.New()
	r.Use(testClaims())
	r.POST("/v1/cylinders", h.Register)
	r.GET("/v1/cylinders/:barcode", h.GetByBarcode)
	r.POST("/v1/cylinders/:barcode/status", h.UpdateStatus)
	r.DELETE("/v1/cylinders/:id", h.Delete)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler(t *testing.T) {
	svc := &fakeCylinderSvc{registerResp: &dto.CylinderResponse{Barcode: "CYL-OX-1", Status: model.StatusFull}}
	r := newCylindersRouter(svc, &fakeStatusSvc{})

	w := doJSON(r, http.MethodPost, "/v1/cylinders",
		`{"gas_type":"oxygen","size":"50L","status":"Full"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "CYL-OX-1")
}

func TestRegisterHandlerInvalidJSON(t *testing.T) {
	r := newCylindersRouter(&fakeCylinderSvc{}, &fakeStatusSvc{})

	w := doJSON(r, http.MethodPost, "/v1/cylinders", `{"gas_type": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterHandlerMissingFields(t *testing.T) {
	r := newCylindersRouter(&fakeCylinderSvc{}, &fakeStatusSvc{})

	w := doJSON(r, http.MethodPost, "/v1/cylinders", `{"gas_type":"oxygen"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Size")
	assert.Contains(t, w.Body.String(), "Status")
}

func TestRegisterHandlerConflict(t *testing.T) {
	svc := &fakeCylinderSvc{registerErr: service.ErrConflict}
	r := newCylindersRouter(svc, &fakeStatusSvc{})

	w := doJSON(r, http.MethodPost, "/v1/cylinders",
		`{"gas_type":"oxygen","size":"50L","status":"Full"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetByBarcodeHandlerNotFound(t *testing.T) {
	svc := &fakeCylinderSvc{getErr: service.ErrNotFound}
	r := newCylindersRouter(svc, &fakeStatusSvc{})

	w := doJSON(r, http.MethodGet, "/v1/cylinders/CYL-XX-1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusHandlerValidation(t *testing.T) {
	statusSvc := &fakeStatusSvc{transitionErr: service.ErrValidation}
	r := newCylindersRouter(&fakeCylinderSvc{}, statusSvc)

	w := doJSON(r, http.MethodPost, "/v1/cylinders/CYL-OX-1/status",
		`{"new_status":"Shiny"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDeleteHandler(t *testing.T) {
	svc := &fakeCylinderSvc{}
	r := newCylindersRouter(svc, &fakeStatusSvc{})
	id := uuid.New()

	w := doJSON(r, http.MethodDelete, "/v1/cylinders/"+id.String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, id, svc.deletedID)

	w = doJSON(r, http.MethodDelete, "/v1/cylinders/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
