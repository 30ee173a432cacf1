package handler

import (
	"net/http"

	"github.com/amirda88/gas-cylinder-tracker/internal/apierror"
	"github.com/amirda88/gas-cylinder-tracker/internal/dto"
	"github.com/amirda88/gas-cylinder-tracker/internal/middleware"
	"github.com/amirda88/gas-cylinder-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CylindersHandler struct {
	svc       service.CylinderService
	statusSvc service.StatusService
}

func NewCylindersHandler(svc service.CylinderService, statusSvc service.StatusService) *CylindersHandler {
	return &CylindersHandler{svc: svc, statusSvc: statusSvc}
}

// Register godoc
// @Summary Register a cylinder and issue its barcode
// @Tags cylinders
// @Accept json
// @Produce json
// @Param body body dto.RegisterCylinderRequest true "Cylinder data"
// @Success 201 {object} dto.CylinderResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/cylinders [post]
func (h *CylindersHandler) Register(c *gin.Context) {
	var req dto.RegisterCylinderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req, middleware.GetClaims(c).Username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CylindersHandler) List(c *gin.Context) {
	var filter dto.CylinderFilter
	if !bindAndValidateQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CylindersHandler) GetByBarcode(c *gin.Context) {
	resp, err := h.svc.GetByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CylindersHandler) History(c *gin.Context) {
	resp, err := h.svc.History(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CylindersHandler) Movements(c *gin.Context) {
	resp, err := h.svc.Movements(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary Transition a cylinder to a new status
// @Tags cylinders
// @Accept json
// @Produce json
// @Param barcode path string true "Barcode"
// @Param body body dto.UpdateStatusRequest true "Target status"
// @Success 200 {object} dto.CylinderResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/cylinders/{barcode}/status [post]
func (h *CylindersHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.statusSvc.Transition(c.Request.Context(), c.Param("barcode"), req.NewStatus, middleware.GetClaims(c).Username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CylindersHandler) Checkout(c *gin.Context) {
	resp, err := h.statusSvc.Checkout(c.Request.Context(), c.Param("barcode"), middleware.GetClaims(c).Username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CylindersHandler) Checkin(c *gin.Context) {
	resp, err := h.statusSvc.Checkin(c.Request.Context(), c.Param("barcode"), middleware.GetClaims(c).Username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete removes a cylinder and its audit trail. Admin capability "delete".
func (h *CylindersHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid cylinder id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
