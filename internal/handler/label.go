package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/amirda88/gas-cylinder-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const labelCacheTTL = 4 * time.Hour

// LabelHandler serves the public QR-label endpoint. No authentication
// required — labels only encode the barcode string, and scanners hit this
// path without a session.
type LabelHandler struct {
	svc service.CylinderService
	rdb *redis.Client
}

func NewLabelHandler(svc service.CylinderService, rdb *redis.Client) *LabelHandler {
	return &LabelHandler{svc: svc, rdb: rdb}
}

// Get godoc
// @Summary QR label for a cylinder (no authentication)
// @Tags labels
// @Produce png
// @Param barcode path string true "Barcode"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/cylinders/{barcode}/label [get]
func (h *LabelHandler) Get(c *gin.Context) {
	barcode := c.Param("barcode")
	ctx := c.Request.Context()
	cacheKey := "label:" + barcode

	// 1. Try Redis cache — labels are immutable once issued
	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil && len(cached) > 0 {
			c.Data(http.StatusOK, "image/png", cached)
			return
		}
	}

	// 2. Cache miss — load (or re-derive) from the store
	png, err := h.svc.Label(ctx, barcode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// 3. Populate cache — best effort, ignore errors
	if h.rdb != nil {
		_ = h.rdb.Set(context.Background(), cacheKey, png, labelCacheTTL).Err()
	}

	c.Data(http.StatusOK, "image/png", png)
}
