package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbooks-hq/openbooks_backend/internal/apperrors"
	portssvc "github.com/openbooks-hq/openbooks_backend/internal/core/ports/services"
	"github.com/openbooks-hq/openbooks_backend/internal/core/services"
	"github.com/openbooks-hq/openbooks_backend/internal/dto"
	"github.com/openbooks-hq/openbooks_backend/internal/middleware"
)

// voucherHandler handles HTTP requests related to vouchers.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

// newVoucherHandler creates a new voucherHandler.
func newVoucherHandler(voucherService portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{voucherService: voucherService}
}

// previewVoucher godoc
// @Summary Preview a voucher's journal entry
// @Description Projects the voucher into its two-line entry without persisting anything. Responds 200 with either the lines or the precondition violations.
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucher body dto.PreviewVoucherRequest true "Voucher details"
// @Success 200 {object} dto.VoucherPreviewResponse "Projected lines or voucher errors"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /vouchers/preview [post]
func (h *voucherHandler) previewVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PreviewVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for PreviewVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	c.JSON(http.StatusOK, h.voucherService.PreviewVoucher(c.Request.Context(), req))
}

// postVoucher godoc
// @Summary Post a voucher
// @Description Projects the voucher and persists it together with its journal entry
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucher body dto.PostVoucherRequest true "Voucher details"
// @Success 201 {object} dto.VoucherResponse "The posted voucher"
// @Failure 400 {object} map[string]string "Voucher failed preconditions"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to post voucher"
// @Router /vouchers [post]
func (h *voucherHandler) postVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for PostVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.PostVoucher(c.Request.Context(), req, creatorUserID)
	if err != nil {
		var projectionErr *services.VoucherProjectionError
		if errors.As(err, &projectionErr) {
			logger.Warn("Voucher rejected by preconditions", slog.Any("voucher_errors", projectionErr.Errors))
			c.JSON(http.StatusBadRequest, gin.H{"voucherErrors": projectionErr.Errors})
			return
		}
		if errors.Is(err, services.ErrAccountNotFound) || errors.Is(err, services.ErrAccountInactive) ||
			errors.Is(err, services.ErrCurrencyMismatch) {
			logger.Warn("Voucher rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to post voucher in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post voucher"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// getVoucher godoc
// @Summary Get a voucher
// @Description Retrieves a posted voucher by ID
// @Tags vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse "The voucher"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 500 {object} map[string]string "Failed to retrieve voucher"
// @Router /vouchers/{voucherID} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	voucher, err := h.voucherService.GetVoucher(c.Request.Context(), voucherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
			return
		}
		logger.Error("Failed to get voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve voucher"})
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// registerVoucherRoutes registers voucher specific routes
func registerVoucherRoutes(group *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	voucherHandler := newVoucherHandler(voucherService)

	vouchers := group.Group("/vouchers")
	{
		vouchers.POST("", voucherHandler.postVoucher)
		vouchers.POST("/preview", voucherHandler.previewVoucher)
		vouchers.GET("/:voucherID", voucherHandler.getVoucher)
	}
}
