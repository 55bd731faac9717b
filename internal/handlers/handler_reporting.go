package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openbooks-hq/openbooks_backend/internal/core/ports/services"
	"github.com/openbooks-hq/openbooks_backend/internal/middleware"
)

// reportingHandler handles read-only report requests.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// trialBalance godoc
// @Summary Trial balance
// @Description Per-account debit and credit totals as of a date, with the grand totals and a balanced flag
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Cutoff date (RFC 3339); defaults to now"
// @Success 200 {object} dto.TrialBalanceResponse "The trial balance"
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 500 {object} map[string]string "Failed to compute trial balance"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf := time.Now().UTC()
	if asOfStr := c.Query("asOf"); asOfStr != "" {
		parsed, err := time.Parse(time.RFC3339, asOfStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected RFC 3339"})
			return
		}
		asOf = parsed
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to compute trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trial balance"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// registerReportingRoutes registers reporting specific routes
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	reportingHandler := newReportingHandler(reportingService)

	reports := group.Group("/reports")
	{
		reports.GET("/trial-balance", reportingHandler.trialBalance)
	}
}
