package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openbooks-hq/openbooks_backend/internal/apperrors"
	portssvc "github.com/openbooks-hq/openbooks_backend/internal/core/ports/services"
	"github.com/openbooks-hq/openbooks_backend/internal/core/services"
	"github.com/openbooks-hq/openbooks_backend/internal/dto"
	"github.com/openbooks-hq/openbooks_backend/internal/middleware"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// validateEntry godoc
// @Summary Validate a candidate journal entry
// @Description Dry-run double-entry validation; returns the full structured result without persisting anything. Responds 200 whether the entry is valid or not.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   entry body dto.ValidateEntryRequest true "Candidate entry"
// @Success 200 {object} accounting.Result "Validation result"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /journals/validate [post]
func (h *journalHandler) validateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ValidateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for ValidateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// An invalid entry is still a successful validation run; the result
	// carries the verdict.
	result := h.journalService.ValidateEntry(c.Request.Context(), req)
	c.JSON(http.StatusOK, result)
}

// createJournal godoc
// @Summary Create a journal entry
// @Description Validates and persists a new balanced journal entry
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Entry and lines"
// @Success 201 {object} dto.JournalEntryResponse "The created entry"
// @Failure 400 {object} accounting.Result "Validation failure with the full error set"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.CreateJournal(c.Request.Context(), req, creatorUserID)
	if err != nil {
		var validationErr *services.EntryValidationError
		if errors.As(err, &validationErr) {
			// Return the complete structured result so the caller can map
			// every violation back to its line.
			logger.Warn("Entry rejected by validation", slog.Int("line_errors", len(validationErr.Result.LineErrors)))
			c.JSON(http.StatusBadRequest, validationErr.Result)
			return
		}
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, services.ErrEntryMinAccounts) ||
			errors.Is(err, services.ErrAccountNotFound) || errors.Is(err, services.ErrAccountInactive) ||
			errors.Is(err, services.ErrCurrencyMismatch) {
			logger.Warn("Entry rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create entry in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getJournal godoc
// @Summary Get a journal entry
// @Description Retrieves an entry with its lines in display order
// @Tags journals
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse "The entry"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /journals/{entryID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.journalService.GetJournal(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to get entry from service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listJournals godoc
// @Summary List journal entries
// @Description Lists entries newest first with keyset pagination
// @Tags journals
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse "A page of entries"
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	nextToken := c.Query("nextToken")

	entries, token, err := h.journalService.ListJournals(c.Request.Context(), limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination token"})
			return
		}
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListJournalEntriesResponse(entries, token))
}

// reverseJournal godoc
// @Summary Reverse a journal entry
// @Description Posts a mirror entry and marks the original REVERSED
// @Tags journals
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 201 {object} dto.JournalEntryResponse "The reversal entry"
// @Failure 400 {object} map[string]string "Entry cannot be reversed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to reverse entry"
// @Router /journals/{entryID}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.journalService.ReverseJournal(c.Request.Context(), entryID, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, services.ErrNotPosted), errors.Is(err, services.ErrAlreadyReversed), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Reversal rejected", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reverse entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse entry"})
		}
		return
	}

	logger.Info("Entry reversed", slog.String("entry_id", entryID), slog.String("reversal_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

// registerJournalRoutes registers journal specific routes
func registerJournalRoutes(group *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	journalHandler := newJournalHandler(journalService)

	journals := group.Group("/journals")
	{
		journals.POST("", journalHandler.createJournal)
		journals.GET("", journalHandler.listJournals)
		journals.POST("/validate", journalHandler.validateEntry)
		journals.GET("/:entryID", journalHandler.getJournal)
		journals.POST("/:entryID/reverse", journalHandler.reverseJournal)
	}
}
