package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/schoolbooks/school_finance_app/internal/apperrors"
	portssvc "github.com/schoolbooks/school_finance_app/internal/core/ports/services"
	"github.com/schoolbooks/school_finance_app/internal/dto"
	"github.com/schoolbooks/school_finance_app/internal/middleware"
)

// journalHandler handles HTTP requests for the posting engine and the ledger.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journal-entries")
	{
		journals.POST("", h.postTransaction)
		journals.GET("", h.listJournalEntries)
		journals.GET("/:id", h.getJournalEntry)
		journals.POST("/:id/void", h.voidJournalEntry)
		journals.DELETE("/:id", h.deleteJournalEntry)
	}
}

// postTransaction godoc
// @Summary Post a transaction
// @Description Expands a transaction type template into a balanced journal entry and posts it
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   transaction body dto.PostTransactionRequest true "Transaction details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Transaction type or student not found"
// @Failure 409 {object} map[string]string "Could not allocate a reference number"
// @Failure 500 {object} map[string]string "Failed to post transaction"
// @Router /journal-entries [post]
func (h *journalHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, _ := middleware.GetUserIDFromContext(c)
	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to post transaction", slog.String("type_code", req.TransactionTypeCode))

	entry, err := h.journalService.PostTransaction(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error posting transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Dependency not found posting transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Reference allocation conflict", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to post transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post transaction"})
		}
		return
	}

	logger.Info("Transaction posted successfully",
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.String("reference_number", entry.ReferenceNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getJournalEntry godoc
// @Summary Get a journal entry by ID
// @Description Retrieves a journal entry with its lines
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalEntryID := c.Param("id")

	entry, err := h.journalService.GetJournalEntryByID(c.Request.Context(), journalEntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		} else {
			logger.Error("Failed to get journal entry", slog.String("journal_entry_id", journalEntryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entry"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Pages through journal entries newest first using an opaque cursor token
// @Tags journal-entries
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Router /journal-entries [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit := 0
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}
	var nextToken *string
	if v := c.Query("nextToken"); v != "" {
		nextToken = &v
	}

	entries, token, err := h.journalService.ListJournalEntries(c.Request.Context(), limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal entries"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalEntriesResponse(entries, token))
}

// voidJournalEntry godoc
// @Summary Void a journal entry
// @Description Transitions a POSTED entry to VOID; voided entries stay on the ledger
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry is already voided or not posted"
// @Failure 500 {object} map[string]string "Failed to void journal entry"
// @Router /journal-entries/{id}/void [post]
func (h *journalHandler) voidJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalEntryID := c.Param("id")

	voiderUserID, _ := middleware.GetUserIDFromContext(c)
	logger = logger.With(slog.String("journal_entry_id", journalEntryID), slog.String("voider_user_id", voiderUserID))

	entry, err := h.journalService.VoidJournalEntry(c.Request.Context(), journalEntryID, voiderUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyVoided) || errors.Is(err, apperrors.ErrNotPosted) {
			logger.Warn("Void rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		} else {
			logger.Error("Failed to void journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to void journal entry"})
		}
		return
	}

	logger.Info("Journal entry voided")
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteJournalEntry godoc
// @Summary Delete a journal entry
// @Description Always rejected; the ledger is immutable and entries can only be voided
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Failure 403 {object} map[string]string "Ledger is immutable"
// @Router /journal-entries/{id} [delete]
func (h *journalHandler) deleteJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalEntryID := c.Param("id")

	err := h.journalService.DeleteJournalEntry(c.Request.Context(), journalEntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrLedgerImmutable) {
			logger.Warn("Delete rejected on immutable ledger", slog.String("journal_entry_id", journalEntryID))
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to delete journal entry", slog.String("journal_entry_id", journalEntryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete journal entry"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
