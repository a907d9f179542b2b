package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolbooks/school_finance_app/internal/apperrors"
	portssvc "github.com/schoolbooks/school_finance_app/internal/core/ports/services"
	"github.com/schoolbooks/school_finance_app/internal/dto"
	"github.com/schoolbooks/school_finance_app/internal/middleware"
)

// transactionTypeHandler handles HTTP requests for the transaction type registry.
type transactionTypeHandler struct {
	typeService portssvc.TransactionTypeSvcFacade
}

func newTransactionTypeHandler(ts portssvc.TransactionTypeSvcFacade) *transactionTypeHandler {
	return &transactionTypeHandler{
		typeService: ts,
	}
}

// registerTransactionTypeRoutes registers routes related to transaction types.
func registerTransactionTypeRoutes(rg *gin.RouterGroup, typeService portssvc.TransactionTypeSvcFacade) {
	h := newTransactionTypeHandler(typeService)

	types := rg.Group("/transaction-types")
	{
		types.POST("", h.createTransactionType)
		types.GET("", h.listTransactionTypes)
		types.GET("/:id", h.getTransactionType)
		types.PUT("/:id", h.updateTransactionType)
		types.DELETE("/:id", h.deleteTransactionType)
	}
}

// createTransactionType godoc
// @Summary Create a transaction type
// @Description Creates a posting template with at least two account roles
// @Tags transaction-types
// @Accept  json
// @Produce  json
// @Param   transactionType body dto.CreateTransactionTypeRequest true "Transaction type details"
// @Success 201 {object} dto.TransactionTypeResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Transaction type code already exists"
// @Failure 500 {object} map[string]string "Failed to create transaction type"
// @Router /transaction-types [post]
func (h *transactionTypeHandler) createTransactionType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransactionType", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, _ := middleware.GetUserIDFromContext(c)
	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create transaction type", slog.String("type_code", req.Code))

	created, err := h.typeService.CreateTransactionType(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create transaction type", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction type"})
		}
		return
	}

	logger.Info("Transaction type created successfully", slog.String("transaction_type_id", created.TransactionTypeID))
	c.JSON(http.StatusCreated, dto.ToTransactionTypeResponse(created))
}

// getTransactionType godoc
// @Summary Get a transaction type by ID
// @Tags transaction-types
// @Produce  json
// @Param   id path string true "Transaction type ID"
// @Success 200 {object} dto.TransactionTypeResponse
// @Failure 404 {object} map[string]string "Transaction type not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction type"
// @Router /transaction-types/{id} [get]
func (h *transactionTypeHandler) getTransactionType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionTypeID := c.Param("id")

	tt, err := h.typeService.GetTransactionTypeByID(c.Request.Context(), transactionTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction type not found"})
		} else {
			logger.Error("Failed to get transaction type", slog.String("transaction_type_id", transactionTypeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction type"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionTypeResponse(tt))
}

// listTransactionTypes godoc
// @Summary List transaction types
// @Tags transaction-types
// @Produce  json
// @Success 200 {array} dto.TransactionTypeResponse
// @Failure 500 {object} map[string]string "Failed to list transaction types"
// @Router /transaction-types [get]
func (h *transactionTypeHandler) listTransactionTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	types, err := h.typeService.ListTransactionTypes(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list transaction types", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transaction types"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionTypeResponse(types))
}

// updateTransactionType godoc
// @Summary Update a transaction type
// @Description Updates a user-defined type; system types are immutable. Omitting accounts leaves the roles untouched
// @Tags transaction-types
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction type ID"
// @Param   transactionType body dto.UpdateTransactionTypeRequest true "Fields to update"
// @Success 200 {object} dto.TransactionTypeResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 403 {object} map[string]string "System transaction types are immutable"
// @Failure 404 {object} map[string]string "Transaction type not found"
// @Failure 500 {object} map[string]string "Failed to update transaction type"
// @Router /transaction-types/{id} [put]
func (h *transactionTypeHandler) updateTransactionType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionTypeID := c.Param("id")

	var req dto.UpdateTransactionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransactionType", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, _ := middleware.GetUserIDFromContext(c)
	updated, err := h.typeService.UpdateTransactionType(c.Request.Context(), transactionTypeID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSystemTypeImmutable) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction type not found"})
		} else {
			logger.Error("Failed to update transaction type", slog.String("transaction_type_id", transactionTypeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction type"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionTypeResponse(updated))
}

// deleteTransactionType godoc
// @Summary Delete a transaction type
// @Description Deletes an unreferenced user-defined type; types referenced by journal entries are deactivated instead
// @Tags transaction-types
// @Produce  json
// @Param   id path string true "Transaction type ID"
// @Success 204 "Transaction type deleted or deactivated"
// @Failure 403 {object} map[string]string "System transaction types are immutable"
// @Failure 404 {object} map[string]string "Transaction type not found"
// @Failure 500 {object} map[string]string "Failed to delete transaction type"
// @Router /transaction-types/{id} [delete]
func (h *transactionTypeHandler) deleteTransactionType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionTypeID := c.Param("id")

	deleterUserID, _ := middleware.GetUserIDFromContext(c)
	err := h.typeService.DeleteTransactionType(c.Request.Context(), transactionTypeID, deleterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSystemTypeImmutable) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction type not found"})
		} else {
			logger.Error("Failed to delete transaction type", slog.String("transaction_type_id", transactionTypeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction type"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
