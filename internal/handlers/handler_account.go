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

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to the chart of accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/suggest-code", h.suggestCode)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deactivateAccount)
		accounts.GET("/:id/ancestors", h.getAncestors)
		accounts.GET("/:id/descendants", h.getDescendants)
		accounts.GET("/:id/full-code", h.getFullCode)
	}
}

// registerCategoryRoutes registers the read-only category listing.
func registerCategoryRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)
	rg.GET("/categories", h.listCategories)
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a new account in the chart of accounts
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, _ := middleware.GetUserIDFromContext(c)
	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create account", slog.String("account_code", req.Code))

	newAccount, err := h.accountService.CreateAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Dependency not found creating account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate account code", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", newAccount.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(newAccount))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves details for a specific account by its ID
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists all accounts in the chart of accounts, ordered by code
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates mutable fields of an account; omitted fields are left untouched
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, _ := middleware.GetUserIDFromContext(c)
	updated, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to update account", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(updated))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Soft-deletes an account; accounts with children or posted activity are rejected
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 204 "Account deactivated"
// @Failure 400 {object} map[string]string "Account has children or posted activity"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to deactivate account"
// @Router /accounts/{id} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	deleterUserID, _ := middleware.GetUserIDFromContext(c)
	err := h.accountService.DeactivateAccount(c.Request.Context(), accountID, deleterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to deactivate account", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate account"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// suggestCode godoc
// @Summary Suggest the next account code
// @Description Proposes a code for a new child of parentID, or a new root code when parentID is omitted
// @Tags accounts
// @Produce  json
// @Param   parentID query string false "Parent account ID"
// @Success 200 {object} dto.SuggestCodeResponse
// @Failure 404 {object} map[string]string "Parent account not found"
// @Failure 500 {object} map[string]string "Failed to suggest code"
// @Router /accounts/suggest-code [get]
func (h *accountHandler) suggestCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var parentID *string
	if v := c.Query("parentID"); v != "" {
		parentID = &v
	}

	code, err := h.accountService.SuggestNextCode(c.Request.Context(), parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parent account not found"})
		} else {
			logger.Error("Failed to suggest account code", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to suggest code"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.SuggestCodeResponse{Code: code})
}

// getAncestors godoc
// @Summary List the ancestors of an account
// @Description Returns the chain from the root down to the account's direct parent
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {array} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to resolve ancestors"
// @Router /accounts/{id}/ancestors [get]
func (h *accountHandler) getAncestors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	ancestors, err := h.accountService.GetAncestors(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to resolve ancestors", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve ancestors"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(ancestors))
}

// getDescendants godoc
// @Summary List the descendants of an account
// @Description Returns every account in the subtree below the account, depth first
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {array} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to resolve descendants"
// @Router /accounts/{id}/descendants [get]
func (h *accountHandler) getDescendants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	descendants, err := h.accountService.GetDescendants(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to resolve descendants", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve descendants"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(descendants))
}

// getFullCode godoc
// @Summary Get the full dotted code of an account
// @Description Joins the codes from the root down to the account with dots
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.FullPathResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to resolve full code"
// @Router /accounts/{id}/full-code [get]
func (h *accountHandler) getFullCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	fullCode, err := h.accountService.GetFullAccountCode(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to resolve full code", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve full code"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FullPathResponse{AccountID: accountID, FullCode: fullCode})
}

// listCategories godoc
// @Summary List account categories
// @Description Lists report categories ordered by their display sequence
// @Tags categories
// @Produce  json
// @Success 200 {array} dto.CategoryResponse
// @Failure 500 {object} map[string]string "Failed to list categories"
// @Router /categories [get]
func (h *accountHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	categories, err := h.accountService.ListCategories(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list categories", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponses(categories))
}
