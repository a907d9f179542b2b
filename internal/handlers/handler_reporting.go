package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schoolbooks/school_finance_app/internal/apperrors"
	portssvc "github.com/schoolbooks/school_finance_app/internal/core/ports/services"
	"github.com/schoolbooks/school_finance_app/internal/dto"
	"github.com/schoolbooks/school_finance_app/internal/middleware"
)

// reportingHandler handles HTTP requests for the financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes for the report generators.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/general-ledger", h.getGeneralLedger)
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/income-statement", h.getIncomeStatement)
		reports.GET("/cash-flow", h.getCashFlow)
	}
}

// parseReportRange reads the startDate and endDate query parameters. A missing
// endDate defaults to today; a missing startDate defaults to the first day of
// the endDate's month.
func parseReportRange(c *gin.Context) (time.Time, time.Time, bool) {
	endStr := c.DefaultQuery("endDate", time.Now().UTC().Format(dto.DateLayout))
	end, err := time.ParseInLocation(dto.DateLayout, endStr, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be in YYYY-MM-DD format"})
		return time.Time{}, time.Time{}, false
	}

	startStr := c.DefaultQuery("startDate", time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC).Format(dto.DateLayout))
	start, err := time.ParseInLocation(dto.DateLayout, startStr, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be in YYYY-MM-DD format"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// getGeneralLedger godoc
// @Summary General ledger for one account
// @Description Opening balance, chronological posted movements with running balances, and closing balance
// @Tags reports
// @Produce  json
// @Param   accountID query string true "Account ID"
// @Param   startDate query string false "Start of period (YYYY-MM-DD)"
// @Param   endDate query string false "End of period (YYYY-MM-DD)"
// @Success 200 {object} dto.GeneralLedgerResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/general-ledger [get]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID := c.Query("accountID")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountID is required"})
		return
	}
	start, end, ok := parseReportRange(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GetGeneralLedger(c.Request.Context(), accountID, start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to generate general ledger", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToGeneralLedgerResponse(report))
}

// getTrialBalance godoc
// @Summary Trial balance
// @Description Per-account opening, period and closing balances for every active posting account with activity
// @Tags reports
// @Produce  json
// @Param   startDate query string false "Start of period (YYYY-MM-DD)"
// @Param   endDate query string false "End of period (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	start, end, ok := parseReportRange(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GetTrialBalance(c.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to generate trial balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getIncomeStatement godoc
// @Summary Income statement
// @Description Revenue and expense accounts grouped by category with net surplus or deficit
// @Tags reports
// @Produce  json
// @Param   startDate query string false "Start of period (YYYY-MM-DD)"
// @Param   endDate query string false "End of period (YYYY-MM-DD)"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	start, end, ok := parseReportRange(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GetIncomeStatement(c.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to generate income statement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report))
}

// getCashFlow godoc
// @Summary Cash flow statement
// @Description Cash movements grouped by transaction type into operating, investing and financing activities
// @Tags reports
// @Produce  json
// @Param   startDate query string false "Start of period (YYYY-MM-DD)"
// @Param   endDate query string false "End of period (YYYY-MM-DD)"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	start, end, ok := parseReportRange(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GetCashFlow(c.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to generate cash flow statement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToCashFlowResponse(report))
}
