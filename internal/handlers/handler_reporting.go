package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PropLedger/prop_ledger_app/internal/apperrors"
	portssvc "github.com/PropLedger/prop_ledger_app/internal/core/ports/services"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
	"github.com/PropLedger/prop_ledger_app/internal/middleware"
)

// reportingHandler handles HTTP requests for financial reports. The
// budget-vs-actual comparison lives here as well since it reads like a
// report even though the budget service computes it.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	budgetService    portssvc.BudgetSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService, bs portssvc.BudgetSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs, budgetService: bs}
}

// registerReportingRoutes registers routes related to financial reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, budgetService portssvc.BudgetSvcFacade) {
	h := newReportingHandler(reportingService, budgetService)

	reports := rg.Group("/reports")
	{
		reports.GET("/profit-loss", h.getProfitLoss)
		reports.GET("/profit-loss/export", h.exportProfitLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/balance-sheet/export", h.exportBalanceSheet)
		reports.GET("/cash-flow", h.getCashFlow)
		reports.GET("/cash-flow/export", h.exportCashFlow)
		reports.GET("/budget-vs-actual", h.getBudgetVsActual)
	}
}

// getProfitLoss godoc
// @Summary Generate a profit and loss report
// @Description Aggregates revenue and expense transactions over a period
// @Tags reports
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   propertyID query string false "Restrict to one property"
// @Param   fromDate query string true "Period start (YYYY-MM-DD)"
// @Param   toDate query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.ProfitLossResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /orgs/{org_id}/reports/profit-loss [get]
func (h *reportingHandler) getProfitLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ProfitAndLoss", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), orgID, params.PropertyID, params.FromDate, params.ToDate, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error generating P&L", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to generate P&L report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProfitLossResponse(report, params.FromDate, params.ToDate))
}

// getBalanceSheet godoc
// @Summary Generate a balance sheet
// @Description Aggregates asset, liability and equity balances as of a date
// @Tags reports
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   propertyID query string false "Restrict to one property"
// @Param   asOf query string true "Report date (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /orgs/{org_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var params dto.ReportAsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for BalanceSheet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), orgID, params.PropertyID, params.AsOf, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error generating balance sheet", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to generate balance sheet", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report, params.AsOf))
}

// getCashFlow godoc
// @Summary Generate a cash flow report
// @Description Splits cash movement into operating, investing and financing activity over a period
// @Tags reports
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   propertyID query string false "Restrict to one property"
// @Param   fromDate query string true "Period start (YYYY-MM-DD)"
// @Param   toDate query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /orgs/{org_id}/reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for CashFlow", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	report, err := h.reportingService.CashFlow(c.Request.Context(), orgID, params.PropertyID, params.FromDate, params.ToDate, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error generating cash flow report", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to generate cash flow report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCashFlowResponse(report, params.FromDate, params.ToDate))
}

// getBudgetVsActual godoc
// @Summary Compare budgets against actuals
// @Description Joins budget rows for a period with totals aggregated from recorded transactions, org-wide or scoped to one property
// @Tags reports
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   propertyID query string false "Restrict to one property"
// @Param   year query int true "Budget year"
// @Param   month query int false "Restrict to one month"
// @Success 200 {object} dto.BudgetVsActualResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /orgs/{org_id}/reports/budget-vs-actual [get]
func (h *reportingHandler) getBudgetVsActual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var params dto.BudgetVsActualParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for BudgetVsActual", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	report, err := h.budgetService.BudgetVsActual(c.Request.Context(), orgID, params, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error generating budget-vs-actual", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to generate budget-vs-actual report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetVsActualResponse(report))
}

// exportProfitLoss godoc
// @Summary Download a profit and loss report
// @Description Renders the P&L report as JSON, PDF or XLSX
// @Tags reports
// @Produce  octet-stream
// @Param   org_id path string true "Organization ID"
// @Param   propertyID query string false "Restrict to one property"
// @Param   fromDate query string true "Period start (YYYY-MM-DD)"
// @Param   toDate query string true "Period end (YYYY-MM-DD)"
// @Param   format query string false "Output format" Enums(json, pdf, xlsx) default(json)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to export report"
// @Security BearerAuth
// @Router /orgs/{org_id}/reports/profit-loss/export [get]
func (h *reportingHandler) exportProfitLoss(c *gin.Context) {
	h.serveExport(c, "P&L", h.reportingService.ExportProfitAndLoss)
}

// exportBalanceSheet godoc
// @Summary Download a balance sheet
// @Description Renders the balance sheet as JSON, PDF or XLSX, taken as of the period end date
// @Tags reports
// @Produce  octet-stream
// @Param   org_id path string true "Organization ID"
// @Param   propertyID query string false "Restrict to one property"
// @Param   fromDate query string true "Period start (YYYY-MM-DD)"
// @Param   toDate query string true "Report date (YYYY-MM-DD)"
// @Param   format query string false "Output format" Enums(json, pdf, xlsx) default(json)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to export report"
// @Security BearerAuth
// @Router /orgs/{org_id}/reports/balance-sheet/export [get]
func (h *reportingHandler) exportBalanceSheet(c *gin.Context) {
	h.serveExport(c, "balance sheet", h.reportingService.ExportBalanceSheet)
}

// exportCashFlow godoc
// @Summary Download a cash flow report
// @Description Renders the cash flow report as JSON, PDF or XLSX
// @Tags reports
// @Produce  octet-stream
// @Param   org_id path string true "Organization ID"
// @Param   propertyID query string false "Restrict to one property"
// @Param   fromDate query string true "Period start (YYYY-MM-DD)"
// @Param   toDate query string true "Period end (YYYY-MM-DD)"
// @Param   format query string false "Output format" Enums(json, pdf, xlsx) default(json)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to export report"
// @Security BearerAuth
// @Router /orgs/{org_id}/reports/cash-flow/export [get]
func (h *reportingHandler) exportCashFlow(c *gin.Context) {
	h.serveExport(c, "cash flow", h.reportingService.ExportCashFlow)
}

type exportFunc func(ctx context.Context, orgID string, params dto.ReportExportParams, userID string) (*dto.ReportFile, error)

// serveExport binds the shared export parameters, invokes the renderer and
// streams the resulting file back as an attachment.
func (h *reportingHandler) serveExport(c *gin.Context, reportName string, export exportFunc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var params dto.ReportExportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for report export", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	file, err := export(c.Request.Context(), orgID, params, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error exporting report", slog.String("report", reportName), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to export report", slog.String("report", reportName), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to export report"})
		}
		return
	}

	logger.Info("Report exported", slog.String("report", reportName), slog.String("format", params.Format), slog.String("filename", file.Filename))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
