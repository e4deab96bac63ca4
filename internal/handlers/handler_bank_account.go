package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PropLedger/prop_ledger_app/internal/apperrors"
	portssvc "github.com/PropLedger/prop_ledger_app/internal/core/ports/services"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
	"github.com/PropLedger/prop_ledger_app/internal/middleware"
)

// bankAccountHandler handles HTTP requests related to bank accounts.
type bankAccountHandler struct {
	bankAccountService portssvc.BankAccountSvcFacade
}

// newBankAccountHandler creates a new bankAccountHandler.
func newBankAccountHandler(bs portssvc.BankAccountSvcFacade) *bankAccountHandler {
	return &bankAccountHandler{bankAccountService: bs}
}

// registerBankAccountRoutes registers routes related to bank accounts.
func registerBankAccountRoutes(rg *gin.RouterGroup, bankAccountService portssvc.BankAccountSvcFacade) {
	h := newBankAccountHandler(bankAccountService)

	bankAccounts := rg.Group("/bank-accounts")
	{
		bankAccounts.POST("", h.createBankAccount)
		bankAccounts.GET("", h.listBankAccounts)
		bankAccounts.GET("/:id", h.getBankAccount)
		bankAccounts.PUT("/:id", h.updateBankAccount)
		bankAccounts.DELETE("/:id", h.deleteBankAccount)
	}
}

// createBankAccount godoc
// @Summary Register a bank account
// @Description Registers a bank account against an existing ledger account
// @Tags bank-accounts
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   bankAccount body dto.CreateBankAccountRequest true "Bank account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create bank account"
// @Security BearerAuth
// @Router /orgs/{org_id}/bank-accounts [post]
func (h *bankAccountHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.bankAccountService.CreateBankAccount(c.Request.Context(), orgID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Validation error creating bank account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create bank account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create bank account"})
		}
		return
	}

	logger.Info("Bank account created successfully", slog.String("bank_account_id", account.BankAccountID))
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// getBankAccount godoc
// @Summary Get a bank account by ID
// @Description Retrieves details for a specific bank account
// @Tags bank-accounts
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Bank account not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve bank account"
// @Security BearerAuth
// @Router /orgs/{org_id}/bank-accounts/{id} [get]
func (h *bankAccountHandler) getBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	bankAccountID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.bankAccountService.GetBankAccountByID(c.Request.Context(), orgID, bankAccountID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Bank account not found", slog.String("bank_account_id", bankAccountID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Bank account not found"})
		} else {
			logger.Error("Failed to get bank account from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve bank account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Description Retrieves bank accounts for the org
// @Tags bank-accounts
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   includeInactive query bool false "Include inactive bank accounts" default(false)
// @Success 200 {array} dto.BankAccountResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list bank accounts"
// @Security BearerAuth
// @Router /orgs/{org_id}/bank-accounts [get]
func (h *bankAccountHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	includeInactive, _ := strconv.ParseBool(c.DefaultQuery("includeInactive", "false"))

	accounts, err := h.bankAccountService.ListBankAccounts(c.Request.Context(), orgID, includeInactive)
	if err != nil {
		logger.Error("Failed to list bank accounts from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list bank accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBankAccountResponse(accounts))
}

// updateBankAccount godoc
// @Summary Update a bank account
// @Description Updates a bank account's details or manually tracked balance
// @Tags bank-accounts
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Bank account ID to update"
// @Param   bankAccount body dto.UpdateBankAccountRequest true "Fields to update"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Bank account not found"
// @Failure 500 {object} ErrorResponse "Failed to update bank account"
// @Security BearerAuth
// @Router /orgs/{org_id}/bank-accounts/{id} [put]
func (h *bankAccountHandler) updateBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	bankAccountID := c.Param("id")

	var req dto.UpdateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.bankAccountService.UpdateBankAccount(c.Request.Context(), orgID, bankAccountID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Bank account not found for update", slog.String("bank_account_id", bankAccountID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Bank account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating bank account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to update bank account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update bank account"})
		}
		return
	}

	logger.Info("Bank account updated successfully", slog.String("bank_account_id", bankAccountID))
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// deleteBankAccount godoc
// @Summary Delete a bank account
// @Description Marks a bank account as deleted (soft delete)
// @Tags bank-accounts
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Bank account ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Bank account not found"
// @Failure 500 {object} ErrorResponse "Failed to delete bank account"
// @Security BearerAuth
// @Router /orgs/{org_id}/bank-accounts/{id} [delete]
func (h *bankAccountHandler) deleteBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	bankAccountID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.bankAccountService.DeleteBankAccount(c.Request.Context(), orgID, bankAccountID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Bank account not found for deletion", slog.String("bank_account_id", bankAccountID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Bank account not found"})
		} else {
			logger.Error("Failed to delete bank account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete bank account"})
		}
		return
	}

	logger.Info("Bank account deleted successfully", slog.String("bank_account_id", bankAccountID))
	c.Status(http.StatusNoContent)
}
