package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PropLedger/prop_ledger_app/internal/apperrors"
	portssvc "github.com/PropLedger/prop_ledger_app/internal/core/ports/services"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
	"github.com/PropLedger/prop_ledger_app/internal/middleware"
)

// hudHandler handles HTTP requests for HUD compliance features: the rent
// calculator, income certifications, and utility allowance schedules.
type hudHandler struct {
	hudService portssvc.HUDSvcFacade
}

// newHUDHandler creates a new hudHandler.
func newHUDHandler(hs portssvc.HUDSvcFacade) *hudHandler {
	return &hudHandler{hudService: hs}
}

// registerHUDRoutes registers routes related to HUD compliance.
func registerHUDRoutes(rg *gin.RouterGroup, hudService portssvc.HUDSvcFacade) {
	h := newHUDHandler(hudService)

	hud := rg.Group("/hud")
	{
		hud.POST("/calculate-rent", h.calculateRent)

		certs := hud.Group("/certifications")
		{
			certs.POST("", h.createCertification)
			certs.GET("", h.listCertifications)
			certs.GET("/expiring", h.listExpiringCertifications)
			certs.GET("/:id", h.getCertification)
			certs.PUT("/:id", h.updateCertification)
			certs.POST("/:id/submit-50059", h.submitHUD50059)
			certs.DELETE("/:id", h.deleteCertification)
			certs.POST("/:id/members", h.addHouseholdMember)
			certs.GET("/:id/members", h.listHouseholdMembers)
		}

		members := hud.Group("/members")
		{
			members.PUT("/:id", h.updateHouseholdMember)
			members.DELETE("/:id", h.removeHouseholdMember)
			members.POST("/:id/income-sources", h.addIncomeSource)
			members.GET("/:id/income-sources", h.listIncomeSources)
		}

		income := hud.Group("/income-sources")
		{
			income.PUT("/:id", h.updateIncomeSource)
			income.DELETE("/:id", h.removeIncomeSource)
		}

		inspections := hud.Group("/inspections")
		{
			inspections.POST("", h.createInspection)
			inspections.GET("", h.listInspections)
			inspections.GET("/upcoming", h.listUpcomingInspections)
			inspections.PUT("/:id", h.updateInspection)
		}

		allowances := hud.Group("/utility-allowances")
		{
			allowances.POST("", h.createUtilityAllowance)
			allowances.GET("", h.listUtilityAllowances)
			allowances.GET("/current", h.getCurrentAllowance)
			allowances.DELETE("/:id", h.deleteUtilityAllowance)
		}
	}
}

// calculateRent godoc
// @Summary Calculate HUD tenant rent
// @Description Applies the HUD PRAC formula: tenant pays 30% of monthly income less the utility allowance, floored at zero
// @Tags hud
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   calculation body dto.CalculateRentRequest true "Income and rent inputs"
// @Success 200 {object} dto.RentCalculationResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/calculate-rent [post]
func (h *hudHandler) calculateRent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CalculateRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CalculateRent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	calc := h.hudService.CalculateTenantRent(c.Request.Context(), req)
	c.JSON(http.StatusOK, dto.ToRentCalculationResponse(calc))
}

// createCertification godoc
// @Summary Create an income certification
// @Description Records a tenant income certification; rent and subsidy splits are computed server-side
// @Tags hud
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   certification body dto.CreateCertificationRequest true "Certification details"
// @Success 201 {object} dto.CertificationResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create certification"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/certifications [post]
func (h *hudHandler) createCertification(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var req dto.CreateCertificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCertification", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	cert, err := h.hudService.CreateCertification(c.Request.Context(), orgID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating certification", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create certification in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create certification"})
		}
		return
	}

	logger.Info("Certification created successfully", slog.String("certification_id", cert.CertificationID))
	c.JSON(http.StatusCreated, dto.ToCertificationResponse(cert))
}

// getCertification godoc
// @Summary Get a certification by ID
// @Description Retrieves details for a specific income certification
// @Tags hud
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Certification ID"
// @Success 200 {object} dto.CertificationResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Certification not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve certification"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/certifications/{id} [get]
func (h *hudHandler) getCertification(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	certificationID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	cert, err := h.hudService.GetCertificationByID(c.Request.Context(), orgID, certificationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Certification not found", slog.String("certification_id", certificationID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Certification not found"})
		} else {
			logger.Error("Failed to get certification from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve certification"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCertificationResponse(cert))
}

// listCertifications godoc
// @Summary List income certifications
// @Description Retrieves certifications for the org, optionally filtered
// @Tags hud
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   tenantID query string false "Filter by tenant"
// @Param   propertyID query string false "Filter by property"
// @Param   status query string false "Filter by status"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.CertificationResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list certifications"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/certifications [get]
func (h *hudHandler) listCertifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var params dto.ListCertificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListCertifications", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	certs, err := h.hudService.ListCertifications(c.Request.Context(), orgID, params)
	if err != nil {
		logger.Error("Failed to list certifications from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list certifications"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCertificationResponse(certs))
}

// listExpiringCertifications godoc
// @Summary List certifications due for annual recertification
// @Description Retrieves approved certifications whose anniversary falls within the given window
// @Tags hud
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   withinDays query int false "Window in days" default(90)
// @Success 200 {array} dto.CertificationResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list expiring certifications"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/certifications/expiring [get]
func (h *hudHandler) listExpiringCertifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var params dto.ExpiringCertificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListExpiringCertifications", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	certs, err := h.hudService.ListExpiringCertifications(c.Request.Context(), orgID, params.WithinDays)
	if err != nil {
		logger.Error("Failed to list expiring certifications from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list expiring certifications"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCertificationResponse(certs))
}

// updateCertification godoc
// @Summary Update an income certification
// @Description Updates a certification; income changes recompute the rent and subsidy split
// @Tags hud
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Certification ID to update"
// @Param   certification body dto.UpdateCertificationRequest true "Fields to update"
// @Success 200 {object} dto.CertificationResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Certification not found"
// @Failure 500 {object} ErrorResponse "Failed to update certification"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/certifications/{id} [put]
func (h *hudHandler) updateCertification(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	certificationID := c.Param("id")

	var req dto.UpdateCertificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCertification", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	cert, err := h.hudService.UpdateCertification(c.Request.Context(), orgID, certificationID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Certification not found for update", slog.String("certification_id", certificationID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Certification not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating certification", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to update certification in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update certification"})
		}
		return
	}

	logger.Info("Certification updated successfully", slog.String("certification_id", certificationID))
	c.JSON(http.StatusOK, dto.ToCertificationResponse(cert))
}

// submitHUD50059 godoc
// @Summary Record a HUD-50059 submission
// @Description Marks an approved certification as submitted to HUD; rejects pending or already submitted certifications
// @Tags hud
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Certification ID"
// @Success 200 {object} dto.CertificationResponse
// @Failure 400 {object} ErrorResponse "Certification not approved or already submitted"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Certification not found"
// @Failure 500 {object} ErrorResponse "Failed to submit certification"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/certifications/{id}/submit-50059 [post]
func (h *hudHandler) submitHUD50059(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	certificationID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	cert, err := h.hudService.SubmitHUD50059(c.Request.Context(), orgID, certificationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Certification not found for submission", slog.String("certification_id", certificationID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Certification not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Certification not eligible for submission", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to submit certification in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to submit certification"})
		}
		return
	}

	logger.Info("HUD-50059 submission recorded", slog.String("certification_id", certificationID))
	c.JSON(http.StatusOK, dto.ToCertificationResponse(cert))
}

// deleteCertification godoc
// @Summary Delete an income certification
// @Description Marks a certification as deleted (soft delete)
// @Tags hud
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Certification ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Certification not found"
// @Failure 500 {object} ErrorResponse "Failed to delete certification"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/certifications/{id} [delete]
func (h *hudHandler) deleteCertification(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	certificationID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.hudService.DeleteCertification(c.Request.Context(), orgID, certificationID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Certification not found for deletion", slog.String("certification_id", certificationID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Certification not found"})
		} else {
			logger.Error("Failed to delete certification in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete certification"})
		}
		return
	}

	logger.Info("Certification deleted successfully", slog.String("certification_id", certificationID))
	c.Status(http.StatusNoContent)
}

// createUtilityAllowance godoc
// @Summary Record a utility allowance schedule row
// @Description Records HUD-published allowance components for a property and bedroom count; the total is computed server-side
// @Tags hud
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   allowance body dto.CreateUtilityAllowanceRequest true "Allowance details"
// @Success 201 {object} dto.UtilityAllowanceResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create allowance"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/utility-allowances [post]
func (h *hudHandler) createUtilityAllowance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var req dto.CreateUtilityAllowanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateUtilityAllowance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	allowance, err := h.hudService.CreateUtilityAllowance(c.Request.Context(), orgID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating allowance", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create allowance in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create allowance"})
		}
		return
	}

	logger.Info("Utility allowance created successfully", slog.String("allowance_id", allowance.AllowanceID))
	c.JSON(http.StatusCreated, dto.ToUtilityAllowanceResponse(allowance))
}

// listUtilityAllowances godoc
// @Summary List utility allowance rows
// @Description Retrieves allowance schedule rows for a property
// @Tags hud
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   propertyID query string true "Property ID"
// @Success 200 {array} dto.UtilityAllowanceResponse
// @Failure 400 {object} ErrorResponse "Missing property ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list allowances"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/utility-allowances [get]
func (h *hudHandler) listUtilityAllowances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	propertyID := c.Query("propertyID")
	if propertyID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "propertyID query parameter is required"})
		return
	}

	allowances, err := h.hudService.ListUtilityAllowances(c.Request.Context(), orgID, propertyID)
	if err != nil {
		logger.Error("Failed to list allowances from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list allowances"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListUtilityAllowanceResponse(allowances))
}

// getCurrentAllowance godoc
// @Summary Get the allowance currently in effect
// @Description Retrieves the allowance row for a property and bedroom count with the latest effective date
// @Tags hud
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   propertyID query string true "Property ID"
// @Param   bedroomCount query int false "Bedroom count"
// @Success 200 {object} dto.UtilityAllowanceResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "No allowance on record"
// @Failure 500 {object} ErrorResponse "Failed to get allowance"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/utility-allowances/current [get]
func (h *hudHandler) getCurrentAllowance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var params dto.CurrentAllowanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for GetCurrentAllowance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	allowance, err := h.hudService.GetCurrentAllowance(c.Request.Context(), orgID, params.PropertyID, params.BedroomCount)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No allowance on record for this property and bedroom count"})
		} else {
			logger.Error("Failed to get current allowance from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get allowance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUtilityAllowanceResponse(allowance))
}

// deleteUtilityAllowance godoc
// @Summary Delete a utility allowance row
// @Description Marks an allowance schedule row as deleted (soft delete)
// @Tags hud
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Allowance ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Allowance not found"
// @Failure 500 {object} ErrorResponse "Failed to delete allowance"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/utility-allowances/{id} [delete]
func (h *hudHandler) deleteUtilityAllowance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	allowanceID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.hudService.DeleteUtilityAllowance(c.Request.Context(), orgID, allowanceID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Allowance not found for deletion", slog.String("allowance_id", allowanceID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Allowance not found"})
		} else {
			logger.Error("Failed to delete allowance in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete allowance"})
		}
		return
	}

	logger.Info("Utility allowance deleted successfully", slog.String("allowance_id", allowanceID))
	c.Status(http.StatusNoContent)
}
