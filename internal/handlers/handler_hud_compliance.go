package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PropLedger/prop_ledger_app/internal/apperrors"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
	"github.com/PropLedger/prop_ledger_app/internal/middleware"
)

// Household roster, income source, and REAC inspection endpoints of the HUD
// handler.

// addHouseholdMember godoc
// @Summary Add a household member to a certification
// @Description Adds a person to the certified household roster
// @Tags hud
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Certification ID"
// @Param   member body dto.CreateHouseholdMemberRequest true "Member details"
// @Success 201 {object} dto.HouseholdMemberResponse
// @Failure 400 {object} ErrorResponse "Invalid input or certification not found"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to add household member"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/certifications/{id}/members [post]
func (h *hudHandler) addHouseholdMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	certificationID := c.Param("id")

	var req dto.CreateHouseholdMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddHouseholdMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	member, err := h.hudService.AddHouseholdMember(c.Request.Context(), orgID, certificationID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error adding household member", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to add household member in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add household member"})
		}
		return
	}

	logger.Info("Household member added successfully", slog.String("member_id", member.MemberID))
	c.JSON(http.StatusCreated, dto.ToHouseholdMemberResponse(member))
}

// listHouseholdMembers godoc
// @Summary List the household roster of a certification
// @Description Retrieves the household members recorded on an income certification
// @Tags hud
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Certification ID"
// @Success 200 {array} dto.HouseholdMemberResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Certification not found"
// @Failure 500 {object} ErrorResponse "Failed to list household members"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/certifications/{id}/members [get]
func (h *hudHandler) listHouseholdMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	certificationID := c.Param("id")

	members, err := h.hudService.ListHouseholdMembers(c.Request.Context(), orgID, certificationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Certification not found for roster listing", slog.String("certification_id", certificationID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Certification not found"})
		} else {
			logger.Error("Failed to list household members from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list household members"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListHouseholdMemberResponse(members))
}

// updateHouseholdMember godoc
// @Summary Update a household member
// @Description Updates roster details for one household member
// @Tags hud
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Member ID to update"
// @Param   member body dto.UpdateHouseholdMemberRequest true "Fields to update"
// @Success 200 {object} dto.HouseholdMemberResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Household member not found"
// @Failure 500 {object} ErrorResponse "Failed to update household member"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/members/{id} [put]
func (h *hudHandler) updateHouseholdMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	memberID := c.Param("id")

	var req dto.UpdateHouseholdMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateHouseholdMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	member, err := h.hudService.UpdateHouseholdMember(c.Request.Context(), orgID, memberID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Household member not found for update", slog.String("member_id", memberID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Household member not found"})
		} else {
			logger.Error("Failed to update household member in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update household member"})
		}
		return
	}

	logger.Info("Household member updated successfully", slog.String("member_id", memberID))
	c.JSON(http.StatusOK, dto.ToHouseholdMemberResponse(member))
}

// removeHouseholdMember godoc
// @Summary Remove a household member
// @Description Marks a household member as deleted (soft delete)
// @Tags hud
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Member ID to remove"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Household member not found"
// @Failure 500 {object} ErrorResponse "Failed to remove household member"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/members/{id} [delete]
func (h *hudHandler) removeHouseholdMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	memberID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.hudService.RemoveHouseholdMember(c.Request.Context(), orgID, memberID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Household member not found for removal", slog.String("member_id", memberID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Household member not found"})
		} else {
			logger.Error("Failed to remove household member in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to remove household member"})
		}
		return
	}

	logger.Info("Household member removed successfully", slog.String("member_id", memberID))
	c.Status(http.StatusNoContent)
}

// addIncomeSource godoc
// @Summary Add an income source to a household member
// @Description Records a verified income stream for one household member
// @Tags hud
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Member ID"
// @Param   source body dto.CreateIncomeSourceRequest true "Income source details"
// @Success 201 {object} dto.IncomeSourceResponse
// @Failure 400 {object} ErrorResponse "Invalid input or household member not found"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to add income source"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/members/{id}/income-sources [post]
func (h *hudHandler) addIncomeSource(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	memberID := c.Param("id")

	var req dto.CreateIncomeSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddIncomeSource", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	source, err := h.hudService.AddIncomeSource(c.Request.Context(), orgID, memberID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error adding income source", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to add income source in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add income source"})
		}
		return
	}

	logger.Info("Income source added successfully", slog.String("source_id", source.SourceID))
	c.JSON(http.StatusCreated, dto.ToIncomeSourceResponse(source))
}

// listIncomeSources godoc
// @Summary List the income sources of a household member
// @Description Retrieves the verified income streams recorded for one member
// @Tags hud
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Member ID"
// @Success 200 {array} dto.IncomeSourceResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Household member not found"
// @Failure 500 {object} ErrorResponse "Failed to list income sources"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/members/{id}/income-sources [get]
func (h *hudHandler) listIncomeSources(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	memberID := c.Param("id")

	sources, err := h.hudService.ListIncomeSources(c.Request.Context(), orgID, memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Household member not found for income listing", slog.String("member_id", memberID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Household member not found"})
		} else {
			logger.Error("Failed to list income sources from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list income sources"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListIncomeSourceResponse(sources))
}

// updateIncomeSource godoc
// @Summary Update an income source
// @Description Updates details of a recorded income stream
// @Tags hud
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Income source ID to update"
// @Param   source body dto.UpdateIncomeSourceRequest true "Fields to update"
// @Success 200 {object} dto.IncomeSourceResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Income source not found"
// @Failure 500 {object} ErrorResponse "Failed to update income source"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/income-sources/{id} [put]
func (h *hudHandler) updateIncomeSource(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	sourceID := c.Param("id")

	var req dto.UpdateIncomeSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateIncomeSource", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	source, err := h.hudService.UpdateIncomeSource(c.Request.Context(), orgID, sourceID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Income source not found for update", slog.String("source_id", sourceID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Income source not found"})
		} else {
			logger.Error("Failed to update income source in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update income source"})
		}
		return
	}

	logger.Info("Income source updated successfully", slog.String("source_id", sourceID))
	c.JSON(http.StatusOK, dto.ToIncomeSourceResponse(source))
}

// removeIncomeSource godoc
// @Summary Remove an income source
// @Description Marks an income source as deleted (soft delete)
// @Tags hud
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Income source ID to remove"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Income source not found"
// @Failure 500 {object} ErrorResponse "Failed to remove income source"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/income-sources/{id} [delete]
func (h *hudHandler) removeIncomeSource(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	sourceID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.hudService.RemoveIncomeSource(c.Request.Context(), orgID, sourceID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Income source not found for removal", slog.String("source_id", sourceID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Income source not found"})
		} else {
			logger.Error("Failed to remove income source in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to remove income source"})
		}
		return
	}

	logger.Info("Income source removed successfully", slog.String("source_id", sourceID))
	c.Status(http.StatusNoContent)
}

// createInspection godoc
// @Summary Record a REAC inspection
// @Description Records a HUD Real Estate Assessment Center inspection for a property
// @Tags hud
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   inspection body dto.CreateInspectionRequest true "Inspection details"
// @Success 201 {object} dto.InspectionResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to record inspection"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/inspections [post]
func (h *hudHandler) createInspection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var req dto.CreateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInspection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	inspection, err := h.hudService.CreateInspection(c.Request.Context(), orgID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error recording inspection", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to record inspection in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record inspection"})
		}
		return
	}

	logger.Info("Inspection recorded successfully", slog.String("inspection_id", inspection.InspectionID))
	c.JSON(http.StatusCreated, dto.ToInspectionResponse(inspection))
}

// listInspections godoc
// @Summary List REAC inspections
// @Description Retrieves inspection history, newest first, optionally restricted to one property
// @Tags hud
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   propertyID query string false "Restrict to one property"
// @Success 200 {array} dto.InspectionResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list inspections"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/inspections [get]
func (h *hudHandler) listInspections(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var params dto.ListInspectionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListInspections", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	inspections, err := h.hudService.ListInspections(c.Request.Context(), orgID, params)
	if err != nil {
		logger.Error("Failed to list inspections from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list inspections"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListInspectionResponse(inspections))
}

// listUpcomingInspections godoc
// @Summary List upcoming REAC inspections
// @Description Retrieves inspections whose next scheduled date falls within the given window
// @Tags hud
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   withinDays query int false "Window in days" default(60)
// @Success 200 {array} dto.InspectionResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list upcoming inspections"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/inspections/upcoming [get]
func (h *hudHandler) listUpcomingInspections(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var params dto.UpcomingInspectionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListUpcomingInspections", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	inspections, err := h.hudService.ListUpcomingInspections(c.Request.Context(), orgID, params.WithinDays)
	if err != nil {
		logger.Error("Failed to list upcoming inspections from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list upcoming inspections"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListInspectionResponse(inspections))
}

// updateInspection godoc
// @Summary Update a REAC inspection
// @Description Updates scores, status, or scheduling details of an inspection record
// @Tags hud
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Inspection ID to update"
// @Param   inspection body dto.UpdateInspectionRequest true "Fields to update"
// @Success 200 {object} dto.InspectionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Inspection not found"
// @Failure 500 {object} ErrorResponse "Failed to update inspection"
// @Security BearerAuth
// @Router /orgs/{org_id}/hud/inspections/{id} [put]
func (h *hudHandler) updateInspection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	inspectionID := c.Param("id")

	var req dto.UpdateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInspection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	inspection, err := h.hudService.UpdateInspection(c.Request.Context(), orgID, inspectionID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Inspection not found for update", slog.String("inspection_id", inspectionID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Inspection not found"})
		} else {
			logger.Error("Failed to update inspection in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update inspection"})
		}
		return
	}

	logger.Info("Inspection updated successfully", slog.String("inspection_id", inspectionID))
	c.JSON(http.StatusOK, dto.ToInspectionResponse(inspection))
}
