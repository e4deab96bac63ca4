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

// vendorHandler handles HTTP requests related to vendors.
type vendorHandler struct {
	vendorService portssvc.VendorSvcFacade
}

// newVendorHandler creates a new vendorHandler.
func newVendorHandler(vs portssvc.VendorSvcFacade) *vendorHandler {
	return &vendorHandler{vendorService: vs}
}

// registerVendorRoutes registers routes related to vendors.
func registerVendorRoutes(rg *gin.RouterGroup, vendorService portssvc.VendorSvcFacade) {
	h := newVendorHandler(vendorService)

	vendors := rg.Group("/vendors")
	{
		vendors.POST("", h.createVendor)
		vendors.GET("", h.listVendors)
		vendors.GET("/:id", h.getVendor)
		vendors.PUT("/:id", h.updateVendor)
		vendors.DELETE("/:id", h.deleteVendor)
		vendors.GET("/:id/1099", h.get1099Data)
	}
}

// createVendor godoc
// @Summary Create a new vendor
// @Description Creates a vendor the org receives invoices from
// @Tags vendors
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   vendor body dto.CreateVendorRequest true "Vendor details"
// @Success 201 {object} dto.VendorResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create vendor"
// @Security BearerAuth
// @Router /orgs/{org_id}/vendors [post]
func (h *vendorHandler) createVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var req dto.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateVendor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), orgID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating vendor", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create vendor in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create vendor"})
		}
		return
	}

	logger.Info("Vendor created successfully", slog.String("vendor_id", vendor.VendorID))
	c.JSON(http.StatusCreated, dto.ToVendorResponse(vendor))
}

// getVendor godoc
// @Summary Get a vendor by ID
// @Description Retrieves details for a specific vendor
// @Tags vendors
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Vendor ID"
// @Success 200 {object} dto.VendorResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Vendor not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve vendor"
// @Security BearerAuth
// @Router /orgs/{org_id}/vendors/{id} [get]
func (h *vendorHandler) getVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	vendorID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	vendor, err := h.vendorService.GetVendorByID(c.Request.Context(), orgID, vendorID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Vendor not found", slog.String("vendor_id", vendorID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Vendor not found"})
		} else {
			logger.Error("Failed to get vendor from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve vendor"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToVendorResponse(vendor))
}

// listVendors godoc
// @Summary List vendors
// @Description Retrieves vendors for the org
// @Tags vendors
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   includeInactive query bool false "Include inactive vendors" default(false)
// @Param   limit query int false "Limit number of results" default(100)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.VendorResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list vendors"
// @Security BearerAuth
// @Router /orgs/{org_id}/vendors [get]
func (h *vendorHandler) listVendors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var params dto.ListVendorsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListVendors", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	vendors, err := h.vendorService.ListVendors(c.Request.Context(), orgID, params)
	if err != nil {
		logger.Error("Failed to list vendors from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list vendors"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListVendorResponse(vendors))
}

// updateVendor godoc
// @Summary Update a vendor
// @Description Updates a vendor's contact or payment details
// @Tags vendors
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Vendor ID to update"
// @Param   vendor body dto.UpdateVendorRequest true "Fields to update"
// @Success 200 {object} dto.VendorResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Vendor not found"
// @Failure 500 {object} ErrorResponse "Failed to update vendor"
// @Security BearerAuth
// @Router /orgs/{org_id}/vendors/{id} [put]
func (h *vendorHandler) updateVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	vendorID := c.Param("id")

	var req dto.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateVendor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	vendor, err := h.vendorService.UpdateVendor(c.Request.Context(), orgID, vendorID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Vendor not found for update", slog.String("vendor_id", vendorID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Vendor not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating vendor", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to update vendor in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update vendor"})
		}
		return
	}

	logger.Info("Vendor updated successfully", slog.String("vendor_id", vendorID))
	c.JSON(http.StatusOK, dto.ToVendorResponse(vendor))
}

// deleteVendor godoc
// @Summary Delete a vendor
// @Description Marks a vendor as deleted (soft delete)
// @Tags vendors
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Vendor ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Vendor not found"
// @Failure 500 {object} ErrorResponse "Failed to delete vendor"
// @Security BearerAuth
// @Router /orgs/{org_id}/vendors/{id} [delete]
func (h *vendorHandler) deleteVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	vendorID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.vendorService.DeleteVendor(c.Request.Context(), orgID, vendorID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Vendor not found for deletion", slog.String("vendor_id", vendorID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Vendor not found"})
		} else {
			logger.Error("Failed to delete vendor in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete vendor"})
		}
		return
	}

	logger.Info("Vendor deleted successfully", slog.String("vendor_id", vendorID))
	c.Status(http.StatusNoContent)
}

// get1099Data godoc
// @Summary Get a vendor's 1099 summary
// @Description Summarizes a vendor's invoiced and paid totals for a calendar year
// @Tags vendors
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   id path string true "Vendor ID"
// @Param   year query int true "Calendar year"
// @Success 200 {object} dto.Vendor1099Response
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Vendor not found"
// @Failure 500 {object} ErrorResponse "Failed to generate 1099 data"
// @Security BearerAuth
// @Router /orgs/{org_id}/vendors/{id}/1099 [get]
func (h *vendorHandler) get1099Data(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	vendorID := c.Param("id")

	var params dto.Vendor1099Params
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for Get1099Data", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	data, err := h.vendorService.Get1099Data(c.Request.Context(), orgID, vendorID, params.Year, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Vendor not found for 1099 summary", slog.String("vendor_id", vendorID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Vendor not found"})
		} else {
			logger.Error("Failed to generate 1099 data", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate 1099 data"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToVendor1099Response(data))
}
