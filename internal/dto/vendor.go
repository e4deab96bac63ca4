package dto

import (
	"time"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

// CreateVendorRequest defines the data needed to create a vendor.
type CreateVendorRequest struct {
	VendorName    string `json:"vendorName" binding:"required"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	TaxID         string `json:"taxID"`
	PaymentTerms  string `json:"paymentTerms"`
}

// UpdateVendorRequest defines the data allowed for updating a vendor.
type UpdateVendorRequest struct {
	VendorName    *string `json:"vendorName"`
	ContactPerson *string `json:"contactPerson"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	TaxID         *string `json:"taxID"`
	PaymentTerms  *string `json:"paymentTerms"`
	IsActive      *bool   `json:"isActive"`
}

// VendorResponse defines the data returned for a vendor.
type VendorResponse struct {
	VendorID      string    `json:"vendorID"`
	VendorName    string    `json:"vendorName"`
	ContactPerson string    `json:"contactPerson"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	TaxID         string    `json:"taxID"`
	PaymentTerms  string    `json:"paymentTerms"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToVendorResponse converts a domain.Vendor to VendorResponse DTO
func ToVendorResponse(v *domain.Vendor) VendorResponse {
	return VendorResponse{
		VendorID:      v.VendorID,
		VendorName:    v.VendorName,
		ContactPerson: v.ContactPerson,
		Email:         v.Email,
		Phone:         v.Phone,
		Address:       v.Address,
		TaxID:         v.TaxID,
		PaymentTerms:  v.PaymentTerms,
		IsActive:      v.IsActive,
		CreatedAt:     v.CreatedAt,
		CreatedBy:     v.CreatedBy,
		LastUpdatedAt: v.LastUpdatedAt,
		LastUpdatedBy: v.LastUpdatedBy,
	}
}

// ToListVendorResponse converts a slice of domain.Vendor to a slice of VendorResponse DTOs
func ToListVendorResponse(vendors []domain.Vendor) []VendorResponse {
	res := make([]VendorResponse, len(vendors))
	for i, v := range vendors {
		res[i] = ToVendorResponse(&v)
	}
	return res
}

// ListVendorsParams defines query parameters for listing vendors.
type ListVendorsParams struct {
	Limit           int  `form:"limit,default=100"`
	Offset          int  `form:"offset,default=0"`
	IncludeInactive bool `form:"includeInactive,default=false"`
}

// Vendor1099Params defines query parameters for a vendor's 1099 summary.
type Vendor1099Params struct {
	Year int `form:"year" binding:"required,min=1900,max=2200"`
}
