package domain

// Vendor is a payee an org receives invoices from.
type Vendor struct {
	VendorID      string    `json:"vendorID"` // Primary key (UUID)
	OrgID         string    `json:"orgID"`
	VendorName    string    `json:"vendorName"`
	ContactPerson string    `json:"contactPerson"` // Nullable
	Email         string    `json:"email"`         // Nullable
	Phone         string    `json:"phone"`         // Nullable
	Address       string    `json:"address"`       // Nullable
	TaxID         string    `json:"taxID"`         // Nullable, used for 1099 reporting
	PaymentTerms  string    `json:"paymentTerms"`  // Nullable, e.g. "Net 30"
	IsActive      bool      `json:"isActive"`
	Lifecycle     Lifecycle `json:"lifecycle"`
	AuditFields
}
