package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

// CreateBankAccountRequest defines the data needed to register a bank account.
type CreateBankAccountRequest struct {
	AccountID      string          `json:"accountID" binding:"required"`
	BankName       string          `json:"bankName" binding:"required"`
	AccountNumber  string          `json:"accountNumber" binding:"required"`
	RoutingNumber  string          `json:"routingNumber"`
	AccountType    string          `json:"accountType" binding:"required"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// UpdateBankAccountRequest defines the data allowed for updating a bank account.
type UpdateBankAccountRequest struct {
	BankName       *string          `json:"bankName"`
	AccountNumber  *string          `json:"accountNumber"`
	RoutingNumber  *string          `json:"routingNumber"`
	AccountType    *string          `json:"accountType"`
	CurrentBalance *decimal.Decimal `json:"currentBalance"`
	IsActive       *bool            `json:"isActive"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	BankAccountID  string          `json:"bankAccountID"`
	AccountID      string          `json:"accountID"`
	BankName       string          `json:"bankName"`
	AccountNumber  string          `json:"accountNumber"`
	RoutingNumber  string          `json:"routingNumber"`
	AccountType    string          `json:"accountType"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy  string          `json:"lastUpdatedBy"`
}

// ToBankAccountResponse converts a domain.BankAccount to BankAccountResponse DTO
func ToBankAccountResponse(ba *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID:  ba.BankAccountID,
		AccountID:      ba.AccountID,
		BankName:       ba.BankName,
		AccountNumber:  ba.AccountNumber,
		RoutingNumber:  ba.RoutingNumber,
		AccountType:    ba.AccountType,
		CurrentBalance: ba.CurrentBalance,
		IsActive:       ba.IsActive,
		CreatedAt:      ba.CreatedAt,
		CreatedBy:      ba.CreatedBy,
		LastUpdatedAt:  ba.LastUpdatedAt,
		LastUpdatedBy:  ba.LastUpdatedBy,
	}
}

// ToListBankAccountResponse converts a slice of domain.BankAccount to a slice of BankAccountResponse DTOs
func ToListBankAccountResponse(accounts []domain.BankAccount) []BankAccountResponse {
	res := make([]BankAccountResponse, len(accounts))
	for i, ba := range accounts {
		res[i] = ToBankAccountResponse(&ba)
	}
	return res
}
