package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/PropLedger/prop_ledger_app/internal/apperrors"
	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	portsrepo "github.com/PropLedger/prop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/PropLedger/prop_ledger_app/internal/core/ports/services"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
)

// bankAccountServiceImpl implements the BankAccountSvcFacade interface
type bankAccountServiceImpl struct {
	BaseService
	bankAccountRepo portsrepo.BankAccountRepositoryFacade
	accountRepo     portsrepo.AccountReader
}

// NewBankAccountServiceImpl creates a new bank account service
func NewBankAccountServiceImpl(repo portsrepo.BankAccountRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.BankAccountSvcFacade {
	return &bankAccountServiceImpl{
		bankAccountRepo: repo,
		accountRepo:     accountRepo,
	}
}

// Ensure bankAccountServiceImpl implements the BankAccountSvcFacade interface
var _ portssvc.BankAccountSvcFacade = (*bankAccountServiceImpl)(nil)

func (s *bankAccountServiceImpl) CreateBankAccount(ctx context.Context, orgID string, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	// The wrapped ledger account must exist in the org.
	if _, err := s.accountRepo.FindAccountByID(ctx, orgID, req.AccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("ledger account %s not found: %w", req.AccountID, err)
		}
		s.LogError(ctx, err, "Failed to find ledger account for bank account",
			slog.String("account_id", req.AccountID))
		return nil, err
	}

	now := time.Now()
	account := domain.BankAccount{
		BankAccountID:  uuid.NewString(),
		OrgID:          orgID,
		AccountID:      req.AccountID,
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		RoutingNumber:  req.RoutingNumber,
		AccountType:    req.AccountType,
		CurrentBalance: req.CurrentBalance,
		IsActive:       true,
		Lifecycle:      domain.ActiveLifecycle(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.bankAccountRepo.SaveBankAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save bank account",
			slog.String("bank_account_id", account.BankAccountID),
			slog.String("org_id", orgID))
		return nil, err
	}

	s.LogInfo(ctx, "Bank account created successfully",
		slog.String("bank_account_id", account.BankAccountID),
		slog.String("org_id", orgID))
	return &account, nil
}

func (s *bankAccountServiceImpl) GetBankAccountByID(ctx context.Context, orgID string, bankAccountID string, userID string) (*domain.BankAccount, error) {
	account, err := s.bankAccountRepo.FindBankAccountByID(ctx, orgID, bankAccountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find bank account by ID",
				slog.String("bank_account_id", bankAccountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *bankAccountServiceImpl) ListBankAccounts(ctx context.Context, orgID string, includeInactive bool) ([]domain.BankAccount, error) {
	accounts, err := s.bankAccountRepo.ListBankAccounts(ctx, orgID, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank accounts",
			slog.String("org_id", orgID))
		return nil, fmt.Errorf("failed to list bank accounts for org %s: %w", orgID, err)
	}
	if accounts == nil {
		return []domain.BankAccount{}, nil
	}
	return accounts, nil
}

func (s *bankAccountServiceImpl) UpdateBankAccount(ctx context.Context, orgID string, bankAccountID string, req dto.UpdateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	account, err := s.GetBankAccountByID(ctx, orgID, bankAccountID, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.BankName != nil {
		account.BankName = *req.BankName
		updated = true
	}
	if req.AccountNumber != nil {
		account.AccountNumber = *req.AccountNumber
		updated = true
	}
	if req.RoutingNumber != nil {
		account.RoutingNumber = *req.RoutingNumber
		updated = true
	}
	if req.AccountType != nil {
		account.AccountType = *req.AccountType
		updated = true
	}
	if req.CurrentBalance != nil {
		account.CurrentBalance = *req.CurrentBalance
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for bank account update",
			slog.String("bank_account_id", bankAccountID))
		return account, nil
	}

	now := time.Now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.bankAccountRepo.UpdateBankAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update bank account",
			slog.String("bank_account_id", bankAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Bank account updated successfully",
		slog.String("bank_account_id", bankAccountID),
		slog.String("org_id", orgID))
	return account, nil
}

func (s *bankAccountServiceImpl) DeleteBankAccount(ctx context.Context, orgID string, bankAccountID string, userID string) error {
	_, err := s.GetBankAccountByID(ctx, orgID, bankAccountID, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.bankAccountRepo.DeleteBankAccount(ctx, orgID, bankAccountID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to delete bank account",
			slog.String("bank_account_id", bankAccountID))
		return err
	}

	s.LogInfo(ctx, "Bank account deleted successfully",
		slog.String("bank_account_id", bankAccountID),
		slog.String("org_id", orgID))
	return nil
}
