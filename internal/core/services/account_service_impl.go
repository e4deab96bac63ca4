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

// accountServiceImpl implements the AccountSvcFacade interface
type accountServiceImpl struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountServiceImpl creates a new account service
func NewAccountServiceImpl(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountServiceImpl{
		accountRepo: repo,
	}
}

// Ensure accountServiceImpl implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountServiceImpl)(nil)

func (s *accountServiceImpl) CreateAccount(ctx context.Context, orgID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	now := time.Now()
	newAccountID := uuid.NewString()

	parentID := ""
	if req.ParentAccountID != nil {
		parentID = *req.ParentAccountID
		// Validate parent account exists in the same org
		if _, err := s.accountRepo.FindAccountByID(ctx, orgID, parentID); err != nil {
			s.LogError(ctx, err, "Failed to find parent account",
				slog.String("parent_id", parentID))
			return nil, fmt.Errorf("invalid parent account: %w", err)
		}
	}

	account := domain.Account{
		AccountID:       newAccountID,
		OrgID:           orgID,
		AccountNumber:   req.AccountNumber,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		Lifecycle:       domain.ActiveLifecycle(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogDebug(ctx, "Account number already in use",
				slog.String("account_number", req.AccountNumber),
				slog.String("org_id", orgID))
			return nil, fmt.Errorf("account number %s already exists: %w", req.AccountNumber, err)
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("org_id", orgID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("org_id", orgID))
	return &account, nil
}

func (s *accountServiceImpl) GetAccountByID(ctx context.Context, orgID string, accountID string, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, orgID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err // Propagate error (including NotFound)
	}

	s.LogDebug(ctx, "Account retrieved successfully",
		slog.String("account_id", account.AccountID),
		slog.String("org_id", account.OrgID))
	return account, nil
}

func (s *accountServiceImpl) GetAccountsByIDs(ctx context.Context, orgID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, orgID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs",
			slog.String("account_ids", fmt.Sprintf("%v", accountIDs)))
		return nil, err
	}

	return accounts, nil
}

func (s *accountServiceImpl) ListAccounts(ctx context.Context, orgID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	var accountType *domain.AccountType
	if params.AccountType != nil {
		at := domain.AccountType(*params.AccountType)
		accountType = &at
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, orgID, accountType, params.IncludeInactive, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.String("org_id", orgID),
			slog.Int("limit", params.Limit),
			slog.Int("offset", params.Offset))
		return nil, fmt.Errorf("failed to list accounts for org %s: %w", orgID, err)
	}

	if accounts == nil {
		return []domain.Account{}, nil // Return empty slice if repo returns nil
	}

	s.LogDebug(ctx, "Accounts listed successfully",
		slog.Int("count", len(accounts)),
		slog.String("org_id", orgID))
	return accounts, nil
}

func (s *accountServiceImpl) UpdateAccount(ctx context.Context, orgID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	// Fetch the existing account
	account, err := s.GetAccountByID(ctx, orgID, accountID, userID)
	if err != nil {
		return nil, err // GetAccountByID already logs errors
	}

	// Apply updates
	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update",
			slog.String("account_id", accountID))
		return account, nil
	}

	// Update audit fields
	now := time.Now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	err = s.accountRepo.UpdateAccount(ctx, *account)
	if err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", account.AccountID),
		slog.String("org_id", account.OrgID))
	return account, nil
}

func (s *accountServiceImpl) DeleteAccount(ctx context.Context, orgID string, accountID string, userID string) error {
	// First verify that the account exists in the org
	_, err := s.GetAccountByID(ctx, orgID, accountID, userID)
	if err != nil {
		return err // GetAccountByID already logs errors
	}

	now := time.Now()
	err = s.accountRepo.DeleteAccount(ctx, orgID, accountID, userID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete account",
			slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted successfully",
		slog.String("account_id", accountID),
		slog.String("org_id", orgID))
	return nil
}
