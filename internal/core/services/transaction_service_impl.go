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
	"github.com/PropLedger/prop_ledger_app/internal/utils/pagination"
)

// transactionServiceImpl implements the TransactionSvcFacade interface
type transactionServiceImpl struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountReader
}

// NewTransactionServiceImpl creates a new ledger entry service
func NewTransactionServiceImpl(repo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.TransactionSvcFacade {
	return &transactionServiceImpl{
		transactionRepo: repo,
		accountRepo:     accountRepo,
	}
}

// Ensure transactionServiceImpl implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionServiceImpl)(nil)

func (s *transactionServiceImpl) CreateTransaction(ctx context.Context, orgID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		err := apperrors.ErrValidation
		s.LogDebug(ctx, "Transaction amount must be positive",
			slog.String("amount", req.Amount.String()))
		return nil, fmt.Errorf("amount must be positive: %w", err)
	}

	// The target account must exist in the org
	if _, err := s.accountRepo.FindAccountByID(ctx, orgID, req.AccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("account %s not found: %w", req.AccountID, err)
		}
		s.LogError(ctx, err, "Failed to find account for transaction",
			slog.String("account_id", req.AccountID))
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		OrgID:           orgID,
		PropertyID:      req.PropertyID,
		AccountID:       req.AccountID,
		TransactionDate: req.TransactionDate,
		TransactionType: req.TransactionType,
		Amount:          req.Amount,
		ReferenceNumber: req.ReferenceNumber,
		Description:     req.Description,
		Memo:            req.Memo,
		Lifecycle:       domain.ActiveLifecycle(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.TenantID != nil {
		txn.TenantID = *req.TenantID
	}
	if req.VendorID != nil {
		txn.VendorID = *req.VendorID
	}
	if req.InvoiceID != nil {
		txn.InvoiceID = *req.InvoiceID
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("org_id", orgID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.String("org_id", orgID))
	return &txn, nil
}

func (s *transactionServiceImpl) GetTransactionByID(ctx context.Context, orgID string, transactionID string, userID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, orgID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionServiceImpl) ListTransactions(ctx context.Context, orgID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	var afterDate, afterCreatedAt *time.Time
	if params.NextToken != nil && *params.NextToken != "" {
		date, createdAt, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			s.LogDebug(ctx, "Invalid pagination token", slog.String("error", err.Error()))
			return nil, nil, fmt.Errorf("invalid pagination token: %w", apperrors.ErrValidation)
		}
		afterDate = &date
		afterCreatedAt = &createdAt
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	filters := portsrepo.TransactionFilters{
		PropertyID: params.PropertyID,
		AccountID:  params.AccountID,
		FromDate:   params.FromDate,
		ToDate:     params.ToDate,
	}

	// Fetch one extra row to decide whether another page exists.
	txns, err := s.transactionRepo.ListTransactions(ctx, orgID, filters, limit+1, afterDate, afterCreatedAt)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions",
			slog.String("org_id", orgID))
		return nil, nil, fmt.Errorf("failed to list transactions for org %s: %w", orgID, err)
	}

	var nextToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextToken = &token
	}

	s.LogDebug(ctx, "Transactions listed successfully",
		slog.Int("count", len(txns)),
		slog.String("org_id", orgID))
	return txns, nextToken, nil
}

func (s *transactionServiceImpl) UpdateTransaction(ctx context.Context, orgID string, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	txn, err := s.GetTransactionByID(ctx, orgID, transactionID, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.TransactionDate != nil {
		txn.TransactionDate = *req.TransactionDate
		updated = true
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
		}
		txn.Amount = *req.Amount
		updated = true
	}
	if req.ReferenceNumber != nil {
		txn.ReferenceNumber = *req.ReferenceNumber
		updated = true
	}
	if req.Description != nil {
		txn.Description = *req.Description
		updated = true
	}
	if req.Memo != nil {
		txn.Memo = *req.Memo
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for transaction update",
			slog.String("transaction_id", transactionID))
		return txn, nil
	}

	now := time.Now()
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated successfully",
		slog.String("transaction_id", transactionID),
		slog.String("org_id", orgID))
	return txn, nil
}

func (s *transactionServiceImpl) DeleteTransaction(ctx context.Context, orgID string, transactionID string, userID string) error {
	_, err := s.GetTransactionByID(ctx, orgID, transactionID, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.transactionRepo.DeleteTransaction(ctx, orgID, transactionID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction",
			slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted successfully",
		slog.String("transaction_id", transactionID),
		slog.String("org_id", orgID))
	return nil
}
