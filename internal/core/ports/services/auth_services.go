package services

import (
	"context"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
)

// AuthSvcFacade defines authentication operations
type AuthSvcFacade interface {
	// Register creates a new API user with a hashed password.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// Login verifies credentials and issues an org-scoped JWT.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
