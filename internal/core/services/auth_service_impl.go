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
	"github.com/PropLedger/prop_ledger_app/internal/utils"
)

// authServiceImpl implements the AuthSvcFacade interface
type authServiceImpl struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	jwtSecret   string
	tokenExpiry time.Duration
	tokenIssuer string
}

// NewAuthServiceImpl creates a new auth service
func NewAuthServiceImpl(repo portsrepo.UserRepositoryFacade, jwtSecret string, tokenExpiry time.Duration, issuer string) portssvc.AuthSvcFacade {
	return &authServiceImpl{
		userRepo:    repo,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
		tokenIssuer: issuer,
	}
}

// Ensure authServiceImpl implements the AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*authServiceImpl)(nil)

func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	if existing, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("email %s already registered: %w", req.Email, apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing user", slog.String("email", req.Email))
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, err
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		OrgID:        req.OrgID,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		IsActive:     true,
		Lifecycle:    domain.ActiveLifecycle(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "system",
			LastUpdatedAt: now,
			LastUpdatedBy: "system",
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("email %s already registered: %w", req.Email, err)
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("email", req.Email))
		return nil, err
	}

	s.LogInfo(ctx, "User registered successfully",
		slog.String("user_id", user.UserID),
		slog.String("org_id", user.OrgID))
	return &user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a bad password so probing can't tell them apart.
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrForbidden)
		}
		s.LogError(ctx, err, "Failed to find user for login", slog.String("email", req.Email))
		return nil, err
	}

	if !user.IsActive || user.Lifecycle.Deleted() {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrForbidden)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(user.UserID, user.OrgID, s.jwtSecret, s.tokenExpiry, s.tokenIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate JWT", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "User logged in",
		slog.String("user_id", user.UserID),
		slog.String("org_id", user.OrgID))
	return &dto.LoginResponse{
		Token:  token,
		UserID: user.UserID,
		OrgID:  user.OrgID,
	}, nil
}
