package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/PropLedger/prop_ledger_app/internal/apperrors"
	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	portssvc "github.com/PropLedger/prop_ledger_app/internal/core/ports/services"
	"github.com/PropLedger/prop_ledger_app/internal/core/services"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
	"github.com/PropLedger/prop_ledger_app/internal/utils"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite Setup ---

type AuthServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.AuthSvcFacade
	orgID    string
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewAuthServiceImpl(suite.mockRepo, "test-secret", time.Hour, "propledger-test")
	suite.orgID = uuid.NewString()
}

func (suite *AuthServiceTestSuite) makeUser(email, password string) *domain.User {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.User{
		UserID:       uuid.NewString(),
		OrgID:        suite.orgID,
		Email:        email,
		Name:         "Pat Doe",
		PasswordHash: hash,
		IsActive:     true,
		Lifecycle:    domain.ActiveLifecycle(),
	}
}

// --- Test Cases ---

func (suite *AuthServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		OrgID:    suite.orgID,
		Email:    "new.user@example.com",
		Name:     "Pat Doe",
		Password: "correct-horse-battery",
	}

	suite.mockRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.OrgID == suite.orgID &&
			u.Email == req.Email &&
			u.IsActive &&
			utils.CheckPasswordHash(req.Password, u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.NotEqual(req.Password, user.PasswordHash)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		OrgID:    suite.orgID,
		Email:    "taken@example.com",
		Name:     "Pat Doe",
		Password: "correct-horse-battery",
	}
	existing := suite.makeUser(req.Email, "something-else")

	suite.mockRepo.On("FindUserByEmail", ctx, req.Email).Return(existing, nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser")
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	password := "correct-horse-battery"
	user := suite.makeUser("login@example.com", password)

	suite.mockRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: user.Email, Password: password})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.Token)
	suite.Equal(user.UserID, resp.UserID)
	suite.Equal(suite.orgID, resp.OrgID)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	user := suite.makeUser("login@example.com", "correct-horse-battery")

	suite.mockRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "wrong-password"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"})

	suite.Require().Error(err)
	suite.Nil(resp)
	// Unknown emails fail the same way bad passwords do.
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AuthServiceTestSuite) TestLogin_DeactivatedUser() {
	ctx := context.Background()
	password := "correct-horse-battery"
	user := suite.makeUser("former@example.com", password)
	user.IsActive = false

	suite.mockRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: user.Email, Password: password})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
