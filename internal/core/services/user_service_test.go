package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks-hq/openbooks_backend/internal/apperrors"
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	portsrepo "github.com/openbooks-hq/openbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks-hq/openbooks_backend/internal/core/ports/services"
	"github.com/openbooks-hq/openbooks_backend/internal/core/services"
	"github.com/openbooks-hq/openbooks_backend/internal/dto"
	"github.com/openbooks-hq/openbooks_backend/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

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

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite Setup ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	auth         services.AuthConfig
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.auth = services.AuthConfig{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "openbooks-test",
	}
	suite.service = services.NewUserService(suite.mockUserRepo, suite.auth)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{Username: "alice", Password: "correct horse battery", Name: "Alice"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(nil, fmt.Errorf("%w: user", apperrors.ErrNotFound)).Once()

	var savedUser domain.User
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			savedUser = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal("alice", user.Username)

	// The stored hash verifies against the plaintext and is not the plaintext.
	suite.NotEqual(req.Password, savedUser.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, savedUser.PasswordHash))

	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateUsername() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{Username: "alice", Password: "correct horse battery"}

	existing := &domain.User{UserID: uuid.NewString(), Username: "alice"}
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(existing, nil).Once()

	_, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	password := "correct horse battery"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	user := &domain.User{UserID: uuid.NewString(), Username: "alice", PasswordHash: hash}
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: password})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.Token)

	// The token parses back to the same user under the same secret.
	claims, err := utils.ParseAndValidateJWT(resp.Token, suite.auth.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(user.UserID, claims.Subject)
}

func (suite *UserServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("the real password")
	suite.Require().NoError(err)

	user := &domain.User{UserID: uuid.NewString(), Username: "alice", PasswordHash: hash}
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()

	_, err = suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: "a guess"})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestLogin_UnknownUserIndistinguishable() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "nobody").Return(nil, fmt.Errorf("%w: user", apperrors.ErrNotFound)).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "whatever"})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
