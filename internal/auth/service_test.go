package auth_test

import (
	"testing"
	"time"

	"taskforge-backend/internal/auth"
	apperrors "taskforge-backend/internal/errors"
	"taskforge-backend/internal/repository"
	"taskforge-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/suite"
)

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	authService   *auth.AuthService
	userRepo      *repository.UserRepository
}

// SetupSuite runs before all tests in the suite
func (suite *AuthServiceTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.userRepo = repository.NewUserRepository(suite.baseTestSuite.DB)
	suite.authService = auth.NewAuthService(suite.userRepo, validator.New(), "test-secret", time.Hour)
}

// TearDownSuite runs after all tests in the suite
func (suite *AuthServiceTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *AuthServiceTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestRegister tests creating an account and receiving a usable token
func (suite *AuthServiceTestSuite) TestRegister() {
	resp, err := suite.authService.Register(&auth.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})

	suite.NoError(err)
	suite.NotEmpty(resp.Token)
	suite.Equal("Alice", resp.User.Name)
	suite.Equal("alice@example.com", resp.User.Email)

	// The issued token must validate and carry the account identity
	claims, err := suite.authService.ValidateJWT(resp.Token)
	suite.NoError(err)
	suite.Equal(resp.User.ID.String(), claims.UserID)
	suite.Equal("alice@example.com", claims.Email)

	// The stored hash is never the raw password
	user, err := suite.userRepo.GetByEmail("alice@example.com")
	suite.NoError(err)
	suite.NotEqual("password123", user.PasswordHash)
}

// TestRegisterDuplicateEmail tests that a second registration with the same
// email conflicts
func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	_, err := suite.authService.Register(&auth.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	suite.NoError(err)

	_, err = suite.authService.Register(&auth.RegisterRequest{
		Name:     "Impostor",
		Email:    "alice@example.com",
		Password: "different-pass",
	})

	suite.ErrorIs(err, apperrors.ErrUserExists)
	suite.True(apperrors.IsAlreadyExists(err))
}

// TestRegisterShortPassword tests password length validation
func (suite *AuthServiceTestSuite) TestRegisterShortPassword() {
	_, err := suite.authService.Register(&auth.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "short",
	})

	suite.Error(err)
	suite.True(apperrors.IsValidation(err))
}

// TestLogin tests the credential round trip
func (suite *AuthServiceTestSuite) TestLogin() {
	_, err := suite.authService.Register(&auth.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	suite.NoError(err)

	resp, err := suite.authService.Login(&auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})

	suite.NoError(err)
	suite.NotEmpty(resp.Token)
	suite.Equal("Alice", resp.User.Name)
}

// TestLoginWrongPassword tests that a wrong password reads the same as an
// unknown email
func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	_, err := suite.authService.Register(&auth.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	suite.NoError(err)

	_, err = suite.authService.Login(&auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)

	_, err = suite.authService.Login(&auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

// TestValidateJWTRejectsTampering tests signature enforcement
func (suite *AuthServiceTestSuite) TestValidateJWTRejectsTampering() {
	resp, err := suite.authService.Register(&auth.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	suite.NoError(err)

	// A token signed with a different secret must not validate
	other := auth.NewAuthService(suite.userRepo, validator.New(), "other-secret", time.Hour)
	_, err = other.ValidateJWT(resp.Token)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)

	_, err = suite.authService.ValidateJWT("not.a.token")
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
}

// TestValidateJWTRejectsExpired tests expiry enforcement
func (suite *AuthServiceTestSuite) TestValidateJWTRejectsExpired() {
	shortLived := auth.NewAuthService(suite.userRepo, validator.New(), "test-secret", -time.Minute)

	resp, err := shortLived.Register(&auth.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	suite.NoError(err)

	_, err = suite.authService.ValidateJWT(resp.Token)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
}

// Run the test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
