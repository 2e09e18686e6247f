package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/javajoker/auctionhub-backend/internal/models"
	"github.com/javajoker/auctionhub-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	tokens  *utils.TokenManager
	service *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.tokens = utils.NewTokenManager("test-secret", "auctionhub-test", 1, 24)
	suite.service = NewAuthService(suite.db, suite.tokens, nil)
}

func (suite *AuthServiceTestSuite) register(username string) *AuthResponse {
	resp, err := suite.service.Register(&RegisterRequest{
		Username:     username,
		Email:        username + "@example.com",
		Password:     "TestPass123!",
		Confirmation: "TestPass123!",
	})
	require.NoError(suite.T(), err)
	return resp
}

func (suite *AuthServiceTestSuite) TestRegister() {
	resp := suite.register("alice")

	assert.Equal(suite.T(), "alice", resp.User.Username)
	assert.Equal(suite.T(), models.UserRoleMember, resp.User.Role)
	assert.Equal(suite.T(), "Bearer", resp.TokenType)
	assert.Equal(suite.T(), 3600, resp.ExpiresIn)

	claims, err := suite.tokens.ValidateAccessToken(resp.AccessToken)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), resp.User.ID.String(), claims.UserID)
	assert.Equal(suite.T(), "member", claims.Role)
}

func (suite *AuthServiceTestSuite) TestRegisterRejectsMismatchedPasswords() {
	_, err := suite.service.Register(&RegisterRequest{
		Username:     "bob",
		Email:        "bob@example.com",
		Password:     "TestPass123!",
		Confirmation: "TestPass124!",
	})
	assert.ErrorIs(suite.T(), err, ErrPasswordMismatch)
}

func (suite *AuthServiceTestSuite) TestRegisterValidation() {
	_, err := suite.service.Register(&RegisterRequest{
		Username:     "bob",
		Email:        "not-an-email",
		Password:     "TestPass123!",
		Confirmation: "TestPass123!",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidInput)

	_, err = suite.service.Register(&RegisterRequest{
		Username:     "bob",
		Email:        "bob@example.com",
		Password:     "weak",
		Confirmation: "weak",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidInput)
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicate() {
	suite.register("alice")

	_, err := suite.service.Register(&RegisterRequest{
		Username:     "alice",
		Email:        "other@example.com",
		Password:     "TestPass123!",
		Confirmation: "TestPass123!",
	})
	assert.ErrorIs(suite.T(), err, ErrUserExists)

	_, err = suite.service.Register(&RegisterRequest{
		Username:     "alice2",
		Email:        "ALICE@example.com",
		Password:     "TestPass123!",
		Confirmation: "TestPass123!",
	})
	assert.ErrorIs(suite.T(), err, ErrUserExists)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	suite.register("alice")

	resp, err := suite.service.Login(&LoginRequest{Username: "alice", Password: "TestPass123!"})
	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), resp.AccessToken)
	assert.NotNil(suite.T(), resp.User.LastLoginAt)

	_, err = suite.service.Login(&LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)

	_, err = suite.service.Login(&LoginRequest{Username: "nobody", Password: "TestPass123!"})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)

	_, err = suite.service.Login(&LoginRequest{})
	assert.ErrorIs(suite.T(), err, ErrInvalidInput)
}

func (suite *AuthServiceTestSuite) TestRefreshToken() {
	registered := suite.register("alice")

	resp, err := suite.service.RefreshToken(registered.RefreshToken)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), registered.User.ID, resp.User.ID)

	_, err = suite.service.RefreshToken(registered.AccessToken)
	assert.ErrorIs(suite.T(), err, ErrInvalidToken)

	_, err = suite.service.RefreshToken("garbage")
	assert.ErrorIs(suite.T(), err, ErrInvalidToken)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
