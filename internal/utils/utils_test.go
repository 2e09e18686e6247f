package utils

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManagerAccessToken(t *testing.T) {
	m := NewTokenManager("test-secret", "auctionhub-test", 1, 24)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "alice", "member")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, "auctionhub-test", claims.Issuer)
}

func TestTokenManagerRejectsForeignSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", "auctionhub", 1, 1)
	verifier := NewTokenManager("secret-b", "auctionhub", 1, 1)

	token, err := issuer.GenerateAccessToken(uuid.New(), "bob", "member")
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestTokenManagerRefreshTokensAreNotAccessTokens(t *testing.T) {
	m := NewTokenManager("test-secret", "auctionhub", 1, 24)
	userID := uuid.New()

	refresh, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)

	subject, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), subject)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)

	access, err := m.GenerateAccessToken(userID, "carol", "member")
	require.NoError(t, err)
	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=0&limit=500&order=sideways&search=lamp", nil)

	params := GetPaginationParams(c)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "desc", params.Order)
	assert.Equal(t, "created_at", params.Sort)
	assert.Equal(t, "lamp", params.Search)
}

func TestCreatePaginationResult(t *testing.T) {
	result := CreatePaginationResult([]int{1, 2}, 41, PaginationParams{Page: 2, Limit: 20})
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, int64(41), result.Total)

	empty := CreatePaginationResult(nil, 0, PaginationParams{})
	assert.Equal(t, 0, empty.TotalPages)
}

type registerForm struct {
	Username string `validate:"required,username"`
	Password string `validate:"required,strong_password"`
}

func TestValidateStructCustomRules(t *testing.T) {
	assert.NoError(t, ValidateStruct(&registerForm{Username: "alice_01", Password: "Str0ng!pass"}))

	err := ValidateStruct(&registerForm{Username: "a!", Password: "weak"})
	require.Error(t, err)

	fields := map[string]string{}
	for _, v := range GetValidationErrors(err) {
		fields[v.Field] = v.Tag
	}
	assert.Equal(t, "username", fields["username"])
	assert.Equal(t, "strong_password", fields["password"])
}

func TestConfigureLoggerWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auctionhub.log")

	closer := ConfigureLogger(LoggerOptions{Level: "debug", Production: true, File: path, MaxSizeMB: 1})
	require.NotNil(t, closer)
	defer func() {
		closer.Close()
		ConfigureLogger(LoggerOptions{Level: "info"})
	}()

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	_, isJSON := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
}

func TestConfigureLoggerDefaults(t *testing.T) {
	closer := ConfigureLogger(LoggerOptions{Level: "nonsense"})
	assert.Nil(t, closer)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
