package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/javajoker/auctionhub-backend/internal/config"
	"github.com/javajoker/auctionhub-backend/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestAuthRequired(t *testing.T) {
	tokens := utils.NewTokenManager("secret", "test", 1, 24)
	userID := uuid.New()

	r := gin.New()
	r.GET("/me", AuthRequired(tokens), func(c *gin.Context) {
		id, _ := utils.GetUserIDFromContext(c)
		role, _ := utils.GetUserRoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})

	w := perform(r, "GET", "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))

	w = perform(r, "GET", "/me", map[string]string{"Authorization": "Token abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, "GET", "/me", map[string]string{"Authorization": "Bearer not-a-jwt"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	refresh, err := tokens.GenerateRefreshToken(userID)
	require.NoError(t, err)
	w = perform(r, "GET", "/me", map[string]string{"Authorization": "Bearer " + refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "refresh tokens are not access tokens")

	access, err := tokens.GenerateAccessToken(userID, "alice", "member")
	require.NoError(t, err)
	w = perform(r, "GET", "/me", map[string]string{"Authorization": "Bearer " + access})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"`+userID.String()+`","role":"member"}`, w.Body.String())
}

func TestAdminRequired(t *testing.T) {
	tokens := utils.NewTokenManager("secret", "test", 1, 24)

	r := gin.New()
	r.GET("/admin", AuthRequired(tokens), AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	member, _ := tokens.GenerateAccessToken(uuid.New(), "alice", "member")
	w := perform(r, "GET", "/admin", map[string]string{"Authorization": "Bearer " + member})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w))

	admin, _ := tokens.GenerateAccessToken(uuid.New(), "root", "admin")
	w = perform(r, "GET", "/admin", map[string]string{"Authorization": "Bearer " + admin})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	tokens := utils.NewTokenManager("secret", "test", 1, 24)

	r := gin.New()
	r.GET("/listing", OptionalAuth(tokens), func(c *gin.Context) {
		id, ok := utils.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "authenticated": ok})
	})

	w := perform(r, "GET", "/listing", nil)
	assert.JSONEq(t, `{"id":"","authenticated":false}`, w.Body.String())

	w = perform(r, "GET", "/listing", map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"","authenticated":false}`, w.Body.String())

	userID := uuid.New()
	access, _ := tokens.GenerateAccessToken(userID, "alice", "member")
	w = perform(r, "GET", "/listing", map[string]string{"Authorization": "Bearer " + access})
	assert.JSONEq(t, `{"id":"`+userID.String()+`","authenticated":true}`, w.Body.String())
}

func TestNegotiateLanguage(t *testing.T) {
	assert.Equal(t, "zh_TW", negotiateLanguage("zh-TW,zh;q=0.9,en;q=0.8", "en"))
	assert.Equal(t, "en", negotiateLanguage("en-US,en;q=0.9", "zh_TW"))
	assert.Equal(t, "en", negotiateLanguage("fr-FR,en;q=0.5", "zh_TW"))
	assert.Equal(t, "zh_TW", negotiateLanguage("", "zh_TW"))
	assert.Equal(t, "en", negotiateLanguage("de", "en"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 2)
	defer rl.Stop()

	r := gin.New()
	r.GET("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, "GET", "/", nil).Code)
	assert.Equal(t, http.StatusOK, perform(r, "GET", "/", nil).Code)
	w := perform(r, "GET", "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMITED", errorCode(t, w))
}

func TestRateLimiterEvictsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Second), 1)
	rl.Stop()
	rl.Stop()

	rl.getVisitor("10.0.0.1")
	rl.evictIdle(time.Now())
	assert.Len(t, rl.visitors, 1)

	rl.evictIdle(time.Now().Add(visitorTTL + time.Second))
	assert.Empty(t, rl.visitors)
}

func TestNewRateLimitersFromConfig(t *testing.T) {
	limiters := NewRateLimiters(config.RateLimitConfig{
		GeneralPerSecond: 10, GeneralBurst: 20,
		AuthPerMinute: 6, AuthBurst: 5,
		UploadPerMinute: 12, UploadBurst: 10,
	})
	defer limiters.Stop()

	assert.Equal(t, rate.Limit(10), limiters.General.rate)
	assert.Equal(t, rate.Limit(0.1), limiters.Auth.rate)
	assert.Equal(t, 10, limiters.Upload.burst)
}

func TestRequestIDAndCORS(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(), CORS(config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, "GET", "/ping", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = perform(r, "GET", "/ping", map[string]string{requestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))

	w = perform(r, "GET", "/ping", map[string]string{"Origin": "http://evil.test"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := perform(r, "GET", "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, w))
}
