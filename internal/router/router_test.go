package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/javajoker/auctionhub-backend/internal/config"
	"github.com/javajoker/auctionhub-backend/internal/database"
	"github.com/javajoker/auctionhub-backend/internal/i18n"
	"github.com/javajoker/auctionhub-backend/internal/middleware"
)

type envelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type RouterTestSuite struct {
	suite.Suite
	db       *gorm.DB
	limiters *middleware.RateLimiters
	router   *gin.Engine
}

func (s *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(i18n.Initialize("en"))
}

func (s *RouterTestSuite) SetupTest() {
	cfg := &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{Port: "0", UploadDir: s.T().TempDir(), PublicURL: "http://localhost:8080"},
		Database:    config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:", LogLevel: "silent"},
		JWT:         config.JWTConfig{SecretKey: "test-secret", Issuer: "auctionhub-test", AccessTokenTTL: 1, RefreshTokenTTL: 24},
		I18n:        config.I18nConfig{DefaultLocale: "en"},
		Admin: config.AdminConfig{
			SiteHeader: "AuctionHub Administration",
			Username:   "admin",
			Password:   "AdminPass1!",
		},
		RateLimit: config.RateLimitConfig{
			GeneralPerSecond: 1000, GeneralBurst: 1000,
			AuthPerMinute: 6000, AuthBurst: 1000,
			UploadPerMinute: 6000, UploadBurst: 1000,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	db, err := database.Initialize(cfg.Database)
	s.Require().NoError(err)
	s.Require().NoError(database.RunMigrations(db))
	s.Require().NoError(database.SeedInitialData(db, cfg))
	s.db = db

	s.limiters = middleware.NewRateLimiters(cfg.RateLimit)
	s.router, err = Initialize(db, cfg, s.limiters)
	s.Require().NoError(err)
}

func (s *RouterTestSuite) TearDownTest() {
	s.limiters.Stop()
	database.Close(s.db)
}

func (s *RouterTestSuite) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp envelope
	if w.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func (s *RouterTestSuite) register(username string) string {
	w, resp := s.do(http.MethodPost, "/v1/auth/register", "", map[string]string{
		"username":     username,
		"email":        username + "@example.com",
		"password":     "Secret123!",
		"confirmation": "Secret123!",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	token, _ := resp.Data["token"].(string)
	s.Require().NotEmpty(token)
	return token
}

func (s *RouterTestSuite) login(username, password string) string {
	w, resp := s.do(http.MethodPost, "/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	return resp.Data["token"].(string)
}

func (s *RouterTestSuite) createListing(token, price string) string {
	w, resp := s.do(http.MethodPost, "/v1/listings", token, map[string]string{
		"title":          "Vintage camera",
		"description":    "Works, minor scratches",
		"starting_price": price,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	listing := resp.Data["listing"].(map[string]interface{})
	return listing["id"].(string)
}

func (s *RouterTestSuite) TestHealth() {
	w, _ := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterTestSuite) TestRegisterAndLogin() {
	s.register("alice")

	token := s.login("alice", "Secret123!")
	w, resp := s.do(http.MethodGet, "/v1/auth/me", token, nil)
	s.Equal(http.StatusOK, w.Code)
	user := resp.Data["user"].(map[string]interface{})
	s.Equal("alice", user["username"])

	w, resp = s.do(http.MethodPost, "/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("INVALID_CREDENTIALS", resp.Error.Code)
}

func (s *RouterTestSuite) TestRegisterRejectsDuplicateAndMismatch() {
	s.register("alice")

	w, resp := s.do(http.MethodPost, "/v1/auth/register", "", map[string]string{
		"username":     "alice",
		"email":        "other@example.com",
		"password":     "Secret123!",
		"confirmation": "Secret123!",
	})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("USER_EXISTS", resp.Error.Code)

	w, resp = s.do(http.MethodPost, "/v1/auth/register", "", map[string]string{
		"username":     "bob",
		"email":        "bob@example.com",
		"password":     "Secret123!",
		"confirmation": "Secret124!",
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("PASSWORD_MISMATCH", resp.Error.Code)
}

func (s *RouterTestSuite) TestCreateListingRequiresAuth() {
	w, resp := s.do(http.MethodPost, "/v1/listings", "", map[string]string{
		"title":          "Lamp",
		"description":    "Brass",
		"starting_price": "10.00",
	})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("UNAUTHORIZED", resp.Error.Code)
}

func (s *RouterTestSuite) TestAuctionFlow() {
	alice := s.register("alice")
	bob := s.register("bob")
	listingID := s.createListing(alice, "10.00")

	w, resp := s.do(http.MethodPost, "/v1/listings/"+listingID+"/bids", bob, map[string]string{"amount": "10.00"})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("BID_TOO_LOW", resp.Error.Code)

	w, resp = s.do(http.MethodPost, "/v1/listings/"+listingID+"/bids", bob, map[string]string{"amount": "15"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal("15.00", resp.Data["current_price"])

	w, resp = s.do(http.MethodGet, "/v1/listings/"+listingID+"/winner", "", nil)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("LISTING_STILL_ACTIVE", resp.Error.Code)

	w, resp = s.do(http.MethodPost, "/v1/listings/"+listingID+"/close", bob, nil)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("NOT_AUTHORIZED", resp.Error.Code)

	w, _ = s.do(http.MethodPost, "/v1/listings/"+listingID+"/close", alice, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w, resp = s.do(http.MethodPost, "/v1/listings/"+listingID+"/bids", bob, map[string]string{"amount": "20.00"})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("LISTING_INACTIVE", resp.Error.Code)

	w, resp = s.do(http.MethodGet, "/v1/listings/"+listingID+"/winner", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	winner := resp.Data["winner"].(map[string]interface{})
	s.Equal("bob", winner["username"])
	s.Equal("15.00", resp.Data["amount"])

	w, resp = s.do(http.MethodGet, "/v1/listings/"+listingID, bob, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("closed", resp.Data["status"])
	s.Equal(true, resp.Data["is_winner"])
}

func (s *RouterTestSuite) TestPlaceBidOnMissingListing() {
	bob := s.register("bob")
	w, resp := s.do(http.MethodPost, "/v1/listings/00000000-0000-0000-0000-000000000001/bids", bob, map[string]string{"amount": "5.00"})
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("LISTING_NOT_FOUND", resp.Error.Code)
}

func (s *RouterTestSuite) TestCommentsAndWatchlist() {
	alice := s.register("alice")
	bob := s.register("bob")
	listingID := s.createListing(alice, "10.00")

	w, resp := s.do(http.MethodPost, "/v1/listings/"+listingID+"/comments", bob, map[string]string{"content": "   "})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("EMPTY_COMMENT", resp.Error.Code)

	w, _ = s.do(http.MethodPost, "/v1/listings/"+listingID+"/comments", bob, map[string]string{"content": "Does it ship?"})
	s.Equal(http.StatusCreated, w.Code, w.Body.String())

	w, resp = s.do(http.MethodPost, "/v1/listings/"+listingID+"/watch", bob, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(true, resp.Data["watching"])

	w, resp = s.do(http.MethodGet, "/v1/watchlist", bob, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(resp.Data["listings"], 1)

	w, resp = s.do(http.MethodPost, "/v1/listings/"+listingID+"/watch", bob, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(false, resp.Data["watching"])
}

func (s *RouterTestSuite) TestCategories() {
	w, resp := s.do(http.MethodGet, "/v1/categories", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotEmpty(resp.Data["categories"])
}

func (s *RouterTestSuite) TestAdminRoutes() {
	alice := s.register("alice")
	w, resp := s.do(http.MethodGet, "/v1/admin/dashboard", alice, nil)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("FORBIDDEN", resp.Error.Code)

	admin := s.login("admin", "AdminPass1!")
	w, _ = s.do(http.MethodGet, "/v1/admin/dashboard", admin, nil)
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	w, resp = s.do(http.MethodGet, "/v1/admin/site", admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("AuctionHub Administration", resp.Data["site_header"])

	w, resp = s.do(http.MethodPost, "/v1/admin/categories", admin, map[string]string{"name": "fashion"})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("CATEGORY_EXISTS", resp.Error.Code)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func TestInitializeRegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := database.Initialize(config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	defer database.Close(db)

	cfg := &config.Config{
		Server: config.ServerConfig{UploadDir: t.TempDir()},
		JWT:    config.JWTConfig{SecretKey: "s", Issuer: "i", AccessTokenTTL: 1, RefreshTokenTTL: 1},
		I18n:   config.I18nConfig{DefaultLocale: "en"},
		RateLimit: config.RateLimitConfig{
			GeneralPerSecond: 1, GeneralBurst: 1, AuthPerMinute: 1, AuthBurst: 1, UploadPerMinute: 1, UploadBurst: 1,
		},
	}
	limiters := middleware.NewRateLimiters(cfg.RateLimit)
	defer limiters.Stop()

	r, err := Initialize(db, cfg, limiters)
	require.NoError(t, err)

	routes := make(map[string]bool)
	for _, route := range r.Routes() {
		routes[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"POST /v1/auth/register",
		"POST /v1/listings/:id/bids",
		"POST /v1/listings/:id/close",
		"GET /v1/listings/:id/winner",
		"POST /v1/listings/:id/watch",
		"GET /v1/watchlist",
		"GET /v1/categories/:id/listings",
		"GET /v1/admin/dashboard",
		"GET /v1/me/bids",
	} {
		require.True(t, routes[want], want)
	}
}
