// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javajoker/auctionhub-backend/internal/config"
	"github.com/javajoker/auctionhub-backend/internal/handlers"
	"github.com/javajoker/auctionhub-backend/internal/middleware"
	"github.com/javajoker/auctionhub-backend/internal/services"
	"github.com/javajoker/auctionhub-backend/internal/utils"
)

const version = "1.0.0"

// Initialize wires services and handlers and registers every route. The
// caller owns limiters and stops them on shutdown.
func Initialize(db *gorm.DB, cfg *config.Config, limiters *middleware.RateLimiters) (*gin.Engine, error) {
	tokens := utils.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	notificationService := services.NewNotificationService(cfg)
	authService := services.NewAuthService(db, tokens, notificationService)
	listingService := services.NewListingService(db, notificationService)
	categoryService := services.NewCategoryService(db)
	userService := services.NewUserService(db)
	paymentService := services.NewPaymentService(listingService, cfg)
	adminService := services.NewAdminService(db, categoryService, cfg.Admin)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	listingHandler := handlers.NewListingHandler(listingService, storageService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, listingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	adminHandler := handlers.NewAdminHandler(adminService, categoryService)

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(limiters.General.Middleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": version,
		})
	})

	if cfg.AWS.AccessKeyID == "" {
		r.Static("/uploads", cfg.Server.UploadDir)
	}

	authRequired := middleware.AuthRequired(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", limiters.Auth.Middleware(), authHandler.Register)
			auth.POST("/login", limiters.Auth.Middleware(), authHandler.Login)
			auth.POST("/refresh", limiters.Auth.Middleware(), authHandler.RefreshToken)
			auth.GET("/me", authRequired, authHandler.GetProfile)
		}

		// Listing routes
		listings := v1.Group("/listings")
		{
			listings.GET("", optionalAuth, listingHandler.GetActiveListings)
			listings.GET("/:id", optionalAuth, listingHandler.GetListing)
			listings.GET("/:id/bids", listingHandler.GetBids)
			listings.GET("/:id/winner", listingHandler.GetWinner)

			// Authenticated routes
			protected := listings.Group("")
			protected.Use(authRequired)
			{
				protected.POST("", listingHandler.CreateListing)
				protected.POST("/upload-image", limiters.Upload.Middleware(), listingHandler.UploadImage)
				protected.POST("/:id/bids", listingHandler.PlaceBid)
				protected.POST("/:id/close", listingHandler.CloseListing)
				protected.POST("/:id/comments", listingHandler.AddComment)
				protected.POST("/:id/watch", listingHandler.ToggleWatchlist)
				protected.POST("/:id/checkout", paymentHandler.CreateCheckout)
			}
		}

		v1.GET("/watchlist", authRequired, listingHandler.GetWatchlist)

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.GET("/:id/listings", categoryHandler.GetCategoryListings)
		}

		// User routes
		v1.GET("/users/:id", userHandler.GetPublicProfile)
		me := v1.Group("/me")
		me.Use(authRequired)
		{
			me.GET("/listings", userHandler.GetMyListings)
			me.GET("/bids", userHandler.GetMyBids)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(authRequired, middleware.AdminRequired())
		{
			admin.GET("/site", adminHandler.GetSiteInfo)
			admin.GET("/dashboard", adminHandler.GetDashboardStats)
			admin.GET("/categories", adminHandler.GetCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.GET("/listings", adminHandler.GetListings)
			admin.GET("/bids", adminHandler.GetBids)
			admin.GET("/comments", adminHandler.GetComments)
			admin.GET("/watchlist", adminHandler.GetWatchlist)
		}
	}

	return r, nil
}
