package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/javajoker/auctionhub-backend/internal/config"
	"github.com/javajoker/auctionhub-backend/internal/database"
	"github.com/javajoker/auctionhub-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Initialize(config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, database.RunMigrations(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     models.UserRoleMember,
	}
	require.NoError(t, user.SetPassword("Secret123!"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTestListing(t *testing.T, svc *ListingService, creatorID uuid.UUID, price string, categoryID *uuid.UUID) *models.Listing {
	t.Helper()
	listing, err := svc.CreateListing(creatorID, &CreateListingRequest{
		Title:         "Vintage camera",
		Description:   "Works, minor scratches",
		StartingPrice: decimal.RequireFromString(price),
		CategoryID:    categoryID,
	})
	require.NoError(t, err)
	return listing
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func money(s string) models.Money {
	return models.NewMoney(dec(s))
}
