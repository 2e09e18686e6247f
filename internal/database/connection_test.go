package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/javajoker/auctionhub-backend/internal/config"
	"github.com/javajoker/auctionhub-backend/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Initialize(config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })
	require.NoError(t, RunMigrations(db))
	return db
}

func TestRunMigrationsCreatesTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"users", "categories", "listings", "bids", "comments", "watchlist_entries"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestSeedInitialDataIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	cfg := &config.Config{Admin: config.AdminConfig{Username: "root", Password: "Adm1n!pass"}}

	require.NoError(t, SeedInitialData(db, cfg))
	require.NoError(t, SeedInitialData(db, cfg))

	var categories int64
	db.Model(&models.Category{}).Count(&categories)
	assert.Equal(t, int64(7), categories)

	var admin models.User
	require.NoError(t, db.Where("username = ?", "root").First(&admin).Error)
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, "root@auctionhub.local", admin.Email)
	assert.NoError(t, admin.CheckPassword("Adm1n!pass"))

	var admins int64
	db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&admins)
	assert.Equal(t, int64(1), admins)
}

func TestWithTransactionRollsBack(t *testing.T) {
	db := openTestDB(t)
	boom := errors.New("boom")

	err := WithTransaction(db, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Category{Name: "Temporary"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	db.Model(&models.Category{}).Where("name = ?", "Temporary").Count(&count)
	assert.Zero(t, count)

	require.NoError(t, WithTransaction(db, func(tx *gorm.DB) error {
		return tx.Create(&models.Category{Name: "Kept"}).Error
	}))
	db.Model(&models.Category{}).Where("name = ?", "Kept").Count(&count)
	assert.Equal(t, int64(1), count)
}
