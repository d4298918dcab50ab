package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodbook/backend/internal/database"
	"github.com/foodbook/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// An in-memory sqlite database exists per connection; keep the pool
	// at one so every query sees the same schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) uuid.UUID {
	user := models.User{
		Name:         "Test User",
		Email:        username + "@example.com",
		PasswordHash: "irrelevant",
	}
	require.NoError(t, db.Create(&user).Error)

	profile := models.UserProfile{
		UserID:   user.ID,
		Username: username,
	}
	require.NoError(t, db.Create(&profile).Error)
	return user.ID
}

func createTestRecipe(t *testing.T, db *gorm.DB, creatorID uuid.UUID, title string) uuid.UUID {
	recipe := models.Recipe{
		UserID:       creatorID,
		Title:        title,
		Ingredients:  "flour, water",
		Instructions: "mix and bake",
	}
	require.NoError(t, db.Create(&recipe).Error)
	return recipe.ID
}
