package database

import (
	"gorm.io/gorm"

	"github.com/foodbook/backend/internal/models"
)

// RunMigrations brings the schema up to date for every table the
// application owns.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.UserFollow{},
		&models.Recipe{},
		&models.Comment{},
		&models.RecipeSwipe{},
		&models.RecipeLike{},
		&models.SavedRecipe{},
	)
}
