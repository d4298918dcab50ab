package models

import (
	"time"

	"github.com/google/uuid"
)

// RecipeSwipe is a user's like/skip decision on a recipe. The composite
// primary key guarantees a single row per (user, recipe) pair; a repeat
// swipe overwrites Liked in place, it never creates history.
type RecipeSwipe struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"recipe_id"`
	Liked     bool      `gorm:"not null" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RecipeSwipe) TableName() string {
	return "recipe_swipes"
}

// RecipeLike is one row of a recipe's materialized like set. The swipe
// ledger is the source of truth; these rows are replaced wholesale on
// every swipe touching the recipe.
type RecipeLike struct {
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (RecipeLike) TableName() string {
	return "recipe_likes"
}
