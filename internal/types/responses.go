package types

import (
	"time"

	"github.com/google/uuid"
)

// CreatorSummary is the creator block attached to recipe payloads.
type CreatorSummary struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ProfileImageURL string    `json:"profileImageUrl"`
	FollowersCount  int64     `json:"followersCount"`
}

// RecipeSummary is the wire shape of a recipe in list and discovery
// responses.
type RecipeSummary struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	ImageURL     string         `json:"imageUrl"`
	CookTime     string         `json:"cookTime"`
	Servings     string         `json:"servings"`
	Difficulty   string         `json:"difficulty"`
	Ingredients  string         `json:"ingredients"`
	Instructions string         `json:"instructions"`
	LikesCount   int64          `json:"likesCount"`
	Creator      CreatorSummary `json:"creator"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// SavedRecipeSummary is one entry of a user's bookmark listing, resolved
// against the current catalog state.
type SavedRecipeSummary struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ImageURL    string         `json:"imageUrl"`
	CookTime    string         `json:"cookTime"`
	Servings    string         `json:"servings"`
	Difficulty  string         `json:"difficulty"`
	Creator     CreatorSummary `json:"creator"`
	SavedAt     time.Time      `json:"savedAt"`
}

// UserRef is a compact user reference for follower/following lists.
type UserRef struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}
