package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodbook/backend/internal/models"
	"github.com/foodbook/backend/internal/types"
)

// SaveOutcome reports whether the bookmark already existed.
type SaveOutcome struct {
	AlreadySaved bool
}

// SavedRecipeService owns the per-user bookmark sets.
type SavedRecipeService struct {
	db      *gorm.DB
	profile *ProfileService
}

// NewSavedRecipeService creates a new SavedRecipeService instance
func NewSavedRecipeService(db *gorm.DB, profile *ProfileService) *SavedRecipeService {
	return &SavedRecipeService{db: db, profile: profile}
}

// SaveRecipe bookmarks a recipe for the user. Saving twice is not an
// error: the conflict-tolerant insert makes the uniqueness check and the
// insert one atomic statement, so concurrent double clicks cannot produce
// duplicate rows.
func (s *SavedRecipeService) SaveRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*SaveOutcome, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrRecipeNotFound
	}

	saved := models.SavedRecipe{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
	}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoNothing: true,
	}).Create(&saved)
	if result.Error != nil {
		return nil, result.Error
	}

	return &SaveOutcome{AlreadySaved: result.RowsAffected == 0}, nil
}

// ListSaved returns the user's bookmarks newest first, each resolved
// against the current catalog. Bookmarks whose recipe has since been
// deleted are omitted rather than failing the listing.
func (s *SavedRecipeService) ListSaved(ctx context.Context, userID uuid.UUID) ([]types.SavedRecipeSummary, error) {
	var saved []models.SavedRecipe
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&saved).Error; err != nil {
		return nil, err
	}
	if len(saved) == 0 {
		return []types.SavedRecipeSummary{}, nil
	}

	recipeIDs := make([]uuid.UUID, 0, len(saved))
	for _, sr := range saved {
		recipeIDs = append(recipeIDs, sr.RecipeID)
	}

	// Soft-deleted recipes fall out of this query, which is what drops
	// their bookmarks from the listing.
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("id IN ?", recipeIDs).Find(&recipes).Error; err != nil {
		return nil, err
	}
	recipesByID := make(map[uuid.UUID]models.Recipe, len(recipes))
	for _, r := range recipes {
		recipesByID[r.ID] = r
	}

	summaries := make([]types.SavedRecipeSummary, 0, len(saved))
	for _, sr := range saved {
		recipe, ok := recipesByID[sr.RecipeID]
		if !ok {
			continue
		}
		creator, err := s.profile.CreatorSummary(ctx, recipe.UserID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, types.SavedRecipeSummary{
			ID:          recipe.ID,
			Title:       recipe.Title,
			Description: recipe.Description,
			ImageURL:    recipe.ImageURL,
			CookTime:    recipe.CookTime,
			Servings:    recipe.Servings,
			Difficulty:  recipe.Difficulty,
			Creator:     creator,
			SavedAt:     sr.CreatedAt,
		})
	}
	return summaries, nil
}
