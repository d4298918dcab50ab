package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodbook/backend/internal/models"
)

const (
	// DefaultSlateSize is how many recipes a discovery request returns
	// when the caller does not ask for a specific limit.
	DefaultSlateSize = 10
	maxSlateSize     = 50
)

// FeedService selects discovery slates: bounded, randomized sets of
// recipes the user has not yet decided on.
type FeedService struct {
	db *gorm.DB
}

// NewFeedService creates a new FeedService instance
func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{db: db}
}

// NextSlate returns up to limit recipes the user has never swiped on,
// sampled uniformly without replacement. Order carries no meaning. When
// fewer eligible recipes exist than requested, all of them are returned.
func (s *FeedService) NextSlate(ctx context.Context, userID uuid.UUID, limit int) ([]models.Recipe, error) {
	if limit <= 0 {
		limit = DefaultSlateSize
	}
	if limit > maxSlateSize {
		limit = maxSlateSize
	}

	swiped := s.db.Model(&models.RecipeSwipe{}).
		Select("recipe_id").
		Where("user_id = ?", userID)

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("id NOT IN (?)", swiped).
		Order("RANDOM()").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}
