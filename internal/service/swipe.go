package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodbook/backend/internal/models"
)

// SwipeOutcome reports whether a swipe created the (user, recipe) record
// or overwrote an existing one.
type SwipeOutcome struct {
	Created bool
}

// SwipeService owns the swipe ledger and the recipe like sets derived
// from it. The ledger is the source of truth; recipe_likes is a
// materialized view rebuilt inside the same transaction as every swipe.
type SwipeService struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewSwipeService creates a new SwipeService instance. redisClient may be
// nil; like reads then go straight to the database.
func NewSwipeService(db *gorm.DB, redisClient *redis.Client) *SwipeService {
	return &SwipeService{db: db, redis: redisClient}
}

// RecordSwipe upserts the caller's decision on a recipe and rebuilds the
// recipe's like set. Concurrent swipes on the same recipe serialize on the
// recipe row lock; swipes on different recipes do not block each other.
func (s *SwipeService) RecordSwipe(ctx context.Context, userID, recipeID uuid.UUID, liked bool) (*SwipeOutcome, error) {
	outcome := &SwipeOutcome{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The recipe row doubles as the per-recipe serialization point.
		recipeQuery := tx
		if tx.Dialector.Name() == "postgres" {
			recipeQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var recipe models.Recipe
		if err := recipeQuery.First(&recipe, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		var swipe models.RecipeSwipe
		err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&swipe).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			swipe = models.RecipeSwipe{UserID: userID, RecipeID: recipeID, Liked: liked}
			if err := tx.Create(&swipe).Error; err != nil {
				return err
			}
			outcome.Created = true
		case err != nil:
			return err
		default:
			if err := tx.Model(&models.RecipeSwipe{}).
				Where("user_id = ? AND recipe_id = ?", userID, recipeID).
				Update("liked", liked).Error; err != nil {
				return err
			}
		}

		return recomputeLikes(tx, recipeID)
	})
	if err != nil {
		return nil, err
	}

	s.refreshLikeCache(ctx, recipeID)
	return outcome, nil
}

// recomputeLikes replaces the recipe's like rows wholesale with the set of
// users whose current swipe says liked. A full replace keeps the view
// correct even if prior rows were wrong.
func recomputeLikes(tx *gorm.DB, recipeID uuid.UUID) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeLike{}).Error; err != nil {
		return err
	}

	var swipes []models.RecipeSwipe
	if err := tx.Where("recipe_id = ? AND liked = ?", recipeID, true).Find(&swipes).Error; err != nil {
		return err
	}
	if len(swipes) == 0 {
		return nil
	}

	likes := make([]models.RecipeLike, 0, len(swipes))
	for _, sw := range swipes {
		likes = append(likes, models.RecipeLike{RecipeID: recipeID, UserID: sw.UserID})
	}
	return tx.Create(&likes).Error
}

// LikeCount returns how many users currently like the recipe.
func (s *SwipeService) LikeCount(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	if s.redis != nil {
		key := likeSetKey(recipeID)
		if exists, err := s.redis.Exists(ctx, key).Result(); err == nil && exists > 0 {
			if count, err := s.redis.SCard(ctx, key).Result(); err == nil {
				return count, nil
			}
		}
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.RecipeLike{}).Where("recipe_id = ?", recipeID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IsLikedBy reports whether the user is in the recipe's current like set.
func (s *SwipeService) IsLikedBy(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	if s.redis != nil {
		key := likeSetKey(recipeID)
		if exists, err := s.redis.Exists(ctx, key).Result(); err == nil && exists > 0 {
			if member, err := s.redis.SIsMember(ctx, key, userID.String()).Result(); err == nil {
				return member, nil
			}
		}
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.RecipeLike{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// refreshLikeCache rewrites the Redis copy of the like set. Best effort:
// the database rows are authoritative, a cache failure only costs reads.
func (s *SwipeService) refreshLikeCache(ctx context.Context, recipeID uuid.UUID) {
	if s.redis == nil {
		return
	}

	var likes []models.RecipeLike
	if err := s.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Find(&likes).Error; err != nil {
		log.Printf("like cache refresh skipped for recipe %s: %v", recipeID, err)
		return
	}

	key := likeSetKey(recipeID)
	pipe := s.redis.TxPipeline()
	pipe.Del(ctx, key)
	if len(likes) > 0 {
		members := make([]interface{}, 0, len(likes))
		for _, l := range likes {
			members = append(members, l.UserID.String())
		}
		pipe.SAdd(ctx, key, members...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("like cache refresh failed for recipe %s: %v", recipeID, err)
	}
}

func likeSetKey(recipeID uuid.UUID) string {
	return fmt.Sprintf("recipe:%s:likes", recipeID)
}
