package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/foodbook/backend/internal/middleware"
	"github.com/foodbook/backend/internal/service"
)

// SetupAPI wires services and handlers onto the router. redisClient may
// be nil; the like cache and the interaction rate limiter then stay off.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, jwtSecret string) {
	v1 := router.Group("/api/v1")
	{
		authService := service.NewAuthService(db, jwtSecret)
		profileService := service.NewProfileService(db)
		recipeService := service.NewRecipeService(db)
		swipeService := service.NewSwipeService(db, redisClient)
		feedService := service.NewFeedService(db)
		savedService := service.NewSavedRecipeService(db, profileService)

		var rateLimiter *middleware.RateLimiter
		if redisClient != nil {
			rateLimiter = middleware.NewInteractionRateLimiter(redisClient)
		}

		authHandler := NewAuthHandler(authService)
		profileHandler := NewProfileHandler(profileService, recipeService, authService)
		recipeHandler := NewRecipeHandler(recipeService, swipeService, profileService, authService)
		interactionHandler := NewInteractionHandler(feedService, swipeService, savedService, authService, rateLimiter)

		authHandler.RegisterRoutes(v1)
		profileHandler.RegisterRoutes(v1)
		recipeHandler.RegisterRoutes(v1)
		interactionHandler.RegisterRoutes(v1, recipeHandler)
	}
}
