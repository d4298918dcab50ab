package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodbook/backend/internal/middleware"
	"github.com/foodbook/backend/internal/service"
)

// InteractionHandler fronts the discovery feed, the swipe ledger and the
// bookmark store.
type InteractionHandler struct {
	feedService  *service.FeedService
	swipeService *service.SwipeService
	savedService *service.SavedRecipeService
	authService  *service.AuthService
	rateLimiter  *middleware.RateLimiter
}

func NewInteractionHandler(feedService *service.FeedService, swipeService *service.SwipeService, savedService *service.SavedRecipeService, authService *service.AuthService, rateLimiter *middleware.RateLimiter) *InteractionHandler {
	return &InteractionHandler{
		feedService:  feedService,
		swipeService: swipeService,
		savedService: savedService,
		authService:  authService,
		rateLimiter:  rateLimiter,
	}
}

func (h *InteractionHandler) RegisterRoutes(router *gin.RouterGroup, recipes *RecipeHandler) {
	group := router.Group("/recipes", middleware.AuthMiddleware(h.authService))
	{
		group.GET("/discover", func(c *gin.Context) { h.Discover(c, recipes) })
		group.POST("/:id/save", h.SaveRecipe)
		group.GET("/:id/saved-recipes", h.ListSaved)

		interact := group.Group("")
		if h.rateLimiter != nil {
			interact.Use(h.rateLimiter.RateLimitMiddleware())
		}
		interact.POST("/:id/interact", h.Interact)
	}
}

// Discover returns a randomized slate of recipes the caller has not yet
// swiped on.
func (h *InteractionHandler) Discover(c *gin.Context, recipes *RecipeHandler) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit := service.DefaultSlateSize
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	slate, err := h.feedService.NextSlate(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build discovery feed"})
		return
	}

	summaries, err := recipes.summarize(c.Request.Context(), slate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build discovery feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": summaries})
}

// Interact records a swipe decision and rebuilds the recipe's like set.
func (h *InteractionHandler) Interact(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// req.SuperLiked is deliberately unused, see InteractionRequest.
	if _, err := h.swipeService.RecordSwipe(c.Request.Context(), userID, recipeID, req.Liked); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record interaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Interaction recorded"})
}

// SaveRecipe bookmarks a recipe. A repeat save answers 200 instead of 201
// and is never an error.
func (h *InteractionHandler) SaveRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	outcome, err := h.savedService.SaveRecipe(c.Request.Context(), userID, recipeID)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save recipe"})
		return
	}

	if outcome.AlreadySaved {
		c.JSON(http.StatusOK, gin.H{"message": "Recipe already saved"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Recipe saved successfully"})
}

// ListSaved returns the caller's bookmarks. The path parameter names the
// user whose bookmarks are requested and must match the caller.
func (h *InteractionHandler) ListSaved(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	requestedID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if requestedID != callerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	saved, err := h.savedService.ListSaved(c.Request.Context(), callerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch saved recipes"})
		return
	}

	c.JSON(http.StatusOK, saved)
}
