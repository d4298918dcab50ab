package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodbook/backend/internal/middleware"
	"github.com/foodbook/backend/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	recipeService  *service.RecipeService
	authService    *service.AuthService
}

func NewProfileHandler(profileService *service.ProfileService, recipeService *service.RecipeService, authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		recipeService:  recipeService,
		authService:    authService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/me", middleware.AuthMiddleware(h.authService), h.GetCurrentUser)
		users.PUT("/me", middleware.AuthMiddleware(h.authService), h.UpdateProfile)
		users.GET("/:username/followers", h.Followers)
		users.GET("/:username/following", h.Following)
		users.POST("/:username/follow", middleware.AuthMiddleware(h.authService), h.Follow)
		users.DELETE("/:username/follow", middleware.AuthMiddleware(h.authService), h.Unfollow)
	}
}

// GetCurrentUser aggregates the caller's profile, published recipes and
// follow lists into one payload.
func (h *ProfileHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}

	recipes, err := h.recipeService.ListByCreator(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}

	followers, err := h.profileService.Followers(c.Request.Context(), profile.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}
	following, err := h.profileService.Following(c.Request.Context(), profile.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              userID,
		"username":        profile.Username,
		"firstName":       profile.FirstName,
		"lastName":        profile.LastName,
		"bio":             profile.Bio,
		"profileImageUrl": profile.ProfileImageURL,
		"recipes":         recipes,
		"followers":       followers,
		"following":       following,
	})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, req.FirstName, req.LastName, req.Bio, req.ProfileImageURL)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Followers(c *gin.Context) {
	refs, err := h.profileService.Followers(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch followers"})
		return
	}
	c.JSON(http.StatusOK, refs)
}

func (h *ProfileHandler) Following(c *gin.Context) {
	refs, err := h.profileService.Following(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch following"})
		return
	}
	c.JSON(http.StatusOK, refs)
}

func (h *ProfileHandler) Follow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	err := h.profileService.Follow(c.Request.Context(), userID, c.Param("username"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrSelfFollow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to follow user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Followed successfully"})
}

func (h *ProfileHandler) Unfollow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.profileService.Unfollow(c.Request.Context(), userID, c.Param("username")); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unfollow user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed successfully"})
}
