package api

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodbook/backend/internal/models"
)

func discoverIDs(t *testing.T, env *TestEnv, token, path string) []string {
	w := performRequest(env.Router, "GET", path, token, nil)
	require.Equal(t, 200, w.Code)

	var response struct {
		Recipes []struct {
			ID         string `json:"id"`
			LikesCount int64  `json:"likesCount"`
		} `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	ids := make([]string, 0, len(response.Recipes))
	for _, r := range response.Recipes {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestDiscoverInteractFlow(t *testing.T) {
	env := setupTestEnv(t)

	creatorID, _ := createTestUserAndToken(t, env, "creator")
	_, token := createTestUserAndToken(t, env, "swiper")
	recipeID := createTestRecipe(t, env, creatorID, "Carbonara")

	// The fresh recipe shows up in the swiper's discovery slate.
	ids := discoverIDs(t, env, token, "/api/v1/recipes/discover")
	assert.Contains(t, ids, recipeID.String())

	// Liking it records the interaction and bumps the like count.
	w := performRequest(env.Router, "POST", "/api/v1/recipes/"+recipeID.String()+"/interact", token,
		map[string]interface{}{"liked": true})
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "Interaction recorded")

	var likes int64
	require.NoError(t, env.DB.Model(&models.RecipeLike{}).Where("recipe_id = ?", recipeID).Count(&likes).Error)
	assert.Equal(t, int64(1), likes)

	// Once decided, the recipe never resurfaces in discovery.
	ids = discoverIDs(t, env, token, "/api/v1/recipes/discover")
	assert.NotContains(t, ids, recipeID.String())
}

func TestDiscoverLimit(t *testing.T) {
	env := setupTestEnv(t)

	creatorID, _ := createTestUserAndToken(t, env, "creator")
	_, token := createTestUserAndToken(t, env, "viewer")
	for i := 0; i < 8; i++ {
		createTestRecipe(t, env, creatorID, fmt.Sprintf("Recipe %d", i))
	}

	ids := discoverIDs(t, env, token, "/api/v1/recipes/discover?limit=3")
	assert.Len(t, ids, 3)

	// Fewer eligible recipes than the limit returns all of them.
	ids = discoverIDs(t, env, token, "/api/v1/recipes/discover?limit=20")
	assert.Len(t, ids, 8)
}

func TestInteractSuperLikedHasNoDistinctBehavior(t *testing.T) {
	env := setupTestEnv(t)

	creatorID, _ := createTestUserAndToken(t, env, "creator")
	userID, token := createTestUserAndToken(t, env, "swiper")
	recipeID := createTestRecipe(t, env, creatorID, "Tiramisu")

	w := performRequest(env.Router, "POST", "/api/v1/recipes/"+recipeID.String()+"/interact", token,
		map[string]interface{}{"liked": true, "superLiked": true})
	require.Equal(t, 200, w.Code)

	var swipe models.RecipeSwipe
	require.NoError(t, env.DB.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&swipe).Error)
	assert.True(t, swipe.Liked)
}

func TestInteractUnknownRecipe(t *testing.T) {
	env := setupTestEnv(t)

	_, token := createTestUserAndToken(t, env, "swiper")

	w := performRequest(env.Router, "POST", "/api/v1/recipes/"+uuid.NewString()+"/interact", token,
		map[string]interface{}{"liked": true})
	assert.Equal(t, 404, w.Code)

	var swipes int64
	require.NoError(t, env.DB.Model(&models.RecipeSwipe{}).Count(&swipes).Error)
	assert.Equal(t, int64(0), swipes)
}

func TestInteractRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(env.Router, "POST", "/api/v1/recipes/"+uuid.NewString()+"/interact", "",
		map[string]interface{}{"liked": true})
	assert.Equal(t, 401, w.Code)

	w = performRequest(env.Router, "GET", "/api/v1/recipes/discover", "", nil)
	assert.Equal(t, 401, w.Code)
}

func TestSaveRecipeIdempotentOverHTTP(t *testing.T) {
	env := setupTestEnv(t)

	creatorID, _ := createTestUserAndToken(t, env, "creator")
	userID, token := createTestUserAndToken(t, env, "saver")
	recipeID := createTestRecipe(t, env, creatorID, "Gazpacho")

	path := "/api/v1/recipes/" + recipeID.String() + "/save"

	w := performRequest(env.Router, "POST", path, token, nil)
	require.Equal(t, 201, w.Code)
	assert.Contains(t, w.Body.String(), "Recipe saved successfully")

	w = performRequest(env.Router, "POST", path, token, nil)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "Recipe already saved")

	w = performRequest(env.Router, "GET", "/api/v1/recipes/"+userID.String()+"/saved-recipes", token, nil)
	require.Equal(t, 200, w.Code)

	var saved []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	require.Len(t, saved, 1)
	assert.Equal(t, recipeID.String(), saved[0]["id"])
}

func TestSaveUnknownRecipe(t *testing.T) {
	env := setupTestEnv(t)

	_, token := createTestUserAndToken(t, env, "saver")

	w := performRequest(env.Router, "POST", "/api/v1/recipes/"+uuid.NewString()+"/save", token, nil)
	assert.Equal(t, 404, w.Code)
}

func TestListSavedForbiddenForOtherUsers(t *testing.T) {
	env := setupTestEnv(t)

	otherID, _ := createTestUserAndToken(t, env, "other")
	_, token := createTestUserAndToken(t, env, "caller")

	w := performRequest(env.Router, "GET", "/api/v1/recipes/"+otherID.String()+"/saved-recipes", token, nil)
	assert.Equal(t, 403, w.Code)
}
