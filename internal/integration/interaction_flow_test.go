package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/foodbook/backend/internal/models"
	"github.com/foodbook/backend/internal/service"
	"github.com/foodbook/backend/internal/testhelpers"
)

func createUser(t *testing.T, db *gorm.DB, username string) uuid.UUID {
	user := models.User{
		Name:         username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.UserProfile{UserID: user.ID, Username: username}).Error)
	return user.ID
}

func createRecipe(t *testing.T, db *gorm.DB, userID uuid.UUID, title string) uuid.UUID {
	recipe := models.Recipe{
		UserID:       userID,
		Title:        title,
		Ingredients:  "ingredients",
		Instructions: "instructions",
	}
	require.NoError(t, db.Create(&recipe).Error)
	return recipe.ID
}

func TestInteractionFlowOnPostgres(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()

	swipes := service.NewSwipeService(db, nil)
	feed := service.NewFeedService(db)
	saved := service.NewSavedRecipeService(db, service.NewProfileService(db))

	creatorID := createUser(t, db, "creator")
	userID := createUser(t, db, "swiper")

	recipeIDs := make([]uuid.UUID, 0, 5)
	for i := 0; i < 5; i++ {
		recipeIDs = append(recipeIDs, createRecipe(t, db, creatorID, fmt.Sprintf("Recipe %d", i)))
	}

	slate, err := feed.NextSlate(ctx, userID, 0)
	require.NoError(t, err)
	assert.Len(t, slate, 5)

	// Like the first recipe, pass on the second.
	outcome, err := swipes.RecordSwipe(ctx, userID, recipeIDs[0], true)
	require.NoError(t, err)
	assert.True(t, outcome.Created)

	outcome, err = swipes.RecordSwipe(ctx, userID, recipeIDs[1], false)
	require.NoError(t, err)
	assert.True(t, outcome.Created)

	slate, err = feed.NextSlate(ctx, userID, 0)
	require.NoError(t, err)
	assert.Len(t, slate, 3)
	for _, recipe := range slate {
		assert.NotEqual(t, recipeIDs[0], recipe.ID)
		assert.NotEqual(t, recipeIDs[1], recipe.ID)
	}

	count, err := swipes.LikeCount(ctx, recipeIDs[0])
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Flipping the decision rewrites the existing row and the aggregate.
	outcome, err = swipes.RecordSwipe(ctx, userID, recipeIDs[0], false)
	require.NoError(t, err)
	assert.False(t, outcome.Created)

	count, err = swipes.LikeCount(ctx, recipeIDs[0])
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Bookmarking is idempotent.
	saveOutcome, err := saved.SaveRecipe(ctx, userID, recipeIDs[2])
	require.NoError(t, err)
	assert.False(t, saveOutcome.AlreadySaved)

	saveOutcome, err = saved.SaveRecipe(ctx, userID, recipeIDs[2])
	require.NoError(t, err)
	assert.True(t, saveOutcome.AlreadySaved)

	summaries, err := saved.ListSaved(ctx, userID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, recipeIDs[2], summaries[0].ID)
}

func TestConcurrentSwipesOnPostgres(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()

	swipes := service.NewSwipeService(db, nil)

	creatorID := createUser(t, db, "creator")
	recipeID := createRecipe(t, db, creatorID, "Contested")

	const swipers = 10
	userIDs := make([]uuid.UUID, swipers)
	for i := range userIDs {
		userIDs[i] = createUser(t, db, fmt.Sprintf("swiper%d", i))
	}

	var wg sync.WaitGroup
	errs := make(chan error, swipers)
	for _, id := range userIDs {
		wg.Add(1)
		go func(userID uuid.UUID) {
			defer wg.Done()
			if _, err := swipes.RecordSwipe(ctx, userID, recipeID, true); err != nil {
				errs <- err
			}
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("swipe failed: %v", err)
	}

	count, err := swipes.LikeCount(ctx, recipeID)
	require.NoError(t, err)
	assert.Equal(t, int64(swipers), count)
}
