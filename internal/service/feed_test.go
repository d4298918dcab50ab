package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSlateExcludesSwipedRecipes(t *testing.T) {
	db := setupTestDB(t)
	feed := NewFeedService(db)
	swipes := NewSwipeService(db, nil)
	ctx := context.Background()

	creator := createTestUser(t, db, "creator")
	viewer := createTestUser(t, db, "viewer")

	var recipeIDs []uuid.UUID
	for i := 0; i < 5; i++ {
		recipeIDs = append(recipeIDs, createTestRecipe(t, db, creator, fmt.Sprintf("Recipe %d", i)))
	}

	// Decide on two of them, one like and one skip; both must disappear.
	_, err := swipes.RecordSwipe(ctx, viewer, recipeIDs[0], true)
	require.NoError(t, err)
	_, err = swipes.RecordSwipe(ctx, viewer, recipeIDs[1], false)
	require.NoError(t, err)

	slate, err := feed.NextSlate(ctx, viewer, 10)
	require.NoError(t, err)
	assert.Len(t, slate, 3)
	for _, r := range slate {
		assert.NotEqual(t, recipeIDs[0], r.ID)
		assert.NotEqual(t, recipeIDs[1], r.ID)
	}
}

func TestNextSlateRespectsLimit(t *testing.T) {
	db := setupTestDB(t)
	feed := NewFeedService(db)
	ctx := context.Background()

	creator := createTestUser(t, db, "creator")
	viewer := createTestUser(t, db, "viewer")
	for i := 0; i < 15; i++ {
		createTestRecipe(t, db, creator, fmt.Sprintf("Recipe %d", i))
	}

	slate, err := feed.NextSlate(ctx, viewer, 4)
	require.NoError(t, err)
	assert.Len(t, slate, 4)

	// A non-positive limit falls back to the default slate size.
	slate, err = feed.NextSlate(ctx, viewer, 0)
	require.NoError(t, err)
	assert.Len(t, slate, DefaultSlateSize)
}

func TestNextSlateReturnsAllWhenFewEligible(t *testing.T) {
	db := setupTestDB(t)
	feed := NewFeedService(db)
	ctx := context.Background()

	creator := createTestUser(t, db, "creator")
	viewer := createTestUser(t, db, "viewer")

	want := map[uuid.UUID]bool{}
	for i := 0; i < 3; i++ {
		want[createTestRecipe(t, db, creator, fmt.Sprintf("Recipe %d", i))] = true
	}

	slate, err := feed.NextSlate(ctx, viewer, 10)
	require.NoError(t, err)
	require.Len(t, slate, 3)

	// With eligible <= limit the slate is a permutation of the eligible set.
	for _, r := range slate {
		assert.True(t, want[r.ID])
		delete(want, r.ID)
	}
	assert.Empty(t, want)
}

func TestNextSlateEmptyCatalog(t *testing.T) {
	db := setupTestDB(t)
	feed := NewFeedService(db)

	viewer := createTestUser(t, db, "viewer")

	slate, err := feed.NextSlate(context.Background(), viewer, 10)
	require.NoError(t, err)
	assert.Empty(t, slate)
}
