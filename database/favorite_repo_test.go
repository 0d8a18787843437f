package database_test

import (
	"testing"

	"github.com/foodgram/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteRoundTrip(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	flour := createIngredient(t, db, "flour", "g")
	tag := createTag(t, db, "dinner")
	recipe := createRecipe(t, db, alice, "pancakes", []models.Tag{*tag},
		ingredientAmount{flour, 10})

	exists, err := db.FavoriteRepo().Exists(alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	addFavorite(t, db, alice, recipe)

	exists, err = db.FavoriteRepo().Exists(alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	removed, err := db.FavoriteRepo().Remove(alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = db.FavoriteRepo().Remove(alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestFavoriteRejectsDuplicatePair(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	flour := createIngredient(t, db, "flour", "g")
	tag := createTag(t, db, "dinner")
	recipe := createRecipe(t, db, alice, "pancakes", []models.Tag{*tag},
		ingredientAmount{flour, 10})

	addFavorite(t, db, alice, recipe)
	err := db.FavoriteRepo().Add(&models.Favorite{UserID: alice.ID, RecipeID: recipe.ID})
	require.Error(t, err)
}
