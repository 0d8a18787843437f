package database_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/foodgram/backend/database"
	"github.com/foodgram/backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway sqlite database with the full schema. The
// repositories only go through GORM, so the query paths under test are the
// same ones the postgres deployment runs.
func newTestDB(t *testing.T) database.Database {
	t.Helper()

	path := filepath.Join(t.TempDir(), "foodgram.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.CartItem{},
		&models.Subscription{},
	))

	return database.New(db)
}

func createUser(t *testing.T, db database.Database, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
	}
	require.NoError(t, db.UserRepo().Add(user))
	return user
}

func createTag(t *testing.T, db database.Database, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Color: "#" + name[:3], Slug: name}
	require.NoError(t, db.TagRepo().Add(tag))
	return tag
}

func createIngredient(t *testing.T, db database.Database, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.IngredientRepo().Add(ingredient))
	return ingredient
}

type ingredientAmount struct {
	ingredient *models.Ingredient
	amount     int
}

func createRecipe(t *testing.T, db database.Database, author *models.User, name string,
	tags []models.Tag, amounts ...ingredientAmount) *models.Recipe {
	t.Helper()

	rows := make([]models.RecipeIngredient, len(amounts))
	for i, entry := range amounts {
		rows[i] = models.RecipeIngredient{
			IngredientID: entry.ingredient.ID,
			Amount:       entry.amount,
		}
	}

	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Text:        "how to cook " + name,
		CookingTime: 10,
		Image:       "recipes/" + name + ".png",
		PublishedAt: time.Now().UTC(),
	}
	require.NoError(t, db.RecipeRepo().Add(recipe, tags, rows))
	return recipe
}

func addToCart(t *testing.T, db database.Database, user *models.User, recipe *models.Recipe) {
	t.Helper()
	require.NoError(t, db.CartRepo().Add(&models.CartItem{UserID: user.ID, RecipeID: recipe.ID}))
}

func addFavorite(t *testing.T, db database.Database, user *models.User, recipe *models.Recipe) {
	t.Helper()
	require.NoError(t, db.FavoriteRepo().Add(&models.Favorite{UserID: user.ID, RecipeID: recipe.ID}))
}

func recipeIDs(recipes []*models.Recipe) []uuid.UUID {
	ids := make([]uuid.UUID, len(recipes))
	for i, recipe := range recipes {
		ids[i] = recipe.ID
	}
	return ids
}
