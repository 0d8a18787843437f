package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/foodgram/backend/database"
	"github.com/foodgram/backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	router http.Handler
	db     database.Database
	issuer TokenIssuer
}

// newTestEnv assembles the full routing tree over a throwaway sqlite
// database, the same wiring the server does minus the listener.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	path := filepath.Join(t.TempDir(), "foodgram.db")
	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.CartItem{},
		&models.Subscription{},
	))

	db := database.New(gormDB)
	issuer := NewTokenIssuer("test-secret", time.Hour)

	router := chi.NewRouter()
	router.Use(middleware.StripSlashes)
	setupRoutes(router, initializeHandlers(db, issuer, t.TempDir()), newAuthMiddleware(issuer))

	return &testEnv{router: router, db: db, issuer: issuer}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// seedUser creates a user directly in the store and returns a valid token
// for them. Password round-trips are covered by the auth tests; everything
// else skips bcrypt.
func (e *testEnv) seedUser(t *testing.T, username string) (*models.User, string) {
	t.Helper()

	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
	}
	require.NoError(t, e.db.UserRepo().Add(user))

	token, err := e.issuer.Issue(user.ID)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) seedAdmin(t *testing.T, username string) (*models.User, string) {
	t.Helper()

	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "Site",
		LastName:     "Admin",
		PasswordHash: "x",
		IsAdmin:      true,
	}
	require.NoError(t, e.db.UserRepo().Add(user))

	token, err := e.issuer.Issue(user.ID)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) seedTag(t *testing.T, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Color: "#" + name[:3], Slug: name}
	require.NoError(t, e.db.TagRepo().Add(tag))
	return tag
}

func (e *testEnv) seedIngredient(t *testing.T, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, e.db.IngredientRepo().Add(ingredient))
	return ingredient
}

func (e *testEnv) seedRecipe(t *testing.T, author *models.User, name string,
	tag *models.Tag, ingredient *models.Ingredient, amount int) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Text:        "how to cook " + name,
		CookingTime: 10,
		Image:       "recipes/" + name + ".png",
		PublishedAt: time.Now().UTC(),
	}
	require.NoError(t, e.db.RecipeRepo().Add(recipe, []models.Tag{*tag},
		[]models.RecipeIngredient{{IngredientID: ingredient.ID, Amount: amount}}))
	return recipe
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func pngDataURI(payload []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
}
