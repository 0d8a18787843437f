package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeFlow(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.seedUser(t, "alice")
	bob, _ := env.seedUser(t, "bob")
	tag := env.seedTag(t, "dinner")
	flour := env.seedIngredient(t, "flour", "g")
	env.seedRecipe(t, bob, "pancakes", tag, flour, 10)

	rec := env.request(t, http.MethodPost, "/api/users/"+bob.ID.String()+"/subscribe", aliceToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "bob", body["username"])
	assert.Equal(t, true, body["is_subscribed"])
	assert.Equal(t, float64(1), body["recipes_count"])

	// Subscribing twice is a conflict.
	rec = env.request(t, http.MethodPost, "/api/users/"+bob.ID.String()+"/subscribe", aliceToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The flag now shows up on the target's profile.
	rec = env.request(t, http.MethodGet, "/api/users/"+bob.ID.String(), aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["is_subscribed"])

	rec = env.request(t, http.MethodDelete, "/api/users/"+bob.ID.String()+"/subscribe", aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Unsubscribing again: the recipe exists but the membership does not.
	rec = env.request(t, http.MethodDelete, "/api/users/"+bob.ID.String()+"/subscribe", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubscribeToSelf(t *testing.T) {
	env := newTestEnv(t)
	alice, aliceToken := env.seedUser(t, "alice")

	rec := env.request(t, http.MethodPost, "/api/users/"+alice.ID.String()+"/subscribe", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubscribeToUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.seedUser(t, "alice")

	rec := env.request(t, http.MethodPost, "/api/users/"+uuid.NewString()+"/subscribe", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(t, http.MethodDelete, "/api/users/"+uuid.NewString()+"/subscribe", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSubscriptionsWithRecipesLimit(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.seedUser(t, "alice")
	bob, _ := env.seedUser(t, "bob")
	tag := env.seedTag(t, "dinner")
	flour := env.seedIngredient(t, "flour", "g")
	for _, name := range []string{"pancakes", "bread", "stew"} {
		env.seedRecipe(t, bob, name, tag, flour, 10)
	}

	rec := env.request(t, http.MethodPost, "/api/users/"+bob.ID.String()+"/subscribe", aliceToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/users/subscriptions?recipes_limit=2", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])
	results := body["results"].([]any)
	require.Len(t, results, 1)

	author := results[0].(map[string]any)
	assert.Equal(t, "bob", author["username"])
	assert.Equal(t, float64(3), author["recipes_count"])
	assert.Len(t, author["recipes"].([]any), 2)
}

func TestListUsersAnnotatesSubscriptions(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.seedUser(t, "alice")
	bob, _ := env.seedUser(t, "bob")
	env.seedUser(t, "carol")

	rec := env.request(t, http.MethodPost, "/api/users/"+bob.ID.String()+"/subscribe", aliceToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/users/", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(3), body["count"])
	for _, raw := range body["results"].([]any) {
		user := raw.(map[string]any)
		assert.Equal(t, user["username"] == "bob", user["is_subscribed"])
	}
}
