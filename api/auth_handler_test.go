package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginAndMe(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/users/", "", map[string]any{
		"email":      "alice@example.com",
		"username":   "alice",
		"first_name": "Alice",
		"last_name":  "Cooper",
		"password":   "correct horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "alice", body["username"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")
	assert.NotContains(t, rec.Body.String(), "correct horse")

	rec = env.request(t, http.MethodPost, "/api/auth/token/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "wrong password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/auth/token/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	token, ok := decodeBody(t, rec)["auth_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	rec = env.request(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", decodeBody(t, rec)["email"])
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/auth/token/login", "", map[string]any{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice")

	rec := env.request(t, http.MethodPost, "/api/users/", "", map[string]any{
		"email":      "alice@example.com",
		"username":   "alice2",
		"first_name": "Alice",
		"last_name":  "Cooper",
		"password":   "correct horse",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/users/", "", map[string]any{
		"email":      "not-an-email",
		"username":   "alice",
		"first_name": "Alice",
		"last_name":  "Cooper",
		"password":   "correct horse",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email", decodeBody(t, rec)["field"])
}

func TestMeRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/users/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
