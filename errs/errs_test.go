package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryStatusAndSentinel(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("missing").StatusCode)
	assert.Equal(t, http.StatusForbidden, NewForbiddenError("nope").StatusCode)
	assert.True(t, IsForbidden(NewForbiddenError("nope")))
	assert.True(t, IsUnauthorized(NewUnauthorizedError("who")))
	assert.True(t, IsConflict(NewConflictError("again")))
	assert.True(t, IsValidation(NewValidationError("name", "required")))
}

func TestNewNotFoundMatchesSentinel(t *testing.T) {
	err := NewNotFound("recipe")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Contains(t, err.Error(), "recipe")
}

func TestValidationErrorKeepsField(t *testing.T) {
	err := NewValidationError("cooking_time", "must be at least 1")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "cooking_time", err.Field)
	assert.Equal(t, "must be at least 1", err.Details)
}

func TestNewDatabaseErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		cause      error
		wantStatus int
	}{
		{"postgres duplicate", errors.New(`duplicate key value violates unique constraint "idx_favorite_unique"`), http.StatusConflict},
		{"sqlite duplicate", errors.New("UNIQUE constraint failed: favorites.user_id"), http.StatusConflict},
		{"postgres foreign key", errors.New(`insert violates foreign key constraint "fk_recipes_author"`), http.StatusBadRequest},
		{"sqlite foreign key", errors.New("FOREIGN KEY constraint failed"), http.StatusBadRequest},
		{"record not found", errors.New("record not found"), http.StatusNotFound},
		{"connection refused", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable},
		{"anything else", errors.New("syntax error near SELECT"), http.StatusInternalServerError},
		{"nil cause", nil, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewDatabaseError("create", "favorite", tc.cause)
			assert.Equal(t, tc.wantStatus, err.StatusCode)
		})
	}
}

func TestNewDatabaseErrorDuplicateIsAlreadyExists(t *testing.T) {
	err := NewDatabaseError("create", "favorite", errors.New("duplicate key value"))
	assert.True(t, errors.Is(err, ErrAlreadyExists))
}
