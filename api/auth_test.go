package api

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID)
	require.NoError(t, err)

	parsed, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestTokenIssuerRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewTokenIssuer("other", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestTokenIssuerRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute)
	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := hashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, checkPassword(hash, "correct horse"))
	assert.False(t, checkPassword(hash, "wrong horse"))
}
