package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTags(t *testing.T) {
	env := newTestEnv(t)
	env.seedTag(t, "lunch")
	env.seedTag(t, "breakfast")

	rec := env.request(t, http.MethodGet, "/api/tags/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tags []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tags))
	require.Len(t, tags, 2)
	assert.Equal(t, "breakfast", tags[0]["name"])
	assert.Equal(t, "lunch", tags[1]["name"])
}

func TestGetTag(t *testing.T) {
	env := newTestEnv(t)
	tag := env.seedTag(t, "breakfast")

	rec := env.request(t, http.MethodGet, "/api/tags/"+tag.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "breakfast", body["name"])
	assert.Equal(t, "breakfast", body["slug"])

	rec = env.request(t, http.MethodGet, "/api/tags/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
