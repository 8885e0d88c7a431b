package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/what2play/api/internal/core/domain"
)

type catalogResponse struct {
	Games []struct {
		IGDBID      int64   `json:"igdb_id"`
		Title       string  `json:"title"`
		CoverURL    *string `json:"cover_url"`
		ReleaseYear *int    `json:"release_year"`
	} `json:"games"`
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestGameSearch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.Catalog.games = []domain.CatalogGame{
		{IGDBID: 1942, Title: "The Witcher 3", CoverURL: strPtr("https://images.igdb.com/t_cover_big/co1wyy.jpg"), ReleaseYear: intPtr(2015)},
		{IGDBID: 7346, Title: "The Witcher 2"},
	}

	resp := app.get(t, "/api/games/search?q=witcher", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload catalogResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Games, 2)
	assert.Equal(t, int64(1942), payload.Games[0].IGDBID)
	assert.Equal(t, "The Witcher 3", payload.Games[0].Title)
	require.NotNil(t, payload.Games[0].CoverURL)
	assert.Equal(t, "https://images.igdb.com/t_cover_big/co1wyy.jpg", *payload.Games[0].CoverURL)
	require.NotNil(t, payload.Games[0].ReleaseYear)
	assert.Equal(t, 2015, *payload.Games[0].ReleaseYear)
	assert.Nil(t, payload.Games[1].CoverURL)
	assert.Nil(t, payload.Games[1].ReleaseYear)
}

func TestGameSearchRequiresQuery(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	for _, path := range []string{"/api/games/search", "/api/games/search?q=", "/api/games/search?q=%20%20"} {
		resp := app.get(t, path, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestGameSearchNoMatches(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.Catalog.games = nil

	resp := app.get(t, "/api/games/search?q=zzzz", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload catalogResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.NotNil(t, payload.Games)
	assert.Empty(t, payload.Games)
}

func TestGameRandom(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.Catalog.games = []domain.CatalogGame{
		{IGDBID: 1, Title: "Hades"},
		{IGDBID: 2, Title: "Celeste"},
	}

	resp := app.get(t, "/api/games/random", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload catalogResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Len(t, payload.Games, 2)
}

func TestGameCatalogUnavailable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.Catalog.err = fmt.Errorf("%w: upstream timeout", domain.ErrCatalogUnavailable)

	for _, path := range []string{"/api/games/search?q=witcher", "/api/games/random"} {
		resp := app.get(t, path, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode, path)
	}
}
