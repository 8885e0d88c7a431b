package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pollResponse struct {
	Poll struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Creator     struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"creator"`
	} `json:"poll"`
	Games []struct {
		ID        string `json:"id"`
		IGDBID    int64  `json:"igdb_id"`
		Title     string `json:"title"`
		VoteCount int    `json:"vote_count"`
		Voters    []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"voters"`
	} `json:"games"`
}

func createPoll(t *testing.T, app *TestApp, cookies []*http.Cookie, title, description string) string {
	t.Helper()

	resp := app.postJSON(t, "/api/polls", map[string]string{
		"title":       title,
		"description": description,
	}, cookies)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var payload struct {
		Poll struct {
			ID string `json:"id"`
		} `json:"poll"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotEmpty(t, payload.Poll.ID)
	return payload.Poll.ID
}

func getPoll(t *testing.T, app *TestApp, pollID string) pollResponse {
	t.Helper()

	resp := app.get(t, "/api/polls/"+pollID, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var details pollResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&details))
	return details
}

func addGame(t *testing.T, app *TestApp, cookies []*http.Cookie, pollID string, igdbID int64, title string) *http.Response {
	t.Helper()
	return app.postJSON(t, fmt.Sprintf("/api/polls/%s/games", pollID), map[string]interface{}{
		"igdb_id": igdbID,
		"title":   title,
	}, cookies)
}

func TestCreateAndGetPoll(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, cookies := app.signup(t, "alice", "secret123")
	access := []*http.Cookie{accessCookie(t, cookies)}

	pollID := createPoll(t, app, access, "Game Night", "")

	details := getPoll(t, app, pollID)
	assert.Equal(t, pollID, details.Poll.ID)
	assert.Equal(t, "Game Night", details.Poll.Title)
	assert.Empty(t, details.Poll.Description)
	assert.Equal(t, "alice", details.Poll.Creator.Username)
	assert.Empty(t, details.Games)

	// Empty description is stored as NULL.
	var desc *string
	require.NoError(t, app.DB.QueryRow("SELECT description FROM polls WHERE id = $1", pollID).Scan(&desc))
	assert.Nil(t, desc)
}

func TestCreatePollUnauthenticated(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := app.postJSON(t, "/api/polls", map[string]string{"title": "No Session"}, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreatePollValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, cookies := app.signup(t, "alice", "secret123")
	access := []*http.Cookie{accessCookie(t, cookies)}

	cases := []struct {
		name        string
		title       string
		description string
	}{
		{"empty title", "", ""},
		{"whitespace title", "   ", ""},
		{"title too long", strings.Repeat("a", 101), ""},
		{"description too long", "Valid Title", strings.Repeat("d", 501)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := app.postJSON(t, "/api/polls", map[string]string{
				"title":       tc.title,
				"description": tc.description,
			}, access)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestGetPollIDFormat(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// Malformed id is a 400, distinct from a well-formed id that does
	// not exist, which is a 404.
	resp := app.get(t, "/api/polls/not-a-uuid", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = app.get(t, "/api/polls/"+uuid.NewString(), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddGame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, cookies := app.signup(t, "alice", "secret123")
	access := []*http.Cookie{accessCookie(t, cookies)}
	pollID := createPoll(t, app, access, "Game Night", "")

	resp := addGame(t, app, access, pollID, 101, "Chess")
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	details := getPoll(t, app, pollID)
	require.Len(t, details.Games, 1)
	assert.Equal(t, int64(101), details.Games[0].IGDBID)
	assert.Equal(t, "Chess", details.Games[0].Title)
	assert.Equal(t, 0, details.Games[0].VoteCount)

	// Same catalog game twice in one poll is a conflict.
	resp = addGame(t, app, access, pollID, 101, "Chess")
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var count int
	require.NoError(t, app.DB.QueryRow(
		"SELECT COUNT(*) FROM poll_games WHERE poll_id = $1 AND igdb_id = 101", pollID,
	).Scan(&count))
	assert.Equal(t, 1, count)

	// Missing poll
	resp = addGame(t, app, access, uuid.NewString(), 102, "Go")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Missing title
	resp = app.postJSON(t, fmt.Sprintf("/api/polls/%s/games", pollID), map[string]interface{}{
		"igdb_id": 103,
	}, access)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// No session
	resp = addGame(t, app, nil, pollID, 104, "Shogi")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGamesKeepSuggestionOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, cookies := app.signup(t, "alice", "secret123")
	access := []*http.Cookie{accessCookie(t, cookies)}
	pollID := createPoll(t, app, access, "Order Test", "")

	titles := []string{"First", "Second", "Third"}
	for i, title := range titles {
		resp := addGame(t, app, access, pollID, int64(200+i), title)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	details := getPoll(t, app, pollID)
	require.Len(t, details.Games, 3)
	for i, title := range titles {
		assert.Equal(t, title, details.Games[i].Title)
	}
}
