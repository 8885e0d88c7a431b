package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toggleVote(t *testing.T, app *TestApp, cookies []*http.Cookie, pollID, gameID string) *http.Response {
	t.Helper()
	return app.postJSON(t, fmt.Sprintf("/api/polls/%s/games/%s/vote", pollID, gameID), nil, cookies)
}

func TestVoteToggleRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, aliceCookies := app.signup(t, "alice", "secret123")
	aliceAccess := []*http.Cookie{accessCookie(t, aliceCookies)}
	pollID := createPoll(t, app, aliceAccess, "Game Night", "")

	resp := addGame(t, app, aliceAccess, pollID, 101, "Chess")
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	details := getPoll(t, app, pollID)
	require.Len(t, details.Games, 1)
	gameID := details.Games[0].ID

	bobID, bobCookies := app.signup(t, "bob", "secret123")
	bobAccess := []*http.Cookie{accessCookie(t, bobCookies)}

	// First toggle casts the vote.
	resp = toggleVote(t, app, bobAccess, pollID, gameID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toggle struct {
		Voted bool `json:"voted"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&toggle))
	resp.Body.Close()
	assert.True(t, toggle.Voted)

	details = getPoll(t, app, pollID)
	require.Len(t, details.Games, 1)
	assert.Equal(t, 1, details.Games[0].VoteCount)
	require.Len(t, details.Games[0].Voters, 1)
	assert.Equal(t, bobID, details.Games[0].Voters[0].ID)
	assert.Equal(t, "bob", details.Games[0].Voters[0].Username)

	// Second toggle removes it.
	resp = toggleVote(t, app, bobAccess, pollID, gameID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&toggle))
	resp.Body.Close()
	assert.False(t, toggle.Voted)

	details = getPoll(t, app, pollID)
	assert.Equal(t, 0, details.Games[0].VoteCount)

	var count int
	require.NoError(t, app.DB.QueryRow(
		"SELECT COUNT(*) FROM votes WHERE poll_game_id = $1", gameID,
	).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestVoteGameNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, cookies := app.signup(t, "alice", "secret123")
	access := []*http.Cookie{accessCookie(t, cookies)}
	pollID := createPoll(t, app, access, "Game Night", "")

	// Unknown game id under an existing poll
	resp := toggleVote(t, app, access, pollID, uuid.NewString())
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Malformed game id
	resp = toggleVote(t, app, access, pollID, "not-a-uuid")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVoteGameUnderWrongPoll(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, cookies := app.signup(t, "alice", "secret123")
	access := []*http.Cookie{accessCookie(t, cookies)}

	pollA := createPoll(t, app, access, "Poll A", "")
	pollB := createPoll(t, app, access, "Poll B", "")

	resp := addGame(t, app, access, pollA, 101, "Chess")
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	gameID := getPoll(t, app, pollA).Games[0].ID

	// The game belongs to poll A, so voting via poll B is a 404.
	resp = toggleVote(t, app, access, pollB, gameID)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVoteUnauthenticated(t *testing.T) {
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
	gameID := getPoll(t, app, pollID).Games[0].ID

	resp = toggleVote(t, app, nil, pollID, gameID)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
