package domain

import (
	"time"

	"github.com/google/uuid"
)

// PollGame is one catalog game suggested on a poll. The pair
// (poll_id, igdb_id) is unique per poll.
type PollGame struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"poll_id"`
	IGDBID    int64     `json:"igdb_id"`
	Title     string    `json:"title"`
	CoverURL  string    `json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type GameWithVotes struct {
	PollGame
	VoteCount int       `json:"vote_count"`
	Voters    []Profile `json:"voters"`
}

// CatalogGame is a search result from the external game catalog.
type CatalogGame struct {
	IGDBID      int64   `json:"igdb_id"`
	Title       string  `json:"title"`
	CoverURL    *string `json:"cover_url"`
	ReleaseYear *int    `json:"release_year"`
	Summary     *string `json:"summary"`
}
