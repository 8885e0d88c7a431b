package domain

import (
	"time"

	"github.com/google/uuid"
)

// PollSummary is a poll the user created, with how many games it holds.
type PollSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	GameCount   int       `json:"game_count"`
}

// ParticipatedPoll is a poll someone else created and the user voted in.
type ParticipatedPoll struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	CreatorUsername string    `json:"creator_username"`
}

type History struct {
	Created      []PollSummary      `json:"created"`
	Participated []ParticipatedPoll `json:"participated"`
}
