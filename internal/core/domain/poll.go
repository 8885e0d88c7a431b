package domain

import (
	"time"

	"github.com/google/uuid"
)

type Poll struct {
	ID          uuid.UUID `json:"id"`
	CreatorID   uuid.UUID `json:"creator_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type PollWithCreator struct {
	Poll
	Creator Profile `json:"creator"`
}

// PollDetails is the full read model for a single poll page:
// the poll, its creator and every suggested game with its votes.
type PollDetails struct {
	Poll  PollWithCreator `json:"poll"`
	Games []GameWithVotes `json:"games"`
}
