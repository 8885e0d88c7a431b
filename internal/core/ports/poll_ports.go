package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/what2play/api/internal/core/domain"
)

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	// GetCreatedBy lists a user's polls newest first with game counts.
	GetCreatedBy(ctx context.Context, creatorID uuid.UUID) ([]domain.PollSummary, error)
}

type PollGameRepository interface {
	Save(ctx context.Context, game *domain.PollGame) error
	GetByID(ctx context.Context, gameID, pollID uuid.UUID) (*domain.PollGame, error)
	ExistsInPoll(ctx context.Context, pollID uuid.UUID, igdbID int64) (bool, error)
	// ListByPoll returns every game of the poll in suggestion order
	// (ascending created_at) with vote counts and voter profiles.
	ListByPoll(ctx context.Context, pollID uuid.UUID) ([]domain.GameWithVotes, error)
}

type CreatePollInput struct {
	CreatorID   uuid.UUID
	Title       string
	Description string
}

type AddGameInput struct {
	PollID   string
	IGDBID   int64
	Title    string
	CoverURL string
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	Get(ctx context.Context, id string) (*domain.PollDetails, error)
	AddGame(ctx context.Context, input AddGameInput) (*domain.PollGame, error)
}
