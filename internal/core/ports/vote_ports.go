package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/what2play/api/internal/core/domain"
)

type VoteRepository interface {
	Save(ctx context.Context, vote *domain.Vote) error
	// Delete reports whether a row was actually removed.
	Delete(ctx context.Context, pollGameID, userID uuid.UUID) (bool, error)
	HasVoted(ctx context.Context, pollGameID, userID uuid.UUID) (bool, error)
	// ListParticipated returns the distinct polls the user voted in,
	// excluding polls they created, newest first.
	ListParticipated(ctx context.Context, userID uuid.UUID) ([]domain.ParticipatedPoll, error)
}

type VoteService interface {
	// Toggle flips the user's vote on a game and reports the resulting state.
	Toggle(ctx context.Context, userID uuid.UUID, pollID, gameID string) (bool, error)
}
