package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/what2play/api/internal/core/domain"
	"github.com/what2play/api/internal/core/ports"
)

type voteService struct {
	gameRepo ports.PollGameRepository
	voteRepo ports.VoteRepository
}

func NewVoteService(gameRepo ports.PollGameRepository, voteRepo ports.VoteRepository) ports.VoteService {
	return &voteService{
		gameRepo: gameRepo,
		voteRepo: voteRepo,
	}
}

// Toggle removes the user's vote if present, otherwise casts one.
// Check-then-act is unguarded on purpose: the unique
// (poll_game_id, user_id) index keeps the row set duplicate-free, and
// two near-simultaneous toggles resolve last-write-wins.
func (s *voteService) Toggle(ctx context.Context, userID uuid.UUID, pollID, gameID string) (bool, error) {
	pID, err := uuid.Parse(pollID)
	if err != nil {
		return false, domain.ErrGameNotFound
	}
	gID, err := uuid.Parse(gameID)
	if err != nil {
		return false, domain.ErrGameNotFound
	}

	game, err := s.gameRepo.GetByID(ctx, gID, pID)
	if err != nil {
		return false, err
	}

	hasVoted, err := s.voteRepo.HasVoted(ctx, game.ID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}

	if hasVoted {
		if _, err := s.voteRepo.Delete(ctx, game.ID, userID); err != nil {
			return false, fmt.Errorf("failed to remove vote: %w", err)
		}
		return false, nil
	}

	vote := &domain.Vote{
		ID:         uuid.New(),
		PollGameID: game.ID,
		UserID:     userID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.voteRepo.Save(ctx, vote); err != nil {
		// A concurrent toggle beat us to the insert; the vote stands.
		if errors.Is(err, domain.ErrVoteExists) {
			return true, nil
		}
		return false, fmt.Errorf("failed to save vote: %w", err)
	}
	return true, nil
}
