package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/what2play/api/internal/core/domain"
	"github.com/what2play/api/internal/core/ports"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 500
)

type pollService struct {
	pollRepo ports.PollRepository
	gameRepo ports.PollGameRepository
	userRepo ports.UserRepository
}

func NewPollService(pollRepo ports.PollRepository, gameRepo ports.PollGameRepository, userRepo ports.UserRepository) ports.PollService {
	return &pollService{
		pollRepo: pollRepo,
		gameRepo: gameRepo,
		userRepo: userRepo,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: poll title is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return nil, fmt.Errorf("%w: title must be %d characters or less", domain.ErrValidation, maxTitleLen)
	}

	description := strings.TrimSpace(input.Description)
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return nil, fmt.Errorf("%w: description must be %d characters or less", domain.ErrValidation, maxDescriptionLen)
	}

	poll := &domain.Poll{
		ID:          uuid.New(),
		CreatorID:   input.CreatorID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.pollRepo.Save(ctx, poll); err != nil {
		return nil, fmt.Errorf("failed to save poll: %w", err)
	}
	return poll, nil
}

func (s *pollService) Get(ctx context.Context, id string) (*domain.PollDetails, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	// A missing creator profile must not fail the whole page.
	creator := domain.Profile{Username: "Unknown"}
	if user, err := s.userRepo.GetByID(ctx, poll.CreatorID); err == nil && user != nil {
		creator = domain.Profile{ID: user.ID, Username: user.Username}
	}

	games, err := s.gameRepo.ListByPoll(ctx, pollID)
	if err != nil {
		log.Printf("poll %s: games fetch failed, continuing without: %v", pollID, err)
		games = nil
	}
	if games == nil {
		games = []domain.GameWithVotes{}
	}

	return &domain.PollDetails{
		Poll:  domain.PollWithCreator{Poll: *poll, Creator: creator},
		Games: games,
	}, nil
}

func (s *pollService) AddGame(ctx context.Context, input ports.AddGameInput) (*domain.PollGame, error) {
	if input.IGDBID == 0 || strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: game id and title are required", domain.ErrValidation)
	}

	pollID, err := uuid.Parse(input.PollID)
	if err != nil {
		return nil, domain.ErrPollNotFound
	}
	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return nil, err
	}

	exists, err := s.gameRepo.ExistsInPoll(ctx, pollID, input.IGDBID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing game: %w", err)
	}
	if exists {
		return nil, domain.ErrGameAlreadyAdded
	}

	game := &domain.PollGame{
		ID:        uuid.New(),
		PollID:    pollID,
		IGDBID:    input.IGDBID,
		Title:     strings.TrimSpace(input.Title),
		CoverURL:  input.CoverURL,
		CreatedAt: time.Now().UTC(),
	}

	// The unique (poll_id, igdb_id) index settles concurrent adds; the
	// loser gets the same conflict as the pre-check above.
	if err := s.gameRepo.Save(ctx, game); err != nil {
		if errors.Is(err, domain.ErrGameAlreadyAdded) {
			return nil, domain.ErrGameAlreadyAdded
		}
		return nil, fmt.Errorf("failed to save game: %w", err)
	}
	return game, nil
}
