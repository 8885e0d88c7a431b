package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/what2play/api/internal/core/domain"
	"github.com/what2play/api/internal/core/ports"
)

type historyService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
}

func NewHistoryService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository) ports.HistoryService {
	return &historyService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
	}
}

// Get aggregates the user's created and participated polls. Either half
// failing degrades to an empty list instead of failing the request.
func (s *historyService) Get(ctx context.Context, userID uuid.UUID) (*domain.History, error) {
	created, err := s.pollRepo.GetCreatedBy(ctx, userID)
	if err != nil {
		log.Printf("history %s: created polls fetch failed: %v", userID, err)
		created = nil
	}
	if created == nil {
		created = []domain.PollSummary{}
	}

	participated, err := s.voteRepo.ListParticipated(ctx, userID)
	if err != nil {
		log.Printf("history %s: participated polls fetch failed: %v", userID, err)
		participated = nil
	}
	if participated == nil {
		participated = []domain.ParticipatedPoll{}
	}

	return &domain.History{
		Created:      created,
		Participated: participated,
	}, nil
}
