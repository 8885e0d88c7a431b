package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/what2play/api/internal/core/domain"
)

type HistoryService interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.History, error)
}
