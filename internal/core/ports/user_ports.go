package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/what2play/api/internal/core/domain"
)

type UserRepository interface {
	// GetByUsername matches case-insensitively. Returns (nil, nil) on no match.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
