package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/what2play/api/internal/core/domain"
)

type AuthRepository interface {
	StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id uuid.UUID) error
}

type AuthService interface {
	// Register creates a user and opens a session. Returns the user plus
	// access and refresh tokens.
	Register(ctx context.Context, username, password string) (*domain.User, string, string, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, string, error)
	// RefreshAccessToken returns a new access token and a rotated refresh token.
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
	// VerifyAccessToken validates a session credential and yields the
	// verified identity, or domain.ErrUnauthenticated.
	VerifyAccessToken(token string) (uuid.UUID, string, error)
}
