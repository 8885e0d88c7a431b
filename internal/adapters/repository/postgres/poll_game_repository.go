package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/what2play/api/internal/core/domain"
	"github.com/what2play/api/internal/core/ports"
)

type pollGameRepository struct {
	db *sql.DB
}

func NewPollGameRepository(db *sql.DB) ports.PollGameRepository {
	return &pollGameRepository{
		db: db,
	}
}

func (r *pollGameRepository) Save(ctx context.Context, game *domain.PollGame) error {
	query := `
		INSERT INTO poll_games (id, poll_id, igdb_id, title, cover_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	coverURL := sql.NullString{String: game.CoverURL, Valid: game.CoverURL != ""}
	_, err := r.db.ExecContext(ctx, query, game.ID, game.PollID, game.IGDBID, game.Title, coverURL, game.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrGameAlreadyAdded
		}
		return fmt.Errorf("failed to insert game: %w", err)
	}
	return nil
}

func (r *pollGameRepository) GetByID(ctx context.Context, gameID, pollID uuid.UUID) (*domain.PollGame, error) {
	query := `
		SELECT id, poll_id, igdb_id, title, COALESCE(cover_url, ''), created_at
		FROM poll_games
		WHERE id = $1 AND poll_id = $2
	`
	var game domain.PollGame
	err := r.db.QueryRowContext(ctx, query, gameID, pollID).Scan(
		&game.ID, &game.PollID, &game.IGDBID, &game.Title, &game.CoverURL, &game.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return &game, nil
}

func (r *pollGameRepository) ExistsInPoll(ctx context.Context, pollID uuid.UUID, igdbID int64) (bool, error) {
	query := `SELECT 1 FROM poll_games WHERE poll_id = $1 AND igdb_id = $2 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, pollID, igdbID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing game: %w", err)
	}
	return true, nil
}

func (r *pollGameRepository) ListByPoll(ctx context.Context, pollID uuid.UUID) ([]domain.GameWithVotes, error) {
	query := `
		SELECT id, poll_id, igdb_id, title, COALESCE(cover_url, ''), created_at
		FROM poll_games
		WHERE poll_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list poll games: %w", err)
	}
	defer rows.Close()

	var games []domain.GameWithVotes
	for rows.Next() {
		var g domain.GameWithVotes
		if err := rows.Scan(&g.ID, &g.PollID, &g.IGDBID, &g.Title, &g.CoverURL, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	for i := range games {
		voters, err := r.fetchVoters(ctx, games[i].ID)
		if err != nil {
			return nil, err
		}
		games[i].Voters = voters
		games[i].VoteCount = len(voters)
	}
	return games, nil
}

func (r *pollGameRepository) fetchVoters(ctx context.Context, gameID uuid.UUID) ([]domain.Profile, error) {
	query := `
		SELECT v.user_id, COALESCE(u.username, 'Unknown')
		FROM votes v
		LEFT JOIN users u ON u.id = v.user_id
		WHERE v.poll_game_id = $1
		ORDER BY v.created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get voters: %w", err)
	}
	defer rows.Close()

	voters := []domain.Profile{}
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.Username); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voters: %w", err)
	}
	return voters, nil
}
