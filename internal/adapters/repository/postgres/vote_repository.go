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

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) Save(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, poll_game_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, vote.ID, vote.PollGameID, vote.UserID, vote.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrVoteExists
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *voteRepository) Delete(ctx context.Context, pollGameID, userID uuid.UUID) (bool, error) {
	query := `DELETE FROM votes WHERE poll_game_id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, pollGameID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete vote: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *voteRepository) HasVoted(ctx context.Context, pollGameID, userID uuid.UUID) (bool, error) {
	query := `SELECT 1 FROM votes WHERE poll_game_id = $1 AND user_id = $2 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, pollGameID, userID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return true, nil
}

func (r *voteRepository) ListParticipated(ctx context.Context, userID uuid.UUID) ([]domain.ParticipatedPoll, error) {
	query := `
		SELECT DISTINCT p.id, p.title, COALESCE(p.description, ''), p.created_at,
			COALESCE(u.username, 'Unknown')
		FROM votes v
		JOIN poll_games g ON g.id = v.poll_game_id
		JOIN polls p ON p.id = g.poll_id
		LEFT JOIN users u ON u.id = p.creator_id
		WHERE v.user_id = $1 AND p.creator_id <> $1
		ORDER BY p.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participated polls: %w", err)
	}
	defer rows.Close()

	var polls []domain.ParticipatedPoll
	for rows.Next() {
		var p domain.ParticipatedPoll
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.CreatorUsername); err != nil {
			return nil, fmt.Errorf("failed to scan participated poll: %w", err)
		}
		polls = append(polls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participated polls: %w", err)
	}
	return polls, nil
}
