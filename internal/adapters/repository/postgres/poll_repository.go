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

type pollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

func (r *pollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	query := `
		INSERT INTO polls (id, creator_id, title, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	description := sql.NullString{String: poll.Description, Valid: poll.Description != ""}
	_, err := r.db.ExecContext(ctx, query, poll.ID, poll.CreatorID, poll.Title, description, poll.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}
	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	query := `
		SELECT id, creator_id, title, COALESCE(description, ''), created_at
		FROM polls
		WHERE id = $1
	`
	var poll domain.Poll
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&poll.ID, &poll.CreatorID, &poll.Title, &poll.Description, &poll.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	return &poll, nil
}

func (r *pollRepository) GetCreatedBy(ctx context.Context, creatorID uuid.UUID) ([]domain.PollSummary, error) {
	query := `
		SELECT p.id, p.title, COALESCE(p.description, ''), p.created_at, COUNT(g.id)
		FROM polls p
		LEFT JOIN poll_games g ON g.poll_id = p.id
		WHERE p.creator_id = $1
		GROUP BY p.id
		ORDER BY p.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list created polls: %w", err)
	}
	defer rows.Close()

	var polls []domain.PollSummary
	for rows.Next() {
		var p domain.PollSummary
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.GameCount); err != nil {
			return nil, fmt.Errorf("failed to scan poll summary: %w", err)
		}
		polls = append(polls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}
	return polls, nil
}
