package repository

import (
	"context"
	"fmt"

	"studybuddy-api/internal/domain"
	"studybuddy-api/pkg/database"
)

// noteRepository handles note persistence with PostgreSQL
type noteRepository struct {
	db *database.PostgresDB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *database.PostgresDB) NoteRepository {
	return &noteRepository{
		db: db,
	}
}

// ListByAccount retrieves notes for an account, newest first
func (r *noteRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Note, error) {
	query := `
		SELECT id, account_id, title, content, created_at
		FROM notes
		WHERE account_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.GetReadPool().Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*domain.Note, 0)
	for rows.Next() {
		note := &domain.Note{}
		err := rows.Scan(
			&note.ID,
			&note.AccountID,
			&note.Title,
			&note.Content,
			&note.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading note rows: %w", err)
	}

	return notes, nil
}

// Create inserts a new note
func (r *noteRepository) Create(ctx context.Context, accountID int64, title, content string) (*domain.Note, error) {
	query := `
		INSERT INTO notes (account_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, account_id, title, content, created_at
	`

	note := &domain.Note{}
	err := r.db.Pool.QueryRow(ctx, query, accountID, title, content).Scan(
		&note.ID,
		&note.AccountID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return note, nil
}
