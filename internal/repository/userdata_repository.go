package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"studybuddy-api/internal/domain"
	"studybuddy-api/pkg/database"
)

// userDataRepository handles the per-account key-value store with PostgreSQL
type userDataRepository struct {
	db *database.PostgresDB
}

// NewUserDataRepository creates a new user data repository
func NewUserDataRepository(db *database.PostgresDB) UserDataRepository {
	return &userDataRepository{
		db: db,
	}
}

// Get retrieves the entry for (accountID, key); returns nil when absent
func (r *userDataRepository) Get(ctx context.Context, accountID int64, key string) (*domain.UserDataEntry, error) {
	query := `
		SELECT id, account_id, key, value_json, created_at, updated_at
		FROM user_data
		WHERE account_id = $1 AND key = $2
	`

	entry := &domain.UserDataEntry{}
	err := r.db.GetReadPool().QueryRow(ctx, query, accountID, key).Scan(
		&entry.ID,
		&entry.AccountID,
		&entry.Key,
		&entry.ValueJSON,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user data entry: %w", err)
	}

	return entry, nil
}

// Upsert atomically creates or replaces the entry for (accountID, key). The
// unique constraint plus ON CONFLICT closes the race between two first writes
// to the same key.
func (r *userDataRepository) Upsert(ctx context.Context, accountID int64, key, valueJSON string) (*domain.UserDataEntry, error) {
	query := `
		INSERT INTO user_data (account_id, key, value_json)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, key) DO UPDATE SET
			value_json = EXCLUDED.value_json,
			updated_at = NOW()
		RETURNING id, account_id, key, value_json, created_at, updated_at
	`

	entry := &domain.UserDataEntry{}
	err := r.db.Pool.QueryRow(ctx, query, accountID, key, valueJSON).Scan(
		&entry.ID,
		&entry.AccountID,
		&entry.Key,
		&entry.ValueJSON,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user data entry: %w", err)
	}

	return entry, nil
}
