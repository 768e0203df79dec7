package repository

import (
	"context"

	"studybuddy-api/internal/domain"
)

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	// GetByID retrieves an account by its internal id
	GetByID(ctx context.Context, id int64) (*domain.Account, error)

	// GetByProviderSub retrieves an account by its (provider, provider_sub) pair
	GetByProviderSub(ctx context.Context, provider, providerSub string) (*domain.Account, error)

	// UpsertGoogle atomically creates or refreshes a Google account from
	// verified profile claims and stamps last_login_at
	UpsertGoogle(ctx context.Context, profile *domain.GoogleProfile) (*domain.Account, error)

	// CreatePassword inserts a new password account. Returns ErrDuplicateAccount
	// when the (provider, provider_sub) pair already exists.
	CreatePassword(ctx context.Context, email, passwordHash string, name *string) (*domain.Account, error)

	// TouchLastLogin stamps last_login_at on a successful authentication
	TouchLastLogin(ctx context.Context, id int64) error
}

// NoteRepository defines the interface for note persistence
type NoteRepository interface {
	// ListByAccount retrieves notes for an account, newest first
	ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Note, error)

	// Create inserts a new note
	Create(ctx context.Context, accountID int64, title, content string) (*domain.Note, error)
}

// UserDataRepository defines the interface for the per-account key-value store
type UserDataRepository interface {
	// Get retrieves the entry for (accountID, key); returns nil when absent
	Get(ctx context.Context, accountID int64, key string) (*domain.UserDataEntry, error)

	// Upsert atomically creates or replaces the entry for (accountID, key)
	Upsert(ctx context.Context, accountID int64, key, valueJSON string) (*domain.UserDataEntry, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Account  AccountRepository
	Note     NoteRepository
	UserData UserDataRepository
}
