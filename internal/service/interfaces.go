package service

import (
	"context"

	"studybuddy-api/internal/domain"
)

// TokenService issues and validates the app's bearer tokens. Tokens are
// self-contained; validity is a function of signature and current time only.
type TokenService interface {
	// Issue mints a signed access token bound to the account id
	Issue(accountID int64) (string, error)

	// Validate checks a token and returns the account id it is bound to
	Validate(token string) (int64, error)
}

// GoogleService verifies Google-issued credentials
type GoogleService interface {
	// ClientID returns the public OAuth client identifier
	ClientID() string

	// VerifyCredential validates a Google ID token and extracts profile claims
	VerifyCredential(ctx context.Context, credential string) (*domain.GoogleProfile, error)

	// ExchangeCode trades an authorization code for an ID token via Google's
	// token endpoint. Never retried: authorization codes are single-use.
	ExchangeCode(ctx context.Context, code, redirectURI string) (string, error)
}

// AccountService resolves verified credentials to canonical accounts
type AccountService interface {
	// ResolveGoogle upserts an account from verified Google claims
	ResolveGoogle(ctx context.Context, profile *domain.GoogleProfile) (*domain.Account, error)

	// SignupPassword creates a new password account
	SignupPassword(ctx context.Context, email, password string, name *string) (*domain.Account, error)

	// LoginPassword authenticates a password account
	LoginPassword(ctx context.Context, email, password string) (*domain.Account, error)

	// GetByID retrieves an account by internal id; nil when absent
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
}

// NoteService manages per-account notes
type NoteService interface {
	// List retrieves the caller's notes, newest first
	List(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Note, error)

	// Create stores a new note for the caller
	Create(ctx context.Context, accountID int64, title, content string) (*domain.Note, error)
}

// UserDataService manages the per-account key-value store
type UserDataService interface {
	// Get retrieves the value stored under key for the caller
	Get(ctx context.Context, accountID int64, key string) (*domain.UserDataValue, error)

	// Put stores value under key for the caller, replacing any previous value
	Put(ctx context.Context, accountID int64, key string, value interface{}) (*domain.UserDataValue, error)
}

// Services aggregates all service interfaces
type Services struct {
	Token    TokenService
	Google   GoogleService
	Account  AccountService
	Note     NoteService
	UserData UserDataService
}
