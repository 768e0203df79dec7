package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"studybuddy-api/internal/domain"
	"studybuddy-api/pkg/database"
)

// ErrDuplicateAccount is returned when an insert hits the unique
// (provider, provider_sub) constraint.
var ErrDuplicateAccount = errors.New("account already exists")

const accountColumns = `id, provider, provider_sub, email, email_verified, password_hash,
		name, given_name, family_name, picture, locale, created_at, updated_at, last_login_at`

// accountRepository handles account persistence with PostgreSQL
type accountRepository struct {
	db *database.PostgresDB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.PostgresDB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	account := &domain.Account{}
	err := row.Scan(
		&account.ID,
		&account.Provider,
		&account.ProviderSub,
		&account.Email,
		&account.EmailVerified,
		&account.PasswordHash,
		&account.Name,
		&account.GivenName,
		&account.FamilyName,
		&account.Picture,
		&account.Locale,
		&account.CreatedAt,
		&account.UpdatedAt,
		&account.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetByID retrieves an account by its internal id
func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE id = $1`, accountColumns)

	account, err := scanAccount(r.db.GetReadPool().QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

// GetByProviderSub retrieves an account by its (provider, provider_sub) pair
func (r *accountRepository) GetByProviderSub(ctx context.Context, provider, providerSub string) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE provider = $1 AND provider_sub = $2`, accountColumns)

	account, err := scanAccount(r.db.GetReadPool().QueryRow(ctx, query, provider, providerSub))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account by provider sub: %w", err)
	}

	return account, nil
}

// UpsertGoogle atomically creates or refreshes a Google account. The provider
// is the source of truth for profile fields, so an existing row is overwritten
// with the latest claims on every login.
func (r *accountRepository) UpsertGoogle(ctx context.Context, profile *domain.GoogleProfile) (*domain.Account, error) {
	query := fmt.Sprintf(`
		INSERT INTO accounts (provider, provider_sub, email, email_verified, name, given_name, family_name, picture, locale, last_login_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), NOW())
		ON CONFLICT (provider, provider_sub) DO UPDATE SET
			email = EXCLUDED.email,
			email_verified = EXCLUDED.email_verified,
			name = EXCLUDED.name,
			given_name = EXCLUDED.given_name,
			family_name = EXCLUDED.family_name,
			picture = EXCLUDED.picture,
			locale = EXCLUDED.locale,
			last_login_at = EXCLUDED.last_login_at,
			updated_at = NOW()
		RETURNING %s`, accountColumns)

	account, err := scanAccount(r.db.Pool.QueryRow(ctx, query,
		domain.ProviderGoogle,
		profile.Sub,
		profile.Email,
		profile.EmailVerified,
		profile.Name,
		profile.GivenName,
		profile.FamilyName,
		profile.Picture,
		profile.Locale,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert google account: %w", err)
	}

	return account, nil
}

// CreatePassword inserts a new password account keyed by email
func (r *accountRepository) CreatePassword(ctx context.Context, email, passwordHash string, name *string) (*domain.Account, error) {
	query := fmt.Sprintf(`
		INSERT INTO accounts (provider, provider_sub, email, email_verified, password_hash, name, last_login_at)
		VALUES ($1, $2, $3, false, $4, $5, NOW())
		RETURNING %s`, accountColumns)

	account, err := scanAccount(r.db.Pool.QueryRow(ctx, query,
		domain.ProviderPassword,
		email,
		email,
		passwordHash,
		name,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Concurrent signup with the same email lost the race.
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("failed to create password account: %w", err)
	}

	return account, nil
}

// TouchLastLogin stamps last_login_at on a successful authentication
func (r *accountRepository) TouchLastLogin(ctx context.Context, id int64) error {
	query := `UPDATE accounts SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %d not found", id)
	}

	return nil
}
