package account

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"studybuddy-api/internal/domain"
	"studybuddy-api/internal/repository"
	"studybuddy-api/internal/service"
	"studybuddy-api/pkg/errors"
	"studybuddy-api/pkg/logger"
	"studybuddy-api/pkg/password"
)

// dummyPasswordHash is verified against when no stored credential matches the
// email, so the login path pays the same key-derivation cost whether or not
// the account exists.
var dummyPasswordHash, _ = password.Hash("login-timing-equalizer")

// Service implements the AccountService interface
type Service struct {
	accounts repository.AccountRepository
	logger   *logger.Logger
}

// NewService creates a new account service
func NewService(accounts repository.AccountRepository, logger *logger.Logger) service.AccountService {
	return &Service{
		accounts: accounts,
		logger:   logger,
	}
}

// ResolveGoogle upserts an account from verified Google claims. The provider
// is authoritative for profile fields: every login overwrites them.
func (s *Service) ResolveGoogle(ctx context.Context, profile *domain.GoogleProfile) (*domain.Account, error) {
	if profile == nil || profile.Sub == "" {
		return nil, errors.NewAuthenticationError("Invalid token subject")
	}

	account, err := s.accounts.UpsertGoogle(ctx, profile)
	if err != nil {
		s.logger.WithError(err).Error("Failed to upsert google account")
		return nil, errors.NewInternalError("Failed to resolve account", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"account_id": account.ID,
		"provider":   account.Provider,
	}).Info("Google account resolved")

	return account, nil
}

// SignupPassword creates a new password account keyed by email
func (s *Service) SignupPassword(ctx context.Context, email, pass string, name *string) (*domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.accounts.GetByProviderSub(ctx, domain.ProviderPassword, email)
	if err != nil {
		return nil, errors.NewInternalError("Failed to check existing account", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("Account already exists")
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return nil, errors.NewValidationError("Password required", nil)
	}

	account, err := s.accounts.CreatePassword(ctx, email, hash, name)
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicateAccount) {
			// Lost a race with a concurrent signup for the same email.
			return nil, errors.NewConflictError("Account already exists")
		}
		s.logger.WithError(err).Error("Failed to create password account")
		return nil, errors.NewInternalError("Failed to create account", err)
	}

	s.logger.WithField("account_id", account.ID).Info("Password account created")
	return account, nil
}

// LoginPassword authenticates a password account. Unknown email and wrong
// password produce the same error so callers cannot enumerate accounts.
func (s *Service) LoginPassword(ctx context.Context, email, pass string) (*domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	account, err := s.accounts.GetByProviderSub(ctx, domain.ProviderPassword, email)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up account", err)
	}

	if account == nil || account.PasswordHash == nil {
		password.Verify(pass, dummyPasswordHash)
		return nil, errors.NewAuthenticationError("Invalid email or password")
	}

	if !password.Verify(pass, *account.PasswordHash) {
		return nil, errors.NewAuthenticationError("Invalid email or password")
	}

	if err := s.accounts.TouchLastLogin(ctx, account.ID); err != nil {
		s.logger.WithError(err).Error("Failed to update last login")
		return nil, errors.NewInternalError("Failed to update account", err)
	}

	now := time.Now().UTC()
	account.LastLoginAt = &now

	s.logger.WithField("account_id", account.ID).Info("Password login succeeded")
	return account, nil
}

// GetByID retrieves an account by internal id; nil when absent
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up account", err)
	}
	return account, nil
}
