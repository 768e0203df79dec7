package domain

import "time"

// Account providers. ProviderPassword accounts use the email address as the
// provider subject; OAuth accounts use the issuer's stable subject id.
const (
	ProviderGoogle   = "google"
	ProviderPassword = "password"
)

// Account represents a user account. The pair (Provider, ProviderSub) is
// globally unique and immutable after creation.
type Account struct {
	ID            int64      `json:"id"`
	Provider      string     `json:"provider"`
	ProviderSub   string     `json:"provider_sub"`
	Email         *string    `json:"email"`
	EmailVerified bool       `json:"email_verified"`
	PasswordHash  *string    `json:"-"`
	Name          *string    `json:"name"`
	GivenName     *string    `json:"given_name"`
	FamilyName    *string    `json:"family_name"`
	Picture       *string    `json:"picture"`
	Locale        *string    `json:"locale"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastLoginAt   *time.Time `json:"last_login_at"`
}

// GoogleProfile represents the verified claims extracted from a Google ID token.
type GoogleProfile struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
}
