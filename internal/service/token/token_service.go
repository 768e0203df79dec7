package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"studybuddy-api/internal/service"
	"studybuddy-api/pkg/errors"
	"studybuddy-api/pkg/logger"
)

// tokenType tags access tokens so other signed artifacts cannot be replayed
// as bearer credentials.
const tokenType = "access"

// Service implements the TokenService interface with HS256-signed JWTs
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger *logger.Logger
}

// NewService creates a new token service
func NewService(secret string, ttl time.Duration, logger *logger.Logger) service.TokenService {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Issue mints a signed access token bound to the account id
func (s *Service) Issue(accountID int64) (string, error) {
	now := s.now().UTC()

	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(accountID, 10),
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
		"typ": tokenType,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.NewInternalError("Failed to sign access token", err)
	}

	s.logger.WithField("account_id", accountID).Debug("Issued access token")
	return signed, nil
}

// Validate checks a token and returns the account id it is bound to. Every
// failure collapses to the same authentication error so callers cannot tell
// which check rejected the token.
func (s *Service) Validate(tokenString string) (int64, error) {
	parsed, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !parsed.Valid {
		s.logger.WithError(err).Debug("Token validation failed")
		return 0, errors.NewAuthenticationError("Invalid or expired token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.NewAuthenticationError("Invalid or expired token")
	}

	if typ, _ := claims["typ"].(string); typ != tokenType {
		s.logger.WithField("typ", claims["typ"]).Debug("Rejected token with wrong type tag")
		return 0, errors.NewAuthenticationError("Invalid or expired token")
	}

	sub, _ := claims["sub"].(string)
	accountID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		s.logger.Debug("Rejected token with non-numeric subject")
		return 0, errors.NewAuthenticationError("Invalid or expired token")
	}

	return accountID, nil
}
