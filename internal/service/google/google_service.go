package google

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	oauth2google "golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"studybuddy-api/internal/domain"
	"studybuddy-api/internal/service"
	"studybuddy-api/pkg/errors"
	"studybuddy-api/pkg/logger"
)

// exchangeTimeout bounds the server-to-server code exchange. The call is never
// retried: authorization codes are single-use and a blind retry would burn
// them.
const exchangeTimeout = 15 * time.Second

// knownIssuers are the only issuer values accepted in a verified ID token.
var knownIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// validateFunc matches idtoken.Validate; injectable for tests.
type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// Service implements the GoogleService interface
type Service struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	validate     validateFunc
	logger       *logger.Logger
}

// NewService creates a new Google credential service
func NewService(clientID, clientSecret string, logger *logger.Logger) service.GoogleService {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: exchangeTimeout,
		},
		validate: idtoken.Validate,
		logger:   logger,
	}
}

// ClientID returns the public OAuth client identifier
func (s *Service) ClientID() string {
	return s.clientID
}

// VerifyCredential validates a Google ID token and extracts profile claims.
// Signature and audience verification are delegated to the idtoken library;
// issuer and subject are re-checked here before anything is trusted.
func (s *Service) VerifyCredential(ctx context.Context, credential string) (*domain.GoogleProfile, error) {
	if s.clientID == "" {
		return nil, errors.NewInternalError("GOOGLE_CLIENT_ID not configured", nil)
	}

	payload, err := s.validate(ctx, credential, s.clientID)
	if err != nil {
		s.logger.WithError(err).Debug("Google ID token verification failed")
		return nil, errors.NewAuthenticationError("Invalid Google credential")
	}

	if !knownIssuers[payload.Issuer] {
		s.logger.WithField("issuer", payload.Issuer).Error("Google ID token has unexpected issuer")
		return nil, errors.NewAuthenticationError("Invalid token issuer")
	}

	if payload.Subject == "" {
		s.logger.Error("Google ID token missing subject")
		return nil, errors.NewAuthenticationError("Invalid token subject")
	}

	profile := &domain.GoogleProfile{
		Sub:           payload.Subject,
		Email:         getStringClaim(payload.Claims, "email"),
		EmailVerified: getBoolClaim(payload.Claims, "email_verified"),
		Name:          getStringClaim(payload.Claims, "name"),
		GivenName:     getStringClaim(payload.Claims, "given_name"),
		FamilyName:    getStringClaim(payload.Claims, "family_name"),
		Picture:       getStringClaim(payload.Claims, "picture"),
		Locale:        getStringClaim(payload.Claims, "locale"),
	}

	s.logger.WithFields(map[string]interface{}{
		"sub":            profile.Sub,
		"email_verified": profile.EmailVerified,
		"has_picture":    profile.Picture != "",
	}).Debug("Google ID token verified")

	return profile, nil
}

// ExchangeCode trades an authorization code for an ID token via Google's
// token endpoint.
func (s *Service) ExchangeCode(ctx context.Context, code, redirectURI string) (string, error) {
	if s.clientID == "" {
		return "", errors.NewInternalError("GOOGLE_CLIENT_ID not configured", nil)
	}
	if s.clientSecret == "" {
		return "", errors.NewInternalError("GOOGLE_CLIENT_SECRET not configured", nil)
	}

	conf := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		RedirectURL:  redirectURI,
		Endpoint:     oauth2google.Endpoint,
	}

	ctx, cancel := context.WithTimeout(ctx, exchangeTimeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if stderrors.As(err, &retrieveErr) {
			// Google answered with a non-success status: the code is bad,
			// expired, or already used.
			s.logger.WithField("status_code", retrieveErr.Response.StatusCode).Error("Google code exchange rejected")
			return "", errors.NewAuthenticationError("Google code exchange failed")
		}
		s.logger.WithError(err).Error("Failed to contact Google token endpoint")
		return "", errors.NewExternalError("Failed to contact Google token endpoint", err)
	}

	idToken, ok := tok.Extra("id_token").(string)
	if !ok || idToken == "" {
		s.logger.Error("Google token response missing id_token")
		return "", errors.NewAuthenticationError("Google response missing id_token")
	}

	return idToken, nil
}

func getStringClaim(claims map[string]interface{}, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

func getBoolClaim(claims map[string]interface{}, key string) bool {
	if val, ok := claims[key].(bool); ok {
		return val
	}
	return false
}
