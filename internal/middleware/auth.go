package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"studybuddy-api/internal/domain"
	"studybuddy-api/internal/service"
	"studybuddy-api/pkg/errors"
	"studybuddy-api/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// AccountContextKey is the key for the authenticated account in context
	AccountContextKey ContextKey = "account"
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
)

// AccountFromContext returns the authenticated account stored by the Auth
// middleware, or nil when the request is unauthenticated.
func AccountFromContext(ctx context.Context) *domain.Account {
	account, _ := ctx.Value(AccountContextKey).(*domain.Account)
	return account
}

// Auth creates a bearer-token authentication middleware. Every rejection is a
// generic 401; the reason (missing header, bad signature, expiry, deleted
// account) is logged but never surfaced.
func Auth(tokens service.TokenService, accounts service.AccountService, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeErrorResponse(w, errors.NewAuthenticationError("Not authenticated"), logger)
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeErrorResponse(w, errors.NewAuthenticationError("Not authenticated"), logger)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == "" {
				writeErrorResponse(w, errors.NewAuthenticationError("Not authenticated"), logger)
				return
			}

			accountID, err := tokens.Validate(token)
			if err != nil {
				logger.WithError(err).Debug("Bearer token validation failed")
				writeErrorResponse(w, errors.NewAuthenticationError("Invalid token"), logger)
				return
			}

			ctx := r.Context()
			account, err := accounts.GetByID(ctx, accountID)
			if err != nil {
				logger.WithError(err).Error("Failed to load account for valid token")
				writeErrorResponse(w, errors.NewInternalError("Failed to load account", err), logger)
				return
			}
			if account == nil {
				logger.WithField("account_id", accountID).Debug("Valid token for missing account")
				writeErrorResponse(w, errors.NewAuthenticationError("Invalid token"), logger)
				return
			}

			ctx = context.WithValue(ctx, AccountContextKey, account)
			r = r.WithContext(ctx)

			logger.WithField("account_id", account.ID).Debug("Request authenticated")

			next.ServeHTTP(w, r)
		})
	}
}

// RequestID creates a middleware that adds a unique request ID to each request
func RequestID(logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := generateRequestID()

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			r = r.WithContext(ctx)

			w.Header().Set("X-Request-ID", requestID)

			logger.WithField("request_id", requestID).Debug("Request received")

			next.ServeHTTP(w, r)
		})
	}
}

// generateRequestID generates a simple request ID
func generateRequestID() string {
	return fmt.Sprintf("%d-%d", time.Now().Unix(), time.Now().Nanosecond())
}

// writeErrorResponse writes an error response to the client
func writeErrorResponse(w http.ResponseWriter, appErr *errors.AppError, logger *logger.Logger) {
	logger.WithError(appErr).Debug("Request rejected")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)

	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.WithError(err).Error("Failed to encode error response")
	}
}
