package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"studybuddy-api/internal/container"
	"studybuddy-api/internal/domain"
	"studybuddy-api/internal/middleware"
	"studybuddy-api/pkg/errors"
)

// AuthHandler handles authentication related requests
type AuthHandler struct {
	container *container.Container
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(container *container.Container) *AuthHandler {
	return &AuthHandler{
		container: container,
	}
}

// AuthResponse is returned by every endpoint that establishes a session
type AuthResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	User        *domain.Account `json:"user"`
}

// ClientIDResponse carries the public Google OAuth client identifier
type ClientIDResponse struct {
	ClientID string `json:"client_id"`
}

// GoogleLoginRequest carries a Google ID token obtained by the frontend
type GoogleLoginRequest struct {
	Credential string `json:"credential"`
}

// GoogleCodeRequest carries an authorization code for server-side exchange
type GoogleCodeRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}

// SignupRequest carries email/password registration data
type SignupRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name,omitempty"`
}

// LoginRequest carries email/password credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GetClientID handles GET /api/v1/auth/google/client-id
func (h *AuthHandler) GetClientID(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	clientID := h.container.GetGoogleService().ClientID()
	if clientID == "" {
		writeError(w, logger, errors.NewInternalError("Google client ID is not configured", nil))
		return
	}

	writeJSON(w, logger, http.StatusOK, ClientIDResponse{ClientID: clientID})
}

// GoogleLogin handles POST /api/v1/auth/google
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	ctx := r.Context()

	var req GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, logger, errors.NewValidationError("Invalid request body", nil))
		return
	}
	if strings.TrimSpace(req.Credential) == "" {
		writeError(w, logger, errors.NewValidationError("Credential is required", nil))
		return
	}

	profile, err := h.container.GetGoogleService().VerifyCredential(ctx, req.Credential)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	account, err := h.container.GetAccountService().ResolveGoogle(ctx, profile)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	h.storeProfileSnapshot(r, account)
	h.respondWithSession(w, r, account)
}

// GoogleCodeLogin handles POST /api/v1/auth/google/code
func (h *AuthHandler) GoogleCodeLogin(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	ctx := r.Context()

	var req GoogleCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, logger, errors.NewValidationError("Invalid request body", nil))
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, logger, errors.NewValidationError("Code is required", nil))
		return
	}
	if strings.TrimSpace(req.RedirectURI) == "" {
		writeError(w, logger, errors.NewValidationError("Redirect URI is required", nil))
		return
	}

	idToken, err := h.container.GetGoogleService().ExchangeCode(ctx, req.Code, req.RedirectURI)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	profile, err := h.container.GetGoogleService().VerifyCredential(ctx, idToken)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	account, err := h.container.GetAccountService().ResolveGoogle(ctx, profile)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	h.storeProfileSnapshot(r, account)
	h.respondWithSession(w, r, account)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	account := middleware.AccountFromContext(r.Context())
	if account == nil {
		writeError(w, logger, errors.NewAuthenticationError("Not authenticated"))
		return
	}

	writeJSON(w, logger, http.StatusOK, account)
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	ctx := r.Context()

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, logger, errors.NewValidationError("Invalid request body", nil))
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		writeError(w, logger, errors.NewValidationError("A valid email is required", nil))
		return
	}
	if req.Password == "" {
		writeError(w, logger, errors.NewValidationError("Password is required", nil))
		return
	}

	account, err := h.container.GetAccountService().SignupPassword(ctx, email, req.Password, req.Name)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	h.storeProfileSnapshot(r, account)
	h.respondWithSession(w, r, account)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, logger, errors.NewValidationError("Invalid request body", nil))
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, logger, errors.NewValidationError("Email and password are required", nil))
		return
	}

	account, err := h.container.GetAccountService().LoginPassword(ctx, req.Email, req.Password)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	h.respondWithSession(w, r, account)
}

// respondWithSession issues an access token for the account and writes the
// standard session response.
func (h *AuthHandler) respondWithSession(w http.ResponseWriter, r *http.Request, account *domain.Account) {
	logger := h.container.GetLogger()

	token, err := h.container.GetTokenService().Issue(account.ID)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	logger.WithField("account_id", account.ID).Info("Session established")

	writeJSON(w, logger, http.StatusOK, AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        account,
	})
}

// storeProfileSnapshot saves the latest login profile into the caller's
// key-value store under "user". Failure is logged and does not abort the login.
func (h *AuthHandler) storeProfileSnapshot(r *http.Request, account *domain.Account) {
	logger := h.container.GetLogger()

	snapshot := map[string]interface{}{
		"id":             account.ID,
		"provider":       account.Provider,
		"email":          account.Email,
		"email_verified": account.EmailVerified,
		"name":           account.Name,
		"picture":        account.Picture,
	}

	if _, err := h.container.GetUserDataService().Put(r.Context(), account.ID, "user", snapshot); err != nil {
		logger.WithError(err).Warn("Failed to store login profile snapshot")
	}
}
