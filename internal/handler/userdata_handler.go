package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studybuddy-api/internal/container"
	"studybuddy-api/internal/middleware"
	"studybuddy-api/pkg/errors"
)

// UserDataHandler handles the per-account key-value store
type UserDataHandler struct {
	container *container.Container
}

// NewUserDataHandler creates a new user data handler
func NewUserDataHandler(container *container.Container) *UserDataHandler {
	return &UserDataHandler{
		container: container,
	}
}

// PutUserDataRequest carries an arbitrary JSON value to store
type PutUserDataRequest struct {
	Value interface{} `json:"value"`
}

// Get handles GET /api/v1/user-data/{key}
func (h *UserDataHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	account := middleware.AccountFromContext(r.Context())
	if account == nil {
		writeError(w, logger, errors.NewAuthenticationError("Not authenticated"))
		return
	}

	key := chi.URLParam(r, "key")
	if key == "" {
		writeError(w, logger, errors.NewValidationError("Key is required", nil))
		return
	}

	value, err := h.container.GetUserDataService().Get(r.Context(), account.ID, key)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, value)
}

// Put handles PUT /api/v1/user-data/{key}
func (h *UserDataHandler) Put(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	account := middleware.AccountFromContext(r.Context())
	if account == nil {
		writeError(w, logger, errors.NewAuthenticationError("Not authenticated"))
		return
	}

	key := chi.URLParam(r, "key")
	if key == "" {
		writeError(w, logger, errors.NewValidationError("Key is required", nil))
		return
	}

	var req PutUserDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, logger, errors.NewValidationError("Invalid request body", nil))
		return
	}

	value, err := h.container.GetUserDataService().Put(r.Context(), account.ID, key, req.Value)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, value)
}
