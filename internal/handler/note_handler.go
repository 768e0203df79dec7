package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"studybuddy-api/internal/container"
	"studybuddy-api/internal/domain"
	"studybuddy-api/internal/middleware"
	"studybuddy-api/pkg/errors"
)

// NoteHandler handles note requests
type NoteHandler struct {
	container *container.Container
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(container *container.Container) *NoteHandler {
	return &NoteHandler{
		container: container,
	}
}

// CreateNoteRequest carries a new note's content
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteListResponse wraps a page of notes
type NoteListResponse struct {
	Notes []*domain.Note `json:"notes"`
	Count int            `json:"count"`
}

// List handles GET /api/v1/notes
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	account := middleware.AccountFromContext(r.Context())
	if account == nil {
		writeError(w, logger, errors.NewAuthenticationError("Not authenticated"))
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	notes, err := h.container.GetNoteService().List(r.Context(), account.ID, limit, offset)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	if notes == nil {
		notes = []*domain.Note{}
	}

	writeJSON(w, logger, http.StatusOK, NoteListResponse{
		Notes: notes,
		Count: len(notes),
	})
}

// Create handles POST /api/v1/notes
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	account := middleware.AccountFromContext(r.Context())
	if account == nil {
		writeError(w, logger, errors.NewAuthenticationError("Not authenticated"))
		return
	}

	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, logger, errors.NewValidationError("Invalid request body", nil))
		return
	}

	note, err := h.container.GetNoteService().Create(r.Context(), account.ID, req.Title, req.Content)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusCreated, note)
}
