package service

import (
	"context"
	"strings"

	"studybuddy-api/internal/domain"
	"studybuddy-api/internal/repository"
	"studybuddy-api/pkg/errors"
	"studybuddy-api/pkg/logger"
)

const (
	defaultNoteListLimit = 50
	maxNoteListLimit     = 100
)

// noteService implements the NoteService interface
type noteService struct {
	notes  repository.NoteRepository
	logger *logger.Logger
}

// NewNoteService creates a new note service
func NewNoteService(notes repository.NoteRepository, logger *logger.Logger) NoteService {
	return &noteService{
		notes:  notes,
		logger: logger,
	}
}

// List retrieves the caller's notes, newest first
func (s *noteService) List(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Note, error) {
	if limit <= 0 || limit > maxNoteListLimit {
		limit = defaultNoteListLimit
	}
	if offset < 0 {
		offset = 0
	}

	notes, err := s.notes.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list notes")
		return nil, errors.NewInternalError("Failed to list notes", err)
	}

	return notes, nil
}

// Create stores a new note for the caller
func (s *noteService) Create(ctx context.Context, accountID int64, title, content string) (*domain.Note, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" || len(title) > domain.NoteTitleMaxLen {
		return nil, errors.NewValidationError("Title must be between 1 and 200 characters", nil)
	}
	if content == "" || len(content) > domain.NoteContentMaxLen {
		return nil, errors.NewValidationError("Content must be between 1 and 4000 characters", nil)
	}

	note, err := s.notes.Create(ctx, accountID, title, content)
	if err != nil {
		s.logger.WithError(err).Error("Failed to create note")
		return nil, errors.NewInternalError("Failed to create note", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"account_id": accountID,
		"note_id":    note.ID,
	}).Debug("Note created")

	return note, nil
}
