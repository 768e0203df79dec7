package service

import (
	"context"
	"encoding/json"

	"studybuddy-api/internal/domain"
	"studybuddy-api/internal/repository"
	"studybuddy-api/pkg/errors"
	"studybuddy-api/pkg/logger"
)

// userDataService implements the UserDataService interface
type userDataService struct {
	entries repository.UserDataRepository
	logger  *logger.Logger
}

// NewUserDataService creates a new user data service
func NewUserDataService(entries repository.UserDataRepository, logger *logger.Logger) UserDataService {
	return &userDataService{
		entries: entries,
		logger:  logger,
	}
}

// Get retrieves the value stored under key for the caller
func (s *userDataService) Get(ctx context.Context, accountID int64, key string) (*domain.UserDataValue, error) {
	if key == "" {
		return nil, errors.NewValidationError("Key required", nil)
	}

	entry, err := s.entries.Get(ctx, accountID, key)
	if err != nil {
		s.logger.WithError(err).Error("Failed to read user data entry")
		return nil, errors.NewInternalError("Failed to read user data", err)
	}
	if entry == nil {
		return nil, errors.NewNotFoundError("Not found")
	}

	return s.decode(entry), nil
}

// Put stores value under key for the caller, replacing any previous value
func (s *userDataService) Put(ctx context.Context, accountID int64, key string, value interface{}) (*domain.UserDataValue, error) {
	if key == "" {
		return nil, errors.NewValidationError("Key required", nil)
	}

	valueJSON, err := json.Marshal(value)
	if err != nil {
		return nil, errors.NewValidationError("Value is not JSON-serializable", nil)
	}

	entry, err := s.entries.Upsert(ctx, accountID, key, string(valueJSON))
	if err != nil {
		s.logger.WithError(err).Error("Failed to upsert user data entry")
		return nil, errors.NewInternalError("Failed to write user data", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"account_id": accountID,
		"key":        key,
	}).Debug("User data entry written")

	return s.decode(entry), nil
}

// decode unmarshals the stored JSON. A corrupt row decodes to a null value
// instead of failing the read.
func (s *userDataService) decode(entry *domain.UserDataEntry) *domain.UserDataValue {
	var value interface{}
	if err := json.Unmarshal([]byte(entry.ValueJSON), &value); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"account_id": entry.AccountID,
			"key":        entry.Key,
		}).Warn("Stored user data is not valid JSON, returning null")
		value = nil
	}

	return &domain.UserDataValue{
		Key:       entry.Key,
		Value:     value,
		UpdatedAt: entry.UpdatedAt,
	}
}
