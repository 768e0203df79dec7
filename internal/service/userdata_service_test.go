package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"studybuddy-api/internal/domain"
	apperrors "studybuddy-api/pkg/errors"
	"studybuddy-api/pkg/logger"
)

// MockUserDataRepository is a testify mock of repository.UserDataRepository
type MockUserDataRepository struct {
	mock.Mock
}

func (m *MockUserDataRepository) Get(ctx context.Context, accountID int64, key string) (*domain.UserDataEntry, error) {
	args := m.Called(ctx, accountID, key)
	if entry := args.Get(0); entry != nil {
		return entry.(*domain.UserDataEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserDataRepository) Upsert(ctx context.Context, accountID int64, key, valueJSON string) (*domain.UserDataEntry, error) {
	args := m.Called(ctx, accountID, key, valueJSON)
	if entry := args.Get(0); entry != nil {
		return entry.(*domain.UserDataEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestUserDataService(t *testing.T) (UserDataService, *MockUserDataRepository) {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)

	repo := &MockUserDataRepository{}
	return NewUserDataService(repo, log), repo
}

func TestUserDataGet(t *testing.T) {
	svc, repo := newTestUserDataService(t)

	updated := time.Now().UTC()
	repo.On("Get", mock.Anything, int64(5), "prefs").Return(&domain.UserDataEntry{
		AccountID: 5,
		Key:       "prefs",
		ValueJSON: `{"a":1}`,
		UpdatedAt: updated,
	}, nil)

	got, err := svc.Get(context.Background(), 5, "prefs")
	require.NoError(t, err)

	assert.Equal(t, "prefs", got.Key)
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, got.Value)
	assert.Equal(t, updated, got.UpdatedAt)
}

func TestUserDataGetMissingKey(t *testing.T) {
	svc, repo := newTestUserDataService(t)

	repo.On("Get", mock.Anything, int64(5), "missing-key").Return(nil, nil)

	_, err := svc.Get(context.Background(), 5, "missing-key")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestUserDataGetCorruptValueReturnsNull(t *testing.T) {
	svc, repo := newTestUserDataService(t)

	repo.On("Get", mock.Anything, int64(5), "prefs").Return(&domain.UserDataEntry{
		AccountID: 5,
		Key:       "prefs",
		ValueJSON: `{not json`,
	}, nil)

	got, err := svc.Get(context.Background(), 5, "prefs")
	require.NoError(t, err)
	assert.Nil(t, got.Value)
}

func TestUserDataPut(t *testing.T) {
	svc, repo := newTestUserDataService(t)

	repo.On("Upsert", mock.Anything, int64(5), "prefs", `{"a":1}`).Return(&domain.UserDataEntry{
		AccountID: 5,
		Key:       "prefs",
		ValueJSON: `{"a":1}`,
		UpdatedAt: time.Now().UTC(),
	}, nil)

	got, err := svc.Put(context.Background(), 5, "prefs", map[string]interface{}{"a": 1})
	require.NoError(t, err)

	assert.Equal(t, "prefs", got.Key)
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, got.Value)
	repo.AssertExpectations(t)
}

func TestUserDataPutReplacesValue(t *testing.T) {
	svc, repo := newTestUserDataService(t)

	repo.On("Upsert", mock.Anything, int64(5), "prefs", `{"a":2}`).Return(&domain.UserDataEntry{
		AccountID: 5,
		Key:       "prefs",
		ValueJSON: `{"a":2}`,
		UpdatedAt: time.Now().UTC(),
	}, nil)

	got, err := svc.Put(context.Background(), 5, "prefs", map[string]interface{}{"a": 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": float64(2)}, got.Value)
}

func TestUserDataPutUnserializableValue(t *testing.T) {
	svc, _ := newTestUserDataService(t)

	_, err := svc.Put(context.Background(), 5, "prefs", func() {})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestUserDataEmptyKey(t *testing.T) {
	svc, _ := newTestUserDataService(t)

	_, err := svc.Get(context.Background(), 5, "")
	assert.Error(t, err)

	_, err = svc.Put(context.Background(), 5, "", "value")
	assert.Error(t, err)
}
