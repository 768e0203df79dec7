package handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"studybuddy-api/internal/config"
	"studybuddy-api/internal/container"
	"studybuddy-api/internal/domain"
	"studybuddy-api/internal/service"
	"studybuddy-api/pkg/logger"
)

// MockTokenService is a testify mock of service.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(accountID int64) (string, error) {
	args := m.Called(accountID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Validate(token string) (int64, error) {
	args := m.Called(token)
	return args.Get(0).(int64), args.Error(1)
}

// MockGoogleService is a testify mock of service.GoogleService
type MockGoogleService struct {
	mock.Mock
}

func (m *MockGoogleService) ClientID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockGoogleService) VerifyCredential(ctx context.Context, credential string) (*domain.GoogleProfile, error) {
	args := m.Called(ctx, credential)
	if profile := args.Get(0); profile != nil {
		return profile.(*domain.GoogleProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGoogleService) ExchangeCode(ctx context.Context, code, redirectURI string) (string, error) {
	args := m.Called(ctx, code, redirectURI)
	return args.String(0), args.Error(1)
}

// MockAccountService is a testify mock of service.AccountService
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ResolveGoogle(ctx context.Context, profile *domain.GoogleProfile) (*domain.Account, error) {
	args := m.Called(ctx, profile)
	if acc := args.Get(0); acc != nil {
		return acc.(*domain.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountService) SignupPassword(ctx context.Context, email, password string, name *string) (*domain.Account, error) {
	args := m.Called(ctx, email, password, name)
	if acc := args.Get(0); acc != nil {
		return acc.(*domain.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountService) LoginPassword(ctx context.Context, email, password string) (*domain.Account, error) {
	args := m.Called(ctx, email, password)
	if acc := args.Get(0); acc != nil {
		return acc.(*domain.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountService) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if acc := args.Get(0); acc != nil {
		return acc.(*domain.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockNoteService is a testify mock of service.NoteService
type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) List(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Note, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if notes := args.Get(0); notes != nil {
		return notes.([]*domain.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNoteService) Create(ctx context.Context, accountID int64, title, content string) (*domain.Note, error) {
	args := m.Called(ctx, accountID, title, content)
	if note := args.Get(0); note != nil {
		return note.(*domain.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserDataService is a testify mock of service.UserDataService
type MockUserDataService struct {
	mock.Mock
}

func (m *MockUserDataService) Get(ctx context.Context, accountID int64, key string) (*domain.UserDataValue, error) {
	args := m.Called(ctx, accountID, key)
	if value := args.Get(0); value != nil {
		return value.(*domain.UserDataValue), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserDataService) Put(ctx context.Context, accountID int64, key string, value interface{}) (*domain.UserDataValue, error) {
	args := m.Called(ctx, accountID, key, value)
	if v := args.Get(0); v != nil {
		return v.(*domain.UserDataValue), args.Error(1)
	}
	return nil, args.Error(1)
}

// testMocks bundles the mocked services wired into a test container
type testMocks struct {
	Token    *MockTokenService
	Google   *MockGoogleService
	Account  *MockAccountService
	Note     *MockNoteService
	UserData *MockUserDataService
}

func newTestContainer(t *testing.T) (*container.Container, *testMocks) {
	t.Helper()

	log, err := logger.New("error")
	require.NoError(t, err)

	mocks := &testMocks{
		Token:    &MockTokenService{},
		Google:   &MockGoogleService{},
		Account:  &MockAccountService{},
		Note:     &MockNoteService{},
		UserData: &MockUserDataService{},
	}

	c := &container.Container{
		Config: &config.Config{
			AppName:     "StudyBuddy API",
			Environment: "test",
		},
		Logger: log,
		Services: &service.Services{
			Token:    mocks.Token,
			Google:   mocks.Google,
			Account:  mocks.Account,
			Note:     mocks.Note,
			UserData: mocks.UserData,
		},
	}

	return c, mocks
}
