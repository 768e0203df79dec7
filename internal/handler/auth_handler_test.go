package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"studybuddy-api/internal/domain"
	"studybuddy-api/internal/middleware"
	"studybuddy-api/pkg/errors"
)

func decodeAuthResponse(t *testing.T, rec *httptest.ResponseRecorder) AuthResponse {
	t.Helper()
	var resp AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestGetClientID(t *testing.T) {
	c, mocks := newTestContainer(t)
	mocks.Google.On("ClientID").Return("test-client-id.apps.googleusercontent.com")

	handler := NewAuthHandler(c)
	rec := httptest.NewRecorder()
	handler.GetClientID(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/client-id", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ClientIDResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "test-client-id.apps.googleusercontent.com", resp.ClientID)
}

func TestGetClientIDNotConfigured(t *testing.T) {
	c, mocks := newTestContainer(t)
	mocks.Google.On("ClientID").Return("")

	handler := NewAuthHandler(c)
	rec := httptest.NewRecorder()
	handler.GetClientID(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/client-id", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGoogleLogin(t *testing.T) {
	c, mocks := newTestContainer(t)
	handler := NewAuthHandler(c)

	email := "alice@example.com"
	profile := &domain.GoogleProfile{Sub: "google-sub-1", Email: email, EmailVerified: true}
	account := &domain.Account{ID: 7, Provider: domain.ProviderGoogle, ProviderSub: "google-sub-1", Email: &email}

	mocks.Google.On("VerifyCredential", mock.Anything, "id-token").Return(profile, nil)
	mocks.Account.On("ResolveGoogle", mock.Anything, profile).Return(account, nil)
	mocks.UserData.On("Put", mock.Anything, int64(7), "user", mock.Anything).Return(&domain.UserDataValue{Key: "user"}, nil)
	mocks.Token.On("Issue", int64(7)).Return("signed-token", nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", strings.NewReader(`{"credential":"id-token"}`))
	handler.GoogleLogin(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeAuthResponse(t, rec)
	assert.Equal(t, "signed-token", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	require.NotNil(t, resp.User)
	assert.Equal(t, int64(7), resp.User.ID)

	mocks.UserData.AssertCalled(t, "Put", mock.Anything, int64(7), "user", mock.Anything)
}

func TestGoogleLoginBadCredential(t *testing.T) {
	c, mocks := newTestContainer(t)
	handler := NewAuthHandler(c)

	mocks.Google.On("VerifyCredential", mock.Anything, "forged").Return(nil, errors.NewAuthenticationError("Invalid Google credential"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", strings.NewReader(`{"credential":"forged"}`))
	handler.GoogleLogin(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mocks.Account.AssertNotCalled(t, "ResolveGoogle", mock.Anything, mock.Anything)
}

func TestGoogleLoginInvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed JSON", body: `{not json`},
		{name: "missing credential", body: `{}`},
		{name: "blank credential", body: `{"credential":"  "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContainer(t)
			handler := NewAuthHandler(c)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", strings.NewReader(tt.body))
			handler.GoogleLogin(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGoogleCodeLogin(t *testing.T) {
	c, mocks := newTestContainer(t)
	handler := NewAuthHandler(c)

	profile := &domain.GoogleProfile{Sub: "google-sub-2"}
	account := &domain.Account{ID: 9, Provider: domain.ProviderGoogle, ProviderSub: "google-sub-2"}

	mocks.Google.On("ExchangeCode", mock.Anything, "auth-code", "https://app.example.com/callback").Return("exchanged-id-token", nil)
	mocks.Google.On("VerifyCredential", mock.Anything, "exchanged-id-token").Return(profile, nil)
	mocks.Account.On("ResolveGoogle", mock.Anything, profile).Return(account, nil)
	mocks.UserData.On("Put", mock.Anything, int64(9), "user", mock.Anything).Return(&domain.UserDataValue{Key: "user"}, nil)
	mocks.Token.On("Issue", int64(9)).Return("signed-token", nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google/code",
		strings.NewReader(`{"code":"auth-code","redirect_uri":"https://app.example.com/callback"}`))
	handler.GoogleCodeLogin(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "signed-token", decodeAuthResponse(t, rec).AccessToken)
}

func TestGoogleCodeLoginExchangeRejected(t *testing.T) {
	c, mocks := newTestContainer(t)
	handler := NewAuthHandler(c)

	mocks.Google.On("ExchangeCode", mock.Anything, "used-code", "https://app.example.com/callback").
		Return("", errors.NewAuthenticationError("Google code exchange failed"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google/code",
		strings.NewReader(`{"code":"used-code","redirect_uri":"https://app.example.com/callback"}`))
	handler.GoogleCodeLogin(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mocks.Google.AssertNotCalled(t, "VerifyCredential", mock.Anything, mock.Anything)
}

func TestGoogleCodeLoginInvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed JSON", body: `{not json`},
		{name: "missing code", body: `{"redirect_uri":"https://app.example.com/callback"}`},
		{name: "missing redirect_uri", body: `{"code":"auth-code"}`},
		{name: "blank redirect_uri", body: `{"code":"auth-code","redirect_uri":"  "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mocks := newTestContainer(t)
			handler := NewAuthHandler(c)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google/code", strings.NewReader(tt.body))
			handler.GoogleCodeLogin(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			mocks.Google.AssertNotCalled(t, "ExchangeCode", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestMe(t *testing.T) {
	c, _ := newTestContainer(t)
	handler := NewAuthHandler(c)

	email := "bob@example.com"
	account := &domain.Account{ID: 3, Provider: domain.ProviderPassword, ProviderSub: email, Email: &email}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.AccountContextKey, account))

	rec := httptest.NewRecorder()
	handler.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Account
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, int64(3), got.ID)
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestSignup(t *testing.T) {
	c, mocks := newTestContainer(t)
	handler := NewAuthHandler(c)

	email := "carol@example.com"
	name := "Carol"
	account := &domain.Account{ID: 11, Provider: domain.ProviderPassword, ProviderSub: email, Email: &email, Name: &name}

	mocks.Account.On("SignupPassword", mock.Anything, email, "s3cretpass", mock.Anything).Return(account, nil)
	mocks.UserData.On("Put", mock.Anything, int64(11), "user", mock.Anything).Return(&domain.UserDataValue{Key: "user"}, nil)
	mocks.Token.On("Issue", int64(11)).Return("signed-token", nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup",
		strings.NewReader(`{"email":"carol@example.com","password":"s3cretpass","name":"Carol"}`))
	handler.Signup(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeAuthResponse(t, rec)
	assert.Equal(t, "signed-token", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	mocks.UserData.AssertCalled(t, "Put", mock.Anything, int64(11), "user", mock.Anything)
}

func TestSignupDuplicate(t *testing.T) {
	c, mocks := newTestContainer(t)
	handler := NewAuthHandler(c)

	mocks.Account.On("SignupPassword", mock.Anything, "taken@example.com", "s3cretpass", mock.Anything).
		Return(nil, errors.NewConflictError("Account already exists"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup",
		strings.NewReader(`{"email":"taken@example.com","password":"s3cretpass"}`))
	handler.Signup(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mocks.Token.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"password":"s3cretpass"}`},
		{name: "email without at sign", body: `{"email":"not-an-email","password":"s3cretpass"}`},
		{name: "missing password", body: `{"email":"dave@example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mocks := newTestContainer(t)
			handler := NewAuthHandler(c)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(tt.body))
			handler.Signup(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			mocks.Account.AssertNotCalled(t, "SignupPassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestLogin(t *testing.T) {
	c, mocks := newTestContainer(t)
	handler := NewAuthHandler(c)

	email := "erin@example.com"
	account := &domain.Account{ID: 5, Provider: domain.ProviderPassword, ProviderSub: email, Email: &email}

	mocks.Account.On("LoginPassword", mock.Anything, email, "s3cretpass").Return(account, nil)
	mocks.Token.On("Issue", int64(5)).Return("signed-token", nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"erin@example.com","password":"s3cretpass"}`))
	handler.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "signed-token", decodeAuthResponse(t, rec).AccessToken)

	// Password login does not rewrite the profile snapshot
	mocks.UserData.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginBadCredentials(t *testing.T) {
	c, mocks := newTestContainer(t)
	handler := NewAuthHandler(c)

	mocks.Account.On("LoginPassword", mock.Anything, "erin@example.com", "wrong").
		Return(nil, errors.NewAuthenticationError("Invalid email or password"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"erin@example.com","password":"wrong"}`))
	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mocks.Token.AssertNotCalled(t, "Issue", mock.Anything)
}
