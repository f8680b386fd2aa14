package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftwise/draftwise-api/internal/config"
	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/mocks"
	"github.com/draftwise/draftwise-api/internal/service/auth"
)

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:                   "test-secret-that-is-32-chars-long!!",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

func newAuthHandler(
	userStore *mocks.MockUserStore,
	jwtService *mocks.MockJWTService,
	verifier *mocks.MockPasswordVerifier,
) *AuthHandler {
	return NewAuthHandler(userStore, jwtService, verifier, testAuthConfig())
}

func TestRegisterSuccess(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	jwtService := &mocks.MockJWTService{Token: "access-token", RefreshToken: "refresh-token"}
	handler := newAuthHandler(userStore, jwtService, &mocks.MockPasswordVerifier{ShouldSucceed: true})

	r := newJSONRequest(t, http.MethodPost, "/api/auth/register", RegisterRequest{
		Email:    "user@example.com",
		Password: "a-long-enough-password",
	})
	w := httptest.NewRecorder()

	handler.Register(w, r)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access-token", resp.AccessToken)
	assert.Equal(t, "refresh-token", resp.RefreshToken)
	assert.Equal(t, userStore.LastUserID, resp.UserID)
	assert.NotEmpty(t, resp.ExpiresAt)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	existing, err := domain.NewUser("user@example.com", "another-long-password")
	require.NoError(t, err)
	userStore.Users[existing.Email] = existing

	handler := newAuthHandler(userStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})

	r := newJSONRequest(t, http.MethodPost, "/api/auth/register", RegisterRequest{
		Email:    "user@example.com",
		Password: "a-long-enough-password",
	})
	w := httptest.NewRecorder()

	handler.Register(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exists")
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	handler := newAuthHandler(mocks.NewMockUserStore(), &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing email", RegisterRequest{Password: "a-long-enough-password"}},
		{"invalid email", RegisterRequest{Email: "nope", Password: "a-long-enough-password"}},
		{"short password", RegisterRequest{Email: "user@example.com", Password: "short"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := newJSONRequest(t, http.MethodPost, "/api/auth/register", tc.req)
			w := httptest.NewRecorder()

			handler.Register(w, r)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	user, err := domain.NewUser("user@example.com", "a-long-enough-password")
	require.NoError(t, err)
	user.HashedPassword = "stored-hash"
	userStore.Users[user.Email] = user

	verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
	jwtService := &mocks.MockJWTService{Token: "access-token", RefreshToken: "refresh-token"}
	handler := newAuthHandler(userStore, jwtService, verifier)

	r := newJSONRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    "user@example.com",
		Password: "a-long-enough-password",
	})
	w := httptest.NewRecorder()

	handler.Login(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "stored-hash", verifier.CompareCalledWith.HashedPassword)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, user.ID, resp.UserID)
	assert.Equal(t, "access-token", resp.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	user, err := domain.NewUser("user@example.com", "a-long-enough-password")
	require.NoError(t, err)
	userStore.Users[user.Email] = user

	handler := newAuthHandler(userStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{ShouldSucceed: false})

	r := newJSONRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    "user@example.com",
		Password: "wrong",
	})
	w := httptest.NewRecorder()

	handler.Login(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLoginUnknownEmailIndistinguishable(t *testing.T) {
	t.Parallel()

	handler := newAuthHandler(mocks.NewMockUserStore(), &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})

	r := newJSONRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    "unknown@example.com",
		Password: "whatever",
	})
	w := httptest.NewRecorder()

	handler.Login(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestRefreshTokenSuccess(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	jwtService := &mocks.MockJWTService{
		Token:        "new-access",
		RefreshToken: "new-refresh",
		Claims:       &auth.Claims{UserID: userID, TokenType: "refresh"},
	}
	handler := newAuthHandler(mocks.NewMockUserStore(), jwtService, &mocks.MockPasswordVerifier{})

	r := newJSONRequest(t, http.MethodPost, "/api/auth/refresh", RefreshTokenRequest{
		RefreshToken: "old-refresh",
	})
	w := httptest.NewRecorder()

	handler.RefreshToken(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp RefreshTokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new-access", resp.AccessToken)
	assert.Equal(t, "new-refresh", resp.RefreshToken)
	assert.NotEmpty(t, resp.ExpiresAt)
}

func TestRefreshTokenInvalid(t *testing.T) {
	t.Parallel()

	jwtService := &mocks.MockJWTService{ValidateErr: auth.ErrInvalidRefreshToken}
	handler := newAuthHandler(mocks.NewMockUserStore(), jwtService, &mocks.MockPasswordVerifier{})

	r := newJSONRequest(t, http.MethodPost, "/api/auth/refresh", RefreshTokenRequest{
		RefreshToken: "garbage",
	})
	w := httptest.NewRecorder()

	handler.RefreshToken(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid refresh token")
}
