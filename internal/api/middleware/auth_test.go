package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftwise/draftwise-api/internal/mocks"
	"github.com/draftwise/draftwise-api/internal/service/auth"
)

func runAuthenticated(t *testing.T, jwtService auth.JWTService, header string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	var gotUserID uuid.UUID
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, called = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()

	NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(w, r)
	return w, gotUserID, called
}

func TestAuthenticateValidToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	jwtService := &mocks.MockJWTService{Claims: &auth.Claims{UserID: userID}}

	w, gotUserID, called := runAuthenticated(t, jwtService, "Bearer valid-token")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
	assert.Equal(t, userID, gotUserID)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	t.Parallel()

	w, _, called := runAuthenticated(t, &mocks.MockJWTService{}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
	assert.Contains(t, w.Body.String(), "Authorization header required")
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	t.Parallel()

	w, _, called := runAuthenticated(t, &mocks.MockJWTService{}, "NotBearer token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
	assert.Contains(t, w.Body.String(), "Invalid authorization format")
}

func TestAuthenticateExpiredToken(t *testing.T) {
	t.Parallel()

	jwtService := &mocks.MockJWTService{ValidateErr: auth.ErrExpiredToken}
	w, _, called := runAuthenticated(t, jwtService, "Bearer expired")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestAuthenticateInvalidToken(t *testing.T) {
	t.Parallel()

	jwtService := &mocks.MockJWTService{ValidateErr: auth.ErrInvalidToken}
	w, _, called := runAuthenticated(t, jwtService, "Bearer garbage")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
	assert.Contains(t, w.Body.String(), "Invalid token")
}
