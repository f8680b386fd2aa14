package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/service"
	"github.com/draftwise/draftwise-api/internal/service/auth"
	"github.com/draftwise/draftwise-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"expired refresh token", auth.ErrExpiredRefreshToken, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"article not found", service.ErrArticleNotFound, http.StatusNotFound},
		{"store article not found", store.ErrArticleNotFound, http.StatusNotFound},
		{"slack not connected", service.ErrSlackNotConnected, http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"brief not ready", service.ErrBriefNotReady, http.StatusConflict},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"invalid oauth state", service.ErrInvalidOAuthState, http.StatusBadRequest},
		{"no channel", service.ErrNoChannelConfigured, http.StatusBadRequest},
		{"unsupported event", service.ErrUnsupportedEvent, http.StatusBadRequest},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest},
		{"slack not configured", service.ErrSlackNotConfigured, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestMapErrorToStatusCodeWrapped(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("get article: %w", service.ErrNotOwned)
	assert.Equal(t, http.StatusForbidden, MapErrorToStatusCode(wrapped))

	viaServiceError := service.NewArticleServiceError("get", "lookup failed", store.ErrArticleNotFound)
	assert.Equal(t, http.StatusNotFound, MapErrorToStatusCode(viaServiceError))
}

func TestGetSafeErrorMessageNeverEchoesInternals(t *testing.T) {
	t.Parallel()

	internal := errors.New("pq: duplicate key value violates unique constraint users_email_key")
	msg := GetSafeErrorMessage(internal)
	assert.Equal(t, "An unexpected error occurred", msg)

	assert.Equal(t, "Article not found", GetSafeErrorMessage(service.ErrArticleNotFound))
	assert.Equal(t, "You do not own this article", GetSafeErrorMessage(service.ErrNotOwned))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag",
	)
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
