package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/draftwise/draftwise-api/internal/api/shared"
	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/service"
	"github.com/draftwise/draftwise-api/internal/service/auth"
	"github.com/draftwise/draftwise-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrArticleNotFound),
		errors.Is(err, service.ErrSlackNotConnected),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrBriefNotReady),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, service.ErrInvalidOAuthState),
		errors.Is(err, service.ErrNoChannelConfigured),
		errors.Is(err, service.ErrUnsupportedEvent),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Feature disabled by configuration
	case errors.Is(err, service.ErrSlackNotConfigured):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the error.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this article"

	case errors.Is(err, service.ErrArticleNotFound),
		errors.Is(err, store.ErrArticleNotFound):
		return "Article not found"

	case errors.Is(err, service.ErrSlackNotConnected),
		errors.Is(err, store.ErrIntegrationNotFound):
		return "Slack workspace not connected"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrNotificationNotFound):
		return "Notification not found"

	case errors.Is(err, service.ErrBriefNotReady):
		return "Article does not have a research brief yet"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, service.ErrInvalidOAuthState):
		return "Invalid or expired OAuth state"

	case errors.Is(err, service.ErrNoChannelConfigured):
		return "No Slack channel configured"

	case errors.Is(err, service.ErrUnsupportedEvent):
		return "Unsupported event type"

	case errors.Is(err, service.ErrSlackNotConfigured):
		return "Slack integration is not configured"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid request data"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and sanitized message,
// writes the error envelope, and logs the (redacted) underlying error.
// An empty userMessage falls back to the mapped safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}

// SanitizeValidationError converts validator errors into user-friendly
// messages without echoing submitted values back to the client.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly messages.
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "url":
		return "invalid URL"
	default:
		return "validation failed"
	}
}
