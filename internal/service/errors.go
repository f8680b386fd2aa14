package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for
// with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one
	// making the request. API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrSlackNotConnected indicates the user has no active Slack integration.
	// API layer should map this to HTTP 404 Not Found.
	ErrSlackNotConnected = errors.New("slack workspace is not connected")

	// ErrBriefNotReady indicates an article generation was requested before a
	// research brief was produced. API layer should map this to HTTP 409 Conflict.
	ErrBriefNotReady = errors.New("research brief is not ready")
)
