// Package api contains the HTTP handlers for the service: authentication,
// article generation, Slack integration, notifications, and triggers.
// Handlers decode and validate requests, delegate to the service layer, and
// translate service errors into sanitized HTTP responses.
package api
