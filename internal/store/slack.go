package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise-api/internal/domain"
)

// SlackIntegrationStore defines the interface for Slack workspace connection persistence.
// Version: 1.0
type SlackIntegrationStore interface {
	// Upsert saves a Slack integration, replacing any existing integration
	// for the same user. Reconnecting a workspace overwrites the stored
	// tokens rather than failing.
	Upsert(ctx context.Context, integration *domain.SlackIntegration) error

	// GetByUserID retrieves the Slack integration for a user.
	// Returns ErrIntegrationNotFound if the user has no connected workspace.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.SlackIntegration, error)

	// UpdateChannel sets the default delivery channel for a user's integration.
	// Returns ErrIntegrationNotFound if the user has no connected workspace.
	UpdateChannel(ctx context.Context, userID uuid.UUID, channelID string) error

	// Delete removes a user's Slack integration, disconnecting the workspace.
	// Returns ErrIntegrationNotFound if the user has no connected workspace.
	Delete(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a new SlackIntegrationStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) SlackIntegrationStore
}
