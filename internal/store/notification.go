package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise-api/internal/domain"
)

// NotificationStore defines the interface for notification data persistence.
// Version: 1.0
type NotificationStore interface {
	// Create saves a new notification to the store.
	// Returns validation errors if the notification data is invalid.
	Create(ctx context.Context, notification *domain.Notification) error

	// GetByID retrieves a notification by its unique ID.
	// Returns ErrNotificationNotFound if the notification does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)

	// GetByUserID retrieves the most recent notifications for a user, newest
	// first, up to limit entries. A limit <= 0 applies a default page size.
	GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error)

	// Update persists the current delivery state of an existing notification.
	// Returns ErrNotificationNotFound if the notification does not exist.
	Update(ctx context.Context, notification *domain.Notification) error

	// WithTx returns a new NotificationStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) NotificationStore
}
