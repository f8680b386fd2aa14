package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/platform/logger"
	"github.com/draftwise/draftwise-api/internal/store"
)

// defaultNotificationPageSize bounds GetByUserID when no limit is given.
const defaultNotificationPageSize = 20

// PostgresNotificationStore implements the store.NotificationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresNotificationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNotificationStore creates a new PostgreSQL implementation of the
// NotificationStore interface. If logger is nil, a default logger will be used.
func NewPostgresNotificationStore(db store.DBTX, logger *slog.Logger) *PostgresNotificationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresNotificationStore{
		db:     db,
		logger: logger.With(slog.String("component", "notification_store")),
	}
}

// Ensure PostgresNotificationStore implements store.NotificationStore interface
var _ store.NotificationStore = (*PostgresNotificationStore)(nil)

const notificationColumns = `id, user_id, notification_type, message_content, channel_id,
	slack_message_id, delivery_status, priority, metadata, error_message,
	retry_count, created_at, sent_at, delivered_at`

// Create implements store.NotificationStore.Create
// Returns store.ErrInvalidEntity if the user ID doesn't exist (foreign key violation).
func (s *PostgresNotificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := notification.Validate(); err != nil {
		log.Warn("notification validation failed during create",
			slog.String("error", err.Error()),
			slog.String("notification_id", notification.ID.String()))
		return err
	}

	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		notification.ID,
		notification.UserID,
		notification.Type,
		notification.Message,
		notification.ChannelID,
		notification.SlackMessageID,
		notification.Status,
		notification.Priority,
		nullableJSON(notification.Metadata),
		notification.ErrorMessage,
		notification.RetryCount,
		notification.CreatedAt,
		notification.SentAt,
		notification.DeliveredAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during notification creation",
				slog.String("notification_id", notification.ID.String()),
				slog.String("user_id", notification.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, notification.UserID)
		}

		log.Error("failed to create notification",
			slog.String("error", err.Error()),
			slog.String("notification_id", notification.ID.String()))
		return err
	}

	log.Info("notification created successfully",
		slog.String("notification_id", notification.ID.String()),
		slog.String("user_id", notification.UserID.String()),
		slog.String("type", string(notification.Type)))
	return nil
}

// GetByID implements store.NotificationStore.GetByID
// Returns store.ErrNotificationNotFound if the notification does not exist.
func (s *PostgresNotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	notification, err := scanNotification(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("notification not found", slog.String("notification_id", id.String()))
			return nil, store.ErrNotificationNotFound
		}
		log.Error("failed to get notification by ID",
			slog.String("error", err.Error()),
			slog.String("notification_id", id.String()))
		return nil, err
	}

	return notification, nil
}

// GetByUserID implements store.NotificationStore.GetByUserID
// Returns an empty slice when the user has no notifications.
func (s *PostgresNotificationStore) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = defaultNotificationPageSize
	}

	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		log.Error("failed to query notifications by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	notifications := []*domain.Notification{}
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			log.Error("failed to scan notification row",
				slog.String("error", err.Error()))
			return nil, err
		}
		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("found notifications for user",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(notifications)))
	return notifications, nil
}

// Update implements store.NotificationStore.Update
// Returns store.ErrNotificationNotFound if the notification does not exist.
func (s *PostgresNotificationStore) Update(ctx context.Context, notification *domain.Notification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := notification.Validate(); err != nil {
		log.Warn("notification validation failed during update",
			slog.String("error", err.Error()),
			slog.String("notification_id", notification.ID.String()))
		return err
	}

	query := `
		UPDATE notifications
		SET channel_id = $1, slack_message_id = $2, delivery_status = $3,
			error_message = $4, retry_count = $5, sent_at = $6, delivered_at = $7
		WHERE id = $8
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		notification.ChannelID,
		notification.SlackMessageID,
		notification.Status,
		notification.ErrorMessage,
		notification.RetryCount,
		notification.SentAt,
		notification.DeliveredAt,
		notification.ID,
	)

	if err != nil {
		log.Error("failed to update notification",
			slog.String("error", err.Error()),
			slog.String("notification_id", notification.ID.String()))
		return err
	}

	if err := CheckRowsAffected(result, "notification"); err != nil {
		log.Debug("notification not found for update",
			slog.String("notification_id", notification.ID.String()))
		return store.ErrNotificationNotFound
	}

	log.Info("notification updated successfully",
		slog.String("notification_id", notification.ID.String()),
		slog.String("status", string(notification.Status)))
	return nil
}

// WithTx implements store.NotificationStore.WithTx
func (s *PostgresNotificationStore) WithTx(tx *sql.Tx) store.NotificationStore {
	return &PostgresNotificationStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	var notification domain.Notification
	var notificationType, status, priority string
	var channelID, slackMessageID, errorMessage sql.NullString
	var metadata []byte
	var sentAt, deliveredAt sql.NullTime

	err := row.Scan(
		&notification.ID,
		&notification.UserID,
		&notificationType,
		&notification.Message,
		&channelID,
		&slackMessageID,
		&status,
		&priority,
		&metadata,
		&errorMessage,
		&notification.RetryCount,
		&notification.CreatedAt,
		&sentAt,
		&deliveredAt,
	)
	if err != nil {
		return nil, err
	}

	notification.Type = domain.NotificationType(notificationType)
	notification.Status = domain.DeliveryStatus(status)
	notification.Priority = domain.Priority(priority)
	notification.ChannelID = channelID.String
	notification.SlackMessageID = slackMessageID.String
	notification.ErrorMessage = errorMessage.String
	notification.Metadata = metadata
	if sentAt.Valid {
		t := sentAt.Time
		notification.SentAt = &t
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		notification.DeliveredAt = &t
	}

	return &notification, nil
}
