package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/store"
)

// SendNotificationRequest carries the inputs for one notification delivery.
type SendNotificationRequest struct {
	UserID    uuid.UUID
	Type      domain.NotificationType
	Message   string
	Priority  domain.Priority
	ChannelID string
	Metadata  json.RawMessage
}

// NotificationService delivers Slack notifications and records every attempt,
// successful or not, with its delivery status transitions.
type NotificationService interface {
	// Send delivers a notification to the user's Slack workspace. The returned
	// notification reflects the final delivery status; a delivery failure is
	// reported through the notification record, not an error, so the attempt
	// is always logged.
	Send(ctx context.Context, req SendNotificationRequest) (*domain.Notification, error)

	// GetHistory retrieves the user's most recent notifications, newest first
	GetHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error)
}

// NotificationServiceError wraps errors from the notification service with context.
type NotificationServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for NotificationServiceError.
func (e *NotificationServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("notification service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("notification service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *NotificationServiceError) Unwrap() error {
	return e.Err
}

// notificationServiceImpl implements the NotificationService interface
type notificationServiceImpl struct {
	notificationStore store.NotificationStore
	slackService      SlackService
	logger            *slog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	notificationStore store.NotificationStore,
	slackService SlackService,
	logger *slog.Logger,
) (NotificationService, error) {
	if notificationStore == nil {
		return nil, &NotificationServiceError{
			Operation: "create_service",
			Message:   "notificationStore cannot be nil",
		}
	}
	if slackService == nil {
		return nil, &NotificationServiceError{
			Operation: "create_service",
			Message:   "slackService cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &notificationServiceImpl{
		notificationStore: notificationStore,
		slackService:      slackService,
		logger:            logger.With("component", "notification_service"),
	}, nil
}

// Send delivers a notification through the user's Slack integration, walking
// the record through queued, sending, and delivered or failed. The record is
// persisted before delivery so failed attempts are never lost.
func (s *notificationServiceImpl) Send(
	ctx context.Context,
	req SendNotificationRequest,
) (*domain.Notification, error) {
	integration, err := s.slackService.GetIntegration(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, ErrSlackNotConnected) {
			return nil, ErrSlackNotConnected
		}
		return nil, &NotificationServiceError{
			Operation: "send",
			Message:   "failed to check slack integration",
			Err:       err,
		}
	}

	notification, err := domain.NewNotification(req.UserID, req.Type, req.Message, req.Priority)
	if err != nil {
		s.logger.Error("failed to create notification object",
			"error", err,
			"user_id", req.UserID,
			"notification_type", req.Type)
		return nil, &NotificationServiceError{
			Operation: "send",
			Message:   "failed to create notification object",
			Err:       err,
		}
	}
	notification.Metadata = req.Metadata

	if err := s.notificationStore.Create(ctx, notification); err != nil {
		s.logger.Error("failed to save notification",
			"error", err,
			"notification_id", notification.ID)
		return nil, &NotificationServiceError{
			Operation: "send",
			Message:   "failed to save notification",
			Err:       err,
		}
	}

	channelID := req.ChannelID
	if channelID == "" {
		channelID = integration.ChannelID
	}

	notification.MarkSending(channelID)
	s.updateRecord(ctx, notification)

	messageTS, err := s.slackService.SendMessage(ctx, req.UserID, channelID, req.Message)
	if err != nil {
		notification.MarkFailed(err.Error())
		s.updateRecord(ctx, notification)

		s.logger.Warn("notification delivery failed",
			"notification_id", notification.ID,
			"user_id", req.UserID,
			"channel_id", channelID,
			"error", err)
		return notification, nil
	}

	notification.MarkDelivered(messageTS)
	s.updateRecord(ctx, notification)

	s.logger.Info("notification delivered",
		"notification_id", notification.ID,
		"user_id", req.UserID,
		"channel_id", channelID,
		"slack_message_id", messageTS)

	return notification, nil
}

// GetHistory retrieves the user's most recent notifications, newest first.
func (s *notificationServiceImpl) GetHistory(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Notification, error) {
	notifications, err := s.notificationStore.GetByUserID(ctx, userID, limit)
	if err != nil {
		s.logger.Error("failed to retrieve notification history",
			"error", err,
			"user_id", userID)
		return nil, &NotificationServiceError{
			Operation: "get_history",
			Message:   "failed to retrieve notifications",
			Err:       err,
		}
	}

	return notifications, nil
}

// updateRecord persists a delivery status transition. Failures are logged but
// not surfaced; the delivery outcome matters more than the bookkeeping.
func (s *notificationServiceImpl) updateRecord(ctx context.Context, n *domain.Notification) {
	if err := s.notificationStore.Update(ctx, n); err != nil {
		s.logger.Error("failed to update notification record",
			"error", err,
			"notification_id", n.ID,
			"delivery_status", n.Status)
	}
}
