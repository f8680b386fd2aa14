package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies the event that produced a notification.
type NotificationType string

// Supported notification types
const (
	NotificationTypeAuditComplete      NotificationType = "audit_complete"
	NotificationTypeAIVisibility       NotificationType = "ai_visibility"
	NotificationTypeCompetitorAnalysis NotificationType = "competitor_analysis"
	NotificationTypeSystemAlert        NotificationType = "system_alert"
)

// DeliveryStatus tracks a notification through its delivery lifecycle.
type DeliveryStatus string

// Possible delivery status values
const (
	DeliveryStatusQueued    DeliveryStatus = "queued"
	DeliveryStatusSending   DeliveryStatus = "sending"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusFailed    DeliveryStatus = "failed"
	DeliveryStatusRetrying  DeliveryStatus = "retrying"
)

// Priority is the urgency level attached to a notification.
type Priority string

// Possible priority values
const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Common validation errors for Notification
var (
	ErrEmptyNotificationID      = errors.New("notification ID cannot be empty")
	ErrEmptyNotificationUserID  = errors.New("notification user ID cannot be empty")
	ErrEmptyNotificationMessage = errors.New("notification message cannot be empty")
	ErrInvalidNotificationType  = errors.New("invalid notification type")
	ErrInvalidDeliveryStatus    = errors.New("invalid delivery status")
	ErrInvalidPriority          = errors.New("invalid priority")
	ErrInvalidMetadata          = errors.New("notification metadata must be valid JSON")
)

// Notification represents a single Slack notification and its delivery
// outcome. Every send attempt is logged, successful or not.
type Notification struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"user_id"`
	Type           NotificationType `json:"notification_type"`
	Message        string           `json:"message_content"`
	ChannelID      string           `json:"channel_id,omitempty"`
	SlackMessageID string           `json:"slack_message_id,omitempty"`
	Status         DeliveryStatus   `json:"delivery_status"`
	Priority       Priority         `json:"priority"`
	Metadata       json.RawMessage  `json:"metadata,omitempty"`
	ErrorMessage   string           `json:"error_message,omitempty"`
	RetryCount     int              `json:"retry_count"`
	CreatedAt      time.Time        `json:"created_at"`
	SentAt         *time.Time       `json:"sent_at,omitempty"`
	DeliveredAt    *time.Time       `json:"delivered_at,omitempty"`
}

// NewNotification creates a queued Notification for the given user and message.
// Returns an error if validation fails.
func NewNotification(
	userID uuid.UUID,
	notificationType NotificationType,
	message string,
	priority Priority,
) (*Notification, error) {
	if priority == "" {
		priority = PriorityNormal
	}

	n := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      notificationType,
		Message:   message,
		Status:    DeliveryStatusQueued,
		Priority:  priority,
		CreatedAt: time.Now().UTC(),
	}

	if err := n.Validate(); err != nil {
		return nil, err
	}

	return n, nil
}

// Validate checks if the Notification has valid data.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return ErrEmptyNotificationID
	}

	if n.UserID == uuid.Nil {
		return ErrEmptyNotificationUserID
	}

	if n.Message == "" {
		return ErrEmptyNotificationMessage
	}

	if !isValidNotificationType(n.Type) {
		return ErrInvalidNotificationType
	}

	if !isValidDeliveryStatus(n.Status) {
		return ErrInvalidDeliveryStatus
	}

	if !isValidPriority(n.Priority) {
		return ErrInvalidPriority
	}

	if len(n.Metadata) > 0 && !json.Valid(n.Metadata) {
		return ErrInvalidMetadata
	}

	return nil
}

// MarkSending transitions the notification to sending status and records
// the send timestamp.
func (n *Notification) MarkSending(channelID string) {
	now := time.Now().UTC()
	n.ChannelID = channelID
	n.Status = DeliveryStatusSending
	n.SentAt = &now
}

// MarkDelivered transitions the notification to delivered status, recording
// the Slack message ID returned by the API.
func (n *Notification) MarkDelivered(slackMessageID string) {
	now := time.Now().UTC()
	n.SlackMessageID = slackMessageID
	n.Status = DeliveryStatusDelivered
	n.DeliveredAt = &now
}

// MarkFailed transitions the notification to failed status with the
// delivery error.
func (n *Notification) MarkFailed(errorMessage string) {
	n.Status = DeliveryStatusFailed
	n.ErrorMessage = errorMessage
}

func isValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationTypeAuditComplete, NotificationTypeAIVisibility,
		NotificationTypeCompetitorAnalysis, NotificationTypeSystemAlert:
		return true
	default:
		return false
	}
}

func isValidDeliveryStatus(s DeliveryStatus) bool {
	switch s {
	case DeliveryStatusQueued, DeliveryStatusSending, DeliveryStatusDelivered,
		DeliveryStatusFailed, DeliveryStatusRetrying:
		return true
	default:
		return false
	}
}

func isValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}
