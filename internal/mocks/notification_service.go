package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/service"
)

// MockNotificationService implements service.NotificationService for testing.
type MockNotificationService struct {
	SendFn       func(ctx context.Context, req service.SendNotificationRequest) (*domain.Notification, error)
	GetHistoryFn func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error)

	// Default values used when the function fields are nil
	Notification *domain.Notification
	History      []*domain.Notification
	Err          error
}

var _ service.NotificationService = (*MockNotificationService)(nil)

// Send implements service.NotificationService.
func (m *MockNotificationService) Send(
	ctx context.Context,
	req service.SendNotificationRequest,
) (*domain.Notification, error) {
	if m.SendFn != nil {
		return m.SendFn(ctx, req)
	}
	return m.Notification, m.Err
}

// GetHistory implements service.NotificationService.
func (m *MockNotificationService) GetHistory(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Notification, error) {
	if m.GetHistoryFn != nil {
		return m.GetHistoryFn(ctx, userID, limit)
	}
	return m.History, m.Err
}
