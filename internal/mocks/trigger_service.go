package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/service"
)

// MockTriggerService implements service.TriggerService for testing.
type MockTriggerService struct {
	TriggerFn         func(ctx context.Context, userID uuid.UUID, eventType domain.NotificationType, triggerContext map[string]any) (*domain.Notification, error)
	SupportedEventsFn func() []domain.NotificationType

	// Default values used when the function fields are nil
	Notification *domain.Notification
	Events       []domain.NotificationType
	Err          error
}

var _ service.TriggerService = (*MockTriggerService)(nil)

// Trigger implements service.TriggerService.
func (m *MockTriggerService) Trigger(
	ctx context.Context,
	userID uuid.UUID,
	eventType domain.NotificationType,
	triggerContext map[string]any,
) (*domain.Notification, error) {
	if m.TriggerFn != nil {
		return m.TriggerFn(ctx, userID, eventType, triggerContext)
	}
	return m.Notification, m.Err
}

// SupportedEvents implements service.TriggerService.
func (m *MockTriggerService) SupportedEvents() []domain.NotificationType {
	if m.SupportedEventsFn != nil {
		return m.SupportedEventsFn()
	}
	return m.Events
}
