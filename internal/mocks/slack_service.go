package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/service"
)

// MockSlackService implements service.SlackService for testing.
type MockSlackService struct {
	StartOAuthFn     func(ctx context.Context, userID uuid.UUID) (string, error)
	CompleteOAuthFn  func(ctx context.Context, state, code string) (*domain.SlackIntegration, error)
	SendMessageFn    func(ctx context.Context, userID uuid.UUID, channelID, text string) (string, error)
	GetIntegrationFn func(ctx context.Context, userID uuid.UUID) (*domain.SlackIntegration, error)
	UpdateChannelFn  func(ctx context.Context, userID uuid.UUID, channelID string) error
	DisconnectFn     func(ctx context.Context, userID uuid.UUID) error

	// Default values used when the function fields are nil
	AuthorizeURL string
	Integration  *domain.SlackIntegration
	MessageTS    string
	Err          error
}

var _ service.SlackService = (*MockSlackService)(nil)

// StartOAuth implements service.SlackService.
func (m *MockSlackService) StartOAuth(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.StartOAuthFn != nil {
		return m.StartOAuthFn(ctx, userID)
	}
	return m.AuthorizeURL, m.Err
}

// CompleteOAuth implements service.SlackService.
func (m *MockSlackService) CompleteOAuth(
	ctx context.Context,
	state, code string,
) (*domain.SlackIntegration, error) {
	if m.CompleteOAuthFn != nil {
		return m.CompleteOAuthFn(ctx, state, code)
	}
	return m.Integration, m.Err
}

// SendMessage implements service.SlackService.
func (m *MockSlackService) SendMessage(
	ctx context.Context,
	userID uuid.UUID,
	channelID, text string,
) (string, error) {
	if m.SendMessageFn != nil {
		return m.SendMessageFn(ctx, userID, channelID, text)
	}
	return m.MessageTS, m.Err
}

// GetIntegration implements service.SlackService.
func (m *MockSlackService) GetIntegration(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.SlackIntegration, error) {
	if m.GetIntegrationFn != nil {
		return m.GetIntegrationFn(ctx, userID)
	}
	return m.Integration, m.Err
}

// UpdateChannel implements service.SlackService.
func (m *MockSlackService) UpdateChannel(
	ctx context.Context,
	userID uuid.UUID,
	channelID string,
) error {
	if m.UpdateChannelFn != nil {
		return m.UpdateChannelFn(ctx, userID, channelID)
	}
	return m.Err
}

// Disconnect implements service.SlackService.
func (m *MockSlackService) Disconnect(ctx context.Context, userID uuid.UUID) error {
	if m.DisconnectFn != nil {
		return m.DisconnectFn(ctx, userID)
	}
	return m.Err
}
