package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/events"
	"github.com/draftwise/draftwise-api/internal/platform/slack"
	"github.com/draftwise/draftwise-api/internal/store"
)

// MockArticleRepository mocks the ArticleRepository interface
type MockArticleRepository struct {
	mock.Mock
	db *sql.DB
}

func (m *MockArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Article, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.ArticleStatus,
) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArticleRepository) WithTx(tx *sql.Tx) ArticleRepository {
	return m
}

func (m *MockArticleRepository) DB() *sql.DB {
	return m.db
}

// MockEventEmitter mocks the events.EventEmitter interface
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockSlackIntegrationStore mocks the store.SlackIntegrationStore interface
type MockSlackIntegrationStore struct {
	mock.Mock
}

func (m *MockSlackIntegrationStore) Upsert(
	ctx context.Context,
	integration *domain.SlackIntegration,
) error {
	args := m.Called(ctx, integration)
	return args.Error(0)
}

func (m *MockSlackIntegrationStore) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.SlackIntegration, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SlackIntegration), args.Error(1)
}

func (m *MockSlackIntegrationStore) UpdateChannel(
	ctx context.Context,
	userID uuid.UUID,
	channelID string,
) error {
	args := m.Called(ctx, userID, channelID)
	return args.Error(0)
}

func (m *MockSlackIntegrationStore) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockSlackIntegrationStore) WithTx(tx *sql.Tx) store.SlackIntegrationStore {
	return m
}

// MockSlackAPI mocks the SlackAPI interface
type MockSlackAPI struct {
	mock.Mock
}

func (m *MockSlackAPI) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockSlackAPI) AuthorizeURL(redirectURI, state string, scopes []string) string {
	args := m.Called(redirectURI, state, scopes)
	return args.String(0)
}

func (m *MockSlackAPI) ExchangeCode(
	ctx context.Context,
	code, redirectURI string,
) (*slack.OAuthResponse, error) {
	args := m.Called(ctx, code, redirectURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slack.OAuthResponse), args.Error(1)
}

func (m *MockSlackAPI) PostMessage(
	ctx context.Context,
	token, channelID, text string,
) (*slack.PostMessageResponse, error) {
	args := m.Called(ctx, token, channelID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slack.PostMessageResponse), args.Error(1)
}

// MockNotificationStore mocks the store.NotificationStore interface
type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationStore) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Notification), args.Error(1)
}

func (m *MockNotificationStore) Update(ctx context.Context, notification *domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationStore) WithTx(tx *sql.Tx) store.NotificationStore {
	return m
}

// MockSlackService mocks the SlackService interface
type MockSlackService struct {
	mock.Mock
}

func (m *MockSlackService) StartOAuth(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSlackService) CompleteOAuth(
	ctx context.Context,
	state, code string,
) (*domain.SlackIntegration, error) {
	args := m.Called(ctx, state, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SlackIntegration), args.Error(1)
}

func (m *MockSlackService) SendMessage(
	ctx context.Context,
	userID uuid.UUID,
	channelID, text string,
) (string, error) {
	args := m.Called(ctx, userID, channelID, text)
	return args.String(0), args.Error(1)
}

func (m *MockSlackService) GetIntegration(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.SlackIntegration, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SlackIntegration), args.Error(1)
}

func (m *MockSlackService) UpdateChannel(
	ctx context.Context,
	userID uuid.UUID,
	channelID string,
) error {
	args := m.Called(ctx, userID, channelID)
	return args.Error(0)
}

func (m *MockSlackService) Disconnect(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockNotificationService mocks the NotificationService interface
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Send(
	ctx context.Context,
	req SendNotificationRequest,
) (*domain.Notification, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationService) GetHistory(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Notification), args.Error(1)
}
