package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise-api/internal/config"
	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/platform/slack"
	"github.com/draftwise/draftwise-api/internal/store"
)

// defaultOAuthScopes are requested during the Slack install flow.
var defaultOAuthScopes = []string{"chat:write", "chat:write.public", "channels:read"}

// SlackAPI defines the subset of the Slack Web API the service depends on.
// The platform slack.Client satisfies this interface.
type SlackAPI interface {
	// Configured reports whether OAuth application credentials are present
	Configured() bool

	// AuthorizeURL builds the OAuth consent URL for the install flow
	AuthorizeURL(redirectURI, state string, scopes []string) string

	// ExchangeCode exchanges an OAuth authorization code for an access token
	ExchangeCode(ctx context.Context, code, redirectURI string) (*slack.OAuthResponse, error)

	// PostMessage posts text to a channel using the given bot token
	PostMessage(ctx context.Context, token, channelID, text string) (*slack.PostMessageResponse, error)
}

// SlackService manages Slack workspace connections and message delivery.
type SlackService interface {
	// StartOAuth begins the install flow for a user, returning the consent URL
	StartOAuth(ctx context.Context, userID uuid.UUID) (string, error)

	// CompleteOAuth finishes the install flow: validates the CSRF state,
	// exchanges the code, and persists the integration
	CompleteOAuth(ctx context.Context, state, code string) (*domain.SlackIntegration, error)

	// SendMessage posts text to the given channel (or the integration's
	// default channel when channelID is empty) on behalf of a user
	SendMessage(ctx context.Context, userID uuid.UUID, channelID, text string) (string, error)

	// GetIntegration returns the user's Slack connection details
	GetIntegration(ctx context.Context, userID uuid.UUID) (*domain.SlackIntegration, error)

	// UpdateChannel sets the default delivery channel for a user
	UpdateChannel(ctx context.Context, userID uuid.UUID, channelID string) error

	// Disconnect removes the user's Slack integration
	Disconnect(ctx context.Context, userID uuid.UUID) error
}

// Common sentinel errors for SlackService
var (
	// ErrSlackNotConfigured indicates the Slack OAuth application credentials
	// are missing from the server configuration
	ErrSlackNotConfigured = errors.New("slack OAuth application is not configured")

	// ErrInvalidOAuthState indicates the callback state token is unknown or expired
	ErrInvalidOAuthState = errors.New("invalid or expired OAuth state")

	// ErrNoChannelConfigured indicates a send was attempted with no channel
	// specified and no default channel stored
	ErrNoChannelConfigured = errors.New("no slack channel configured")
)

// SlackServiceError wraps errors from the Slack service with context.
type SlackServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for SlackServiceError.
func (e *SlackServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("slack service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("slack service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *SlackServiceError) Unwrap() error {
	return e.Err
}

// slackServiceImpl implements the SlackService interface
type slackServiceImpl struct {
	integrationStore store.SlackIntegrationStore
	api              SlackAPI
	states           *oauthStateStore
	redirectURL      string
	logger           *slog.Logger
}

// NewSlackService creates a new SlackService.
func NewSlackService(
	integrationStore store.SlackIntegrationStore,
	api SlackAPI,
	cfg config.SlackConfig,
	logger *slog.Logger,
) (SlackService, error) {
	if integrationStore == nil {
		return nil, &SlackServiceError{
			Operation: "create_service",
			Message:   "integrationStore cannot be nil",
		}
	}
	if api == nil {
		return nil, &SlackServiceError{
			Operation: "create_service",
			Message:   "api cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	stateTTL := time.Duration(cfg.StateTTLSeconds) * time.Second
	if stateTTL <= 0 {
		stateTTL = 10 * time.Minute
	}

	return &slackServiceImpl{
		integrationStore: integrationStore,
		api:              api,
		states:           newOAuthStateStore(stateTTL),
		redirectURL:      cfg.RedirectURL,
		logger:           logger.With("component", "slack_service"),
	}, nil
}

// StartOAuth begins the install flow for a user. The returned URL carries a
// single-use CSRF state token that expires after the configured TTL.
func (s *slackServiceImpl) StartOAuth(ctx context.Context, userID uuid.UUID) (string, error) {
	if !s.api.Configured() {
		return "", ErrSlackNotConfigured
	}

	state := uuid.New().String()
	s.states.Put(state, userID)

	authorizeURL := s.api.AuthorizeURL(s.redirectURL, state, defaultOAuthScopes)

	s.logger.Info("slack OAuth flow started", "user_id", userID)
	return authorizeURL, nil
}

// CompleteOAuth validates the callback state, exchanges the authorization code
// for tokens, and upserts the integration. Reconnecting replaces the stored
// tokens for the user.
func (s *slackServiceImpl) CompleteOAuth(
	ctx context.Context,
	state, code string,
) (*domain.SlackIntegration, error) {
	userID, ok := s.states.Consume(state)
	if !ok {
		s.logger.Warn("slack OAuth callback with invalid state")
		return nil, ErrInvalidOAuthState
	}

	resp, err := s.api.ExchangeCode(ctx, code, s.redirectURL)
	if err != nil {
		s.logger.Error("slack code exchange failed",
			"error", err,
			"user_id", userID)
		return nil, &SlackServiceError{
			Operation: "complete_oauth",
			Message:   "code exchange failed",
			Err:       err,
		}
	}

	integration, err := domain.NewSlackIntegration(
		userID,
		resp.AuthedUser.ID,
		resp.Team.ID,
		resp.Team.Name,
		resp.BotUserID,
		resp.AccessToken,
		resp.Scope,
	)
	if err != nil {
		return nil, &SlackServiceError{
			Operation: "complete_oauth",
			Message:   "invalid integration data from Slack",
			Err:       err,
		}
	}
	integration.ChannelID = resp.IncomingWebhook.ChannelID

	if err := s.integrationStore.Upsert(ctx, integration); err != nil {
		s.logger.Error("failed to save slack integration",
			"error", err,
			"user_id", userID)
		return nil, &SlackServiceError{
			Operation: "complete_oauth",
			Message:   "failed to save integration",
			Err:       err,
		}
	}

	s.logger.Info("slack workspace connected",
		"user_id", userID,
		"team_id", integration.TeamID,
		"team_name", integration.TeamName)

	return integration, nil
}

// SendMessage posts text to a channel on behalf of a user using their stored
// bot token. An empty channelID falls back to the integration's default
// channel.
func (s *slackServiceImpl) SendMessage(
	ctx context.Context,
	userID uuid.UUID,
	channelID, text string,
) (string, error) {
	integration, err := s.GetIntegration(ctx, userID)
	if err != nil {
		return "", err
	}

	if channelID == "" {
		channelID = integration.ChannelID
	}
	if channelID == "" {
		return "", ErrNoChannelConfigured
	}

	resp, err := s.api.PostMessage(ctx, integration.AccessToken, channelID, text)
	if err != nil {
		s.logger.Error("slack message delivery failed",
			"error", err,
			"user_id", userID,
			"channel_id", channelID)
		return "", &SlackServiceError{
			Operation: "send_message",
			Message:   "message delivery failed",
			Err:       err,
		}
	}

	s.logger.Info("slack message delivered",
		"user_id", userID,
		"channel_id", resp.Channel,
		"message_ts", resp.TS)

	return resp.TS, nil
}

// GetIntegration returns the user's Slack connection details.
func (s *slackServiceImpl) GetIntegration(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.SlackIntegration, error) {
	integration, err := s.integrationStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrIntegrationNotFound) {
			return nil, ErrSlackNotConnected
		}
		return nil, &SlackServiceError{
			Operation: "get_integration",
			Message:   "failed to retrieve integration",
			Err:       err,
		}
	}

	return integration, nil
}

// UpdateChannel sets the default delivery channel for a user.
func (s *slackServiceImpl) UpdateChannel(
	ctx context.Context,
	userID uuid.UUID,
	channelID string,
) error {
	if err := s.integrationStore.UpdateChannel(ctx, userID, channelID); err != nil {
		if errors.Is(err, store.ErrIntegrationNotFound) {
			return ErrSlackNotConnected
		}
		return &SlackServiceError{
			Operation: "update_channel",
			Message:   "failed to update default channel",
			Err:       err,
		}
	}

	s.logger.Info("slack default channel updated",
		"user_id", userID,
		"channel_id", channelID)
	return nil
}

// Disconnect removes the user's Slack integration.
func (s *slackServiceImpl) Disconnect(ctx context.Context, userID uuid.UUID) error {
	if err := s.integrationStore.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrIntegrationNotFound) {
			return ErrSlackNotConnected
		}
		return &SlackServiceError{
			Operation: "disconnect",
			Message:   "failed to delete integration",
			Err:       err,
		}
	}

	s.logger.Info("slack workspace disconnected", "user_id", userID)
	return nil
}
