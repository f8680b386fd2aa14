package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for SlackIntegration
var (
	ErrEmptyIntegrationUserID = errors.New("integration user ID cannot be empty")
	ErrEmptySlackUserID       = errors.New("slack user ID cannot be empty")
	ErrEmptySlackTeamID       = errors.New("slack team ID cannot be empty")
	ErrEmptyAccessToken       = errors.New("slack access token cannot be empty")
)

// SlackIntegration holds the OAuth credentials that connect one of our users
// to a Slack workspace. One integration per user.
type SlackIntegration struct {
	UserID       uuid.UUID `json:"user_id"`
	SlackUserID  string    `json:"slack_user_id"`
	TeamID       string    `json:"team_id"`
	TeamName     string    `json:"team_name"`
	BotUserID    string    `json:"bot_user_id"`
	AccessToken  string    `json:"-"` // Never expose tokens in JSON
	RefreshToken string    `json:"-"`
	Scope        string    `json:"scope"`
	ChannelID    string    `json:"channel_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewSlackIntegration creates a SlackIntegration from a completed OAuth
// exchange. Returns an error if validation fails.
func NewSlackIntegration(
	userID uuid.UUID,
	slackUserID, teamID, teamName, botUserID, accessToken, scope string,
) (*SlackIntegration, error) {
	integration := &SlackIntegration{
		UserID:      userID,
		SlackUserID: slackUserID,
		TeamID:      teamID,
		TeamName:    teamName,
		BotUserID:   botUserID,
		AccessToken: accessToken,
		Scope:       scope,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := integration.Validate(); err != nil {
		return nil, err
	}

	return integration, nil
}

// Validate checks if the SlackIntegration has valid data.
func (s *SlackIntegration) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyIntegrationUserID
	}

	if s.SlackUserID == "" {
		return ErrEmptySlackUserID
	}

	if s.TeamID == "" {
		return ErrEmptySlackTeamID
	}

	if s.AccessToken == "" {
		return ErrEmptyAccessToken
	}

	return nil
}
