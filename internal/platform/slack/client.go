// Package slack provides a minimal client for the Slack Web API methods the
// application needs: the OAuth v2 code exchange and message posting.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the Slack Web API root.
const DefaultBaseURL = "https://slack.com/api"

// maxResponseBytes caps how much of an API response is read.
const maxResponseBytes = 1 << 20

// Errors returned by the client.
var (
	ErrNotConfigured = errors.New("slack client credentials not configured")
	ErrAPIFailure    = errors.New("slack API call failed")
)

// APIError carries the error code Slack returned alongside ErrAPIFailure.
type APIError struct {
	Method string
	Code   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("slack API call failed: %s returned %q", e.Method, e.Code)
}

// Unwrap returns ErrAPIFailure so callers can errors.Is against it.
func (e *APIError) Unwrap() error { return ErrAPIFailure }

// OAuthResponse is the subset of the oauth.v2.access response the
// application consumes.
type OAuthResponse struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
	BotUserID   string `json:"bot_user_id"`
	Team        struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	AuthedUser struct {
		ID string `json:"id"`
	} `json:"authed_user"`
	// IncomingWebhook carries the channel selected during install, if any.
	IncomingWebhook struct {
		ChannelID string `json:"channel_id"`
	} `json:"incoming_webhook"`
}

// PostMessageResponse is the subset of the chat.postMessage response the
// application consumes.
type PostMessageResponse struct {
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}

// Client calls the Slack Web API.
type Client struct {
	httpClient   *http.Client
	logger       *slog.Logger
	baseURL      string
	clientID     string
	clientSecret string
}

// NewClient creates a Client with the given OAuth application credentials.
// A nil httpClient uses a default with a 10 second timeout.
func NewClient(clientID, clientSecret string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient:   httpClient,
		logger:       logger.With("component", "slack_client"),
		baseURL:      DefaultBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// WithBaseURL overrides the API root, for tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	clone := *c
	clone.baseURL = strings.TrimRight(baseURL, "/")
	return &clone
}

// Configured reports whether OAuth application credentials are present.
func (c *Client) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// AuthorizeURL builds the OAuth consent URL the user is redirected to.
func (c *Client) AuthorizeURL(redirectURI, state string, scopes []string) string {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("scope", strings.Join(scopes, ","))
	q.Set("redirect_uri", redirectURI)
	q.Set("state", state)
	return "https://slack.com/oauth/v2/authorize?" + q.Encode()
}

// ExchangeCode exchanges an OAuth authorization code for an access token via
// oauth.v2.access.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (*OAuthResponse, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)
	if redirectURI != "" {
		form.Set("redirect_uri", redirectURI)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/oauth.v2.access", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIFailure, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var payload struct {
		OAuthResponse
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	if !payload.OK {
		c.logger.WarnContext(ctx, "oauth code exchange rejected", "slack_error", payload.Error)
		return nil, &APIError{Method: "oauth.v2.access", Code: payload.Error}
	}

	return &payload.OAuthResponse, nil
}

// PostMessage posts text to a channel via chat.postMessage using the given
// bot token.
func (c *Client) PostMessage(ctx context.Context, token, channelID, text string) (*PostMessageResponse, error) {
	body, err := json.Marshal(map[string]string{
		"channel": channelID,
		"text":    text,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIFailure, err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+token)

	var payload struct {
		PostMessageResponse
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	if !payload.OK {
		c.logger.WarnContext(ctx, "message post rejected",
			"channel_id", channelID,
			"slack_error", payload.Error)
		return nil, &APIError{Method: "chat.postMessage", Code: payload.Error}
	}

	return &payload.PostMessageResponse, nil
}

// do executes the request and decodes the JSON response into out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAPIFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAPIFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: HTTP %d", ErrAPIFailure, resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: invalid JSON response: %v", ErrAPIFailure, err)
	}

	return nil
}
