package slack_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftwise/draftwise-api/internal/platform/slack"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *slack.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := slack.NewClient("client-id", "client-secret", server.Client(), nil)
	return client.WithBaseURL(server.URL)
}

func TestExchangeCodeSuccess(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth.v2.access", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "auth-code", r.PostForm.Get("code"))
		assert.Equal(t, "https://app.example.com/callback", r.PostForm.Get("redirect_uri"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":           true,
			"access_token": "xoxb-token",
			"scope":        "chat:write",
			"bot_user_id":  "U123BOT",
			"team":         map[string]string{"id": "T123", "name": "Acme"},
			"authed_user":  map[string]string{"id": "U456"},
		})
	})

	resp, err := client.ExchangeCode(context.Background(), "auth-code", "https://app.example.com/callback")
	require.NoError(t, err)
	assert.Equal(t, "xoxb-token", resp.AccessToken)
	assert.Equal(t, "T123", resp.Team.ID)
	assert.Equal(t, "Acme", resp.Team.Name)
	assert.Equal(t, "U456", resp.AuthedUser.ID)
	assert.Equal(t, "U123BOT", resp.BotUserID)
}

func TestExchangeCodeAPIError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "invalid_code"})
	})

	_, err := client.ExchangeCode(context.Background(), "bad-code", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, slack.ErrAPIFailure)

	var apiErr *slack.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid_code", apiErr.Code)
}

func TestExchangeCodeNotConfigured(t *testing.T) {
	t.Parallel()

	client := slack.NewClient("", "", nil, nil)

	_, err := client.ExchangeCode(context.Background(), "code", "")
	assert.ErrorIs(t, err, slack.ErrNotConfigured)
}

func TestPostMessageSuccess(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.postMessage", r.URL.Path)
		assert.Equal(t, "Bearer xoxb-token", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "C42", body["channel"])
		assert.Equal(t, "audit finished", body["text"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":      true,
			"channel": "C42",
			"ts":      "1724932800.000100",
		})
	})

	resp, err := client.PostMessage(context.Background(), "xoxb-token", "C42", "audit finished")
	require.NoError(t, err)
	assert.Equal(t, "C42", resp.Channel)
	assert.Equal(t, "1724932800.000100", resp.TS)
}

func TestPostMessageAPIError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "channel_not_found"})
	})

	_, err := client.PostMessage(context.Background(), "xoxb-token", "C404", "hello")
	require.Error(t, err)

	var apiErr *slack.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "channel_not_found", apiErr.Code)
	assert.Equal(t, "chat.postMessage", apiErr.Method)
}

func TestPostMessageHTTPError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.PostMessage(context.Background(), "xoxb-token", "C42", "hello")
	assert.ErrorIs(t, err, slack.ErrAPIFailure)
}

func TestAuthorizeURL(t *testing.T) {
	t.Parallel()

	client := slack.NewClient("client-id", "client-secret", nil, nil)

	got := client.AuthorizeURL("https://app.example.com/callback", "state-token", []string{"chat:write", "channels:read"})
	assert.Contains(t, got, "https://slack.com/oauth/v2/authorize?")
	assert.Contains(t, got, "client_id=client-id")
	assert.Contains(t, got, "state=state-token")
	assert.Contains(t, got, "chat%3Awrite%2Cchannels%3Aread")
}
