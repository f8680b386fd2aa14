package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/draftwise/draftwise-api/internal/api/shared"
	"github.com/draftwise/draftwise-api/internal/service"
)

// SlackSendMessageRequest is the payload for posting a message directly.
type SlackSendMessageRequest struct {
	Message   string `json:"message"    validate:"required,min=1"`
	ChannelID string `json:"channel_id" validate:"omitempty,min=1"`
}

// SlackChannelRequest is the payload for updating the default channel.
type SlackChannelRequest struct {
	ChannelID string `json:"channel_id" validate:"required,min=1"`
}

// SlackHandler handles Slack integration HTTP requests.
type SlackHandler struct {
	slackService service.SlackService
	validator    *validator.Validate
}

// NewSlackHandler creates a new SlackHandler.
func NewSlackHandler(slackService service.SlackService) *SlackHandler {
	return &SlackHandler{
		slackService: slackService,
		validator:    validator.New(),
	}
}

// OAuthStart handles GET /api/slack/oauth/start, returning the Slack consent
// URL the client should redirect the user to.
func (h *SlackHandler) OAuthStart(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	authorizeURL, err := h.slackService.StartOAuth(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "", map[string]string{
		"authorize_url": authorizeURL,
	})
}

// OAuthCallback handles GET /api/slack/oauth/callback. Slack redirects here
// with the state token and authorization code as query parameters.
func (h *SlackHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Slack authorization was denied")
		return
	}

	if state == "" || code == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing state or code parameter")
		return
	}

	integration, err := h.slackService.CompleteOAuth(r.Context(), state, code)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Slack workspace connected", integration)
}

// SendMessage handles POST /api/slack/send-message.
func (h *SlackHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req SlackSendMessageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	messageTS, err := h.slackService.SendMessage(r.Context(), userID, req.ChannelID, req.Message)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Message sent", map[string]string{
		"message_ts": messageTS,
	})
}

// Status handles GET /api/slack/status, returning the user's integration
// details. Tokens are never serialized.
func (h *SlackHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	integration, err := h.slackService.GetIntegration(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "", integration)
}

// UpdateChannel handles PUT /api/slack/channel.
func (h *SlackHandler) UpdateChannel(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req SlackChannelRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := h.slackService.UpdateChannel(r.Context(), userID, req.ChannelID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Default channel updated", nil)
}

// Disconnect handles DELETE /api/slack/disconnect.
func (h *SlackHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	if err := h.slackService.Disconnect(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Slack workspace disconnected", nil)
}
