package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/draftwise/draftwise-api/internal/api/shared"
	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/service"
)

// defaultHistoryLimit bounds notification history responses when the client
// does not pass a limit.
const defaultHistoryLimit = 50

// SendNotificationAPIRequest is the payload for sending a notification.
type SendNotificationAPIRequest struct {
	Type      string          `json:"notification_type" validate:"required,oneof=audit_complete ai_visibility competitor_analysis system_alert"`
	Message   string          `json:"message"           validate:"required,min=1"`
	Priority  string          `json:"priority"          validate:"omitempty,oneof=low normal high urgent"`
	ChannelID string          `json:"channel_id"        validate:"omitempty,min=1"`
	Metadata  json.RawMessage `json:"metadata"          validate:"omitempty"`
}

// NotificationHandler handles notification HTTP requests.
type NotificationHandler struct {
	notificationService service.NotificationService
	validator           *validator.Validate
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		validator:           validator.New(),
	}
}

// Send handles POST /api/notifications/send. The response always includes
// the notification record; a failed Slack delivery surfaces through its
// delivery status rather than an HTTP error.
func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req SendNotificationAPIRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	priority := domain.PriorityNormal
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
	}

	notification, err := h.notificationService.Send(r.Context(), service.SendNotificationRequest{
		UserID:    userID,
		Type:      domain.NotificationType(req.Type),
		Message:   req.Message,
		Priority:  priority,
		ChannelID: req.ChannelID,
		Metadata:  req.Metadata,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Notification processed", notification)
}

// GetHistory handles GET /api/notifications/history/{userID}. Users can only
// read their own history. An optional "limit" query parameter caps the
// number of records returned.
func (h *NotificationHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	authUserID, pathUserID, ok := requireUserAndPathUUID(w, r, "userID")
	if !ok {
		return
	}

	if authUserID != pathUserID {
		HandleAPIError(w, r, service.ErrNotOwned, "You can only view your own notifications")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	history, err := h.notificationService.GetHistory(r.Context(), pathUserID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load notification history")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "", history)
}
