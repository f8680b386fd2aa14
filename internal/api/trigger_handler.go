package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/draftwise/draftwise-api/internal/api/shared"
	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/service"
)

// TriggerRequest is the payload for firing an event-driven notification.
type TriggerRequest struct {
	EventType string         `json:"event_type" validate:"required,min=1"`
	Context   map[string]any `json:"context"    validate:"omitempty"`
}

// TriggerHandler handles event-trigger HTTP requests.
type TriggerHandler struct {
	triggerService service.TriggerService
	validator      *validator.Validate
}

// NewTriggerHandler creates a new TriggerHandler.
func NewTriggerHandler(triggerService service.TriggerService) *TriggerHandler {
	return &TriggerHandler{
		triggerService: triggerService,
		validator:      validator.New(),
	}
}

// Send handles POST /api/triggers/send. The event type picks the message
// template; the context map fills it in.
func (h *TriggerHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req TriggerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	notification, err := h.triggerService.Trigger(
		r.Context(),
		userID,
		domain.NotificationType(req.EventType),
		req.Context,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Trigger processed", notification)
}

// TriggerTestRequest is the payload for firing a trigger with sample data.
type TriggerTestRequest struct {
	EventType string `json:"event_type" validate:"required,min=1"`
}

// sampleTriggerContext returns canned context fields for the given event
// type, enough to fill its message template. Unknown types get an empty
// context and fail in the service with the unsupported-event error.
func sampleTriggerContext(eventType domain.NotificationType) map[string]any {
	switch eventType {
	case domain.NotificationTypeAuditComplete:
		return map[string]any{
			"company_name": "example.com",
			"score":        85,
			"report_url":   "https://app.example.com/reports/sample",
		}
	case domain.NotificationTypeAIVisibility:
		return map[string]any{
			"company_name":  "example.com",
			"mention_count": 9,
			"query_count":   12,
		}
	case domain.NotificationTypeCompetitorAnalysis:
		return map[string]any{
			"company_name":    "example.com",
			"competitor_name": "competitor-site.com",
			"key_gap":         "content depth on comparison pages",
		}
	case domain.NotificationTypeSystemAlert:
		return map[string]any{
			"alert_message": "System maintenance scheduled for tonight at 2 AM UTC",
		}
	default:
		return map[string]any{}
	}
}

// SendTest handles POST /api/triggers/test. It runs the normal trigger path
// with sample context data so a connected workspace can be verified without
// a real event.
func (h *TriggerHandler) SendTest(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req TriggerTestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	eventType := domain.NotificationType(req.EventType)
	notification, err := h.triggerService.Trigger(
		r.Context(),
		userID,
		eventType,
		sampleTriggerContext(eventType),
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Test trigger processed", notification)
}

// SupportedEvents handles GET /api/triggers/supported-events.
func (h *TriggerHandler) SupportedEvents(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithSuccess(w, r, http.StatusOK, "", map[string]any{
		"events": h.triggerService.SupportedEvents(),
	})
}
