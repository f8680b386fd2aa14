package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/mocks"
	"github.com/draftwise/draftwise-api/internal/service"
)

func TestTriggerSend(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	notification, err := domain.NewNotification(
		userID, domain.NotificationTypeAuditComplete, "audit done", domain.PriorityNormal,
	)
	require.NoError(t, err)

	var gotEvent domain.NotificationType
	var gotContext map[string]any
	triggerService := &mocks.MockTriggerService{
		TriggerFn: func(ctx context.Context, uid uuid.UUID, eventType domain.NotificationType, triggerContext map[string]any) (*domain.Notification, error) {
			gotEvent = eventType
			gotContext = triggerContext
			return notification, nil
		},
	}
	handler := NewTriggerHandler(triggerService)

	r := asUser(newJSONRequest(t, http.MethodPost, "/api/triggers/send", TriggerRequest{
		EventType: "audit_complete",
		Context:   map[string]any{"company_name": "Acme", "score": 87},
	}), userID)
	w := httptest.NewRecorder()

	handler.Send(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.NotificationTypeAuditComplete, gotEvent)
	assert.Equal(t, "Acme", gotContext["company_name"])
}

func TestTriggerSendUnsupportedEvent(t *testing.T) {
	t.Parallel()

	handler := NewTriggerHandler(&mocks.MockTriggerService{Err: service.ErrUnsupportedEvent})

	r := asUser(newJSONRequest(t, http.MethodPost, "/api/triggers/send", TriggerRequest{
		EventType: "solar_flare",
	}), uuid.New())
	w := httptest.NewRecorder()

	handler.Send(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unsupported event type")
}

func TestTriggerSendRequiresAuth(t *testing.T) {
	t.Parallel()

	handler := NewTriggerHandler(&mocks.MockTriggerService{})

	r := newJSONRequest(t, http.MethodPost, "/api/triggers/send", TriggerRequest{
		EventType: "audit_complete",
	})
	w := httptest.NewRecorder()

	handler.Send(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTriggerSendTestUsesSampleContext(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	notification, err := domain.NewNotification(
		userID, domain.NotificationTypeSystemAlert, "maintenance tonight", domain.PriorityUrgent,
	)
	require.NoError(t, err)

	var gotEvent domain.NotificationType
	var gotContext map[string]any
	triggerService := &mocks.MockTriggerService{
		TriggerFn: func(ctx context.Context, uid uuid.UUID, eventType domain.NotificationType, triggerContext map[string]any) (*domain.Notification, error) {
			gotEvent = eventType
			gotContext = triggerContext
			return notification, nil
		},
	}
	handler := NewTriggerHandler(triggerService)

	r := asUser(newJSONRequest(t, http.MethodPost, "/api/triggers/test", TriggerTestRequest{
		EventType: "system_alert",
	}), userID)
	w := httptest.NewRecorder()

	handler.SendTest(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.NotificationTypeSystemAlert, gotEvent)
	assert.NotEmpty(t, gotContext["alert_message"])
}

func TestTriggerSendTestUnsupportedEvent(t *testing.T) {
	t.Parallel()

	handler := NewTriggerHandler(&mocks.MockTriggerService{Err: service.ErrUnsupportedEvent})

	r := asUser(newJSONRequest(t, http.MethodPost, "/api/triggers/test", TriggerTestRequest{
		EventType: "solar_flare",
	}), uuid.New())
	w := httptest.NewRecorder()

	handler.SendTest(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSupportedEvents(t *testing.T) {
	t.Parallel()

	handler := NewTriggerHandler(&mocks.MockTriggerService{
		Events: []domain.NotificationType{
			domain.NotificationTypeAuditComplete,
			domain.NotificationTypeSystemAlert,
		},
	})

	r := newJSONRequest(t, http.MethodGet, "/api/triggers/supported-events", nil)
	w := httptest.NewRecorder()

	handler.SupportedEvents(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "audit_complete")
	assert.Contains(t, w.Body.String(), "system_alert")
}
