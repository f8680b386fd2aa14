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

func testNotification(t *testing.T, userID uuid.UUID) *domain.Notification {
	t.Helper()

	n, err := domain.NewNotification(userID, domain.NotificationTypeSystemAlert, "disk almost full", domain.PriorityUrgent)
	require.NoError(t, err)
	return n
}

func TestSendNotificationSuccess(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	notification := testNotification(t, userID)
	notification.MarkDelivered("1712345678.000100")

	var gotReq service.SendNotificationRequest
	notificationService := &mocks.MockNotificationService{
		SendFn: func(ctx context.Context, req service.SendNotificationRequest) (*domain.Notification, error) {
			gotReq = req
			return notification, nil
		},
	}
	handler := NewNotificationHandler(notificationService)

	r := asUser(newJSONRequest(t, http.MethodPost, "/api/notifications/send", SendNotificationAPIRequest{
		Type:     "system_alert",
		Message:  "disk almost full",
		Priority: "urgent",
	}), userID)
	w := httptest.NewRecorder()

	handler.Send(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, gotReq.UserID)
	assert.Equal(t, domain.NotificationTypeSystemAlert, gotReq.Type)
	assert.Equal(t, domain.PriorityUrgent, gotReq.Priority)
	assert.Contains(t, w.Body.String(), "delivered")
}

func TestSendNotificationDefaultsPriority(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var gotReq service.SendNotificationRequest
	notificationService := &mocks.MockNotificationService{
		SendFn: func(ctx context.Context, req service.SendNotificationRequest) (*domain.Notification, error) {
			gotReq = req
			return testNotification(t, userID), nil
		},
	}
	handler := NewNotificationHandler(notificationService)

	r := asUser(newJSONRequest(t, http.MethodPost, "/api/notifications/send", SendNotificationAPIRequest{
		Type:    "audit_complete",
		Message: "audit finished",
	}), userID)
	w := httptest.NewRecorder()

	handler.Send(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.PriorityNormal, gotReq.Priority)
}

func TestSendNotificationUnknownType(t *testing.T) {
	t.Parallel()

	handler := NewNotificationHandler(&mocks.MockNotificationService{})

	r := asUser(newJSONRequest(t, http.MethodPost, "/api/notifications/send", SendNotificationAPIRequest{
		Type:    "carrier_pigeon",
		Message: "hello",
	}), uuid.New())
	w := httptest.NewRecorder()

	handler.Send(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendNotificationSlackNotConnected(t *testing.T) {
	t.Parallel()

	handler := NewNotificationHandler(&mocks.MockNotificationService{Err: service.ErrSlackNotConnected})

	r := asUser(newJSONRequest(t, http.MethodPost, "/api/notifications/send", SendNotificationAPIRequest{
		Type:    "system_alert",
		Message: "hello",
	}), uuid.New())
	w := httptest.NewRecorder()

	handler.Send(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Slack workspace not connected")
}

func TestGetHistorySuccess(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var gotLimit int
	notificationService := &mocks.MockNotificationService{
		GetHistoryFn: func(ctx context.Context, uid uuid.UUID, limit int) ([]*domain.Notification, error) {
			gotLimit = limit
			return []*domain.Notification{testNotification(t, userID)}, nil
		},
	}
	handler := NewNotificationHandler(notificationService)

	r := asUser(newJSONRequest(t, http.MethodGet, "/api/notifications/history/"+userID.String()+"?limit=5", nil), userID)
	r = withURLParam(r, "userID", userID.String())
	w := httptest.NewRecorder()

	handler.GetHistory(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, gotLimit)
}

func TestGetHistoryDefaultLimit(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var gotLimit int
	notificationService := &mocks.MockNotificationService{
		GetHistoryFn: func(ctx context.Context, uid uuid.UUID, limit int) ([]*domain.Notification, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	handler := NewNotificationHandler(notificationService)

	r := asUser(newJSONRequest(t, http.MethodGet, "/api/notifications/history/"+userID.String(), nil), userID)
	r = withURLParam(r, "userID", userID.String())
	w := httptest.NewRecorder()

	handler.GetHistory(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, defaultHistoryLimit, gotLimit)
}

func TestGetHistoryForeignUser(t *testing.T) {
	t.Parallel()

	handler := NewNotificationHandler(&mocks.MockNotificationService{})

	target := uuid.New()
	r := asUser(newJSONRequest(t, http.MethodGet, "/api/notifications/history/"+target.String(), nil), uuid.New())
	r = withURLParam(r, "userID", target.String())
	w := httptest.NewRecorder()

	handler.GetHistory(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetHistoryInvalidLimit(t *testing.T) {
	t.Parallel()

	handler := NewNotificationHandler(&mocks.MockNotificationService{})

	userID := uuid.New()
	r := asUser(newJSONRequest(t, http.MethodGet, "/api/notifications/history/"+userID.String()+"?limit=zero", nil), userID)
	r = withURLParam(r, "userID", userID.String())
	w := httptest.NewRecorder()

	handler.GetHistory(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
