package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise-api/internal/domain"
)

// messageTemplate pairs a notification template with the fallback text used
// when the trigger context is missing the fields the template needs.
type messageTemplate struct {
	template *template.Template
	fallback string
	priority domain.Priority
}

// Default message templates per event type. Templates reference trigger
// context fields; missing fields make execution fail and select the fallback.
var defaultMessageTemplates = map[domain.NotificationType]struct {
	text     string
	fallback string
	priority domain.Priority
}{
	domain.NotificationTypeAuditComplete: {
		text:     ":white_check_mark: Audit complete for *{{.company_name}}* — overall score {{.score}}/100. View the full report: {{.report_url}}",
		fallback: ":white_check_mark: Your audit has completed. Check your dashboard for results.",
		priority: domain.PriorityNormal,
	},
	domain.NotificationTypeAIVisibility: {
		text:     ":chart_with_upwards_trend: AI visibility update for *{{.company_name}}*: mentioned in {{.mention_count}} of {{.query_count}} tracked queries.",
		fallback: ":chart_with_upwards_trend: New AI visibility results are available on your dashboard.",
		priority: domain.PriorityNormal,
	},
	domain.NotificationTypeCompetitorAnalysis: {
		text:     ":mag: Competitor analysis finished: *{{.competitor_name}}* compared against {{.company_name}}. Key gap: {{.key_gap}}",
		fallback: ":mag: A competitor analysis has finished. Check your dashboard for details.",
		priority: domain.PriorityNormal,
	},
	domain.NotificationTypeSystemAlert: {
		text:     ":rotating_light: System alert: {{.alert_message}}",
		fallback: ":rotating_light: A system alert was raised. Please check the service status.",
		priority: domain.PriorityUrgent,
	},
}

// TriggerService turns application events into Slack notifications using a
// per-event-type message template registry.
type TriggerService interface {
	// Trigger formats and sends a notification for the given event type.
	// Context fields feed the event's message template; when fields are
	// missing the template's fallback text is sent instead.
	Trigger(
		ctx context.Context,
		userID uuid.UUID,
		eventType domain.NotificationType,
		triggerContext map[string]any,
	) (*domain.Notification, error)

	// SupportedEvents lists the event types with a registered template
	SupportedEvents() []domain.NotificationType
}

// Common sentinel errors for TriggerService
var (
	// ErrUnsupportedEvent indicates no template is registered for the event type
	ErrUnsupportedEvent = errors.New("unsupported trigger event type")
)

// triggerServiceImpl implements the TriggerService interface
type triggerServiceImpl struct {
	templates           map[domain.NotificationType]messageTemplate
	notificationService NotificationService
	logger              *slog.Logger
}

// NewTriggerService creates a TriggerService with the default template
// registry.
func NewTriggerService(
	notificationService NotificationService,
	logger *slog.Logger,
) (TriggerService, error) {
	if notificationService == nil {
		return nil, fmt.Errorf("trigger service create_service failed: notificationService cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	templates := make(map[domain.NotificationType]messageTemplate, len(defaultMessageTemplates))
	for eventType, entry := range defaultMessageTemplates {
		tmpl, err := template.New(string(eventType)).
			Option("missingkey=error").
			Parse(entry.text)
		if err != nil {
			return nil, fmt.Errorf("trigger service create_service failed: invalid template for %s: %w", eventType, err)
		}
		templates[eventType] = messageTemplate{
			template: tmpl,
			fallback: entry.fallback,
			priority: entry.priority,
		}
	}

	return &triggerServiceImpl{
		templates:           templates,
		notificationService: notificationService,
		logger:              logger.With("component", "trigger_service"),
	}, nil
}

// Trigger formats the event's message and delegates delivery to the
// notification service.
func (s *triggerServiceImpl) Trigger(
	ctx context.Context,
	userID uuid.UUID,
	eventType domain.NotificationType,
	triggerContext map[string]any,
) (*domain.Notification, error) {
	entry, ok := s.templates[eventType]
	if !ok {
		return nil, ErrUnsupportedEvent
	}

	message := s.formatMessage(entry, eventType, triggerContext)

	return s.notificationService.Send(ctx, SendNotificationRequest{
		UserID:   userID,
		Type:     eventType,
		Message:  message,
		Priority: entry.priority,
	})
}

// SupportedEvents lists the event types with a registered template.
func (s *triggerServiceImpl) SupportedEvents() []domain.NotificationType {
	events := make([]domain.NotificationType, 0, len(s.templates))
	for eventType := range s.templates {
		events = append(events, eventType)
	}
	return events
}

// formatMessage executes the event template against the trigger context,
// falling back to the template's generic text when context fields are missing.
func (s *triggerServiceImpl) formatMessage(
	entry messageTemplate,
	eventType domain.NotificationType,
	triggerContext map[string]any,
) string {
	if triggerContext == nil {
		triggerContext = map[string]any{}
	}

	var sb strings.Builder
	if err := entry.template.Execute(&sb, triggerContext); err != nil {
		s.logger.Debug("trigger context incomplete, using fallback message",
			"event_type", eventType,
			"error", err)
		return entry.fallback
	}

	return sb.String()
}
