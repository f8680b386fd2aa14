// Package events decouples request-path services from the background task
// system. A service emits a TaskRequestEvent when work should happen
// asynchronously; registered handlers turn the event into persisted tasks
// without the service importing the task package.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TaskRequestEvent asks the background system to create a task. The payload
// is opaque JSON so the event type stays independent of any one task's
// schema.
type TaskRequestEvent struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *TaskRequestEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskRequestEvent builds an event of the given type carrying payload
// serialized as JSON.
func NewTaskRequestEvent(eventType string, payload interface{}) (*TaskRequestEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &TaskRequestEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// ArticleGenerationPayload identifies the article whose body should be
// generated in the background. It is the payload schema shared by the
// article service (emitting) and the task event handler (decoding).
type ArticleGenerationPayload struct {
	ArticleID uuid.UUID `json:"article_id"`
}

// NewArticleGenerationEvent builds a task request for generating the body of
// the given article. The event type is passed in by the caller so this
// package does not depend on the task package's type constants.
func NewArticleGenerationEvent(eventType string, articleID uuid.UUID) (*TaskRequestEvent, error) {
	return NewTaskRequestEvent(eventType, ArticleGenerationPayload{ArticleID: articleID})
}

// EventHandler processes emitted events.
type EventHandler interface {
	// HandleEvent processes the given event. Handlers should ignore event
	// types they do not recognize and return nil.
	HandleEvent(ctx context.Context, event *TaskRequestEvent) error
}

// EventEmitter publishes events to whoever has registered to receive them.
type EventEmitter interface {
	// EmitEvent delivers the event to all registered handlers.
	EmitEvent(ctx context.Context, event *TaskRequestEvent) error
}
