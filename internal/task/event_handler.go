package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise-api/internal/events"
)

// TaskFactory creates tasks for an article ID extracted from an event payload.
type TaskFactory interface {
	// CreateTask creates a new task for the specified article
	CreateTask(articleID uuid.UUID) (Task, error)
}

// TaskSubmitter accepts tasks for background processing.
type TaskSubmitter interface {
	// Submit adds a task to the processing queue
	Submit(ctx context.Context, task Task) error
}

// TaskFactoryEventHandler implements the events.EventHandler interface
// to handle task creation events and delegate them to the appropriate task factory.
type TaskFactoryEventHandler struct {
	taskFactory TaskFactory
	taskRunner  TaskSubmitter
	logger      *slog.Logger
}

// NewTaskFactoryEventHandler creates a new event handler that uses the given
// task factory to create tasks, and submits them to the provided task runner.
func NewTaskFactoryEventHandler(
	taskFactory TaskFactory,
	taskRunner TaskSubmitter,
	logger *slog.Logger,
) *TaskFactoryEventHandler {
	return &TaskFactoryEventHandler{
		taskFactory: taskFactory,
		taskRunner:  taskRunner,
		logger:      logger.With("component", "task_factory_event_handler"),
	}
}

// HandleEvent processes events by creating and submitting tasks.
// It extracts the payload from the event, creates the appropriate task,
// and submits it to the runner for execution.
func (h *TaskFactoryEventHandler) HandleEvent(
	ctx context.Context,
	event *events.TaskRequestEvent,
) error {
	if event.Type != TaskTypeArticleGeneration {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload events.ArticleGenerationPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	if payload.ArticleID == uuid.Nil {
		h.logger.Error("event payload missing article ID", "event_id", event.ID)
		return ErrEmptyArticleID
	}

	h.logger.Debug("creating task for article",
		"article_id", payload.ArticleID,
		"event_id", event.ID)
	task, err := h.taskFactory.CreateTask(payload.ArticleID)
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"article_id", payload.ArticleID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.taskRunner.Submit(ctx, task); err != nil {
		h.logger.Error("failed to submit task",
			"error", err,
			"task_id", task.ID(),
			"article_id", payload.ArticleID,
			"event_id", event.ID)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Info("task created and submitted successfully",
		"task_id", task.ID(),
		"article_id", payload.ArticleID,
		"event_id", event.ID)
	return nil
}

// Ensure TaskFactoryEventHandler implements events.EventHandler
var _ events.EventHandler = (*TaskFactoryEventHandler)(nil)
