package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/generation"
)

// Status constants for ArticleGenerationTask
// These match the TaskStatus values defined in task.go
const (
	statusPending    = "pending"
	statusProcessing = "processing"
	statusCompleted  = "completed"
	statusFailed     = "failed"
)

// Common errors
var (
	ErrNilArticleService = errors.New("article service cannot be nil")
	ErrNilWriter         = errors.New("article writer cannot be nil")
	ErrNilFallback       = errors.New("fallback generator cannot be nil")
	ErrNilLogger         = errors.New("logger cannot be nil")
	ErrEmptyArticleID    = errors.New("article ID cannot be empty")
)

// ArticleService defines the interface for article service operations the
// task needs. Keeping this local decouples the task package from the service
// package.
type ArticleService interface {
	// GetArticle retrieves an article by its ID
	GetArticle(ctx context.Context, articleID uuid.UUID) (*domain.Article, error)

	// UpdateArticleStatus updates an article's status
	UpdateArticleStatus(ctx context.Context, articleID uuid.UUID, status domain.ArticleStatus) error

	// SaveArticleContent records a generated article body and completes the article
	SaveArticleContent(ctx context.Context, articleID uuid.UUID, title, content string) error
}

// articleGenerationPayload represents the serialized data stored in the task
type articleGenerationPayload struct {
	ArticleID uuid.UUID `json:"article_id"`
}

// ArticleGenerationTask implements the Task interface for expanding a saved
// research brief into a full article. Writer failures never fail the task:
// the deterministic fallback article is substituted instead, so the user
// always ends up with content.
type ArticleGenerationTask struct {
	id             uuid.UUID
	articleID      uuid.UUID
	articleService ArticleService
	writer         generation.ArticleGenerator
	fallback       *generation.FallbackGenerator
	logger         *slog.Logger
	status         string
}

// NewArticleGenerationTask creates a new article generation task
func NewArticleGenerationTask(
	articleID uuid.UUID,
	articleService ArticleService,
	writer generation.ArticleGenerator,
	fallback *generation.FallbackGenerator,
	logger *slog.Logger,
) (*ArticleGenerationTask, error) {
	if articleService == nil {
		return nil, ErrNilArticleService
	}
	if writer == nil {
		return nil, ErrNilWriter
	}
	if fallback == nil {
		return nil, ErrNilFallback
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	if articleID == uuid.Nil {
		return nil, ErrEmptyArticleID
	}

	return &ArticleGenerationTask{
		id:             uuid.New(),
		articleID:      articleID,
		articleService: articleService,
		writer:         writer,
		fallback:       fallback,
		logger:         logger.With("task_type", TaskTypeArticleGeneration, "article_id", articleID),
		status:         statusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *ArticleGenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *ArticleGenerationTask) Type() string {
	return TaskTypeArticleGeneration
}

// Payload returns the task data as a byte slice
func (t *ArticleGenerationTask) Payload() []byte {
	payload := articleGenerationPayload{
		ArticleID: t.articleID,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}

	return data
}

// Status returns the current task status
func (t *ArticleGenerationTask) Status() TaskStatus {
	return TaskStatus(t.status)
}

// Execute runs the article generation task: it loads the article, expands
// the brief through the writer (or the deterministic fallback when the
// writer fails), and saves the completed article.
func (t *ArticleGenerationTask) Execute(ctx context.Context) error {
	t.status = statusProcessing
	t.logger.Info("starting article generation task")

	if err := ctx.Err(); err != nil {
		t.status = statusFailed
		t.logger.Error("task cancelled by context", "error", err)
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	article, err := t.articleService.GetArticle(ctx, t.articleID)
	if err != nil {
		t.status = statusFailed
		t.logger.Error("failed to retrieve article", "error", err)
		return fmt.Errorf("failed to retrieve article: %w", err)
	}

	brief := article.BrandToneBrief
	if brief == "" {
		brief = article.ResearchBrief
	}
	if brief == "" {
		t.status = statusFailed
		_ = t.articleService.UpdateArticleStatus(ctx, t.articleID, domain.ArticleStatusFailed)
		t.logger.Error("article has no research brief")
		return fmt.Errorf("article %s has no research brief", t.articleID)
	}

	title := articleTitle(article)

	content, err := t.generateContent(ctx, article, brief, title)
	if err != nil {
		t.status = statusFailed
		return err
	}

	if err := t.articleService.SaveArticleContent(ctx, t.articleID, title, content); err != nil {
		t.status = statusFailed
		_ = t.articleService.UpdateArticleStatus(ctx, t.articleID, domain.ArticleStatusFailed)
		t.logger.Error("failed to save generated article", "error", err)
		return fmt.Errorf("failed to save generated article: %w", err)
	}

	t.status = statusCompleted
	t.logger.Info("article generation task completed successfully",
		"content_length", len(content))
	return nil
}

// generateContent expands the brief through the writer, substituting the
// deterministic fallback article when the writer fails or returns nothing.
func (t *ArticleGenerationTask) generateContent(
	ctx context.Context,
	article *domain.Article,
	brief, title string,
) (string, error) {
	result, err := t.writer.GenerateArticle(ctx, brief)
	if err == nil && result != nil && strings.TrimSpace(result.Content) != "" {
		t.logger.Info("article content generated", "content_length", len(result.Content))
		return result.Content, nil
	}

	if ctx.Err() != nil {
		return "", fmt.Errorf("task cancelled by context: %w", ctx.Err())
	}

	t.logger.Warn("article writer failed, using fallback article",
		"error", err)

	return t.fallback.GenerateArticle(article.Keyword, article.Location, title), nil
}

// articleTitle picks the article title: the user-selected title when present,
// otherwise a deterministic one derived from the request fields.
func articleTitle(article *domain.Article) string {
	if article.SelectedTitle != "" {
		return article.SelectedTitle
	}
	if article.Title != "" {
		return article.Title
	}
	return fmt.Sprintf("Complete Guide to %s in %s", article.Keyword, article.Location)
}
