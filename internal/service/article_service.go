package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/events"
	"github.com/draftwise/draftwise-api/internal/generation"
	"github.com/draftwise/draftwise-api/internal/store"
	"github.com/draftwise/draftwise-api/internal/task"
)

// ArticleRepository defines the repository interface for the service layer.
// This is aligned with store.ArticleStore to ensure proper separation of concerns.
type ArticleRepository interface {
	// Create saves a new article to the store
	Create(ctx context.Context, article *domain.Article) error

	// GetByID retrieves an article by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error)

	// GetByUserID retrieves all articles belonging to a user
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Article, error)

	// Update saves changes to an existing article
	Update(ctx context.Context, article *domain.Article) error

	// UpdateStatus transitions only the article's status
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ArticleStatus) error

	// Delete removes an article from the store
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) ArticleRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// ArticleService provides article-related operations: running the research
// brief generation cycle, enqueueing article body generation, and reads.
type ArticleService interface {
	// GenerateResearchBrief runs the brief generation cycle for the given
	// request and persists the resulting article in brief_ready status.
	GenerateResearchBrief(
		ctx context.Context,
		userID uuid.UUID,
		req generation.BriefRequest,
	) (*domain.Article, error)

	// EnqueueArticleGeneration moves an article with a ready brief into
	// generating status and emits an event so the article body is produced
	// in the background.
	EnqueueArticleGeneration(ctx context.Context, articleID, userID uuid.UUID) (*domain.Article, error)

	// GetArticle retrieves an article by its ID
	GetArticle(ctx context.Context, articleID uuid.UUID) (*domain.Article, error)

	// GetArticlesByUser retrieves all articles belonging to a user
	GetArticlesByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Article, error)

	// UpdateBrandToneBrief stores a brand-tone adapted version of the brief
	UpdateBrandToneBrief(
		ctx context.Context,
		articleID, userID uuid.UUID,
		brief string,
	) (*domain.Article, error)

	// DeleteArticle removes an article owned by the given user
	DeleteArticle(ctx context.Context, articleID, userID uuid.UUID) error

	// RenderArticleHTML renders the article's markdown content to HTML
	RenderArticleHTML(ctx context.Context, articleID uuid.UUID) (string, error)

	// UpdateArticleStatus updates an article's status; used by background tasks
	UpdateArticleStatus(ctx context.Context, articleID uuid.UUID, status domain.ArticleStatus) error

	// SaveArticleContent records a generated article body and completes the
	// article; used by background tasks
	SaveArticleContent(ctx context.Context, articleID uuid.UUID, title, content string) error
}

// Common sentinel errors for ArticleService
var (
	// ErrArticleNotFound indicates that the article does not exist
	ErrArticleNotFound = errors.New("article not found")
)

// ArticleServiceError wraps errors from the article service with context.
type ArticleServiceError struct {
	// Operation is the operation that failed (e.g., "generate_brief")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ArticleServiceError.
func (e *ArticleServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("article service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("article service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ArticleServiceError) Unwrap() error {
	return e.Err
}

// NewArticleServiceError creates a new ArticleServiceError.
// It returns known sentinel errors directly without wrapping.
func NewArticleServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrArticleNotFound) || errors.Is(err, ErrNotOwned) ||
		errors.Is(err, ErrBriefNotReady) {
		return err
	}

	if errors.Is(err, store.ErrArticleNotFound) {
		return ErrArticleNotFound
	}

	return &ArticleServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// articleServiceImpl implements the ArticleService interface
type articleServiceImpl struct {
	articleRepo  ArticleRepository
	orchestrator *generation.Orchestrator
	briefGen     generation.BriefGenerator
	eventEmitter events.EventEmitter
	markdown     goldmark.Markdown
	logger       *slog.Logger
}

// NewArticleService creates a new ArticleService.
// It returns an error if any of the required dependencies are nil.
func NewArticleService(
	articleRepo ArticleRepository,
	orchestrator *generation.Orchestrator,
	briefGen generation.BriefGenerator,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (ArticleService, error) {
	if articleRepo == nil {
		return nil, &ArticleServiceError{
			Operation: "create_service",
			Message:   "articleRepo cannot be nil",
		}
	}
	if orchestrator == nil {
		return nil, &ArticleServiceError{
			Operation: "create_service",
			Message:   "orchestrator cannot be nil",
		}
	}
	if briefGen == nil {
		return nil, &ArticleServiceError{
			Operation: "create_service",
			Message:   "briefGen cannot be nil",
		}
	}
	if eventEmitter == nil {
		return nil, &ArticleServiceError{
			Operation: "create_service",
			Message:   "eventEmitter cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &articleServiceImpl{
		articleRepo:  articleRepo,
		orchestrator: orchestrator,
		briefGen:     briefGen,
		eventEmitter: eventEmitter,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		logger: logger.With("component", "article_service"),
	}, nil
}

// GenerateResearchBrief creates an article record, drives the brief generation
// cycle against the configured generator, and persists the outcome. The
// generation cycle never surfaces generator errors; a deterministic fallback
// brief is produced when all attempts fail.
func (s *articleServiceImpl) GenerateResearchBrief(
	ctx context.Context,
	userID uuid.UUID,
	req generation.BriefRequest,
) (*domain.Article, error) {
	article, err := domain.NewArticle(userID, req.Keyword, req.Location, req.Goal)
	if err != nil {
		s.logger.Error("failed to create article object",
			"error", err,
			"user_id", userID)
		return nil, NewArticleServiceError("generate_brief", "failed to create article object", err)
	}
	article.URL = req.URL
	article.SelectedTitle = req.SelectedTitle

	result, err := s.orchestrator.Run(ctx, req, s.briefGen)
	if err != nil {
		// Only request validation or context cancellation reach here.
		s.logger.Error("brief generation cycle failed",
			"error", err,
			"article_id", article.ID,
			"user_id", userID)
		return nil, NewArticleServiceError("generate_brief", "brief generation cycle failed", err)
	}

	if err := article.SetBrief(result.Content, result.Attempts, result.UsedFallback, result.TokenUsage); err != nil {
		return nil, NewArticleServiceError("generate_brief", "failed to attach brief", err)
	}

	err = store.RunInTransaction(ctx, s.articleRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.articleRepo.WithTx(tx)
		if err := txRepo.Create(ctx, article); err != nil {
			s.logger.Error("failed to create article in transaction",
				"error", err,
				"article_id", article.ID,
				"user_id", userID)
			return NewArticleServiceError("generate_brief", "failed to save article to database", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("research brief generated",
		"article_id", article.ID,
		"user_id", userID,
		"attempts", result.Attempts,
		"used_fallback", result.UsedFallback)

	return article, nil
}

// EnqueueArticleGeneration validates ownership and brief readiness, moves the
// article to generating status, and emits a task request event for the
// background runner.
func (s *articleServiceImpl) EnqueueArticleGeneration(
	ctx context.Context,
	articleID, userID uuid.UUID,
) (*domain.Article, error) {
	article, err := s.getOwnedArticle(ctx, "enqueue_generation", articleID, userID)
	if err != nil {
		return nil, err
	}

	if article.ResearchBrief == "" {
		return nil, ErrBriefNotReady
	}

	if err := article.UpdateStatus(domain.ArticleStatusGenerating); err != nil {
		return nil, NewArticleServiceError("enqueue_generation", "failed to update status", err)
	}
	if err := s.articleRepo.UpdateStatus(ctx, articleID, domain.ArticleStatusGenerating); err != nil {
		s.logger.Error("failed to mark article as generating",
			"error", err,
			"article_id", articleID)
		return nil, NewArticleServiceError("enqueue_generation", "failed to update article status", err)
	}

	event, err := events.NewArticleGenerationEvent(task.TaskTypeArticleGeneration, articleID)
	if err != nil {
		s.logger.Error("failed to create article generation event",
			"error", err,
			"article_id", articleID)
		return nil, NewArticleServiceError("enqueue_generation", "failed to create event", err)
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit article generation event",
			"error", err,
			"article_id", articleID,
			"event_id", event.ID)
		return nil, NewArticleServiceError("enqueue_generation", "failed to emit event", err)
	}

	s.logger.Info("article generation enqueued",
		"article_id", articleID,
		"user_id", userID,
		"event_id", event.ID)

	return article, nil
}

// GetArticle retrieves an article by its ID
func (s *articleServiceImpl) GetArticle(
	ctx context.Context,
	articleID uuid.UUID,
) (*domain.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, store.ErrArticleNotFound) {
			return nil, ErrArticleNotFound
		}
		s.logger.Error("failed to retrieve article",
			"error", err,
			"article_id", articleID)
		return nil, NewArticleServiceError("get_article", "failed to retrieve article", err)
	}

	return article, nil
}

// GetArticlesByUser retrieves all articles belonging to a user
func (s *articleServiceImpl) GetArticlesByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Article, error) {
	articles, err := s.articleRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to retrieve user articles",
			"error", err,
			"user_id", userID)
		return nil, NewArticleServiceError("get_user_articles", "failed to retrieve articles", err)
	}

	return articles, nil
}

// UpdateBrandToneBrief stores a brand-tone adapted version of the research
// brief on an article owned by the given user.
func (s *articleServiceImpl) UpdateBrandToneBrief(
	ctx context.Context,
	articleID, userID uuid.UUID,
	brief string,
) (*domain.Article, error) {
	if brief == "" {
		return nil, NewArticleServiceError(
			"update_brandtone_brief",
			"brand tone brief cannot be empty",
			domain.ErrEmptyContent,
		)
	}

	var updated *domain.Article
	err := store.RunInTransaction(ctx, s.articleRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.articleRepo.WithTx(tx)

		article, err := txRepo.GetByID(ctx, articleID)
		if err != nil {
			if errors.Is(err, store.ErrArticleNotFound) {
				return ErrArticleNotFound
			}
			return NewArticleServiceError("update_brandtone_brief", "failed to retrieve article", err)
		}
		if article.UserID != userID {
			return ErrNotOwned
		}

		article.BrandToneBrief = brief
		if err := txRepo.Update(ctx, article); err != nil {
			return NewArticleServiceError("update_brandtone_brief", "failed to save article", err)
		}

		updated = article
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("brand tone brief updated",
		"article_id", articleID,
		"user_id", userID)

	return updated, nil
}

// DeleteArticle removes an article owned by the given user.
func (s *articleServiceImpl) DeleteArticle(ctx context.Context, articleID, userID uuid.UUID) error {
	if _, err := s.getOwnedArticle(ctx, "delete_article", articleID, userID); err != nil {
		return err
	}

	if err := s.articleRepo.Delete(ctx, articleID); err != nil {
		if errors.Is(err, store.ErrArticleNotFound) {
			return ErrArticleNotFound
		}
		s.logger.Error("failed to delete article",
			"error", err,
			"article_id", articleID)
		return NewArticleServiceError("delete_article", "failed to delete article", err)
	}

	s.logger.Info("article deleted",
		"article_id", articleID,
		"user_id", userID)
	return nil
}

// RenderArticleHTML renders the article's markdown content to HTML.
func (s *articleServiceImpl) RenderArticleHTML(
	ctx context.Context,
	articleID uuid.UUID,
) (string, error) {
	article, err := s.GetArticle(ctx, articleID)
	if err != nil {
		return "", err
	}

	source := article.Content
	if source == "" {
		// Fall back to the brief when the body has not been generated yet.
		source = article.ResearchBrief
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(source), &buf); err != nil {
		s.logger.Error("failed to render article markdown",
			"error", err,
			"article_id", articleID)
		return "", NewArticleServiceError("render_html", "failed to render markdown", err)
	}

	return buf.String(), nil
}

// UpdateArticleStatus updates an article's status. Used by background tasks to
// report progress and failures.
func (s *articleServiceImpl) UpdateArticleStatus(
	ctx context.Context,
	articleID uuid.UUID,
	status domain.ArticleStatus,
) error {
	if err := s.articleRepo.UpdateStatus(ctx, articleID, status); err != nil {
		if errors.Is(err, store.ErrArticleNotFound) {
			return ErrArticleNotFound
		}
		return NewArticleServiceError("update_status", "failed to update article status", err)
	}
	return nil
}

// SaveArticleContent records a generated article body and completes the
// article within a transaction. Used by background tasks.
func (s *articleServiceImpl) SaveArticleContent(
	ctx context.Context,
	articleID uuid.UUID,
	title, content string,
) error {
	return store.RunInTransaction(ctx, s.articleRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.articleRepo.WithTx(tx)

		article, err := txRepo.GetByID(ctx, articleID)
		if err != nil {
			if errors.Is(err, store.ErrArticleNotFound) {
				return ErrArticleNotFound
			}
			return NewArticleServiceError("save_content", "failed to retrieve article", err)
		}

		if err := article.SetContent(title, content); err != nil {
			return NewArticleServiceError("save_content", "failed to attach content", err)
		}

		if err := txRepo.Update(ctx, article); err != nil {
			return NewArticleServiceError("save_content", "failed to save article", err)
		}

		s.logger.Info("article content saved",
			"article_id", articleID,
			"content_length", len(content))
		return nil
	})
}

// getOwnedArticle fetches an article and verifies the requesting user owns it.
func (s *articleServiceImpl) getOwnedArticle(
	ctx context.Context,
	operation string,
	articleID, userID uuid.UUID,
) (*domain.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, store.ErrArticleNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, NewArticleServiceError(operation, "failed to retrieve article", err)
	}

	if article.UserID != userID {
		s.logger.Warn("article access denied",
			"article_id", articleID,
			"owner_id", article.UserID,
			"user_id", userID)
		return nil, ErrNotOwned
	}

	return article, nil
}
