package task

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise-api/internal/generation"
)

// ArticleGenerationTaskFactory creates ArticleGenerationTask instances
type ArticleGenerationTaskFactory struct {
	articleService ArticleService
	writer         generation.ArticleGenerator
	fallback       *generation.FallbackGenerator
	logger         *slog.Logger
}

// NewArticleGenerationTaskFactory creates a new factory for ArticleGenerationTasks
func NewArticleGenerationTaskFactory(
	articleService ArticleService,
	writer generation.ArticleGenerator,
	fallback *generation.FallbackGenerator,
	logger *slog.Logger,
) *ArticleGenerationTaskFactory {
	return &ArticleGenerationTaskFactory{
		articleService: articleService,
		writer:         writer,
		fallback:       fallback,
		logger:         logger.With("component", "article_generation_task_factory"),
	}
}

// CreateTask creates a new ArticleGenerationTask for the specified article
func (f *ArticleGenerationTaskFactory) CreateTask(articleID uuid.UUID) (Task, error) {
	return NewArticleGenerationTask(
		articleID,
		f.articleService,
		f.writer,
		f.fallback,
		f.logger,
	)
}
