package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise-api/internal/domain"
)

// ArticleStore defines the interface for article data persistence.
// Version: 1.0
type ArticleStore interface {
	// Create saves a new article to the store.
	// All fields must be valid according to domain validation rules.
	// Returns validation errors if the article data is invalid.
	Create(ctx context.Context, article *domain.Article) error

	// GetByID retrieves an article by its unique ID.
	// Returns ErrArticleNotFound if the article does not exist.
	// The returned article has its TokenUsage field populated from JSONB.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error)

	// GetByUserID retrieves all articles belonging to a user, most recently
	// updated first. Returns an empty slice when the user has no articles.
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Article, error)

	// Update persists the current state of an existing article, including
	// status, generated content, and token usage.
	// Returns ErrArticleNotFound if the article does not exist.
	Update(ctx context.Context, article *domain.Article) error

	// UpdateStatus transitions only the article's status column.
	// Returns ErrArticleNotFound if the article does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ArticleStatus) error

	// Delete removes an article from the store by its ID.
	// Returns ErrArticleNotFound if the article does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ArticleStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) ArticleStore
}
