package service

import (
	"database/sql"

	"github.com/draftwise/draftwise-api/internal/store"
)

// ArticleRepositoryAdapter adapts a store.ArticleStore to the service-layer
// ArticleRepository interface, carrying the database handle services need to
// open transactions.
type ArticleRepositoryAdapter struct {
	store.ArticleStore
	db *sql.DB
}

// NewArticleRepositoryAdapter creates a new adapter that implements
// ArticleRepository by delegating to a store.ArticleStore implementation.
func NewArticleRepositoryAdapter(
	articleStore store.ArticleStore,
	db *sql.DB,
) *ArticleRepositoryAdapter {
	return &ArticleRepositoryAdapter{
		ArticleStore: articleStore,
		db:           db,
	}
}

// WithTx returns a repository bound to the given transaction.
func (a *ArticleRepositoryAdapter) WithTx(tx *sql.Tx) ArticleRepository {
	return &ArticleRepositoryAdapter{
		ArticleStore: a.ArticleStore.WithTx(tx),
		db:           a.db,
	}
}

// DB returns the underlying database connection.
func (a *ArticleRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// Ensure ArticleRepositoryAdapter implements ArticleRepository
var _ ArticleRepository = (*ArticleRepositoryAdapter)(nil)
