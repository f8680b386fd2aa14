package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/platform/logger"
	"github.com/draftwise/draftwise-api/internal/store"
)

// PostgresArticleStore implements the store.ArticleStore interface
// using a PostgreSQL database as the storage backend.
type PostgresArticleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresArticleStore creates a new PostgreSQL implementation of the ArticleStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresArticleStore(db store.DBTX, logger *slog.Logger) *PostgresArticleStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresArticleStore{
		db:     db,
		logger: logger.With(slog.String("component", "article_store")),
	}
}

// Ensure PostgresArticleStore implements store.ArticleStore interface
var _ store.ArticleStore = (*PostgresArticleStore)(nil)

const articleColumns = `id, user_id, company_id, keyword, location, goal, url,
	selected_title, title, research_brief, brand_tone_brief, content,
	token_usage, generation_attempts, used_fallback, status, created_at, updated_at`

// Create implements store.ArticleStore.Create
// It saves a new article to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the user ID doesn't exist (foreign key violation).
func (s *PostgresArticleStore) Create(ctx context.Context, article *domain.Article) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := article.Validate(); err != nil {
		log.Warn("article validation failed during create",
			slog.String("error", err.Error()),
			slog.String("article_id", article.ID.String()))
		return err
	}

	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		article.ID,
		article.UserID,
		nullableUUID(article.CompanyID),
		article.Keyword,
		article.Location,
		article.Goal,
		article.URL,
		article.SelectedTitle,
		article.Title,
		article.ResearchBrief,
		article.BrandToneBrief,
		article.Content,
		nullableJSON(article.TokenUsage),
		article.GenerationAttempts,
		article.UsedFallback,
		article.Status,
		article.CreatedAt,
		article.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during article creation",
				slog.String("article_id", article.ID.String()),
				slog.String("user_id", article.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, article.UserID)
		}

		log.Error("failed to create article",
			slog.String("error", err.Error()),
			slog.String("article_id", article.ID.String()),
			slog.String("user_id", article.UserID.String()))
		return err
	}

	log.Info("article created successfully",
		slog.String("article_id", article.ID.String()),
		slog.String("user_id", article.UserID.String()),
		slog.String("status", string(article.Status)))
	return nil
}

// GetByID implements store.ArticleStore.GetByID
// Returns store.ErrArticleNotFound if the article does not exist.
func (s *PostgresArticleStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving article by ID", slog.String("article_id", id.String()))

	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	article, err := scanArticle(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("article not found", slog.String("article_id", id.String()))
			return nil, store.ErrArticleNotFound
		}
		log.Error("failed to get article by ID",
			slog.String("error", err.Error()),
			slog.String("article_id", id.String()))
		return nil, err
	}

	return article, nil
}

// GetByUserID implements store.ArticleStore.GetByUserID
// Returns an empty slice when the user has no articles.
func (s *PostgresArticleStore) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Article, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + articleColumns + ` FROM articles WHERE user_id = $1 ORDER BY updated_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query articles by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	articles := []*domain.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			log.Error("failed to scan article row",
				slog.String("error", err.Error()))
			return nil, err
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("found articles for user",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(articles)))
	return articles, nil
}

// Update implements store.ArticleStore.Update
// Returns store.ErrArticleNotFound if the article does not exist.
func (s *PostgresArticleStore) Update(ctx context.Context, article *domain.Article) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := article.Validate(); err != nil {
		log.Warn("article validation failed during update",
			slog.String("error", err.Error()),
			slog.String("article_id", article.ID.String()))
		return err
	}

	article.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE articles
		SET keyword = $1, location = $2, goal = $3, url = $4,
			selected_title = $5, title = $6, research_brief = $7,
			brand_tone_brief = $8, content = $9, token_usage = $10,
			generation_attempts = $11, used_fallback = $12, status = $13,
			updated_at = $14
		WHERE id = $15
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		article.Keyword,
		article.Location,
		article.Goal,
		article.URL,
		article.SelectedTitle,
		article.Title,
		article.ResearchBrief,
		article.BrandToneBrief,
		article.Content,
		nullableJSON(article.TokenUsage),
		article.GenerationAttempts,
		article.UsedFallback,
		article.Status,
		article.UpdatedAt,
		article.ID,
	)

	if err != nil {
		log.Error("failed to update article",
			slog.String("error", err.Error()),
			slog.String("article_id", article.ID.String()))
		return err
	}

	if err := CheckRowsAffected(result, "article"); err != nil {
		log.Debug("article not found for update",
			slog.String("article_id", article.ID.String()))
		return store.ErrArticleNotFound
	}

	log.Info("article updated successfully",
		slog.String("article_id", article.ID.String()),
		slog.String("status", string(article.Status)))
	return nil
}

// UpdateStatus implements store.ArticleStore.UpdateStatus
// Returns store.ErrArticleNotFound if the article does not exist.
func (s *PostgresArticleStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.ArticleStatus,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("updating article status",
		slog.String("article_id", id.String()),
		slog.String("status", string(status)))

	if !status.IsValid() {
		return domain.ErrInvalidArticleStatus
	}

	query := `
		UPDATE articles
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update article status",
			slog.String("error", err.Error()),
			slog.String("article_id", id.String()),
			slog.String("status", string(status)))
		return err
	}

	if err := CheckRowsAffected(result, "article"); err != nil {
		log.Debug("article not found for status update",
			slog.String("article_id", id.String()))
		return store.ErrArticleNotFound
	}

	log.Info("article status updated successfully",
		slog.String("article_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// Delete implements store.ArticleStore.Delete
// Returns store.ErrArticleNotFound if the article does not exist.
func (s *PostgresArticleStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete article",
			slog.String("error", err.Error()),
			slog.String("article_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, "article"); err != nil {
		log.Debug("article not found for delete",
			slog.String("article_id", id.String()))
		return store.ErrArticleNotFound
	}

	log.Info("article deleted successfully",
		slog.String("article_id", id.String()))
	return nil
}

// WithTx implements store.ArticleStore.WithTx
func (s *PostgresArticleStore) WithTx(tx *sql.Tx) store.ArticleStore {
	return &PostgresArticleStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*domain.Article, error) {
	var article domain.Article
	var companyID uuid.NullUUID
	var url, selectedTitle, title, researchBrief, brandToneBrief, content sql.NullString
	var tokenUsage []byte
	var status string

	err := row.Scan(
		&article.ID,
		&article.UserID,
		&companyID,
		&article.Keyword,
		&article.Location,
		&article.Goal,
		&url,
		&selectedTitle,
		&title,
		&researchBrief,
		&brandToneBrief,
		&content,
		&tokenUsage,
		&article.GenerationAttempts,
		&article.UsedFallback,
		&status,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if companyID.Valid {
		article.CompanyID = companyID.UUID
	}
	article.URL = url.String
	article.SelectedTitle = selectedTitle.String
	article.Title = title.String
	article.ResearchBrief = researchBrief.String
	article.BrandToneBrief = brandToneBrief.String
	article.Content = content.String
	article.TokenUsage = tokenUsage
	article.Status = domain.ArticleStatus(status)

	return &article, nil
}

// nullableUUID maps uuid.Nil to SQL NULL.
func nullableUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

// nullableJSON maps empty JSON payloads to SQL NULL so the JSONB column
// stays NULL instead of holding an empty string.
func nullableJSON(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	return []byte(data)
}
