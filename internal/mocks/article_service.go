package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/generation"
	"github.com/draftwise/draftwise-api/internal/service"
)

// MockArticleService implements service.ArticleService for testing.
type MockArticleService struct {
	GenerateResearchBriefFn    func(ctx context.Context, userID uuid.UUID, req generation.BriefRequest) (*domain.Article, error)
	EnqueueArticleGenerationFn func(ctx context.Context, articleID, userID uuid.UUID) (*domain.Article, error)
	GetArticleFn               func(ctx context.Context, articleID uuid.UUID) (*domain.Article, error)
	GetArticlesByUserFn        func(ctx context.Context, userID uuid.UUID) ([]*domain.Article, error)
	UpdateBrandToneBriefFn     func(ctx context.Context, articleID, userID uuid.UUID, brief string) (*domain.Article, error)
	DeleteArticleFn            func(ctx context.Context, articleID, userID uuid.UUID) error
	RenderArticleHTMLFn        func(ctx context.Context, articleID uuid.UUID) (string, error)
	UpdateArticleStatusFn      func(ctx context.Context, articleID uuid.UUID, status domain.ArticleStatus) error
	SaveArticleContentFn       func(ctx context.Context, articleID uuid.UUID, title, content string) error

	// Default values used when the function fields are nil
	Article  *domain.Article
	Articles []*domain.Article
	HTML     string
	Err      error
}

var _ service.ArticleService = (*MockArticleService)(nil)

// GenerateResearchBrief implements service.ArticleService.
func (m *MockArticleService) GenerateResearchBrief(
	ctx context.Context,
	userID uuid.UUID,
	req generation.BriefRequest,
) (*domain.Article, error) {
	if m.GenerateResearchBriefFn != nil {
		return m.GenerateResearchBriefFn(ctx, userID, req)
	}
	return m.Article, m.Err
}

// EnqueueArticleGeneration implements service.ArticleService.
func (m *MockArticleService) EnqueueArticleGeneration(
	ctx context.Context,
	articleID, userID uuid.UUID,
) (*domain.Article, error) {
	if m.EnqueueArticleGenerationFn != nil {
		return m.EnqueueArticleGenerationFn(ctx, articleID, userID)
	}
	return m.Article, m.Err
}

// GetArticle implements service.ArticleService.
func (m *MockArticleService) GetArticle(
	ctx context.Context,
	articleID uuid.UUID,
) (*domain.Article, error) {
	if m.GetArticleFn != nil {
		return m.GetArticleFn(ctx, articleID)
	}
	return m.Article, m.Err
}

// GetArticlesByUser implements service.ArticleService.
func (m *MockArticleService) GetArticlesByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Article, error) {
	if m.GetArticlesByUserFn != nil {
		return m.GetArticlesByUserFn(ctx, userID)
	}
	return m.Articles, m.Err
}

// UpdateBrandToneBrief implements service.ArticleService.
func (m *MockArticleService) UpdateBrandToneBrief(
	ctx context.Context,
	articleID, userID uuid.UUID,
	brief string,
) (*domain.Article, error) {
	if m.UpdateBrandToneBriefFn != nil {
		return m.UpdateBrandToneBriefFn(ctx, articleID, userID, brief)
	}
	return m.Article, m.Err
}

// DeleteArticle implements service.ArticleService.
func (m *MockArticleService) DeleteArticle(ctx context.Context, articleID, userID uuid.UUID) error {
	if m.DeleteArticleFn != nil {
		return m.DeleteArticleFn(ctx, articleID, userID)
	}
	return m.Err
}

// RenderArticleHTML implements service.ArticleService.
func (m *MockArticleService) RenderArticleHTML(
	ctx context.Context,
	articleID uuid.UUID,
) (string, error) {
	if m.RenderArticleHTMLFn != nil {
		return m.RenderArticleHTMLFn(ctx, articleID)
	}
	return m.HTML, m.Err
}

// UpdateArticleStatus implements service.ArticleService.
func (m *MockArticleService) UpdateArticleStatus(
	ctx context.Context,
	articleID uuid.UUID,
	status domain.ArticleStatus,
) error {
	if m.UpdateArticleStatusFn != nil {
		return m.UpdateArticleStatusFn(ctx, articleID, status)
	}
	return m.Err
}

// SaveArticleContent implements service.ArticleService.
func (m *MockArticleService) SaveArticleContent(
	ctx context.Context,
	articleID uuid.UUID,
	title, content string,
) error {
	if m.SaveArticleContentFn != nil {
		return m.SaveArticleContentFn(ctx, articleID, title, content)
	}
	return m.Err
}
