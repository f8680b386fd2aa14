package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/generation"
	"github.com/draftwise/draftwise-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrchestrator(t *testing.T) *generation.Orchestrator {
	t.Helper()

	cfg := generation.RetryConfig{
		MaxRetries:        1,
		ContentRetryDelay: time.Millisecond,
		ErrorRetryDelay:   time.Millisecond,
	}
	classifier := generation.NewClassifier(generation.DefaultRuleSet(generation.DefaultMinBriefLength))
	orchestrator, err := generation.NewOrchestrator(
		cfg, classifier, generation.NewFallbackGenerator(), testLogger())
	require.NoError(t, err)
	return orchestrator
}

// acceptableBriefGenerator returns briefs that always pass classification.
func acceptableBriefGenerator() generation.BriefGenerator {
	fallback := generation.NewFallbackGenerator()
	return generation.BriefGeneratorFunc(
		func(ctx context.Context, req generation.BriefRequest) (*generation.Brief, error) {
			return fallback.GenerateBrief(req), nil
		})
}

func failingBriefGenerator() generation.BriefGenerator {
	return generation.BriefGeneratorFunc(
		func(ctx context.Context, req generation.BriefRequest) (*generation.Brief, error) {
			return nil, errors.New("provider unavailable")
		})
}

func newArticleService(
	t *testing.T,
	repo *MockArticleRepository,
	emitter *MockEventEmitter,
	gen generation.BriefGenerator,
) ArticleService {
	t.Helper()

	svc, err := NewArticleService(repo, newTestOrchestrator(t), gen, emitter, testLogger())
	require.NoError(t, err)
	return svc
}

func newMockRepoWithDB(t *testing.T) (*MockArticleRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &MockArticleRepository{db: db}, dbMock
}

func validBriefRequest() generation.BriefRequest {
	return generation.BriefRequest{
		Keyword:  "organic pet food",
		Location: "Austin, Texas",
		Goal:     "drive newsletter signups",
	}
}

func TestNewArticleServiceValidatesDependencies(t *testing.T) {
	repo := &MockArticleRepository{}
	emitter := &MockEventEmitter{}
	orchestrator := newTestOrchestrator(t)
	gen := acceptableBriefGenerator()

	_, err := NewArticleService(nil, orchestrator, gen, emitter, testLogger())
	assert.Error(t, err)

	_, err = NewArticleService(repo, nil, gen, emitter, testLogger())
	assert.Error(t, err)

	_, err = NewArticleService(repo, orchestrator, nil, emitter, testLogger())
	assert.Error(t, err)

	_, err = NewArticleService(repo, orchestrator, gen, nil, testLogger())
	assert.Error(t, err)
}

func TestGenerateResearchBriefSuccess(t *testing.T) {
	repo, dbMock := newMockRepoWithDB(t)
	emitter := &MockEventEmitter{}
	svc := newArticleService(t, repo, emitter, acceptableBriefGenerator())

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Article")).Return(nil)

	userID := uuid.New()
	article, err := svc.GenerateResearchBrief(context.Background(), userID, validBriefRequest())

	require.NoError(t, err)
	assert.Equal(t, userID, article.UserID)
	assert.Equal(t, domain.ArticleStatusBriefReady, article.Status)
	assert.NotEmpty(t, article.ResearchBrief)
	assert.Equal(t, 1, article.GenerationAttempts)
	assert.False(t, article.UsedFallback)
	repo.AssertExpectations(t)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestGenerateResearchBriefFallsBackOnGeneratorFailure(t *testing.T) {
	repo, dbMock := newMockRepoWithDB(t)
	emitter := &MockEventEmitter{}
	svc := newArticleService(t, repo, emitter, failingBriefGenerator())

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Article")).Return(nil)

	article, err := svc.GenerateResearchBrief(context.Background(), uuid.New(), validBriefRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.ArticleStatusBriefReady, article.Status)
	assert.True(t, article.UsedFallback)
	assert.Equal(t, 2, article.GenerationAttempts)
	assert.Contains(t, article.ResearchBrief, "## SEO STRATEGY")
}

func TestGenerateResearchBriefRejectsInvalidRequest(t *testing.T) {
	repo := &MockArticleRepository{}
	emitter := &MockEventEmitter{}
	svc := newArticleService(t, repo, emitter, acceptableBriefGenerator())

	req := validBriefRequest()
	req.Keyword = ""

	_, err := svc.GenerateResearchBrief(context.Background(), uuid.New(), req)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEnqueueArticleGeneration(t *testing.T) {
	repo := &MockArticleRepository{}
	emitter := &MockEventEmitter{}
	svc := newArticleService(t, repo, emitter, acceptableBriefGenerator())

	userID := uuid.New()
	article, err := domain.NewArticle(userID, "organic pet food", "Austin, Texas", "signups")
	require.NoError(t, err)
	article.ResearchBrief = "a saved brief"

	repo.On("GetByID", mock.Anything, article.ID).Return(article, nil)
	repo.On("UpdateStatus", mock.Anything, article.ID, domain.ArticleStatusGenerating).Return(nil)
	emitter.On("EmitEvent", mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.EnqueueArticleGeneration(context.Background(), article.ID, userID)

	require.NoError(t, err)
	assert.Equal(t, domain.ArticleStatusGenerating, updated.Status)
	repo.AssertExpectations(t)
	emitter.AssertExpectations(t)
}

func TestEnqueueArticleGenerationRejectsForeignArticle(t *testing.T) {
	repo := &MockArticleRepository{}
	emitter := &MockEventEmitter{}
	svc := newArticleService(t, repo, emitter, acceptableBriefGenerator())

	owner := uuid.New()
	article, err := domain.NewArticle(owner, "kw", "loc", "goal")
	require.NoError(t, err)
	article.ResearchBrief = "a saved brief"

	repo.On("GetByID", mock.Anything, article.ID).Return(article, nil)

	_, err = svc.EnqueueArticleGeneration(context.Background(), article.ID, uuid.New())

	assert.ErrorIs(t, err, ErrNotOwned)
	emitter.AssertNotCalled(t, "EmitEvent", mock.Anything, mock.Anything)
}

func TestEnqueueArticleGenerationRequiresBrief(t *testing.T) {
	repo := &MockArticleRepository{}
	emitter := &MockEventEmitter{}
	svc := newArticleService(t, repo, emitter, acceptableBriefGenerator())

	userID := uuid.New()
	article, err := domain.NewArticle(userID, "kw", "loc", "goal")
	require.NoError(t, err)

	repo.On("GetByID", mock.Anything, article.ID).Return(article, nil)

	_, err = svc.EnqueueArticleGeneration(context.Background(), article.ID, userID)

	assert.ErrorIs(t, err, ErrBriefNotReady)
}

func TestGetArticleMapsNotFound(t *testing.T) {
	repo := &MockArticleRepository{}
	emitter := &MockEventEmitter{}
	svc := newArticleService(t, repo, emitter, acceptableBriefGenerator())

	articleID := uuid.New()
	repo.On("GetByID", mock.Anything, articleID).Return(nil, store.ErrArticleNotFound)

	_, err := svc.GetArticle(context.Background(), articleID)

	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestUpdateBrandToneBrief(t *testing.T) {
	repo, dbMock := newMockRepoWithDB(t)
	emitter := &MockEventEmitter{}
	svc := newArticleService(t, repo, emitter, acceptableBriefGenerator())

	userID := uuid.New()
	article, err := domain.NewArticle(userID, "kw", "loc", "goal")
	require.NoError(t, err)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()
	repo.On("GetByID", mock.Anything, article.ID).Return(article, nil)
	repo.On("Update", mock.Anything, article).Return(nil)

	updated, err := svc.UpdateBrandToneBrief(context.Background(), article.ID, userID, "brand tone brief")

	require.NoError(t, err)
	assert.Equal(t, "brand tone brief", updated.BrandToneBrief)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestDeleteArticle(t *testing.T) {
	repo := &MockArticleRepository{}
	emitter := &MockEventEmitter{}
	svc := newArticleService(t, repo, emitter, acceptableBriefGenerator())

	userID := uuid.New()
	article, err := domain.NewArticle(userID, "kw", "loc", "goal")
	require.NoError(t, err)

	repo.On("GetByID", mock.Anything, article.ID).Return(article, nil)
	repo.On("Delete", mock.Anything, article.ID).Return(nil)

	require.NoError(t, svc.DeleteArticle(context.Background(), article.ID, userID))
	repo.AssertExpectations(t)
}

func TestRenderArticleHTML(t *testing.T) {
	repo := &MockArticleRepository{}
	emitter := &MockEventEmitter{}
	svc := newArticleService(t, repo, emitter, acceptableBriefGenerator())

	article, err := domain.NewArticle(uuid.New(), "kw", "loc", "goal")
	require.NoError(t, err)
	article.Content = "# Heading\n\nSome **bold** text."

	repo.On("GetByID", mock.Anything, article.ID).Return(article, nil)

	html, err := svc.RenderArticleHTML(context.Background(), article.ID)

	require.NoError(t, err)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestSaveArticleContent(t *testing.T) {
	repo, dbMock := newMockRepoWithDB(t)
	emitter := &MockEventEmitter{}
	svc := newArticleService(t, repo, emitter, acceptableBriefGenerator())

	article, err := domain.NewArticle(uuid.New(), "kw", "loc", "goal")
	require.NoError(t, err)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()
	repo.On("GetByID", mock.Anything, article.ID).Return(article, nil)
	repo.On("Update", mock.Anything, article).Return(nil)

	err = svc.SaveArticleContent(context.Background(), article.ID, "Final Title", "article body")

	require.NoError(t, err)
	assert.Equal(t, domain.ArticleStatusCompleted, article.Status)
	assert.Equal(t, "Final Title", article.Title)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
