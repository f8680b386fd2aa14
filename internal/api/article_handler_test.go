package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/generation"
	"github.com/draftwise/draftwise-api/internal/mocks"
	"github.com/draftwise/draftwise-api/internal/scraper"
	"github.com/draftwise/draftwise-api/internal/service"
)

func testArticle(t *testing.T, userID uuid.UUID) *domain.Article {
	t.Helper()

	article, err := domain.NewArticle(userID, "organic pet food", "Austin", "drive signups")
	require.NoError(t, err)
	return article
}

func newArticleHandler(articleService *mocks.MockArticleService) *ArticleHandler {
	return NewArticleHandler(articleService, scraper.New(nil, nil))
}

func TestGenerateResearchBriefSuccess(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	article := testArticle(t, userID)
	article.ResearchBrief = "## COMPETITIVE ANALYSIS\n..."
	article.Status = domain.ArticleStatusBriefReady

	var gotReq generation.BriefRequest
	articleService := &mocks.MockArticleService{
		GenerateResearchBriefFn: func(ctx context.Context, uid uuid.UUID, req generation.BriefRequest) (*domain.Article, error) {
			gotReq = req
			return article, nil
		},
	}
	handler := newArticleHandler(articleService)

	r := asUser(newJSONRequest(t, http.MethodPost, "/api/articles/research-brief", ResearchBriefRequest{
		Keyword:  "organic pet food",
		Location: "Austin",
		Goal:     "drive signups",
		URL:      "https://example.com/page",
	}), userID)
	w := httptest.NewRecorder()

	handler.GenerateResearchBrief(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "organic pet food", gotReq.Keyword)
	assert.Equal(t, "https://example.com/page", gotReq.URL)

	resp := decodeEnvelope(t, w)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Research brief generated", resp.Message)
}

func TestGenerateResearchBriefRequiresAuth(t *testing.T) {
	t.Parallel()

	handler := newArticleHandler(&mocks.MockArticleService{})

	r := newJSONRequest(t, http.MethodPost, "/api/articles/research-brief", ResearchBriefRequest{
		Keyword:  "k",
		Location: "l",
		Goal:     "g",
	})
	w := httptest.NewRecorder()

	handler.GenerateResearchBrief(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateResearchBriefValidation(t *testing.T) {
	t.Parallel()

	handler := newArticleHandler(&mocks.MockArticleService{})

	r := asUser(newJSONRequest(t, http.MethodPost, "/api/articles/research-brief", ResearchBriefRequest{
		Keyword: "only keyword",
	}), uuid.New())
	w := httptest.NewRecorder()

	handler.GenerateResearchBrief(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateArticleAccepted(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	article := testArticle(t, userID)
	article.Status = domain.ArticleStatusGenerating

	articleService := &mocks.MockArticleService{Article: article}
	handler := newArticleHandler(articleService)

	r := asUser(newJSONRequest(t, http.MethodPost, "/api/articles/"+article.ID.String()+"/generate", nil), userID)
	r = withURLParam(r, "id", article.ID.String())
	w := httptest.NewRecorder()

	handler.GenerateArticle(w, r)

	require.Equal(t, http.StatusAccepted, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "Article generation started", resp.Message)
}

func TestGenerateArticleBriefNotReady(t *testing.T) {
	t.Parallel()

	articleService := &mocks.MockArticleService{Err: service.ErrBriefNotReady}
	handler := newArticleHandler(articleService)

	articleID := uuid.New()
	r := asUser(newJSONRequest(t, http.MethodPost, "/api/articles/"+articleID.String()+"/generate", nil), uuid.New())
	r = withURLParam(r, "id", articleID.String())
	w := httptest.NewRecorder()

	handler.GenerateArticle(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetBriefSuccess(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	article := testArticle(t, userID)

	handler := newArticleHandler(&mocks.MockArticleService{Article: article})

	r := asUser(newJSONRequest(t, http.MethodGet, "/api/articles/brief/"+article.ID.String(), nil), userID)
	r = withURLParam(r, "id", article.ID.String())
	w := httptest.NewRecorder()

	handler.GetBrief(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetBriefForeignArticle(t *testing.T) {
	t.Parallel()

	article := testArticle(t, uuid.New())
	handler := newArticleHandler(&mocks.MockArticleService{Article: article})

	r := asUser(newJSONRequest(t, http.MethodGet, "/api/articles/brief/"+article.ID.String(), nil), uuid.New())
	r = withURLParam(r, "id", article.ID.String())
	w := httptest.NewRecorder()

	handler.GetBrief(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetBriefNotFound(t *testing.T) {
	t.Parallel()

	handler := newArticleHandler(&mocks.MockArticleService{Err: service.ErrArticleNotFound})

	articleID := uuid.New()
	r := asUser(newJSONRequest(t, http.MethodGet, "/api/articles/brief/"+articleID.String(), nil), uuid.New())
	r = withURLParam(r, "id", articleID.String())
	w := httptest.NewRecorder()

	handler.GetBrief(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Article not found")
}

func TestGetBriefInvalidID(t *testing.T) {
	t.Parallel()

	handler := newArticleHandler(&mocks.MockArticleService{})

	r := asUser(newJSONRequest(t, http.MethodGet, "/api/articles/brief/not-a-uuid", nil), uuid.New())
	r = withURLParam(r, "id", "not-a-uuid")
	w := httptest.NewRecorder()

	handler.GetBrief(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserArticlesOwnOnly(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	articleService := &mocks.MockArticleService{
		Articles: []*domain.Article{testArticle(t, userID)},
	}
	handler := newArticleHandler(articleService)

	r := asUser(newJSONRequest(t, http.MethodGet, "/api/articles/user/"+userID.String(), nil), userID)
	r = withURLParam(r, "userID", userID.String())
	w := httptest.NewRecorder()

	handler.GetUserArticles(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	// A different authenticated user may not list them.
	other := uuid.New()
	r = asUser(newJSONRequest(t, http.MethodGet, "/api/articles/user/"+userID.String(), nil), other)
	r = withURLParam(r, "userID", userID.String())
	w = httptest.NewRecorder()

	handler.GetUserArticles(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateBrandToneSuccess(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	article := testArticle(t, userID)
	article.BrandToneBrief = "friendly version"

	var gotBrief string
	articleService := &mocks.MockArticleService{
		UpdateBrandToneBriefFn: func(ctx context.Context, articleID, uid uuid.UUID, brief string) (*domain.Article, error) {
			gotBrief = brief
			return article, nil
		},
	}
	handler := newArticleHandler(articleService)

	r := asUser(newJSONRequest(t, http.MethodPut, "/api/articles/brief/"+article.ID.String()+"/brandtone", BrandToneRequest{
		Brief: "friendly version",
	}), userID)
	r = withURLParam(r, "id", article.ID.String())
	w := httptest.NewRecorder()

	handler.UpdateBrandTone(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "friendly version", gotBrief)
}

func TestDeleteArticleSuccess(t *testing.T) {
	t.Parallel()

	handler := newArticleHandler(&mocks.MockArticleService{})

	articleID := uuid.New()
	r := asUser(newJSONRequest(t, http.MethodDelete, "/api/articles/"+articleID.String(), nil), uuid.New())
	r = withURLParam(r, "id", articleID.String())
	w := httptest.NewRecorder()

	handler.DeleteArticle(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Article deleted")
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	article := testArticle(t, userID)
	handler := newArticleHandler(&mocks.MockArticleService{
		Article: article,
		HTML:    "<h1>Title</h1>",
	})

	r := asUser(newJSONRequest(t, http.MethodGet, "/api/articles/"+article.ID.String()+"/html", nil), userID)
	r = withURLParam(r, "id", article.ID.String())
	w := httptest.NewRecorder()

	handler.RenderHTML(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\\u003ch1\\u003eTitle")
}

func TestScrapeSuccess(t *testing.T) {
	t.Parallel()

	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><title>Pet Food Guide</title></head><body><h1>Guide</h1><p>Feeding tips.</p></body></html>"))
	}))
	defer page.Close()

	handler := newArticleHandler(&mocks.MockArticleService{})

	r := asUser(newJSONRequest(t, http.MethodPost, "/api/articles/scrape", ScrapeRequest{URL: page.URL}), uuid.New())
	w := httptest.NewRecorder()

	handler.Scrape(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pet Food Guide")
}

func TestScrapeInvalidURL(t *testing.T) {
	t.Parallel()

	handler := newArticleHandler(&mocks.MockArticleService{})

	r := asUser(newJSONRequest(t, http.MethodPost, "/api/articles/scrape", ScrapeRequest{URL: "not-a-url"}), uuid.New())
	w := httptest.NewRecorder()

	handler.Scrape(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
