package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/draftwise/draftwise-api/internal/api/shared"
	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/generation"
	"github.com/draftwise/draftwise-api/internal/scraper"
	"github.com/draftwise/draftwise-api/internal/service"
)

// ResearchBriefRequest is the payload for starting a brief generation cycle.
type ResearchBriefRequest struct {
	Keyword       string `json:"keyword"        validate:"required,min=1"`
	Location      string `json:"location"       validate:"required,min=1"`
	Goal          string `json:"goal"           validate:"required,min=1"`
	URL           string `json:"url"            validate:"omitempty,url"`
	SelectedTitle string `json:"selected_title" validate:"omitempty,max=500"`
}

// BrandToneRequest is the payload for storing a brand-tone adapted brief.
type BrandToneRequest struct {
	Brief string `json:"research_brief_with_brandtone" validate:"required,min=1"`
}

// ScrapeRequest is the payload for the article scrape endpoint.
type ScrapeRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// ArticleResponse is the response shape for a single article.
type ArticleResponse struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"user_id"`
	Keyword            string          `json:"keyword"`
	Location           string          `json:"location"`
	Goal               string          `json:"goal"`
	URL                string          `json:"url,omitempty"`
	SelectedTitle      string          `json:"selected_title,omitempty"`
	Title              string          `json:"title,omitempty"`
	ResearchBrief      string          `json:"research_brief,omitempty"`
	BrandToneBrief     string          `json:"research_brief_with_brandtone,omitempty"`
	Content            string          `json:"content,omitempty"`
	TokenUsage         json.RawMessage `json:"token_usage,omitempty"`
	GenerationAttempts int             `json:"generation_attempts"`
	UsedFallback       bool            `json:"used_fallback"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ArticleHandler handles article-related HTTP requests.
type ArticleHandler struct {
	articleService service.ArticleService
	scraper        *scraper.Scraper
	validator      *validator.Validate
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService service.ArticleService, pageScraper *scraper.Scraper) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		scraper:        pageScraper,
		validator:      validator.New(),
	}
}

// GenerateResearchBrief handles POST /api/articles/research-brief. It runs
// the full generation cycle synchronously and returns the persisted article
// with its brief, attempt count, and token usage.
func (h *ArticleHandler) GenerateResearchBrief(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req ResearchBriefRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	article, err := h.articleService.GenerateResearchBrief(r.Context(), userID, generation.BriefRequest{
		Keyword:       req.Keyword,
		Location:      req.Location,
		Goal:          req.Goal,
		URL:           req.URL,
		SelectedTitle: req.SelectedTitle,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate research brief")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, "Research brief generated", articleToResponse(article))
}

// GenerateArticle handles POST /api/articles/{id}/generate. Article body
// generation runs in the background, so the response is 202 Accepted.
func (h *ArticleHandler) GenerateArticle(w http.ResponseWriter, r *http.Request) {
	userID, articleID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	article, err := h.articleService.EnqueueArticleGeneration(r.Context(), articleID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusAccepted, "Article generation started", articleToResponse(article))
}

// GetBrief handles GET /api/articles/brief/{id}.
func (h *ArticleHandler) GetBrief(w http.ResponseWriter, r *http.Request) {
	userID, articleID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	article, err := h.articleService.GetArticle(r.Context(), articleID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if article.UserID != userID {
		HandleAPIError(w, r, service.ErrNotOwned, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "", articleToResponse(article))
}

// GetUserArticles handles GET /api/articles/user/{userID}. Users can only
// list their own articles.
func (h *ArticleHandler) GetUserArticles(w http.ResponseWriter, r *http.Request) {
	authUserID, pathUserID, ok := requireUserAndPathUUID(w, r, "userID")
	if !ok {
		return
	}

	if authUserID != pathUserID {
		HandleAPIError(w, r, service.ErrNotOwned, "You can only list your own articles")
		return
	}

	articles, err := h.articleService.GetArticlesByUser(r.Context(), pathUserID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list articles")
		return
	}

	responses := make([]ArticleResponse, 0, len(articles))
	for _, article := range articles {
		responses = append(responses, articleToResponse(article))
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "", responses)
}

// UpdateBrandTone handles PUT /api/articles/brief/{id}/brandtone.
func (h *ArticleHandler) UpdateBrandTone(w http.ResponseWriter, r *http.Request) {
	userID, articleID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req BrandToneRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	article, err := h.articleService.UpdateBrandToneBrief(r.Context(), articleID, userID, req.Brief)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Brand tone brief updated", articleToResponse(article))
}

// DeleteArticle handles DELETE /api/articles/{id}.
func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	userID, articleID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.articleService.DeleteArticle(r.Context(), articleID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Article deleted", nil)
}

// RenderHTML handles GET /api/articles/{id}/html, returning the article's
// markdown content rendered to HTML.
func (h *ArticleHandler) RenderHTML(w http.ResponseWriter, r *http.Request) {
	userID, articleID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	article, err := h.articleService.GetArticle(r.Context(), articleID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if article.UserID != userID {
		HandleAPIError(w, r, service.ErrNotOwned, "")
		return
	}

	html, err := h.articleService.RenderArticleHTML(r.Context(), articleID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to render article")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "", map[string]string{"html": html})
}

// Scrape handles POST /api/articles/scrape, extracting the title, headings,
// and main text from a target page.
func (h *ArticleHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserIDFromContext(r); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req ScrapeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	content, err := h.scraper.Scrape(r.Context(), req.URL)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadGateway, "Failed to scrape URL", err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "", content)
}

// articleToResponse converts a domain.Article to its response shape.
func articleToResponse(article *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:                 article.ID.String(),
		UserID:             article.UserID.String(),
		Keyword:            article.Keyword,
		Location:           article.Location,
		Goal:               article.Goal,
		URL:                article.URL,
		SelectedTitle:      article.SelectedTitle,
		Title:              article.Title,
		ResearchBrief:      article.ResearchBrief,
		BrandToneBrief:     article.BrandToneBrief,
		Content:            article.Content,
		TokenUsage:         article.TokenUsage,
		GenerationAttempts: article.GenerationAttempts,
		UsedFallback:       article.UsedFallback,
		Status:             string(article.Status),
		CreatedAt:          article.CreatedAt,
		UpdatedAt:          article.UpdatedAt,
	}
}
