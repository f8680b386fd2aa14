package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ArticleStatus represents the generation state of an article.
type ArticleStatus string

// Possible article status values
const (
	ArticleStatusPending    ArticleStatus = "pending"
	ArticleStatusBriefReady ArticleStatus = "brief_ready"
	ArticleStatusGenerating ArticleStatus = "generating"
	ArticleStatusCompleted  ArticleStatus = "completed"
	ArticleStatusFailed     ArticleStatus = "failed"
)

// Common validation errors for Article
var (
	ErrEmptyArticleID       = errors.New("article ID cannot be empty")
	ErrEmptyArticleUserID   = errors.New("article user ID cannot be empty")
	ErrEmptyArticleKeyword  = errors.New("article keyword cannot be empty")
	ErrEmptyArticleLocation = errors.New("article location cannot be empty")
	ErrEmptyArticleGoal     = errors.New("article goal cannot be empty")
	ErrInvalidArticleStatus = errors.New("invalid article status")
	ErrInvalidTokenUsage    = errors.New("token usage must be valid JSON")
)

// Article represents one article generation cycle: the request fields
// submitted by a user, the research brief produced for them, and the
// generated article content once the brief has been expanded.
type Article struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             uuid.UUID       `json:"user_id"`
	CompanyID          uuid.UUID       `json:"company_id,omitempty"`
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
	Status             ArticleStatus   `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// NewArticle creates a new Article in pending status for the given user and
// request fields. Returns an error if validation fails.
func NewArticle(userID uuid.UUID, keyword, location, goal string) (*Article, error) {
	article := &Article{
		ID:        uuid.New(),
		UserID:    userID,
		Keyword:   keyword,
		Location:  location,
		Goal:      goal,
		Status:    ArticleStatusPending,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := article.Validate(); err != nil {
		return nil, err
	}

	return article, nil
}

// Validate checks if the Article has valid data.
// Returns an error if any field fails validation.
func (a *Article) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyArticleID
	}

	if a.UserID == uuid.Nil {
		return ErrEmptyArticleUserID
	}

	if a.Keyword == "" {
		return ErrEmptyArticleKeyword
	}

	if a.Location == "" {
		return ErrEmptyArticleLocation
	}

	if a.Goal == "" {
		return ErrEmptyArticleGoal
	}

	if !isValidArticleStatus(a.Status) {
		return ErrInvalidArticleStatus
	}

	if len(a.TokenUsage) > 0 && !json.Valid(a.TokenUsage) {
		return ErrInvalidTokenUsage
	}

	return nil
}

// SetBrief records the generated research brief along with the attempt count
// and fallback flag reported by the generation orchestrator, and moves the
// article to brief_ready status.
func (a *Article) SetBrief(brief string, attempts int, usedFallback bool, tokenUsage json.RawMessage) error {
	if brief == "" {
		return ErrEmptyContent
	}

	if len(tokenUsage) > 0 && !json.Valid(tokenUsage) {
		return ErrInvalidTokenUsage
	}

	a.ResearchBrief = brief
	a.GenerationAttempts = attempts
	a.UsedFallback = usedFallback
	a.TokenUsage = tokenUsage
	a.Status = ArticleStatusBriefReady
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// SetContent records the generated article body and moves the article to
// completed status.
func (a *Article) SetContent(title, content string) error {
	if content == "" {
		return ErrEmptyContent
	}

	a.Title = title
	a.Content = content
	a.Status = ArticleStatusCompleted
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateStatus updates the article's status and the UpdatedAt timestamp.
// Returns an error if the new status is invalid.
func (a *Article) UpdateStatus(status ArticleStatus) error {
	if !isValidArticleStatus(status) {
		return ErrInvalidArticleStatus
	}

	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// IsValid reports whether the status is one of the known ArticleStatus values.
func (s ArticleStatus) IsValid() bool {
	switch s {
	case ArticleStatusPending, ArticleStatusBriefReady, ArticleStatusGenerating,
		ArticleStatusCompleted, ArticleStatusFailed:
		return true
	default:
		return false
	}
}

// isValidArticleStatus checks if the given status is a valid ArticleStatus.
func isValidArticleStatus(status ArticleStatus) bool {
	return status.IsValid()
}
