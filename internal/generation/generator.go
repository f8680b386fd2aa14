package generation

import (
	"context"
	"encoding/json"
	"errors"
)

// Common validation errors for BriefRequest
var (
	ErrEmptyKeyword  = errors.New("keyword cannot be empty")
	ErrEmptyLocation = errors.New("location cannot be empty")
	ErrEmptyGoal     = errors.New("goal cannot be empty")
)

// BriefRequest is the immutable input to one brief generation cycle.
type BriefRequest struct {
	Keyword       string
	Location      string
	Goal          string
	URL           string
	SelectedTitle string
}

// Validate checks that the required request fields are present.
func (r BriefRequest) Validate() error {
	if r.Keyword == "" {
		return ErrEmptyKeyword
	}
	if r.Location == "" {
		return ErrEmptyLocation
	}
	if r.Goal == "" {
		return ErrEmptyGoal
	}
	return nil
}

// Brief is the product of a single generator attempt: the brief text plus
// whatever token accounting the provider reported. Providers map their SDK
// response shapes onto this struct so the orchestration core never inspects
// provider-specific types.
type Brief struct {
	Content    string
	TokenUsage json.RawMessage
}

// BriefGenerator defines the boundary between the retry core and the external
// LLM service that produces research briefs. Implementations own prompt
// construction, model selection, and any provider-level timeout policy.
type BriefGenerator interface {
	// GenerateBrief produces a research brief for the given request.
	// It may return an error on transport or provider failure; the retry
	// orchestrator treats any error as a retryable generator failure.
	GenerateBrief(ctx context.Context, req BriefRequest) (*Brief, error)
}

// BriefGeneratorFunc adapts a plain function to the BriefGenerator interface.
type BriefGeneratorFunc func(ctx context.Context, req BriefRequest) (*Brief, error)

// GenerateBrief calls f.
func (f BriefGeneratorFunc) GenerateBrief(ctx context.Context, req BriefRequest) (*Brief, error) {
	return f(ctx, req)
}

// ArticleGenerator defines the boundary to the LLM service that expands a
// research brief into a full article.
type ArticleGenerator interface {
	// GenerateArticle produces article markdown from the given research brief.
	GenerateArticle(ctx context.Context, brief string) (*Brief, error)
}

// ArticleGeneratorFunc adapts a plain function to the ArticleGenerator interface.
type ArticleGeneratorFunc func(ctx context.Context, brief string) (*Brief, error)

// GenerateArticle calls f.
func (f ArticleGeneratorFunc) GenerateArticle(ctx context.Context, brief string) (*Brief, error) {
	return f(ctx, brief)
}
