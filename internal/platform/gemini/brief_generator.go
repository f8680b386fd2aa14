package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"text/template"

	"google.golang.org/genai"

	"github.com/draftwise/draftwise-api/internal/config"
	"github.com/draftwise/draftwise-api/internal/generation"
)

// ErrContentBlocked is returned when the API refuses to generate content
// because of its safety filters.
var ErrContentBlocked = errors.New("content blocked by safety filters")

// briefPromptTemplate is the embedded prompt for research brief generation.
// The required section markers are spelled out so the model's output can pass
// the downstream quality rules.
const briefPromptTemplate = `You are an SEO content strategist. Produce a complete research brief for an article.

Target keyword: {{.Keyword}}
Target location: {{.Location}}
Business goal: {{.Goal}}
{{- if .URL}}
Company website: {{.URL}}
{{- end}}
{{- if .SelectedTitle}}
Chosen article title: {{.SelectedTitle}}
{{- end}}

Write the full brief content directly. Do not describe the brief or announce that it is ready; output the brief itself.

The brief must contain exactly these four markdown sections, in this order:

## COMPETITIVE ANALYSIS
Analyze the top-ranking content for the keyword and identify content gaps.

## CONTENT OUTLINE
A complete article outline with a title, section headings, and per-section word counts.

## RESEARCH INSIGHTS
Audience analysis, search intent mapping, and user journey considerations, with citations where available.

## SEO STRATEGY
Primary and long-tail keywords, on-page optimization guidance, and distribution strategy.

Each section must be thorough and specific to the keyword and location.`

// tokenUsage is the provider-neutral accounting shape persisted with each
// generated brief.
type tokenUsage struct {
	PromptTokens     int32  `json:"prompt_tokens"`
	CompletionTokens int32  `json:"completion_tokens"`
	TotalTokens      int32  `json:"total_tokens"`
	Model            string `json:"model"`
}

// BriefGenerator implements the generation.BriefGenerator interface using
// Google's Gemini API.
type BriefGenerator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
	prompt *template.Template
}

// NewBriefGenerator creates a new instance of BriefGenerator with the provided
// configuration. Returns generation.ErrInvalidConfig if the API key or model
// name is missing or the client cannot be created.
func NewBriefGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*BriefGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.GeminiModel == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &BriefGenerator{
		logger: logger.With("component", "gemini_brief_generator"),
		client: client,
		model:  cfg.GeminiModel,
		prompt: template.Must(template.New("brief").Parse(briefPromptTemplate)),
	}, nil
}

// Ensure BriefGenerator implements generation.BriefGenerator
var _ generation.BriefGenerator = (*BriefGenerator)(nil)

// GenerateBrief implements generation.BriefGenerator.GenerateBrief.
// It makes a single API call; retry policy belongs to the caller.
func (g *BriefGenerator) GenerateBrief(ctx context.Context, req generation.BriefRequest) (*generation.Brief, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := g.buildPrompt(req)
	if err != nil {
		return nil, err
	}

	g.logger.DebugContext(ctx, "calling Gemini API",
		"model", g.model,
		"prompt_length", len(prompt))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini API call failed", "error", err)
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w", ErrContentBlocked)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	usage := tokenUsage{Model: g.model}
	if resp.UsageMetadata != nil {
		usage.PromptTokens = resp.UsageMetadata.PromptTokenCount
		usage.CompletionTokens = resp.UsageMetadata.CandidatesTokenCount
		usage.TotalTokens = resp.UsageMetadata.TotalTokenCount
	}
	usageJSON, err := json.Marshal(usage)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode token usage: %v",
			generation.ErrInvalidResponse, err)
	}

	g.logger.InfoContext(ctx, "Gemini API call successful",
		"content_length", len(text),
		"total_tokens", usage.TotalTokens)

	return &generation.Brief{
		Content:    text,
		TokenUsage: usageJSON,
	}, nil
}

// buildPrompt renders the brief prompt for the given request.
func (g *BriefGenerator) buildPrompt(req generation.BriefRequest) (string, error) {
	var buf bytes.Buffer
	if err := g.prompt.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
