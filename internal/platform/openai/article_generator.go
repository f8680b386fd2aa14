// Package openai provides an implementation of the generation.ArticleGenerator
// interface that uses OpenAI's chat completions API to expand a research brief
// into a full article.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/draftwise/draftwise-api/internal/config"
	"github.com/draftwise/draftwise-api/internal/generation"
)

const articleSystemPrompt = `You are an expert content writer. You receive a research brief containing a competitive analysis, a content outline, research insights, and an SEO strategy. Write the complete article the brief describes.

Rules:
- Output the article itself in markdown, starting with a single # title.
- Follow the content outline's structure and per-section word counts.
- Apply the SEO strategy's keywords naturally.
- Do not describe the brief, reference it, or announce the article; write only the article body.`

// ArticleGenerator implements the generation.ArticleGenerator interface using
// the official openai-go SDK (chat completions).
type ArticleGenerator struct {
	logger *slog.Logger
	client openai.Client
	model  string
}

// NewArticleGenerator creates a new instance of ArticleGenerator with the
// provided configuration. Returns generation.ErrInvalidConfig if the API key
// or model name is missing.
func NewArticleGenerator(logger *slog.Logger, cfg config.LLMConfig) (*ArticleGenerator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.OpenAIModel == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	return &ArticleGenerator{
		logger: logger.With("component", "openai_article_generator"),
		client: openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey)),
		model:  cfg.OpenAIModel,
	}, nil
}

// Ensure ArticleGenerator implements generation.ArticleGenerator
var _ generation.ArticleGenerator = (*ArticleGenerator)(nil)

// GenerateArticle implements generation.ArticleGenerator.GenerateArticle.
// It makes a single API call; retry policy belongs to the caller.
func (g *ArticleGenerator) GenerateArticle(ctx context.Context, brief string) (*generation.Brief, error) {
	if brief == "" {
		return nil, fmt.Errorf("%w: brief cannot be empty", generation.ErrInvalidConfig)
	}

	g.logger.DebugContext(ctx, "calling OpenAI API",
		"model", g.model,
		"brief_length", len(brief))

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(articleSystemPrompt),
			openai.UserMessage(brief),
		},
	})
	if err != nil {
		g.logger.ErrorContext(ctx, "OpenAI API call failed", "error", err)
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices", generation.ErrInvalidResponse)
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	usageJSON, err := json.Marshal(struct {
		PromptTokens     int64  `json:"prompt_tokens"`
		CompletionTokens int64  `json:"completion_tokens"`
		TotalTokens      int64  `json:"total_tokens"`
		Model            string `json:"model"`
	}{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
		Model:            g.model,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode token usage: %v",
			generation.ErrInvalidResponse, err)
	}

	g.logger.InfoContext(ctx, "OpenAI API call successful",
		"content_length", len(content),
		"total_tokens", resp.Usage.TotalTokens)

	return &generation.Brief{
		Content:    content,
		TokenUsage: usageJSON,
	}, nil
}
