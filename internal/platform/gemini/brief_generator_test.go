package gemini

import (
	"context"
	"log/slog"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftwise/draftwise-api/internal/config"
	"github.com/draftwise/draftwise-api/internal/generation"
)

func TestNewBriefGeneratorValidation(t *testing.T) {
	t.Parallel()

	logger := slog.Default()

	_, err := NewBriefGenerator(context.Background(), nil, config.LLMConfig{
		GeminiAPIKey: "key", GeminiModel: "gemini-2.0-flash",
	})
	assert.Error(t, err)

	_, err = NewBriefGenerator(context.Background(), logger, config.LLMConfig{
		GeminiModel: "gemini-2.0-flash",
	})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewBriefGenerator(context.Background(), logger, config.LLMConfig{
		GeminiAPIKey: "key",
	})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestBuildPromptIncludesRequestFields(t *testing.T) {
	t.Parallel()

	g := &BriefGenerator{
		prompt: template.Must(template.New("brief").Parse(briefPromptTemplate)),
	}

	req := generation.BriefRequest{
		Keyword:       "organic pet food",
		Location:      "Berlin",
		Goal:          "Educate pet owners",
		URL:           "https://example.com",
		SelectedTitle: "A Buyer's Guide",
	}

	prompt, err := g.buildPrompt(req)
	require.NoError(t, err)

	assert.Contains(t, prompt, "organic pet food")
	assert.Contains(t, prompt, "Berlin")
	assert.Contains(t, prompt, "https://example.com")
	assert.Contains(t, prompt, "A Buyer's Guide")
	for _, section := range []string{"## COMPETITIVE ANALYSIS", "## CONTENT OUTLINE", "## RESEARCH INSIGHTS", "## SEO STRATEGY"} {
		assert.Contains(t, prompt, section)
	}
}

func TestBuildPromptOmitsEmptyOptionalFields(t *testing.T) {
	t.Parallel()

	g := &BriefGenerator{
		prompt: template.Must(template.New("brief").Parse(briefPromptTemplate)),
	}

	prompt, err := g.buildPrompt(generation.BriefRequest{
		Keyword:  "organic pet food",
		Location: "Berlin",
		Goal:     "Educate pet owners",
	})
	require.NoError(t, err)

	assert.NotContains(t, prompt, "Company website:")
	assert.NotContains(t, prompt, "Chosen article title:")
}
