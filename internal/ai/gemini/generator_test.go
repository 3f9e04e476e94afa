package gemini

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horw/issue-title-ai/internal/ai"
	"github.com/horw/issue-title-ai/internal/config"
	domainErrors "github.com/horw/issue-title-ai/internal/errors"
	"github.com/horw/issue-title-ai/internal/models"
)

func newTestGenerator(fn ai.GenerateFunc) *Generator {
	g := &Generator{
		model:   "gemini-2.0-flash",
		wrapper: ai.NewTrackingWrapper("gemini", "gemini-2.0-flash", nil),
	}
	g.generateFn = fn
	return g
}

func TestNewGenerator(t *testing.T) {
	t.Run("requires an API key", func(t *testing.T) {
		_, err := NewGenerator(context.Background(), config.AIProviderConfig{Name: config.AIGemini})
		assert.True(t, stderrors.Is(err, domainErrors.ErrProviderKeyMissing))
	})

	t.Run("defaults the model", func(t *testing.T) {
		g, err := NewGenerator(context.Background(), config.AIProviderConfig{Name: config.AIGemini, APIKey: "test-key"})
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.0-flash", g.ModelName())
		assert.Equal(t, "gemini", g.ProviderName())
	})

	t.Run("keeps an explicit model", func(t *testing.T) {
		g, err := NewGenerator(context.Background(), config.AIProviderConfig{Name: config.AIGemini, APIKey: "test-key", Model: "gemini-2.5-flash"})
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.5-flash", g.ModelName())
	})
}

func TestGenerator_Generate(t *testing.T) {
	t.Run("returns the generated text", func(t *testing.T) {
		var gotModel, gotPrompt string
		g := newTestGenerator(func(_ context.Context, model, prompt string) (string, *models.TokenUsage, error) {
			gotModel, gotPrompt = model, prompt
			return "Crash when saving an empty file", &models.TokenUsage{TotalTokens: 12}, nil
		})

		text, err := g.Generate(context.Background(), "improve: bug")

		require.NoError(t, err)
		assert.Equal(t, "Crash when saving an empty file", text)
		assert.Equal(t, "gemini-2.0-flash", gotModel)
		assert.Equal(t, "improve: bug", gotPrompt)
	})

	t.Run("propagates failures", func(t *testing.T) {
		g := newTestGenerator(func(context.Context, string, string) (string, *models.TokenUsage, error) {
			return "", nil, domainErrors.ErrQuotaExceeded
		})

		_, err := g.Generate(context.Background(), "p")

		assert.True(t, stderrors.Is(err, domainErrors.ErrQuotaExceeded))
	})
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		msg  string
		want *domainErrors.AppError
	}{
		{"Error 429: RESOURCE EXHAUSTED", domainErrors.ErrQuotaExceeded},
		{"quota exceeded for project", domainErrors.ErrQuotaExceeded},
		{"API key not valid. Please pass a valid API key.", domainErrors.ErrAPIKeyInvalid},
		{"503 service unavailable", domainErrors.ErrAIGeneration},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			err := classifyError(stderrors.New(tt.msg))
			assert.True(t, stderrors.Is(err, tt.want), "got %v", err)
		})
	}
}
