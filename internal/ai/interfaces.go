package ai

import (
	"context"
	"time"

	"github.com/horw/issue-title-ai/internal/models"
)

// TextGenerator turns a finished prompt into the model's text answer.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)

	// ProviderName returns the name of the provider (e.g.: "gemini", "openai", "anthropic")
	ProviderName() string

	// ModelName returns the name of the current model (e.g.: "gemini-2.0-flash")
	ModelName() string
}

// GenerateFunc performs the raw provider call for one prompt.
type GenerateFunc func(ctx context.Context, model string, prompt string) (string, *models.TokenUsage, error)

// GenerationObserver is notified after every generation attempt.
type GenerationObserver interface {
	ObserveGeneration(provider, model string, elapsed time.Duration, usage *models.TokenUsage, err error)
}

// SystemPrompt frames chat-style models before the user prompt.
const SystemPrompt = "You are an expert at improving GitHub issue titles."
