package ai

import (
	"context"
	"time"

	"github.com/horw/issue-title-ai/internal/logger"
	"github.com/horw/issue-title-ai/internal/models"
)

// TrackingWrapper wraps provider calls with timing, verbose logging of the
// prompt and raw response, and an optional observer.
type TrackingWrapper struct {
	provider string
	model    string
	observer GenerationObserver
}

func NewTrackingWrapper(provider, model string, observer GenerationObserver) *TrackingWrapper {
	return &TrackingWrapper{
		provider: provider,
		model:    model,
		observer: observer,
	}
}

// WrapGenerate runs generateFn and records how it went.
func (w *TrackingWrapper) WrapGenerate(ctx context.Context, prompt string, generateFn GenerateFunc) (string, *models.TokenUsage, error) {
	log := logger.FromContext(ctx).With("provider", w.provider, "model", w.model)

	log.Debug("sending prompt", "prompt", prompt, "prompt_length", len(prompt))

	start := time.Now()
	text, usage, err := generateFn(ctx, w.model, prompt)
	elapsed := time.Since(start)

	if usage != nil {
		usage.Provider = w.provider
		usage.Model = w.model
		usage.DurationMs = elapsed.Milliseconds()
	}

	if w.observer != nil {
		w.observer.ObserveGeneration(w.provider, w.model, elapsed, usage, err)
	}

	if err != nil {
		log.Debug("generation failed", "error", err, "duration_ms", elapsed.Milliseconds())
		return "", usage, err
	}

	log.Debug("model response", "response", text, "duration_ms", elapsed.Milliseconds())
	return text, usage, nil
}
