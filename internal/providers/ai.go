package providers

import (
	"context"

	"github.com/horw/issue-title-ai/internal/ai"
	"github.com/horw/issue-title-ai/internal/ai/anthropic"
	"github.com/horw/issue-title-ai/internal/ai/gemini"
	"github.com/horw/issue-title-ai/internal/ai/openai"
	"github.com/horw/issue-title-ai/internal/config"
	"github.com/horw/issue-title-ai/internal/errors"
	"github.com/horw/issue-title-ai/internal/logger"
)

type generatorFactory func(ctx context.Context, cfg config.AIProviderConfig, observer ai.GenerationObserver) (ai.TextGenerator, error)

var generatorFactories = map[config.AI]generatorFactory{
	config.AIGemini: func(ctx context.Context, cfg config.AIProviderConfig, observer ai.GenerationObserver) (ai.TextGenerator, error) {
		g, err := gemini.NewGenerator(ctx, cfg, gemini.WithObserver(observer))
		if err != nil {
			return nil, err
		}
		return g, nil
	},
	config.AIOpenAI:    newOpenAICompatible,
	config.AIDeepSeek:  newOpenAICompatible,
	config.AIAnthropic: newAnthropic,
}

func newOpenAICompatible(_ context.Context, cfg config.AIProviderConfig, observer ai.GenerationObserver) (ai.TextGenerator, error) {
	g, err := openai.NewGenerator(cfg, openai.WithObserver(observer))
	if err != nil {
		return nil, err
	}
	return g, nil
}

func newAnthropic(_ context.Context, cfg config.AIProviderConfig, observer ai.GenerationObserver) (ai.TextGenerator, error) {
	g, err := anthropic.NewGenerator(cfg, anthropic.WithObserver(observer))
	if err != nil {
		return nil, err
	}
	return g, nil
}

// NewTextGenerator picks one of the configured providers with strategy and
// builds its client. observer may be nil.
func NewTextGenerator(ctx context.Context, cfg *config.Config, strategy ai.Strategy, observer ai.GenerationObserver) (ai.TextGenerator, error) {
	if strategy == nil {
		strategy = ai.StrategyFor(cfg)
	}

	selected, err := strategy(cfg.ConfiguredProviders())
	if err != nil {
		return nil, err
	}

	factory, ok := generatorFactories[selected.Name]
	if !ok {
		return nil, errors.ErrProviderUnsupported.WithContext("provider", string(selected.Name))
	}

	if cfg.DeprecatedModel != "" {
		logger.Warn(ctx, "the 'model' input is deprecated and ignored; use '<provider>-model' instead",
			"model", cfg.DeprecatedModel)
	}

	logger.Info(ctx, "using AI provider", "provider", selected.Name, "model", selected.Model)

	return factory(ctx, selected, observer)
}
