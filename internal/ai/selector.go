package ai

import (
	"math/rand/v2"

	"github.com/horw/issue-title-ai/internal/config"
	"github.com/horw/issue-title-ai/internal/errors"
)

// Strategy picks the provider a run will use out of the configured ones.
type Strategy func(providers []config.AIProviderConfig) (config.AIProviderConfig, error)

// RandomStrategy picks uniformly among the configured providers, spreading
// load when a repository configures more than one key.
func RandomStrategy() Strategy {
	return func(providers []config.AIProviderConfig) (config.AIProviderConfig, error) {
		if len(providers) == 0 {
			return config.AIProviderConfig{}, errors.ErrNoAIProvider
		}
		return providers[rand.IntN(len(providers))], nil
	}
}

// FirstStrategy always picks the first configured provider.
func FirstStrategy() Strategy {
	return func(providers []config.AIProviderConfig) (config.AIProviderConfig, error) {
		if len(providers) == 0 {
			return config.AIProviderConfig{}, errors.ErrNoAIProvider
		}
		return providers[0], nil
	}
}

// NamedStrategy picks the provider called name.
func NamedStrategy(name config.AI) Strategy {
	return func(providers []config.AIProviderConfig) (config.AIProviderConfig, error) {
		for _, p := range providers {
			if p.Name == name {
				return p, nil
			}
		}
		return config.AIProviderConfig{}, errors.ErrProviderKeyMissing.WithContext("provider", string(name))
	}
}

// StrategyFor returns NamedStrategy when the configuration pins a provider,
// RandomStrategy otherwise.
func StrategyFor(cfg *config.Config) Strategy {
	if cfg.AIProvider != "" {
		if name, ok := config.ParseAI(cfg.AIProvider); ok {
			return NamedStrategy(name)
		}
	}
	return RandomStrategy()
}
