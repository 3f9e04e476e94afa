package config

import "strings"

type AI string

const (
	AIGemini    AI = "gemini"
	AIOpenAI    AI = "openai"
	AIDeepSeek  AI = "deepseek"
	AIAnthropic AI = "anthropic"
)

type Model string

const (
	ModelGeminiV20Flash Model = "gemini-2.0-flash"
	ModelGPTV4          Model = "gpt-4"
	ModelDeepSeekChat   Model = "deepseek-chat"
	ModelClaudeSonnet45 Model = "claude-sonnet-4-5"
)

// SupportedAIs returns the providers in the order they are considered when
// more than one is configured.
func SupportedAIs() []AI {
	return []AI{
		AIGemini,
		AIOpenAI,
		AIDeepSeek,
		AIAnthropic,
	}
}

func DefaultModelForAI(ai AI) Model {
	switch ai {
	case AIGemini:
		return ModelGeminiV20Flash
	case AIOpenAI:
		return ModelGPTV4
	case AIDeepSeek:
		return ModelDeepSeekChat
	case AIAnthropic:
		return ModelClaudeSonnet45
	default:
		return ""
	}
}

// ParseAI normalizes a provider name as typed in a workflow file.
func ParseAI(name string) (AI, bool) {
	ai := AI(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range SupportedAIs() {
		if ai == known {
			return ai, true
		}
	}
	return "", false
}

// ProviderInput is one provider's pair of action inputs.
type ProviderInput struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL"`
}

// AIProviderConfig is a provider that has an API key and a resolved model.
type AIProviderConfig struct {
	Name   AI
	APIKey string
	Model  string
}

func (c *Config) providerInput(ai AI) ProviderInput {
	switch ai {
	case AIGemini:
		return c.Gemini
	case AIOpenAI:
		return c.OpenAI
	case AIDeepSeek:
		return c.DeepSeek
	case AIAnthropic:
		return c.Anthropic
	default:
		return ProviderInput{}
	}
}

// ConfiguredProviders lists every provider with a non-empty API key.
func (c *Config) ConfiguredProviders() []AIProviderConfig {
	var out []AIProviderConfig
	for _, ai := range SupportedAIs() {
		in := c.providerInput(ai)
		if in.APIKey == "" {
			continue
		}
		model := in.Model
		if model == "" {
			model = string(DefaultModelForAI(ai))
		}
		out = append(out, AIProviderConfig{Name: ai, APIKey: in.APIKey, Model: model})
	}
	return out
}
