// Package openai talks to OpenAI-compatible chat completion APIs. DeepSeek is
// served by the same client pointed at its base URL.
package openai

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/horw/issue-title-ai/internal/ai"
	"github.com/horw/issue-title-ai/internal/config"
	domainErrors "github.com/horw/issue-title-ai/internal/errors"
	"github.com/horw/issue-title-ai/internal/logger"
	"github.com/horw/issue-title-ai/internal/models"
)

const DeepSeekBaseURL = "https://api.deepseek.com/v1"

var _ ai.TextGenerator = (*Generator)(nil)

type Generator struct {
	client     openai.Client
	provider   config.AI
	model      string
	wrapper    *ai.TrackingWrapper
	generateFn ai.GenerateFunc
}

type Option func(*generatorOptions)

type generatorOptions struct {
	observer ai.GenerationObserver
	baseURL  string
	client   *http.Client
}

// WithObserver reports every call to observer.
func WithObserver(observer ai.GenerationObserver) Option {
	return func(o *generatorOptions) {
		o.observer = observer
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(o *generatorOptions) {
		o.baseURL = url
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *generatorOptions) {
		o.client = client
	}
}

// NewGenerator builds a generator for the openai or deepseek provider.
func NewGenerator(cfg config.AIProviderConfig, opts ...Option) (*Generator, error) {
	if cfg.Name != config.AIOpenAI && cfg.Name != config.AIDeepSeek {
		return nil, domainErrors.ErrProviderUnsupported.WithContext("provider", string(cfg.Name))
	}
	if cfg.APIKey == "" {
		return nil, domainErrors.ErrProviderKeyMissing.WithContext("provider", string(cfg.Name))
	}

	o := generatorOptions{}
	if cfg.Name == config.AIDeepSeek {
		o.baseURL = DeepSeekBaseURL
	}
	for _, opt := range opts {
		opt(&o)
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(o.baseURL))
	}
	if o.client != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(o.client))
	}

	model := cfg.Model
	if model == "" {
		model = string(config.DefaultModelForAI(cfg.Name))
	}

	g := &Generator{
		client:   openai.NewClient(clientOpts...),
		provider: cfg.Name,
		model:    model,
		wrapper:  ai.NewTrackingWrapper(string(cfg.Name), model, o.observer),
	}
	g.generateFn = g.defaultGenerate

	return g, nil
}

func (g *Generator) defaultGenerate(ctx context.Context, mName string, p string) (string, *models.TokenUsage, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(mName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(ai.SystemPrompt),
			openai.UserMessage(p),
		},
	})
	if err != nil {
		logger.Error(ctx, "chat completion failed", err, "provider", g.provider, "model", mName)
		return "", nil, g.classifyError(err)
	}

	usage := &models.TokenUsage{
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:  int(resp.Usage.TotalTokens),
	}

	if len(resp.Choices) == 0 {
		return "", usage, domainErrors.ErrEmptyResponse.WithContext("provider", string(g.provider))
	}

	return resp.Choices[0].Message.Content, usage, nil
}

func (g *Generator) classifyError(err error) error {
	var apiErr *openai.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			return domainErrors.ErrQuotaExceeded.WithError(err).WithContext("provider", string(g.provider))
		case http.StatusUnauthorized, http.StatusForbidden:
			return domainErrors.ErrAPIKeyInvalid.WithError(err).WithContext("provider", string(g.provider))
		}
	}
	return domainErrors.ErrAIGeneration.WithError(err).WithContext("provider", string(g.provider))
}

// Generate sends prompt as a chat completion and returns the first choice.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	text, _, err := g.wrapper.WrapGenerate(ctx, prompt, g.generateFn)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (g *Generator) ProviderName() string {
	return string(g.provider)
}

func (g *Generator) ModelName() string {
	return g.model
}
