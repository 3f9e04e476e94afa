package anthropic

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/horw/issue-title-ai/internal/ai"
	"github.com/horw/issue-title-ai/internal/config"
	domainErrors "github.com/horw/issue-title-ai/internal/errors"
	"github.com/horw/issue-title-ai/internal/logger"
	"github.com/horw/issue-title-ai/internal/models"
)

const maxTokens = 256

var _ ai.TextGenerator = (*Generator)(nil)

type Generator struct {
	client     anthropic.Client
	model      string
	wrapper    *ai.TrackingWrapper
	generateFn ai.GenerateFunc
}

type Option func(*generatorOptions)

type generatorOptions struct {
	observer ai.GenerationObserver
	baseURL  string
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

func NewGenerator(cfg config.AIProviderConfig, opts ...Option) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, domainErrors.ErrProviderKeyMissing.WithContext("provider", string(config.AIAnthropic))
	}

	var o generatorOptions
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

	model := cfg.Model
	if model == "" {
		model = string(config.DefaultModelForAI(config.AIAnthropic))
	}

	g := &Generator{
		client:  anthropic.NewClient(clientOpts...),
		model:   model,
		wrapper: ai.NewTrackingWrapper(string(config.AIAnthropic), model, o.observer),
	}
	g.generateFn = g.defaultGenerate

	return g, nil
}

func (g *Generator) defaultGenerate(ctx context.Context, mName string, p string) (string, *models.TokenUsage, error) {
	message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(mName),
		MaxTokens: maxTokens,
		System:    []anthropic.TextBlockParam{{Text: ai.SystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p)),
		},
	})
	if err != nil {
		logger.Error(ctx, "claude message failed", err, "model", mName)
		return "", nil, classifyError(err)
	}

	usage := &models.TokenUsage{
		InputTokens:  int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
		TotalTokens:  int(message.Usage.InputTokens + message.Usage.OutputTokens),
	}

	var text strings.Builder
	for _, content := range message.Content {
		if content.Type == "text" {
			text.WriteString(content.Text)
		}
	}

	return text.String(), usage, nil
}

func classifyError(err error) error {
	var apiErr *anthropic.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests, 529:
			return domainErrors.ErrQuotaExceeded.WithError(err).WithContext("provider", string(config.AIAnthropic))
		case http.StatusUnauthorized, http.StatusForbidden:
			return domainErrors.ErrAPIKeyInvalid.WithError(err).WithContext("provider", string(config.AIAnthropic))
		}
	}
	return domainErrors.ErrAIGeneration.WithError(err).WithContext("provider", string(config.AIAnthropic))
}

// Generate sends prompt as a single user message and returns the text blocks.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	text, _, err := g.wrapper.WrapGenerate(ctx, prompt, g.generateFn)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (g *Generator) ProviderName() string {
	return string(config.AIAnthropic)
}

func (g *Generator) ModelName() string {
	return g.model
}
