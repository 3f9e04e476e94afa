package gemini

import (
	"context"
	"strings"

	"github.com/horw/issue-title-ai/internal/ai"
	"github.com/horw/issue-title-ai/internal/config"
	domainErrors "github.com/horw/issue-title-ai/internal/errors"
	"github.com/horw/issue-title-ai/internal/logger"
	"github.com/horw/issue-title-ai/internal/models"
	"google.golang.org/genai"
)

var _ ai.TextGenerator = (*Generator)(nil)

type Generator struct {
	Client     *genai.Client
	model      string
	wrapper    *ai.TrackingWrapper
	generateFn ai.GenerateFunc
}

type Option func(*generatorOptions)

type generatorOptions struct {
	observer ai.GenerationObserver
}

// WithObserver reports every call to observer.
func WithObserver(observer ai.GenerationObserver) Option {
	return func(o *generatorOptions) {
		o.observer = observer
	}
}

func NewGenerator(ctx context.Context, cfg config.AIProviderConfig, opts ...Option) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, domainErrors.ErrProviderKeyMissing.WithContext("provider", string(config.AIGemini))
	}

	var o generatorOptions
	for _, opt := range opts {
		opt(&o)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "invalid") ||
			strings.Contains(errMsg, "unauthorized") ||
			strings.Contains(errMsg, "api key") ||
			strings.Contains(errMsg, "authentication") {
			return nil, domainErrors.ErrAPIKeyInvalid.WithError(err).WithContext("provider", string(config.AIGemini))
		}
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error creating AI client", err)
	}

	model := cfg.Model
	if model == "" {
		model = string(config.DefaultModelForAI(config.AIGemini))
	}

	g := &Generator{
		Client:  client,
		model:   model,
		wrapper: ai.NewTrackingWrapper(string(config.AIGemini), model, o.observer),
	}
	g.generateFn = g.defaultGenerate

	return g, nil
}

func (g *Generator) defaultGenerate(ctx context.Context, mName string, p string) (string, *models.TokenUsage, error) {
	log := logger.FromContext(ctx)

	resp, err := g.Client.Models.GenerateContent(ctx, mName, genai.Text(p), GetGenerateConfig(mName))
	if err != nil {
		log.Error("gemini API call failed",
			"error", err,
			"model", mName)
		return "", nil, classifyError(err)
	}

	return formatResponse(resp), extractUsage(resp), nil
}

// classifyError maps SDK errors onto the AI error taxonomy by message.
func classifyError(err error) error {
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "quota") ||
		strings.Contains(errMsg, "rate limit") ||
		strings.Contains(errMsg, "resource exhausted") {
		return domainErrors.ErrQuotaExceeded.WithError(err).WithContext("provider", string(config.AIGemini))
	}

	if strings.Contains(errMsg, "invalid") ||
		strings.Contains(errMsg, "unauthorized") ||
		strings.Contains(errMsg, "api key") {
		return domainErrors.ErrAPIKeyInvalid.WithError(err).WithContext("provider", string(config.AIGemini))
	}

	return domainErrors.ErrAIGeneration.WithError(err).WithContext("provider", string(config.AIGemini))
}

// Generate sends prompt to Gemini and returns the concatenated text answer.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	text, _, err := g.wrapper.WrapGenerate(ctx, prompt, g.generateFn)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (g *Generator) ProviderName() string {
	return string(config.AIGemini)
}

func (g *Generator) ModelName() string {
	return g.model
}
