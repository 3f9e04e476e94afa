package run

import (
	"context"

	"github.com/horw/issue-title-ai/internal/config"
	"github.com/horw/issue-title-ai/internal/i18n"
	"github.com/horw/issue-title-ai/internal/prompts"
	"github.com/horw/issue-title-ai/internal/providers"
	"github.com/horw/issue-title-ai/internal/services"
)

// NewRunner wires the title pipeline for cfg: prompt, issue tracker, model
// client, title service, edit guard and batch driver. Every configuration
// error surfaces here, before any issue is touched.
func NewRunner(ctx context.Context, cfg *config.Config, t *i18n.Translations, hooks Hooks) (Runner, error) {
	template, err := prompts.Default().Resolve(cfg.Style, cfg.Prompt)
	if err != nil {
		return nil, err
	}

	tracker, err := providers.NewIssueTracker(ctx, cfg)
	if err != nil {
		return nil, err
	}

	generator, err := providers.NewTextGenerator(ctx, cfg, nil, hooks.Observer)
	if err != nil {
		return nil, err
	}

	titles := services.NewTitleService(generator, tracker, t, template,
		services.WithProcessingConfig(cfg.ProcessingConfig()))
	guard := services.NewEditGuard(tracker, t, cfg.SkipLabel)

	opts := []services.BatchDriverOption{services.WithSkipLabel(cfg.SkipLabel)}
	if hooks.Progress != nil {
		opts = append(opts, services.WithProgress(hooks.Progress))
	}
	return services.NewBatchDriver(tracker, titles, guard, t, opts...), nil
}
