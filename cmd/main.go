package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/horw/issue-title-ai/internal/commands/registry"
	"github.com/horw/issue-title-ai/internal/commands/run"
	"github.com/horw/issue-title-ai/internal/commands/styles"
	versioncmd "github.com/horw/issue-title-ai/internal/commands/version"
	"github.com/horw/issue-title-ai/internal/config"
	"github.com/horw/issue-title-ai/internal/i18n"
	"github.com/horw/issue-title-ai/internal/services"
	"github.com/horw/issue-title-ai/internal/ui"
	"github.com/horw/issue-title-ai/internal/version"
)

func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		ui.HandleAppError(os.Stderr, err, nil)
		os.Exit(1)
	}

	if err := app.Run(ctx, os.Args); err != nil {
		os.Exit(1)
	}
}

func initializeApp(ctx context.Context) (*cli.Command, error) {
	cfg, err := config.Load(ctx, nil)
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfg.Language, cfg.LocalesDir)
	if err != nil {
		return nil, fmt.Errorf("error loading translations: %w", err)
	}

	runFactory := run.NewRunCommandFactory(run.NewRunner)

	registerCommand := registry.NewRegistry(cfg, translations)

	if err := registerCommand.Register("run", runFactory); err != nil {
		return nil, err
	}

	if err := registerCommand.Register("styles", styles.NewStylesCommandFactory(nil)); err != nil {
		return nil, err
	}

	checker := services.NewVersionChecker(version.FullVersion(), nil)
	if err := registerCommand.Register("version", versioncmd.NewVersionCommandFactory(version.FullVersion(), checker)); err != nil {
		return nil, err
	}

	// With no subcommand the tool behaves like the GitHub Action entrypoint.
	return &cli.Command{
		Name:                  "issue-title-ai",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags:                 run.Flags(translations),
		Action:                runFactory.Action(translations, cfg),
		Commands:              registerCommand.CreateCommands(),
	}, nil
}
