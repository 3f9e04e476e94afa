package run

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/horw/issue-title-ai/internal/ai"
	"github.com/horw/issue-title-ai/internal/commands/completion_helper"
	"github.com/horw/issue-title-ai/internal/config"
	"github.com/horw/issue-title-ai/internal/i18n"
	"github.com/horw/issue-title-ai/internal/logger"
	"github.com/horw/issue-title-ai/internal/metrics"
	"github.com/horw/issue-title-ai/internal/models"
	"github.com/horw/issue-title-ai/internal/services"
	"github.com/horw/issue-title-ai/internal/ui"
	"github.com/horw/issue-title-ai/internal/vcs/github"
)

// Runner is the part of the batch driver the command needs.
type Runner interface {
	RunSingle(ctx context.Context, number int, event *models.IssueEvent) []models.Outcome
	RunScan(ctx context.Context, opts models.ScanOptions) ([]models.Outcome, error)
}

// Hooks are the optional observers handed to the runner.
type Hooks struct {
	Observer ai.GenerationObserver
	Progress services.ProgressFunc
}

type RunnerProvider func(ctx context.Context, cfg *config.Config, t *i18n.Translations, hooks Hooks) (Runner, error)

// RunCommandFactory creates the command that processes issues.
type RunCommandFactory struct {
	runnerProvider RunnerProvider
}

func NewRunCommandFactory(runnerProvider RunnerProvider) *RunCommandFactory {
	if runnerProvider == nil {
		runnerProvider = NewRunner
	}
	return &RunCommandFactory{runnerProvider: runnerProvider}
}

func (f *RunCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "run",
		Usage:         t.GetMessage("run_usage", 0, nil),
		Flags:         Flags(t),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.Action(t, cfg),
	}
}

// Flags returns the flags of the run command. The root command runs the same
// action and carries its own copy.
func Flags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Local:   true,
			Usage:   t.GetMessage("flag_repo", 0, nil),
		},
		&cli.IntFlag{
			Name:    "issue",
			Aliases: []string{"i"},
			Local:   true,
			Usage:   t.GetMessage("flag_issue", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Local: true,
			Usage: t.GetMessage("flag_dry_run", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Local: true,
			Usage: t.GetMessage("flag_verbose", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "debug",
			Local: true,
			Usage: t.GetMessage("flag_debug", 0, nil),
		},
		&cli.StringFlag{
			Name:    "style",
			Aliases: []string{"s"},
			Local:   true,
			Usage:   t.GetMessage("flag_style", 0, nil),
		},
		&cli.StringFlag{
			Name:    "language",
			Aliases: []string{"l"},
			Local:   true,
			Usage:   t.GetMessage("flag_language", 0, nil),
		},
	}
}

// Action processes the triggering issue when there is one and scans recent
// issues otherwise.
func (f *RunCommandFactory) Action(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		out := cmd.Root().Writer
		errOut := cmd.Root().ErrWriter

		applyFlags(cmd, cfg)
		if cmd.IsSet("language") {
			if err := t.SetLanguage(cfg.Language); err != nil {
				return err
			}
		}

		ctx = logger.WithLogger(ctx, logger.New(errOut, cfg.Debug, cfg.Verbose))

		if err := cfg.Validate(); err != nil {
			ui.HandleAppError(errOut, err, t)
			return err
		}

		var (
			recorder *metrics.Recorder
			hooks    = Hooks{Progress: progressPrinter(ctx)}
		)
		if cfg.MetricsFile != "" {
			recorder = metrics.NewRecorder()
			hooks.Observer = recorder
		}

		runner, err := f.runnerProvider(ctx, cfg, t, hooks)
		if err != nil {
			ui.HandleAppError(errOut, err, t)
			return err
		}

		logger.Info(ctx, "scanning repository", "repository", cfg.Repository)

		event := loadEvent(ctx, cfg)
		number := cfg.IssueNumber
		if number == 0 && event != nil {
			number = event.IssueNumber
		}

		var outcomes []models.Outcome
		if cfg.IssueNumber > 0 || (cfg.IsIssuesEvent() && number > 0) {
			outcomes = runner.RunSingle(ctx, number, event)
		} else {
			outcomes, err = runner.RunScan(ctx, cfg.ScanOptions())
			if err != nil {
				ui.HandleAppError(errOut, err, t)
				return err
			}
		}

		report(ctx, out, cfg, t, outcomes, recorder)
		return nil
	}
}

func applyFlags(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet("repo") {
		cfg.Repository = cmd.String("repo")
	}
	if cmd.IsSet("issue") {
		cfg.IssueNumber = int(cmd.Int("issue"))
	}
	if cmd.IsSet("dry-run") {
		cfg.DryRun = cmd.Bool("dry-run")
	}
	if cmd.IsSet("verbose") {
		cfg.Verbose = cmd.Bool("verbose")
	}
	if cmd.IsSet("debug") {
		cfg.Debug = cmd.Bool("debug")
	}
	if cmd.IsSet("style") {
		cfg.Style = cmd.String("style")
	}
	if cmd.IsSet("language") {
		cfg.Language = cmd.String("language")
	}
}

// loadEvent reads the issues event payload. An unreadable or malformed
// payload is logged and treated as no event.
func loadEvent(ctx context.Context, cfg *config.Config) *models.IssueEvent {
	if !cfg.IsIssuesEvent() {
		return nil
	}
	event, err := github.LoadIssueEvent(cfg.EventPath)
	if err != nil {
		logger.Warn(ctx, "could not read the issues event, continuing without it", "error", err)
		return nil
	}
	return event
}

func progressPrinter(ctx context.Context) services.ProgressFunc {
	return func(e models.ProgressEvent) {
		if e.Type != models.ProgressIssueProcessed || e.Outcome == nil {
			return
		}
		o := e.Outcome
		switch o.Status() {
		case models.OutcomeFailed:
			logger.Warn(ctx, "issue failed", "index", e.Index, "total", e.Total, "issue", o.IssueNumber, "error", o.Error)
		case models.OutcomeSkipped:
			logger.Debug(ctx, "issue skipped", "index", e.Index, "total", e.Total, "issue", o.IssueNumber, "reason", o.Reason)
		default:
			logger.Debug(ctx, "issue done", "index", e.Index, "total", e.Total, "issue", o.IssueNumber, "improved", o.Improved())
		}
	}
}

func report(ctx context.Context, out io.Writer, cfg *config.Config, t *i18n.Translations, outcomes []models.Outcome, recorder *metrics.Recorder) {
	if err := ui.WriteOutcomeTable(out, outcomes, t); err != nil {
		logger.Warn(ctx, "could not render the outcome table", "error", err)
	}

	if cfg.StepSummary != "" {
		if err := ui.AppendStepSummary(cfg.StepSummary, outcomes, t); err != nil {
			logger.Warn(ctx, "could not write the step summary", "error", err)
		}
	}

	if recorder != nil {
		recorder.ObserveOutcomes(outcomes)
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn(ctx, "could not write metrics", "error", err)
		} else {
			logger.Info(ctx, "metrics written", "path", cfg.MetricsFile)
		}
	}
}
