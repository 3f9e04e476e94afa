package styles

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/horw/issue-title-ai/internal/commands/completion_helper"
	"github.com/horw/issue-title-ai/internal/config"
	"github.com/horw/issue-title-ai/internal/i18n"
	"github.com/horw/issue-title-ai/internal/prompts"
	"github.com/horw/issue-title-ai/internal/ui"
)

// StyleResolver is the part of the prompt resolver the command needs.
type StyleResolver interface {
	Resolve(style, explicit string) (string, error)
	Styles() ([]string, error)
}

type StylesCommandFactory struct {
	resolver StyleResolver
}

func NewStylesCommandFactory(resolver StyleResolver) *StylesCommandFactory {
	if resolver == nil {
		resolver = prompts.Default()
	}
	return &StylesCommandFactory{resolver: resolver}
}

func (f *StylesCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "styles",
		Usage: t.GetMessage("styles_usage", 0, nil),
		Commands: []*cli.Command{
			f.newListCommand(t, cfg),
			f.newShowCommand(t),
		},
	}
}

func (f *StylesCommandFactory) newListCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   t.GetMessage("styles_list_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			names, err := f.resolver.Styles()
			if err != nil {
				return err
			}

			current := cfg.Style
			if current == "" {
				current = prompts.DefaultStyle
			}

			w := cmd.Root().Writer
			for _, name := range names {
				if name == current {
					_, _ = fmt.Fprintf(w, "* %s\n", ui.Success.Sprint(name))
					continue
				}
				_, _ = fmt.Fprintf(w, "  %s\n", name)
			}
			return nil
		},
	}
}

func (f *StylesCommandFactory) newShowCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:          "show",
		Usage:         t.GetMessage("styles_show_usage", 0, nil),
		ArgsUsage:     "<style>",
		ShellComplete: completion_helper.NamesComplete(f.resolver.Styles),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return errors.New(t.GetMessage("styles_show_missing_name", 0, nil))
			}

			template, err := f.resolver.Resolve(name, "")
			if err != nil {
				ui.HandleAppError(cmd.Root().ErrWriter, err, t)
				return err
			}

			_, err = fmt.Fprintln(cmd.Root().Writer, template)
			return err
		},
	}
}
