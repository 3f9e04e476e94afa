package version

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/horw/issue-title-ai/internal/config"
	"github.com/horw/issue-title-ai/internal/i18n"
	"github.com/horw/issue-title-ai/internal/ui"
)

// LatestChecker looks up the newest published release.
type LatestChecker interface {
	Latest(ctx context.Context) (string, bool, error)
}

type VersionCommandFactory struct {
	currentVersion string
	checker        LatestChecker
}

func NewVersionCommandFactory(currentVersion string, checker LatestChecker) *VersionCommandFactory {
	return &VersionCommandFactory{
		currentVersion: currentVersion,
		checker:        checker,
	}
}

func (f *VersionCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: t.GetMessage("version_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "check",
				Usage: t.GetMessage("version_check_flag", 0, nil),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			_, _ = fmt.Fprintln(w, f.currentVersion)

			if !cmd.Bool("check") || f.checker == nil {
				return nil
			}

			latest, available, err := f.checker.Latest(ctx)
			if err != nil {
				ui.HandleAppError(cmd.Root().ErrWriter, err, t)
				return err
			}
			if available {
				ui.PrintWarning(w, t.GetMessage("version_update_available", 0, map[string]interface{}{
					"Current": f.currentVersion,
					"Latest":  latest,
				}))
				return nil
			}
			ui.PrintSuccess(w, t.GetMessage("version_up_to_date", 0, nil))
			return nil
		},
	}
}
