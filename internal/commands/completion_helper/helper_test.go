package completion_helper

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestDefaultFlagComplete(t *testing.T) {
	var out bytes.Buffer
	cmd := &cli.Command{
		Name:   "run",
		Writer: &out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "repo", Aliases: []string{"r"}},
			&cli.BoolFlag{Name: "dry-run"},
		},
	}

	DefaultFlagComplete(context.Background(), cmd)

	assert.Equal(t, "--repo\n-r\n--dry-run\n", out.String())
}

func newShowApp(out *bytes.Buffer, names func() ([]string, error)) *cli.Command {
	return &cli.Command{
		Name:                  "test",
		Writer:                out,
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			{
				Name:          "show",
				ShellComplete: NamesComplete(names),
				Action: func(context.Context, *cli.Command) error {
					return nil
				},
			},
		},
	}
}

func TestNamesComplete(t *testing.T) {
	styles := func() ([]string, error) {
		return []string{"concise", "summary"}, nil
	}

	t.Run("prints names", func(t *testing.T) {
		var out bytes.Buffer
		app := newShowApp(&out, styles)

		err := app.Run(context.Background(), []string{"test", "show", "--generate-shell-completion"})

		require.NoError(t, err)
		assert.Equal(t, "concise\nsummary\n", out.String())
	})

	t.Run("prints nothing once a name is given", func(t *testing.T) {
		var out bytes.Buffer
		app := newShowApp(&out, styles)

		err := app.Run(context.Background(), []string{"test", "show", "concise", "--generate-shell-completion"})

		require.NoError(t, err)
		assert.Empty(t, out.String())
	})

	t.Run("prints nothing on error", func(t *testing.T) {
		var out bytes.Buffer
		app := newShowApp(&out, func() ([]string, error) {
			return nil, errors.New("boom")
		})

		err := app.Run(context.Background(), []string{"test", "show", "--generate-shell-completion"})

		require.NoError(t, err)
		assert.Empty(t, out.String())
	})
}
