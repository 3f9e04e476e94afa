package completion_helper

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// DefaultFlagComplete prints all flags of the current command to facilitate shell completion.
func DefaultFlagComplete(_ context.Context, cmd *cli.Command) {
	w := cmd.Root().Writer
	for _, f := range cmd.Flags {
		for _, name := range f.Names() {
			if len(name) == 1 {
				_, _ = fmt.Fprintln(w, "-"+name)
			} else {
				_, _ = fmt.Fprintln(w, "--"+name)
			}
		}
	}
}

// NamesComplete suggests the values returned by names for the first argument.
func NamesComplete(names func() ([]string, error)) cli.ShellCompleteFunc {
	return func(_ context.Context, cmd *cli.Command) {
		if cmd.NArg() > 0 {
			return
		}
		list, err := names()
		if err != nil {
			return
		}
		for _, name := range list {
			_, _ = fmt.Fprintln(cmd.Root().Writer, name)
		}
	}
}
