package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/filmdeck/pkg/commands/options"
	"tableflip.dev/filmdeck/pkg/runner/edit"
)

func addToggle(topLevel *cobra.Command) {
	fo := &options.FlagOptions{}

	cmd := &cobra.Command{
		Use:   "toggle ID",
		Short: "Flip the watchlist, watched or favorite flag on a movie.",
		Example: `
filmdeck toggle 3 --watched
filmdeck toggle 3 -w -f
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: movieArgCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, p, err := load()
			if err != nil {
				return err
			}
			s := edit.Toggle{
				Base:  editBase(cfg, p),
				ID:    args[0],
				Flags: fo.Flags(),
			}
			return s.Do(context.Background())
		},
	}

	options.AddFlagArgs(cmd, fo)
	topLevel.AddCommand(cmd)
}
