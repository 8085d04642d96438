package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/filmdeck/pkg/commands/options"
	"tableflip.dev/filmdeck/pkg/runner/seed"
)

func addSeed(topLevel *cobra.Command) {
	so := &options.SeedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write sample movies into the catalog.",
		Example: `
filmdeck seed --count 20
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, p, err := load()
			if err != nil {
				return err
			}
			s := seed.Seed{
				Persistence: p,
				Count:       so.Count,
			}
			return s.Do(context.Background())
		},
	}

	options.AddSeedArgs(cmd, so)
	topLevel.AddCommand(cmd)
}
