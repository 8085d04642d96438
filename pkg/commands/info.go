package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/filmdeck/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the catalog and where it is stored.",
		Example: `
filmdeck info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, p, err := load()
			if err != nil {
				return oo.HandleError(err)
			}
			s := info.Info{
				Config:      cfg,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
