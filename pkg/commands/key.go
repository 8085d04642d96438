package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/filmdeck/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show the legend for flag markers and comment emotions.",
		Example: `
filmdeck key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{}
			return k.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
