package options

import (
	"github.com/spf13/cobra"
)

// SeedOptions
type SeedOptions struct {
	Count int
}

func AddSeedArgs(cmd *cobra.Command, o *SeedOptions) {
	cmd.Flags().IntVarP(&o.Count, "count", "n", 12,
		"How many sample movies to write.")
}
