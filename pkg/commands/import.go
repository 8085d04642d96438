package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/filmdeck/pkg/runner/importer"
)

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import movies from a YAML or JSON list, - reads stdin.",
		Example: `
filmdeck import movies.yaml
curl -s https://example.com/movies.json | filmdeck import -
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, p, err := load()
			if err != nil {
				return err
			}
			s := importer.Import{
				Persistence: p,
				Path:        args[0],
				In:          cmd.InOrStdin(),
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
