package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/filmdeck/pkg/commands/options"
	"tableflip.dev/filmdeck/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	qo := &options.QueryOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the catalog, filtered and sorted like the board.",
		Example: `
filmdeck list
filmdeck list --filter watchlist --sort rating
filmdeck list --filter history --since 3mo --calendar
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			q, since, err := qo.Query()
			if err != nil {
				return oo.HandleError(err)
			}
			_, p, err := load()
			if err != nil {
				return oo.HandleError(err)
			}
			s := list.List{
				Persistence: p,
				Query:       q,
				Since:       since,
				Calendar:    qo.Calendar,
				ShowID:      io.ShowID,
				JSON:        oo.JSON,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddQueryArgs(cmd, qo)
	_ = cmd.RegisterFlagCompletionFunc("filter", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return filterCompletions(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("sort", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return sortCompletions(), cobra.ShellCompDirectiveNoFileComp
	})
	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
