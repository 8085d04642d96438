package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(filmdeck completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(filmdeck completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletionV2(os.Stdout, true)
		},
	}

	topLevel.AddCommand(cmd)
}

// movieArgCompletion completes the first positional argument with movie ids.
func movieArgCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	all, err := p.Movies(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return movieCompletions(all, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func movieCompletions(all []movie.Movie, toComplete string) []string {
	out := make([]string, 0, len(all))
	for _, m := range all {
		if strings.HasPrefix(m.ID, toComplete) {
			out = append(out, m.ID+"\t"+m.Info.Title)
		}
	}
	return out
}

func filterCompletions() []string {
	var out []string
	for _, f := range movie.FilterTypes() {
		out = append(out, string(f))
	}
	return out
}

func sortCompletions() []string {
	var out []string
	for _, s := range movie.SortTypes() {
		out = append(out, string(s))
	}
	return out
}

func emotionCompletions() []string {
	var out []string
	for _, e := range movie.Emotions() {
		out = append(out, string(e))
	}
	return out
}
