package commands

import (
	"os"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/filmdeck/pkg/logging"
	"tableflip.dev/filmdeck/pkg/runner/edit"
	"tableflip.dev/filmdeck/pkg/store"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "filmdeck",
		Short: base.Wrap80("A movie catalog for the terminal: browse, rate and comment on films."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addList(topLevel)
	addToggle(topLevel)
	addComment(topLevel)
	addSeed(topLevel)
	addImport(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func load() (*store.FileConfig, store.Persistence, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, p, nil
}

func editBase(cfg *store.FileConfig, p store.Persistence) edit.Base {
	return edit.Base{
		Persistence: p,
		Author:      cfg.Author,
		Log:         logging.New("filmdeck", "warn", os.Stderr),
	}
}
