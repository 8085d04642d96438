package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/store"
)

// Info reports where the catalog lives and what it holds.
type Info struct {
	Config      *store.FileConfig
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("FILMDECK_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "FILMDECK_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "FILMDECK_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.log:", n.Config.LogFile)

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	all, err := n.Persistence.Movies(ctx)
	if err != nil {
		return err
	}
	counts := movie.Counts(all)
	_, _ = fmt.Fprintf(out, "Movies: %d\n", len(all))
	for _, f := range movie.FilterTypes() {
		if f == movie.FilterAll {
			continue
		}
		_, _ = fmt.Fprintf(out, "  %s: %d\n", f.Label(), counts[f])
	}
	return nil
}
