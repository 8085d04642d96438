// Package importer loads a YAML or JSON movie list into the catalog.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/filmdeck/pkg/store"
)

type Import struct {
	Persistence store.Persistence
	// Path of the file to read; "-" reads In.
	Path string
	In   io.Reader
	Out  io.Writer
}

func (i *Import) Do(ctx context.Context) error {
	if i.Persistence == nil {
		return errors.New("can not import, no persistence")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r := i.In
	if i.Path != "-" {
		f, err := os.Open(i.Path)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		defer f.Close()
		r = f
	}
	if r == nil {
		r = os.Stdin
	}

	n, err := store.Import(i.Persistence, r)
	if err != nil {
		return err
	}
	out := i.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintf(out, "imported %d movies\n", n)
	return nil
}
