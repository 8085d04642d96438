// Package key prints the legend for the markers filmdeck draws.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/printers"
)

type Key struct {
	Out io.Writer
}

func (k *Key) Do(ctx context.Context) error {
	k.flags()
	k.emotions()
	return nil
}

func (k *Key) out() io.Writer {
	if k.Out == nil {
		return color.Output
	}
	return k.Out
}

func (k *Key) heading(title string) {
	_, _ = fmt.Fprintln(k.out(), color.New(color.Bold, color.Underline).Sprint("\n"+title))
}

func (k *Key) flags() {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Flags"), bold.Sprint("Meaning"))
	tbl.AddRow(printers.Flags(movie.UserDetails{Watchlist: true}), "on the watchlist")
	tbl.AddRow(printers.Flags(movie.UserDetails{AlreadyWatched: true}), "already watched")
	tbl.AddRow(printers.Flags(movie.UserDetails{Favorite: true}), "favorite")

	k.heading("Flags")
	_, _ = fmt.Fprintln(k.out(), tbl)
}

func (k *Key) emotions() {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Symbol"), bold.Sprint("Emotion"))
	for _, e := range movie.Emotions() {
		tbl.AddRow(e.Glyph(), string(e))
	}

	k.heading("Emotions")
	_, _ = fmt.Fprintln(k.out(), tbl)
}
