// Package list prints the derived catalog for `filmdeck list`.
package list

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/printers"
	"tableflip.dev/filmdeck/pkg/store"
)

// defaultCalendarWindow is how far back the calendar goes without --since.
const defaultCalendarWindow = 90 * 24 * time.Hour

type List struct {
	Persistence store.Persistence
	Query       movie.Query
	// Since keeps only movies watched within the window when non-zero.
	Since    time.Duration
	Calendar bool
	ShowID   bool
	JSON     bool

	Out io.Writer
	Now func() time.Time
}

func (l *List) Do(ctx context.Context) error {
	if l.Persistence == nil {
		return errors.New("can not list, no persistence")
	}
	all, err := l.Persistence.Movies(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	if l.Now != nil {
		now = l.Now()
	}
	out := l.Out
	if out == nil {
		out = color.Output
	}

	shown := movie.Derive(all, l.Query)
	if l.Since > 0 {
		shown = WatchedSince(shown, now.Add(-l.Since))
	}

	if l.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(shown)
	}

	pp := printers.PrettyPrint{Out: out, ShowID: l.ShowID}
	if l.Calendar {
		window := l.Since
		if window <= 0 {
			window = defaultCalendarWindow
		}
		pp.HistorySince(now.Add(-window), now, shown...)
		return nil
	}

	pp.NewLine()
	pp.TitleWithCount(l.Query.Filter.Label(), len(shown), "movie")
	pp.Catalog(shown...)
	return nil
}

// WatchedSince keeps watched movies whose watching date is not before since.
func WatchedSince(list []movie.Movie, since time.Time) []movie.Movie {
	out := make([]movie.Movie, 0, len(list))
	for _, m := range list {
		w := m.UserDetails.WatchingDate
		if m.UserDetails.AlreadyWatched && w != nil && !w.Before(since) {
			out = append(out, m)
		}
	}
	return out
}
