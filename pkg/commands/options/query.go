package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/timeutil"
)

// QueryOptions
type QueryOptions struct {
	Filter   string
	Sort     string
	Since    string
	Calendar bool
}

func AddQueryArgs(cmd *cobra.Command, o *QueryOptions) {
	cmd.Flags().StringVarP(&o.Filter, "filter", "f", "all",
		"Which movies to show. One of 'all', 'watchlist', 'history' or 'favorites'.")
	cmd.Flags().StringVarP(&o.Sort, "sort", "s", "default",
		"Ordering. One of 'default', 'date' or 'rating'.")
	cmd.Flags().StringVar(&o.Since, "since", "",
		"Only movies watched within a window, like 1w, 3mo or 1y.")
	cmd.Flags().BoolVar(&o.Calendar, "calendar", false,
		"Show watch history as a calendar.")
}

// Query resolves the flags into a read model query and history window.
func (o *QueryOptions) Query() (movie.Query, time.Duration, error) {
	f, err := movie.ParseFilterType(o.Filter)
	if err != nil {
		return movie.Query{}, 0, err
	}
	s, err := movie.ParseSortType(o.Sort)
	if err != nil {
		return movie.Query{}, 0, err
	}
	var since time.Duration
	if o.Since != "" {
		if since, _, err = timeutil.ParseWindow(o.Since); err != nil {
			return movie.Query{}, 0, err
		}
	}
	return movie.Query{Filter: f, Sort: s}, since, nil
}
