package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/filmdeck/pkg/movie"
)

// FlagOptions
type FlagOptions struct {
	Watchlist bool
	Watched   bool
	Favorite  bool
}

func AddFlagArgs(cmd *cobra.Command, o *FlagOptions) {
	cmd.Flags().BoolVarP(&o.Watchlist, "watchlist", "w", false,
		"Toggle the watchlist flag.")
	cmd.Flags().BoolVarP(&o.Watched, "watched", "d", false,
		"Toggle the watched flag.")
	cmd.Flags().BoolVarP(&o.Favorite, "favorite", "f", false,
		"Toggle the favorite flag.")
}

// Flags lists the selected flags in a stable order.
func (o *FlagOptions) Flags() []movie.Flag {
	var flags []movie.Flag
	if o.Watchlist {
		flags = append(flags, movie.FlagWatchlist)
	}
	if o.Watched {
		flags = append(flags, movie.FlagWatched)
	}
	if o.Favorite {
		flags = append(flags, movie.FlagFavorite)
	}
	return flags
}
