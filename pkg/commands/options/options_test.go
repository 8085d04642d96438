package options

import (
	"reflect"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/filmdeck/pkg/movie"
)

func TestQueryOptionsResolve(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	o := &QueryOptions{}
	AddQueryArgs(cmd, o)
	if err := cmd.ParseFlags([]string{"--filter", "Favorites", "--sort=rating", "--since", "2w"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	q, since, err := o.Query()
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if q.Filter != movie.FilterFavorites || q.Sort != movie.SortRating {
		t.Fatalf("unexpected query: %+v", q)
	}
	if since != 14*24*time.Hour {
		t.Fatalf("unexpected window: %s", since)
	}
}

func TestQueryOptionsRejectUnknown(t *testing.T) {
	for _, o := range []QueryOptions{
		{Filter: "later"},
		{Sort: "title"},
		{Since: "soon"},
	} {
		if _, _, err := o.Query(); err == nil {
			t.Fatalf("expected error for %+v", o)
		}
	}
}

func TestFlagOptionsOrder(t *testing.T) {
	cmd := &cobra.Command{Use: "toggle"}
	o := &FlagOptions{}
	AddFlagArgs(cmd, o)
	if err := cmd.ParseFlags([]string{"-f", "-w"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []movie.Flag{movie.FlagWatchlist, movie.FlagFavorite}
	if got := o.Flags(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
