package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/store"
)

var now = time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)

func init() {
	color.NoColor = true
}

func TestCatalogPrintsRows(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}
	pp.TitleWithCount("All movies", 2, "movie")
	pp.Catalog(store.Sample(2, now)...)

	out := buf.String()
	for _, want := range []string{"All movies - 2 movies", "ID", "Title", "The Dance of Life", "Sagebrush Trail", "WHF", "···"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCatalogEmpty(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Catalog()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none marker, got %q", buf.String())
	}
}

func TestFlags(t *testing.T) {
	cases := []struct {
		d    movie.UserDetails
		want string
	}{
		{movie.UserDetails{}, "···"},
		{movie.UserDetails{Watchlist: true}, "W··"},
		{movie.UserDetails{AlreadyWatched: true, Favorite: true}, "·HF"},
	}
	for _, tc := range cases {
		if got := Flags(tc.d); got != tc.want {
			t.Fatalf("Flags(%+v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestMovieDetails(t *testing.T) {
	var buf bytes.Buffer
	m := store.Sample(3, now)[2]
	(&PrettyPrint{Out: &buf}).Movie(m, now)

	out := buf.String()
	for _, want := range []string{m.Info.Title, "Director", m.Info.Director, "Comments - 2 comments", m.Comments[0].Text, m.Comments[0].Author} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWatchedPerDay(t *testing.T) {
	day := func(d int) *time.Time {
		v := time.Date(2025, time.March, d, 9, 0, 0, 0, time.UTC)
		return &v
	}
	movies := []movie.Movie{
		{ID: "a", UserDetails: movie.UserDetails{AlreadyWatched: true, WatchingDate: day(3)}},
		{ID: "b", UserDetails: movie.UserDetails{AlreadyWatched: true, WatchingDate: day(3)}},
		{ID: "c", UserDetails: movie.UserDetails{AlreadyWatched: true, WatchingDate: day(31)}},
		{ID: "d", UserDetails: movie.UserDetails{AlreadyWatched: false, WatchingDate: day(4)}},
	}
	count := WatchedPerDay(now, movies)
	if len(count) != 31 {
		t.Fatalf("expected 31 days, got %d", len(count))
	}
	if count[2] != 2 || count[30] != 1 || count[3] != 0 {
		t.Fatalf("unexpected counts: %v", count)
	}
}

func TestHistorySincePrintsEachMonth(t *testing.T) {
	var buf bytes.Buffer
	since := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	(&PrettyPrint{Out: &buf}).HistorySince(since, now)
	out := buf.String()
	for _, want := range []string{"January", "February", "March", "28", "31"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "April") {
		t.Fatalf("printed a month after now:\n%s", out)
	}
}

func TestDaysInAndStartDay(t *testing.T) {
	feb := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	if got := DaysIn(feb); got != 29 {
		t.Fatalf("DaysIn(Feb 2024) = %d", got)
	}
	if got := StartDay(feb); got != time.Thursday {
		t.Fatalf("StartDay(Feb 2024) = %s", got)
	}
	if got := NextMonth(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)); got.Month() != time.January || got.Year() != 2025 {
		t.Fatalf("NextMonth = %s", got)
	}
}
