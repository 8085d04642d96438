package list

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/store"
)

var now = time.Date(2025, time.March, 30, 12, 0, 0, 0, time.UTC)

type dirConfig string

func (d dirConfig) BasePath() string { return string(d) }

func seeded(t *testing.T, n int) store.Persistence {
	t.Helper()
	color.NoColor = true
	p, err := store.Load(dirConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := store.Seed(p, n, now); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return p
}

func TestListPrintsFilteredTable(t *testing.T) {
	var out bytes.Buffer
	l := &List{
		Persistence: seeded(t, 8),
		Query:       movie.Query{Filter: movie.FilterFavorites},
		Out:         &out,
		Now:         func() time.Time { return now },
	}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "- 2 movies") {
		t.Fatalf("expected two favorites:\n%s", got)
	}
	if !strings.Contains(got, "The Dance of Life") || strings.Contains(got, "Sagebrush Trail") {
		t.Fatalf("unexpected rows:\n%s", got)
	}
}

func TestListJSONSinceWindow(t *testing.T) {
	var out bytes.Buffer
	l := &List{
		Persistence: seeded(t, 9),
		Query:       movie.Query{Filter: movie.FilterHistory, Sort: movie.SortRating},
		Since:       5 * 24 * time.Hour,
		JSON:        true,
		Out:         &out,
		Now:         func() time.Time { return now },
	}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []movie.Movie
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	// Watched movies are 0, 4 and 8, watched 0, 4 and 8 days ago.
	if len(got) != 2 {
		t.Fatalf("expected two movies inside the window, got %d", len(got))
	}
	for _, m := range got {
		if m.ID == "8" {
			t.Fatalf("movie watched 8 days ago is outside the window")
		}
	}
}

func TestListCalendar(t *testing.T) {
	var out bytes.Buffer
	l := &List{
		Persistence: seeded(t, 4),
		Query:       movie.Query{Filter: movie.FilterHistory},
		Since:       40 * 24 * time.Hour,
		Calendar:    true,
		Out:         &out,
		Now:         func() time.Time { return now },
	}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "February") || !strings.Contains(got, "March") {
		t.Fatalf("expected two months:\n%s", got)
	}
}

func TestWatchedSince(t *testing.T) {
	at := func(d int) *time.Time {
		v := now.AddDate(0, 0, -d)
		return &v
	}
	list := []movie.Movie{
		{ID: "a", UserDetails: movie.UserDetails{AlreadyWatched: true, WatchingDate: at(1)}},
		{ID: "b", UserDetails: movie.UserDetails{AlreadyWatched: true, WatchingDate: at(10)}},
		{ID: "c", UserDetails: movie.UserDetails{AlreadyWatched: true}},
		{ID: "d", UserDetails: movie.UserDetails{WatchingDate: at(1)}},
	}
	got := WatchedSince(list, now.AddDate(0, 0, -7))
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListWithoutPersistence(t *testing.T) {
	if err := (&List{}).Do(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
