package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/filmdeck/pkg/movie"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func TestPersistenceWatchEmitsMovieChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	m := movie.Movie{ID: "42", Info: movie.FilmInfo{Title: "The Great Flamarion"}}
	if err := p.Store(m); err != nil {
		t.Fatalf("store movie: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventCatalogChanged {
				return
			}
			if evt.Type == EventMovieChanged {
				if evt.MovieID != "42" {
					t.Fatalf("expected movie '42', got %q", evt.MovieID)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for catalog change event")
		}
	}
}

func TestMovieForPath(t *testing.T) {
	p := &persistence{basePath: "/tmp/catalog"}
	if got := p.movieForPath("/tmp/catalog/movies/7"); got != "7" {
		t.Fatalf("expected id 7, got %q", got)
	}
	if got := p.movieForPath("/tmp/catalog/.catalog.json"); got != "" {
		t.Fatalf("expected index file to map to no movie, got %q", got)
	}
}

func TestBatchCoalescesBurst(t *testing.T) {
	b := newBatch()
	if !b.empty() {
		t.Fatalf("new batch should be empty")
	}
	b.add(Event{Type: EventMovieChanged, MovieID: "9"})
	b.add(Event{Type: EventMovieChanged, MovieID: "3"})
	b.add(Event{Type: EventMovieChanged, MovieID: "9"})

	got := b.drain()
	if len(got) != 2 || got[0].MovieID != "3" || got[1].MovieID != "9" {
		t.Fatalf("unexpected events: %+v", got)
	}
	if !b.empty() {
		t.Fatalf("drain should reset the batch")
	}

	b.add(Event{Type: EventMovieChanged, MovieID: "1"})
	b.add(Event{Type: EventCatalogChanged})
	got = b.drain()
	if len(got) != 1 || got[0].Type != EventCatalogChanged {
		t.Fatalf("catalog change should subsume movie changes: %+v", got)
	}
}
