package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchSettle is how long the watcher waits for a burst of writes to end
// before it reports the changes.
const watchSettle = 100 * time.Millisecond

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventMovieChanged indicates a single movie file was written or removed.
	EventMovieChanged EventType = iota

	// EventCatalogChanged signals that the catalog index changed (movies were
	// added, removed or reordered) and callers should reload the list.
	EventCatalogChanged
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type    EventType
	MovieID string
}

// Watch streams change events until ctx is cancelled. The channel is closed
// once ctx is done or fsnotify shuts down. A consumer that falls behind loses
// events; a reload reads the whole catalog anyway.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}
	movies := filepath.Join(p.basePath, moviesDir)
	if err := os.MkdirAll(movies, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure movies dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	for _, dir := range []string{p.basePath, movies} {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)
	go p.watchLoop(ctx, watcher, events)
	return events, nil
}

func (p *persistence) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, out chan<- Event) {
	defer close(out)
	defer func() { _ = watcher.Close() }()

	b := newBatch()
	settle := time.NewTimer(watchSettle)
	settle.Stop()
	defer settle.Stop()

	add := func(ev Event) {
		if b.empty() {
			settle.Reset(watchSettle)
		}
		b.add(ev)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-settle.C:
			for _, ev := range b.drain() {
				select {
				case out <- ev:
				default:
				}
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			add(Event{Type: EventCatalogChanged})
		case evt, ok := <-watcher.Events:
			if !ok {
				return
			}
			if strings.HasSuffix(evt.Name, ".tmp") {
				continue
			}
			if id := p.movieForPath(evt.Name); id != "" {
				add(Event{Type: EventMovieChanged, MovieID: id})
				continue
			}
			add(Event{Type: EventCatalogChanged})
		}
	}
}

// movieForPath derives the movie id from a diskv file path, or "" for files
// outside the movies directory.
func (p *persistence) movieForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) != 2 || parts[0] != moviesDir {
		return ""
	}
	return fromKey(parts[1])
}

// batch collects the changes seen during one burst. A catalog change
// subsumes the per-movie changes around it.
type batch struct {
	catalog bool
	movies  map[string]struct{}
}

func newBatch() *batch {
	return &batch{movies: make(map[string]struct{})}
}

func (b *batch) empty() bool {
	return !b.catalog && len(b.movies) == 0
}

func (b *batch) add(ev Event) {
	if ev.Type == EventCatalogChanged {
		b.catalog = true
		return
	}
	b.movies[ev.MovieID] = struct{}{}
}

// drain returns the pending events in a stable order and resets the batch.
func (b *batch) drain() []Event {
	defer func() {
		b.catalog = false
		b.movies = make(map[string]struct{})
	}()
	if b.catalog {
		return []Event{{Type: EventCatalogChanged}}
	}
	ids := make([]string, 0, len(b.movies))
	for id := range b.movies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Event, 0, len(ids))
	for _, id := range ids {
		out = append(out, Event{Type: EventMovieChanged, MovieID: id})
	}
	return out
}
