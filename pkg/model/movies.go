package model

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"

	"tableflip.dev/filmdeck/pkg/loop"
	"tableflip.dev/filmdeck/pkg/movie"
)

var (
	// ErrUnknownMovie is returned when a request names a movie that does not
	// exist.
	ErrUnknownMovie = errors.New("model: unknown movie")
	// ErrUnknownComment is returned when a delete names a missing comment.
	ErrUnknownComment = errors.New("model: unknown comment")
)

// Backend is the data layer the movie model talks to. Every call may block.
type Backend interface {
	Movies(ctx context.Context) ([]movie.Movie, error)
	UpdateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error)
	AddComment(ctx context.Context, movieID string, c movie.Comment) (movie.Movie, error)
	DeleteComment(ctx context.Context, movieID, commentID string) (movie.Movie, error)
}

// MovieModel owns the movie list. Presenters read snapshots and submit
// changes through the returned work; only commits mutate the list.
type MovieModel struct {
	Observable

	backend Backend
	log     hclog.Logger

	movies  []movie.Movie
	loading bool
}

// NewMovieModel returns a model in the loading state.
func NewMovieModel(backend Backend, log hclog.Logger) *MovieModel {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &MovieModel{
		backend: backend,
		log:     log.Named("movies"),
		loading: true,
	}
}

// Movies returns a snapshot of the list in catalog order.
func (m *MovieModel) Movies() []movie.Movie {
	return movie.CloneAll(m.movies)
}

// Loading reports whether the initial load is still pending.
func (m *MovieModel) Loading() bool {
	return m.loading
}

// Load fetches the catalog. The commit always leaves the loading state and
// notifies Init; a failed fetch yields an empty catalog.
func (m *MovieModel) Load() loop.Work {
	return func(ctx context.Context) (func(), error) {
		list, err := m.backend.Movies(ctx)
		if err != nil {
			m.log.Warn("load failed, starting empty", "error", err)
			list = nil
		}
		return func() {
			m.movies = movie.CloneAll(list)
			m.loading = false
			m.log.Debug("loaded", "count", len(list))
			m.notify(Init, nil)
		}, nil
	}
}

// Reload refetches the catalog and notifies Minor when it changed.
func (m *MovieModel) Reload() loop.Work {
	return func(ctx context.Context) (func(), error) {
		list, err := m.backend.Movies(ctx)
		if err != nil {
			return nil, fmt.Errorf("model: reload: %w", err)
		}
		return func() {
			if m.loading || reflect.DeepEqual(m.movies, list) {
				return
			}
			m.movies = movie.CloneAll(list)
			m.notify(Minor, nil)
		}, nil
	}
}

// UpdateFilm submits a replacement for an existing movie.
func (m *MovieModel) UpdateFilm(kind UpdateKind, update movie.Movie) loop.Work {
	return func(ctx context.Context) (func(), error) {
		if m.backend == nil {
			return nil, errors.New("model: no backend configured")
		}
		updated, err := m.backend.UpdateMovie(ctx, update)
		if err != nil {
			return nil, fmt.Errorf("model: update %q: %w", update.ID, err)
		}
		return m.commit(kind, updated), nil
	}
}

// AddComment appends a comment to a movie.
func (m *MovieModel) AddComment(kind UpdateKind, movieID string, c movie.Comment) loop.Work {
	return func(ctx context.Context) (func(), error) {
		if m.backend == nil {
			return nil, errors.New("model: no backend configured")
		}
		updated, err := m.backend.AddComment(ctx, movieID, c)
		if err != nil {
			return nil, fmt.Errorf("model: add comment to %q: %w", movieID, err)
		}
		return m.commit(kind, updated), nil
	}
}

// DeleteComment removes a comment from a movie.
func (m *MovieModel) DeleteComment(kind UpdateKind, movieID, commentID string) loop.Work {
	return func(ctx context.Context) (func(), error) {
		if m.backend == nil {
			return nil, errors.New("model: no backend configured")
		}
		updated, err := m.backend.DeleteComment(ctx, movieID, commentID)
		if err != nil {
			return nil, fmt.Errorf("model: delete comment %q: %w", commentID, err)
		}
		return m.commit(kind, updated), nil
	}
}

func (m *MovieModel) commit(kind UpdateKind, updated movie.Movie) func() {
	return func() {
		idx := m.index(updated.ID)
		if idx < 0 {
			m.log.Warn("dropping update for movie no longer in catalog", "id", updated.ID)
			return
		}
		m.movies[idx] = updated.Clone()
		m.log.Debug("updated", "id", updated.ID, "kind", kind.String())
		m.notify(kind, updated.Clone())
	}
}

func (m *MovieModel) index(id string) int {
	for i, mv := range m.movies {
		if mv.ID == id {
			return i
		}
	}
	return -1
}
