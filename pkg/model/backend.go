package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/store"
)

// StoreBackend serves the movie model from a store.Persistence.
type StoreBackend struct {
	Persistence store.Persistence

	// Now stamps new comments; defaults to time.Now.
	Now func() time.Time
	// NewID names new comments; defaults to a random uuid.
	NewID func() string
	// Author is used when a comment arrives without one.
	Author string
}

var _ Backend = (*StoreBackend)(nil)

// Movies implements Backend.
func (b *StoreBackend) Movies(ctx context.Context) ([]movie.Movie, error) {
	return b.Persistence.Movies(ctx)
}

// UpdateMovie implements Backend. The stored copy is read back so the model
// holds exactly what a later reload would see.
func (b *StoreBackend) UpdateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	if _, err := b.movie(ctx, m.ID); err != nil {
		return movie.Movie{}, err
	}
	if m.UserDetails.AlreadyWatched && m.UserDetails.WatchingDate == nil {
		now := b.now()
		m.UserDetails.WatchingDate = &now
	}
	if !m.UserDetails.AlreadyWatched {
		m.UserDetails.WatchingDate = nil
	}
	if err := ctx.Err(); err != nil {
		return movie.Movie{}, err
	}
	if err := b.Persistence.Store(m); err != nil {
		return movie.Movie{}, err
	}
	return b.movie(ctx, m.ID)
}

// AddComment implements Backend.
func (b *StoreBackend) AddComment(ctx context.Context, movieID string, c movie.Comment) (movie.Movie, error) {
	m, err := b.movie(ctx, movieID)
	if err != nil {
		return movie.Movie{}, err
	}
	c.Text = strings.TrimSpace(c.Text)
	if c.Text == "" {
		return movie.Movie{}, errors.New("model: comment text required")
	}
	if c.Emotion == "" {
		return movie.Movie{}, errors.New("model: comment emotion required")
	}
	c.ID = b.newID()
	c.Date = b.now()
	if c.Author == "" {
		c.Author = b.Author
	}
	m.Comments = append(m.Comments, c)
	if err := b.Persistence.Store(m); err != nil {
		return movie.Movie{}, err
	}
	return b.movie(ctx, movieID)
}

// DeleteComment implements Backend.
func (b *StoreBackend) DeleteComment(ctx context.Context, movieID, commentID string) (movie.Movie, error) {
	m, err := b.movie(ctx, movieID)
	if err != nil {
		return movie.Movie{}, err
	}
	idx := m.CommentIndex(commentID)
	if idx < 0 {
		return movie.Movie{}, fmt.Errorf("%w: %q", ErrUnknownComment, commentID)
	}
	m.Comments = append(m.Comments[:idx], m.Comments[idx+1:]...)
	if err := b.Persistence.Store(m); err != nil {
		return movie.Movie{}, err
	}
	return b.movie(ctx, movieID)
}

func (b *StoreBackend) movie(ctx context.Context, id string) (movie.Movie, error) {
	m, err := b.Persistence.Movie(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return movie.Movie{}, fmt.Errorf("%w: %q", ErrUnknownMovie, id)
	}
	return m, err
}

func (b *StoreBackend) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func (b *StoreBackend) newID() string {
	if b.NewID != nil {
		return b.NewID()
	}
	return uuid.NewString()
}
