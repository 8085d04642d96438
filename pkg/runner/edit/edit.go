// Package edit applies single catalog changes from the command line. Each
// change goes through the movie model on a manual loop, the same path the UI
// uses, so the backend rules (watching date, comment ids) hold everywhere.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"

	"tableflip.dev/filmdeck/pkg/loop"
	"tableflip.dev/filmdeck/pkg/model"
	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/printers"
	"tableflip.dev/filmdeck/pkg/store"
)

// Base holds what every edit needs.
type Base struct {
	Persistence store.Persistence
	Author      string
	Log         hclog.Logger

	Out io.Writer
	Now func() time.Time
}

// Toggle flips user detail flags on a movie.
type Toggle struct {
	Base
	ID    string
	Flags []movie.Flag
}

func (t *Toggle) Do(ctx context.Context) error {
	if len(t.Flags) == 0 {
		return errors.New("nothing to toggle, pass --watchlist, --watched or --favorite")
	}
	s, err := t.open(ctx)
	if err != nil {
		return err
	}
	m, err := s.movie(t.ID)
	if err != nil {
		return err
	}
	for _, f := range t.Flags {
		m = m.Toggled(f)
	}
	return s.apply(s.movies.UpdateFilm(model.Patch, m))
}

// AddComment attaches a comment to a movie.
type AddComment struct {
	Base
	ID      string
	Text    string
	Emotion movie.Emotion
}

func (a *AddComment) Do(ctx context.Context) error {
	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	if _, err := s.movie(a.ID); err != nil {
		return err
	}
	return s.apply(s.movies.AddComment(model.Patch, a.ID, movie.Comment{Text: a.Text, Emotion: a.Emotion}))
}

// DeleteComment removes a comment from a movie.
type DeleteComment struct {
	Base
	ID        string
	CommentID string
}

func (d *DeleteComment) Do(ctx context.Context) error {
	s, err := d.open(ctx)
	if err != nil {
		return err
	}
	if _, err := s.movie(d.ID); err != nil {
		return err
	}
	return s.apply(s.movies.DeleteComment(model.Patch, d.ID, d.CommentID))
}

// session is a loaded movie model driven by a manual loop.
type session struct {
	base    *Base
	loop    *loop.Manual
	movies  *model.MovieModel
	patched *movie.Movie
}

func (b *Base) open(ctx context.Context) (*session, error) {
	if b.Persistence == nil {
		return nil, errors.New("can not edit, no persistence")
	}
	l := loop.NewManual(b.now())
	l.Context = ctx
	backend := &model.StoreBackend{Persistence: b.Persistence, Now: b.now, Author: b.Author}
	s := &session{base: b, loop: l, movies: model.NewMovieModel(backend, b.Log)}
	s.movies.AddObserver(func(kind model.UpdateKind, payload any) {
		if m, ok := payload.(movie.Movie); ok && kind == model.Patch {
			s.patched = &m
		}
	})
	if err := s.run(s.movies.Load()); err != nil {
		return nil, err
	}
	return s, nil
}

func (b *Base) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func (s *session) run(work loop.Work) error {
	var err error
	s.loop.Go(work, func(e error) { err = e })
	return err
}

func (s *session) movie(id string) (movie.Movie, error) {
	m, ok := movie.Find(s.movies.Movies(), id)
	if !ok {
		return movie.Movie{}, fmt.Errorf("%w: %q", model.ErrUnknownMovie, id)
	}
	return m, nil
}

// apply runs work and prints the movie it patched.
func (s *session) apply(work loop.Work) error {
	if err := s.run(work); err != nil {
		return err
	}
	if s.patched == nil {
		return errors.New("edit: change was not applied")
	}
	out := s.base.Out
	if out == nil {
		out = color.Output
	}
	pp := printers.PrettyPrint{Out: out, ShowID: true}
	pp.Movie(*s.patched, s.base.now())
	return nil
}
