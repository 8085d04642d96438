package view

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/render"
	"tableflip.dev/filmdeck/pkg/timeutil"
)

const (
	// CardWidth is the content width of a film card.
	CardWidth = 64

	descriptionLimit = 140
)

// Click targets on a card and a popup.
const (
	TargetWatchlist = "watchlist"
	TargetWatched   = "watched"
	TargetFavorite  = "favorite"
)

// FilmCard is a movie's entry in the list.
type FilmCard struct {
	abstract
	movie    movie.Movie
	aborting bool

	onClick     func()
	onWatchlist func()
	onWatched   func()
	onFavorite  func()
}

// NewFilmCard builds a card for m.
func NewFilmCard(m movie.Movie) *FilmCard {
	c := &FilmCard{movie: m}
	c.abstract = abstract{name: "film-card", template: c.render, bind: c.bindHandlers}
	return c
}

// Movie is the movie the card shows.
func (c *FilmCard) Movie() movie.Movie {
	return c.movie
}

func (c *FilmCard) SetClickHandler(fn func()) { c.onClick = fn }
func (c *FilmCard) SetWatchlistClickHandler(fn func()) { c.onWatchlist = fn }
func (c *FilmCard) SetAlreadyWatchedClickHandler(fn func()) { c.onWatched = fn }
func (c *FilmCard) SetFavoriteClickHandler(fn func()) { c.onFavorite = fn }

// SetAborting toggles the failed request state.
func (c *FilmCard) SetAborting(on bool) {
	if c.aborting == on {
		return
	}
	c.aborting = on
	c.updateElement()
}

// Aborting reports whether the card shows the failed request state.
func (c *FilmCard) Aborting() bool {
	return c.aborting
}

func (c *FilmCard) bindHandlers(el *render.Element) {
	handle(el, EventClick, "", func(*render.Event) { call(c.onClick) })
	handle(el, EventClick, TargetWatchlist, func(*render.Event) { call(c.onWatchlist) })
	handle(el, EventClick, TargetWatched, func(*render.Event) { call(c.onWatched) })
	handle(el, EventClick, TargetFavorite, func(*render.Event) { call(c.onFavorite) })
}

func (c *FilmCard) render() string {
	info := c.movie.Info
	s := styles.Card

	title := s.Title.Render(info.Title) + "  " + s.Rating.Render(fmt.Sprintf("★ %.1f", info.TotalRating))
	meta := s.Meta.Render(strings.Join([]string{
		timeutil.Year(info.Release.Date),
		timeutil.Runtime(info.Runtime),
		strings.Join(info.Genre, ", "),
	}, " · "))
	desc := info.Description
	if len([]rune(desc)) > descriptionLimit {
		desc = truncate.StringWithTail(desc, descriptionLimit-1, "…")
	}
	lines := []string{
		title,
		meta,
		s.Description.Render(wordwrap.String(desc, CardWidth)),
		s.Meta.Render(commentCount(len(c.movie.Comments))),
		c.controls(),
	}
	frame := s.Frame
	if c.aborting {
		frame = s.Aborting
		lines = append(lines, styles.Popup.Error.Render("✕ request failed, try again"))
	}
	return frame.Width(CardWidth + 4).Render(strings.Join(lines, "\n"))
}

func (c *FilmCard) controls() string {
	d := c.movie.UserDetails
	s := styles.Card
	item := func(key, label string, active bool) string {
		if active {
			return s.ControlActive.Render("[" + key + "] " + label)
		}
		return s.Control.Render("[" + key + "] " + label)
	}
	return strings.Join([]string{
		item("w", "Watchlist", d.Watchlist),
		item("h", "Watched", d.AlreadyWatched),
		item("f", "Favorite", d.Favorite),
	}, "  ")
}

func commentCount(n int) string {
	if n == 1 {
		return "1 comment"
	}
	return fmt.Sprintf("%d comments", n)
}
