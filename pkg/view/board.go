package view

import (
	"fmt"
	"strings"

	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/render"
)

// TargetSort and TargetFilter carry the chosen type in Event.Value. An empty
// value cycles to the next type.
const (
	TargetSort   = "sort"
	TargetFilter = "filter"
)

// Sort is the sort bar above the list.
type Sort struct {
	abstract
	current  movie.SortType
	onChange func(movie.SortType)
}

// NewSort draws the bar with cur highlighted.
func NewSort(cur movie.SortType) *Sort {
	s := &Sort{current: cur}
	s.abstract = abstract{name: "sort", template: s.render, bind: s.bindHandlers}
	return s
}

func (s *Sort) SetSortTypeChangeHandler(fn func(movie.SortType)) {
	s.onChange = fn
}

func (s *Sort) bindHandlers(el *render.Element) {
	handle(el, EventClick, TargetSort, func(ev *render.Event) {
		next := s.current.Next()
		if ev.Value != "" {
			parsed, err := movie.ParseSortType(ev.Value)
			if err != nil {
				return
			}
			next = parsed
		}
		if s.onChange != nil {
			s.onChange(next)
		}
	})
}

func (s *Sort) render() string {
	h := styles.Header
	parts := []string{h.Sort.Render("Sort by:")}
	for _, t := range movie.SortTypes() {
		label := "by " + string(t)
		if t == movie.SortDefault {
			label = "default"
		}
		if t == s.current {
			parts = append(parts, h.SortActive.Render(label))
			continue
		}
		parts = append(parts, h.Sort.Render(label))
	}
	return strings.Join(parts, "  ") + "  " + styles.Popup.Hint.Render("[s] cycle")
}

// Filter is the navigation bar with per filter counts.
type Filter struct {
	abstract
	current  movie.FilterType
	counts   map[movie.FilterType]int
	onChange func(movie.FilterType)
}

// NewFilter draws the nav with cur highlighted.
func NewFilter(cur movie.FilterType, counts map[movie.FilterType]int) *Filter {
	f := &Filter{current: cur, counts: counts}
	f.abstract = abstract{name: "main-navigation", template: f.render, bind: f.bindHandlers}
	return f
}

func (f *Filter) SetFilterTypeChangeHandler(fn func(movie.FilterType)) {
	f.onChange = fn
}

func (f *Filter) bindHandlers(el *render.Element) {
	handle(el, EventClick, TargetFilter, func(ev *render.Event) {
		parsed, err := movie.ParseFilterType(ev.Value)
		if err != nil {
			return
		}
		if f.onChange != nil {
			f.onChange(parsed)
		}
	})
}

func (f *Filter) render() string {
	h := styles.Header
	var parts []string
	for i, t := range movie.FilterTypes() {
		label := fmt.Sprintf("%d %s", i+1, t.Label())
		if t != movie.FilterAll {
			label += " " + h.NavCount.Render(fmt.Sprintf("(%d)", f.counts[t]))
		}
		if t == f.current {
			parts = append(parts, h.NavActive.Render(label))
			continue
		}
		parts = append(parts, h.Nav.Render(label))
	}
	return strings.Join(parts, "   ")
}

// LoadMore is the "show more" button under the list.
type LoadMore struct {
	abstract
	onClick func()
}

func NewLoadMore() *LoadMore {
	l := &LoadMore{}
	l.abstract = abstract{
		name:     "films-list__show-more",
		template: func() string { return styles.Footer.Button.Render("[m] Show more") },
		bind: func(el *render.Element) {
			handle(el, EventClick, "", func(*render.Event) { call(l.onClick) })
		},
	}
	return l
}

func (l *LoadMore) SetClickHandler(fn func()) {
	l.onClick = fn
}

// text is a static markup view.
type text struct {
	abstract
}

func newText(name, body string) *text {
	t := &text{}
	t.abstract = abstract{name: name, template: func() string { return body }}
	return t
}

// Loading is shown until the first load completes.
type Loading struct{ *text }

func NewLoading() *Loading {
	return &Loading{newText("films-list__loading", styles.Footer.Empty.Render("Loading..."))}
}

// NoFilms is the empty state for a filter.
type NoFilms struct{ *text }

func NewNoFilms(f movie.FilterType) *NoFilms {
	return &NoFilms{newText("films-list__empty", styles.Footer.Empty.Render(NoFilmsMessage(f)))}
}

// NoFilmsMessage is the empty state text for a filter.
func NoFilmsMessage(f movie.FilterType) string {
	switch f {
	case movie.FilterWatchlist:
		return "There are no movies to watch now"
	case movie.FilterHistory:
		return "There are no watched movies now"
	case movie.FilterFavorites:
		return "There are no favorite movies now"
	default:
		return "There are no movies in our database"
	}
}

// FilmSection wraps the list and its load more button.
type FilmSection struct{ *text }

func NewFilmSection() *FilmSection {
	return &FilmSection{newText("films", "")}
}

// FilmList is the container cards are rendered into.
type FilmList struct{ *text }

func NewFilmList() *FilmList {
	return &FilmList{newText("films-list__container", "")}
}

// Profile shows the user rank; an empty rank renders nothing.
type Profile struct{ *text }

func NewProfile(rank string) *Profile {
	body := ""
	if rank != "" {
		body = styles.Header.Rank.Render("Rank: " + rank)
	}
	return &Profile{newText("header__profile", body)}
}

// Stats is the footer line with the catalog size.
type Stats struct{ *text }

func NewStats(count int) *Stats {
	noun := "movies"
	if count == 1 {
		noun = "movie"
	}
	return &Stats{newText("footer__statistics", styles.Footer.Status.Render(fmt.Sprintf("%d %s inside", count, noun)))}
}
