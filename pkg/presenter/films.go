package presenter

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"tableflip.dev/filmdeck/pkg/gate"
	"tableflip.dev/filmdeck/pkg/loop"
	"tableflip.dev/filmdeck/pkg/model"
	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/render"
	"tableflip.dev/filmdeck/pkg/view"
)

// DefaultPageSize is the load more step.
const DefaultPageSize = 5

// Options tunes a Films presenter.
type Options struct {
	PageSize int
	// Shake is how long a failed card stays in the aborting state.
	Shake time.Duration
	Log   hclog.Logger
}

// Films renders the board: sort bar, cards, load more and the loading and
// empty states.
type Films struct {
	doc       *render.Document
	container render.View
	movies    *model.MovieModel
	filters   *model.FilterModel
	loop      loop.Loop
	gate      *gate.Gate
	log       hclog.Logger
	pageSize  int
	shake     time.Duration

	section  *view.FilmSection
	list     *view.FilmList
	loading  *view.Loading
	loadMore *view.LoadMore
	noFilms  *view.NoFilms
	sort     *view.Sort

	presenters map[string]*Film
	order      []string
	opened     *Film
	// rendered holds every id that ever had a card.
	rendered   map[string]struct{}
	pending    int

	cursor    int
	sortType  movie.SortType
	isLoading bool
}

// NewFilms builds the presenter and subscribes it to both models.
func NewFilms(doc *render.Document, container render.View, movies *model.MovieModel, filters *model.FilterModel, l loop.Loop, g *gate.Gate, opts Options) *Films {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Log == nil {
		opts.Log = hclog.NewNullLogger()
	}
	p := &Films{
		doc:        doc,
		container:  container,
		movies:     movies,
		filters:    filters,
		loop:       l,
		gate:       g,
		log:        opts.Log.Named("films"),
		pageSize:   opts.PageSize,
		shake:      opts.Shake,
		section:    view.NewFilmSection(),
		list:       view.NewFilmList(),
		loading:    view.NewLoading(),
		presenters: make(map[string]*Film),
		rendered:   make(map[string]struct{}),
		cursor:     opts.PageSize,
		sortType:   movie.SortDefault,
		isLoading:  true,
	}
	movies.AddObserver(p.HandleModelEvent)
	filters.AddObserver(p.HandleModelEvent)
	return p
}

// Query is the read model criteria currently in effect.
func (p *Films) Query() movie.Query {
	return movie.Query{Filter: p.filters.Filter(), Sort: p.sortType}
}

// Movies derives the filtered and sorted list.
func (p *Films) Movies() []movie.Movie {
	return movie.Derive(p.movies.Movies(), p.Query())
}

// Cursor is the number of movies the board may show.
func (p *Films) Cursor() int {
	return p.cursor
}

// SortType is the active sort.
func (p *Films) SortType() movie.SortType {
	return p.sortType
}

// Presenter returns the mapped presenter for id.
func (p *Films) Presenter(id string) (*Film, bool) {
	f, ok := p.presenters[id]
	return f, ok
}

// Rendered lists the ids of rendered cards in board order.
func (p *Films) Rendered() []string {
	return append([]string(nil), p.order...)
}

// Opened returns the presenter whose popup is kept across refreshes, if any.
func (p *Films) Opened() *Film {
	return p.opened
}

// Active returns the presenter whose popup is mounted, if any.
func (p *Films) Active() *Film {
	if p.opened != nil && p.opened.Opened() {
		return p.opened
	}
	for _, id := range p.order {
		if f := p.presenters[id]; f.Opened() {
			return f
		}
	}
	return nil
}

// Init draws the board, or the loading placeholder while the model loads.
func (p *Films) Init() {
	p.isLoading = p.movies.Loading()
	p.renderBoard()
}

// LoadMore reveals the next page.
func (p *Films) LoadMore() {
	list := p.Movies()
	next := min(len(list), p.cursor+p.pageSize)
	if next > p.cursor {
		p.renderFilms(list[p.cursor:next])
		p.cursor = next
	}
	if p.cursor >= len(list) {
		render.Remove(p.loadMore)
	}
	p.log.Debug("load more", "cursor", p.cursor, "total", len(list))
}

// SortTypeChange re-renders the board in the new order from the first page.
func (p *Films) SortTypeChange(s movie.SortType) {
	if s == p.sortType {
		return
	}
	p.sortType = s
	p.clear(true, false)
	p.renderBoard()
	p.log.Debug("sort changed", "sort", s)
}

// HandleModelEvent re-renders according to the update kind.
func (p *Films) HandleModelEvent(kind model.UpdateKind, payload any) {
	p.log.Debug("model event", "kind", kind.String())
	switch kind {
	case model.Patch:
		m, ok := payload.(movie.Movie)
		if !ok {
			panic(fmt.Sprintf("presenter: PATCH without a movie payload: %T", payload))
		}
		p.patch(m)
	case model.Minor:
		p.clear(false, false)
		p.renderBoard()
	case model.Major:
		p.clear(true, true)
		p.renderBoard()
	case model.Init:
		p.isLoading = false
		render.Remove(p.loading)
		p.renderBoard()
	}
}

func (p *Films) patch(m movie.Movie) {
	mapped, ok := p.presenters[m.ID]
	opened := p.opened != nil && p.opened.ID() == m.ID && p.opened != mapped
	if !ok && !opened {
		if _, seen := p.rendered[m.ID]; seen {
			// Sorted or filtered off the board while the request was in flight.
			p.log.Debug("stale patch", "id", m.ID)
			return
		}
		panic(fmt.Sprintf("presenter: no film presenter for movie %q", m.ID))
	}
	if ok {
		mapped.Init(m)
	}
	if opened {
		p.opened.Init(m)
	}
}

// Pending reports how many requests are waiting on the backend.
func (p *Films) Pending() int {
	return p.pending
}

// send runs w on the loop and keeps the pending count for it.
func (p *Films) send(w loop.Work, done func(error)) {
	p.pending++
	p.loop.Go(w, func(err error) {
		p.pending--
		done(err)
	})
}

// HandleViewAction sends a presenter request to the model. Movie updates go
// through the gate; comment requests run directly.
func (p *Films) HandleViewAction(a Action) {
	id := a.Movie.ID
	p.log.Debug("view action", "action", a.Kind.String(), "id", id)
	switch a.Kind {
	case ActionUpdateMovie:
		kind := a.Update
		if kind == model.Patch && p.filters.Filter() != movie.FilterAll {
			// The toggled flag may move the movie in or out of the filter.
			kind = model.Minor
		}
		if err := p.gate.Block(); err != nil {
			// Admission only; the backend never saw it.
			p.log.Debug("update dropped", "id", id, "error", err)
			return
		}
		p.send(p.gate.WithTimeout(p.movies.UpdateFilm(kind, a.Movie)), func(err error) {
			if err != nil {
				p.log.Warn("update failed", "id", id, "error", err)
				p.abort(id)
			}
			p.gate.Unblock()
		})
	case ActionAddComment:
		p.send(p.movies.AddComment(a.Update, id, a.Comment), func(err error) {
			if err != nil {
				p.log.Warn("add comment failed", "id", id, "error", err)
				p.abort(id)
				return
			}
			p.each(id, (*Film).CommentSaved)
		})
	case ActionDeleteComment:
		p.send(p.movies.DeleteComment(a.Update, id, a.CommentID), func(err error) {
			if err != nil {
				p.log.Warn("delete comment failed", "id", id, "comment", a.CommentID, "error", err)
				p.abort(id)
			}
		})
	}
}

// each applies fn to the mapped and the remembered open presenter for id.
func (p *Films) each(id string, fn func(*Film)) int {
	n := 0
	if f, ok := p.presenters[id]; ok {
		fn(f)
		n++
	}
	if p.opened != nil && p.opened.ID() == id && p.presenters[id] != p.opened {
		fn(p.opened)
		n++
	}
	return n
}

func (p *Films) abort(id string) {
	var shaken []*Film
	p.each(id, func(f *Film) {
		f.SetAborting()
		shaken = append(shaken, f)
	})
	if len(shaken) == 0 {
		return
	}
	p.loop.After(p.shake, func() {
		for _, f := range shaken {
			f.ClearAborting()
		}
	})
}

func (p *Films) handleModeChange() {
	for _, id := range p.order {
		p.presenters[id].ResetView()
	}
	if p.opened != nil && p.presenters[p.opened.ID()] != p.opened {
		p.opened.ResetView()
	}
}

func (p *Films) createFilm(m movie.Movie) {
	f := NewFilm(p.doc, p.list, p.HandleViewAction, p.handleModeChange, p.loop.Now, p.log.Named("film"))
	f.Init(m)
	if _, dup := p.presenters[m.ID]; dup {
		panic(fmt.Sprintf("presenter: movie %q rendered twice", m.ID))
	}
	p.presenters[m.ID] = f
	p.rendered[m.ID] = struct{}{}
	p.order = append(p.order, m.ID)
}

func (p *Films) renderFilms(list []movie.Movie) {
	for _, m := range list {
		p.createFilm(m)
	}
}

func (p *Films) clear(resetCursor, resetSort bool) {
	count := len(p.Movies())

	for _, id := range p.order {
		f := p.presenters[id]
		if !f.Opened() {
			f.Destroy()
			continue
		}
		f.DestroyCard()
		if p.opened != nil && p.opened != f {
			p.opened.Destroy()
		}
		p.opened = f
	}
	p.presenters = make(map[string]*Film)
	p.order = nil

	render.Remove(p.sort)
	render.Remove(p.loading)
	render.Remove(p.loadMore)
	render.Remove(p.noFilms)
	render.Remove(p.list)

	if resetCursor {
		p.cursor = p.pageSize
	} else {
		p.cursor = max(p.pageSize, min(count, p.cursor))
	}
	if resetSort {
		p.sortType = movie.SortDefault
	}
}

func (p *Films) renderBoard() {
	if !p.section.Element().Attached() {
		p.mount(p.section, p.container, render.BeforeEnd)
	}
	if p.isLoading {
		p.mount(p.loading, p.section, render.BeforeEnd)
		return
	}

	list := p.Movies()
	if len(list) == 0 {
		p.noFilms = view.NewNoFilms(p.filters.Filter())
		p.mount(p.noFilms, p.section, render.BeforeEnd)
		p.restoreOpened()
		return
	}

	p.sort = view.NewSort(p.sortType)
	p.sort.SetSortTypeChangeHandler(p.SortTypeChange)
	p.mount(p.sort, p.section, render.AfterBegin)
	p.mount(p.list, p.section, render.BeforeEnd)
	p.restoreOpened()

	p.renderFilms(list[:min(len(list), p.cursor)])

	if len(list) > p.cursor {
		p.loadMore = view.NewLoadMore()
		p.loadMore.SetClickHandler(p.LoadMore)
		p.mount(p.loadMore, p.section, render.BeforeEnd)
	}
}

// restoreOpened refreshes the popup kept across a clear with the latest data,
// or lets go of it once it was closed or its movie disappeared.
func (p *Films) restoreOpened() {
	if p.opened == nil {
		return
	}
	if !p.opened.Opened() {
		p.opened.Destroy()
		p.opened = nil
		return
	}
	fresh, ok := movie.Find(p.movies.Movies(), p.opened.ID())
	if !ok {
		p.log.Debug("dropping popup for removed movie", "id", p.opened.ID())
		p.opened.Destroy()
		p.opened = nil
		return
	}
	p.opened.Init(fresh)
}

func (p *Films) mount(v, container render.View, pos render.Position) {
	if err := render.Render(v, container, pos); err != nil {
		p.log.Error("mount", "error", err)
	}
}
