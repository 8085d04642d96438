// Package presenter wires the movie and filter models to the views. The Films
// presenter owns the board and one Film presenter per rendered card; the
// Filter and Stats presenters keep the navigation and counters current.
//
// Presenters run on the UI loop only. Requests that block are handed to the
// loop as model work, and the models notify back on the loop.
package presenter

import (
	"time"

	"github.com/hashicorp/go-hclog"

	"tableflip.dev/filmdeck/pkg/model"
	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/render"
	"tableflip.dev/filmdeck/pkg/view"
)

// Mode is the popup state of a Film presenter.
type Mode int

const (
	// ModeDefault shows the card only.
	ModeDefault Mode = iota
	// ModeOpened has the popup mounted on the document body.
	ModeOpened
)

func (m Mode) String() string {
	if m == ModeOpened {
		return "OPENED"
	}
	return "DEFAULT"
}

// ActionKind names the request a view interaction turns into.
type ActionKind int

const (
	ActionUpdateMovie ActionKind = iota
	ActionAddComment
	ActionDeleteComment
)

func (k ActionKind) String() string {
	switch k {
	case ActionAddComment:
		return "ADD_COMMENT"
	case ActionDeleteComment:
		return "DELETE_COMMENT"
	default:
		return "UPDATE_MOVIE"
	}
}

// Action is a data change requested by a Film presenter.
type Action struct {
	Kind   ActionKind
	Update model.UpdateKind
	// Movie is the replacement for update-movie and the target otherwise.
	Movie     movie.Movie
	Comment   movie.Comment
	CommentID string
}

// Film owns one movie's card and popup.
type Film struct {
	doc        *render.Document
	container  render.View
	changeData func(Action)
	changeMode func()
	now        func() time.Time
	log        hclog.Logger

	movie movie.Movie
	card  *view.FilmCard
	popup *view.Popup
	mode  Mode
}

// NewFilm creates a presenter that renders cards into container and popups
// onto doc's body. changeData receives every data request; changeMode is
// called before the popup opens so siblings can reset.
func NewFilm(doc *render.Document, container render.View, changeData func(Action), changeMode func(), now func() time.Time, log hclog.Logger) *Film {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if now == nil {
		now = time.Now
	}
	return &Film{
		doc:        doc,
		container:  container,
		changeData: changeData,
		changeMode: changeMode,
		now:        now,
		log:        log,
	}
}

// ID is the id of the bound movie.
func (f *Film) ID() string {
	return f.movie.ID
}

// Movie is the bound movie snapshot.
func (f *Film) Movie() movie.Movie {
	return f.movie
}

func (f *Film) Mode() Mode {
	return f.mode
}

// Opened reports whether the popup is mounted.
func (f *Film) Opened() bool {
	return f.mode == ModeOpened
}

func (f *Film) Card() *view.FilmCard {
	return f.card
}

func (f *Film) Popup() *view.Popup {
	return f.popup
}

// Init binds the presenter to m. The card is rebuilt and swapped in place if
// it is still mounted; the popup is patched so an open one keeps its draft.
func (f *Film) Init(m movie.Movie) {
	f.movie = m

	prevCard := f.card
	f.card = view.NewFilmCard(m)
	f.card.SetClickHandler(f.open)
	f.card.SetWatchlistClickHandler(func() { f.toggle(movie.FlagWatchlist) })
	f.card.SetAlreadyWatchedClickHandler(func() { f.toggle(movie.FlagWatched) })
	f.card.SetFavoriteClickHandler(func() { f.toggle(movie.FlagFavorite) })

	if f.popup == nil {
		f.popup = view.NewPopup(m, f.now)
		f.popup.SetCloseClickHandler(f.close)
		f.popup.SetWatchlistClickHandler(func() { f.toggle(movie.FlagWatchlist) })
		f.popup.SetAlreadyWatchedClickHandler(func() { f.toggle(movie.FlagWatched) })
		f.popup.SetFavoriteClickHandler(func() { f.toggle(movie.FlagFavorite) })
		f.popup.SetAddCommentHandler(f.addComment)
		f.popup.SetDeleteCommentHandler(f.deleteComment)
	} else {
		f.popup.Patch(m)
	}

	if prevCard == nil {
		if err := render.Render(f.card, f.container, render.BeforeEnd); err != nil {
			f.log.Error("mount card", "id", m.ID, "error", err)
		}
		return
	}
	if prevCard.HasElement() && f.container.Element().Contains(prevCard.Element()) {
		if err := render.Replace(f.card, prevCard); err != nil {
			f.log.Error("replace card", "id", m.ID, "error", err)
		}
	}
	render.Remove(prevCard)
}

// Destroy unmounts the card and the popup. It is safe to call repeatedly.
func (f *Film) Destroy() {
	render.Remove(f.card)
	if f.mode == ModeOpened {
		f.doc.Body.RemoveClass(render.ClassHideOverflow)
		f.mode = ModeDefault
	}
	render.Remove(f.popup)
}

// DestroyCard unmounts only the card, leaving an open popup in place.
func (f *Film) DestroyCard() {
	render.Remove(f.card)
}

// ResetView closes the popup when another presenter is about to open one.
func (f *Film) ResetView() {
	if f.mode != ModeDefault {
		f.close()
	}
}

// SetAborting shakes the card and the popup after a failed request.
func (f *Film) SetAborting() {
	if f.card != nil {
		f.card.SetAborting(true)
	}
	if f.popup != nil {
		f.popup.SetAborting(true)
	}
}

// ClearAborting ends the shake.
func (f *Film) ClearAborting() {
	if f.card != nil {
		f.card.SetAborting(false)
	}
	if f.popup != nil {
		f.popup.SetAborting(false)
	}
}

// CommentSaved resets the new comment form after a successful add.
func (f *Film) CommentSaved() {
	if f.popup != nil {
		f.popup.ClearDraft()
	}
}

func (f *Film) open() {
	if f.mode == ModeOpened {
		return
	}
	f.changeMode()
	if err := render.Render(f.popup, f.doc.Body, render.BeforeEnd); err != nil {
		f.log.Error("mount popup", "id", f.movie.ID, "error", err)
		return
	}
	f.doc.Body.AddClass(render.ClassHideOverflow)
	f.mode = ModeOpened
	f.log.Debug("popup opened", "id", f.movie.ID)
}

func (f *Film) close() {
	if f.mode != ModeOpened {
		return
	}
	render.Remove(f.popup)
	f.doc.Body.RemoveClass(render.ClassHideOverflow)
	f.mode = ModeDefault
	f.log.Debug("popup closed", "id", f.movie.ID)
}

func (f *Film) toggle(flag movie.Flag) {
	f.changeData(Action{
		Kind:   ActionUpdateMovie,
		Update: model.Patch,
		Movie:  f.movie.Toggled(flag),
	})
}

func (f *Film) addComment(c movie.Comment) {
	f.popup.SetSaving(true)
	f.changeData(Action{
		Kind:    ActionAddComment,
		Update:  model.Patch,
		Movie:   f.movie,
		Comment: c,
	})
}

func (f *Film) deleteComment(id string) {
	f.popup.SetDeleting(id)
	f.changeData(Action{
		Kind:      ActionDeleteComment,
		Update:    model.Patch,
		Movie:     f.movie,
		CommentID: id,
	})
}
