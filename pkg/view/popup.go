package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/render"
	"tableflip.dev/filmdeck/pkg/timeutil"
)

// PopupWidth is the content width of the details popup.
const PopupWidth = 72

// Popup targets and keys handled inside the view.
const (
	TargetClose   = "close"
	TargetEmotion = "emotion"
	TargetComment = "comment"
	TargetDelete  = "delete"

	KeySubmit = "ctrl+enter"
)

// PopupState is everything the popup draws. Draft, Emotion and Selected
// survive Patch; the transient request flags are reset by it.
type PopupState struct {
	Movie    movie.Movie
	Emotion  movie.Emotion
	Draft    string
	Selected int

	Composing  bool
	Saving     bool
	Disabled   bool
	DeletingID string
	Aborting   bool
}

// Popup is the film details overlay. Unlike the card it is long lived: model
// refreshes go through Patch so the draft comment is kept.
type Popup struct {
	abstract
	state PopupState
	now   func() time.Time

	onClose     func()
	onWatchlist func()
	onWatched   func()
	onFavorite  func()
	onAdd       func(movie.Comment)
	onDelete    func(id string)
}

// NewPopup builds a popup for m. now dates the comments.
func NewPopup(m movie.Movie, now func() time.Time) *Popup {
	if now == nil {
		now = time.Now
	}
	p := &Popup{state: PopupState{Movie: m, Selected: -1}, now: now}
	p.abstract = abstract{name: "film-details", template: p.render, bind: p.bindHandlers}
	return p
}

// State returns a copy of the popup state.
func (p *Popup) State() PopupState {
	return p.state
}

func (p *Popup) SetCloseClickHandler(fn func()) { p.onClose = fn }
func (p *Popup) SetWatchlistClickHandler(fn func()) { p.onWatchlist = fn }
func (p *Popup) SetAlreadyWatchedClickHandler(fn func()) { p.onWatched = fn }
func (p *Popup) SetFavoriteClickHandler(fn func()) { p.onFavorite = fn }
func (p *Popup) SetAddCommentHandler(fn func(movie.Comment)) { p.onAdd = fn }
func (p *Popup) SetDeleteCommentHandler(fn func(id string)) { p.onDelete = fn }

// Patch swaps in a fresh movie snapshot, keeping the draft, and re-renders in
// place.
func (p *Popup) Patch(m movie.Movie) {
	p.state.Movie = m
	p.state.Saving = false
	p.state.Disabled = false
	p.state.DeletingID = ""
	if p.state.Selected >= len(m.Comments) {
		p.state.Selected = len(m.Comments) - 1
	}
	p.updateElement()
}

// SetSaving marks a comment submission in flight.
func (p *Popup) SetSaving(on bool) {
	p.state.Saving = on
	p.state.Disabled = on
	p.updateElement()
}

// SetDeleting marks the comment id as being deleted; "" clears it.
func (p *Popup) SetDeleting(id string) {
	p.state.DeletingID = id
	p.state.Disabled = id != ""
	p.updateElement()
}

// SetAborting toggles the failed request state.
func (p *Popup) SetAborting(on bool) {
	p.state.Aborting = on
	if on {
		p.state.Saving = false
		p.state.Disabled = false
		p.state.DeletingID = ""
	}
	p.updateElement()
}

// ClearDraft resets the new comment form.
func (p *Popup) ClearDraft() {
	p.state.Draft = ""
	p.state.Emotion = ""
	p.state.Composing = false
	p.updateElement()
}

func (p *Popup) bindHandlers(el *render.Element) {
	handle(el, EventClick, TargetClose, func(*render.Event) { call(p.onClose) })
	handle(el, EventClick, TargetWatchlist, func(*render.Event) { call(p.onWatchlist) })
	handle(el, EventClick, TargetWatched, func(*render.Event) { call(p.onWatched) })
	handle(el, EventClick, TargetFavorite, func(*render.Event) { call(p.onFavorite) })
	handle(el, EventClick, TargetEmotion, p.emotionChange)
	handle(el, EventClick, TargetComment, func(*render.Event) {
		p.state.Composing = true
		p.updateElement()
	})
	handle(el, EventInput, TargetComment, func(ev *render.Event) {
		p.state.Draft = ev.Value
		p.updateElement()
	})
	handle(el, EventClick, TargetDelete, func(ev *render.Event) { p.deleteComment(ev.Value) })
	handle(el, EventKeydown, "", p.keydown)
}

func (p *Popup) emotionChange(ev *render.Event) {
	if p.state.Saving {
		return
	}
	if ev.Value != "" {
		e, err := movie.ParseEmotion(ev.Value)
		if err != nil {
			return
		}
		p.state.Emotion = e
	} else {
		p.state.Emotion = nextEmotion(p.state.Emotion)
	}
	p.updateElement()
}

func nextEmotion(cur movie.Emotion) movie.Emotion {
	all := movie.Emotions()
	for i, e := range all {
		if e == cur {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func (p *Popup) keydown(ev *render.Event) {
	switch ev.Key {
	case "up", "k":
		if p.state.Selected > 0 {
			p.state.Selected--
		} else if len(p.state.Movie.Comments) > 0 {
			p.state.Selected = 0
		}
		p.updateElement()
	case "down", "j":
		if p.state.Selected < len(p.state.Movie.Comments)-1 {
			p.state.Selected++
		}
		p.updateElement()
	case "x", "delete":
		if i := p.state.Selected; i >= 0 && i < len(p.state.Movie.Comments) {
			p.deleteComment(p.state.Movie.Comments[i].ID)
		}
	case "tab":
		p.emotionChange(&render.Event{})
	case "esc":
		p.state.Composing = false
		p.updateElement()
	case KeySubmit, "ctrl+s":
		p.submit()
	}
}

func (p *Popup) deleteComment(id string) {
	if p.state.Disabled || p.onDelete == nil || p.state.Movie.CommentIndex(id) < 0 {
		return
	}
	p.onDelete(id)
}

func (p *Popup) submit() {
	text := strings.TrimSpace(p.state.Draft)
	if p.state.Saving || p.onAdd == nil || text == "" || p.state.Emotion == "" {
		return
	}
	p.onAdd(movie.Comment{Text: text, Emotion: p.state.Emotion})
}

func (p *Popup) render() string {
	st := p.state
	info := st.Movie.Info
	s := styles.Popup

	var b strings.Builder
	b.WriteString(s.Hint.Render("[esc] close") + "\n\n")
	b.WriteString(s.Title.Render(info.Title) + "  " + styles.Card.Rating.Render(fmt.Sprintf("★ %.1f", info.TotalRating)) + "  " + s.Subtitle.Render(fmt.Sprintf("%d+", info.AgeRating)) + "\n")
	original := info.AlternativeTitle
	if original == "" {
		original = info.Title
	}
	b.WriteString(s.Subtitle.Render("Original: "+original) + "\n\n")

	genreTerm := "Genres"
	if len(info.Genre) == 1 {
		genreTerm = "Genre"
	}
	rows := [][2]string{
		{"Director", info.Director},
		{"Writers", strings.Join(info.Writers, ", ")},
		{"Actors", strings.Join(info.Actors, ", ")},
		{"Release Date", timeutil.ReleaseDate(info.Release.Date)},
		{"Runtime", timeutil.Runtime(info.Runtime)},
		{"Country", info.Release.Country},
		{genreTerm, strings.Join(info.Genre, " ")},
	}
	for _, r := range rows {
		b.WriteString(s.Term.Render(r[0]) + s.Cell.Render(r[1]) + "\n")
	}
	b.WriteString("\n" + wordwrap.String(info.Description, PopupWidth) + "\n\n")
	b.WriteString(p.controls() + "\n\n")

	b.WriteString(s.Title.Render(fmt.Sprintf("Comments %d", len(st.Movie.Comments))) + "\n")
	now := p.now()
	for i, c := range st.Movie.Comments {
		action := "[x] Delete"
		if st.DeletingID == c.ID {
			action = "Deleting..."
		}
		line := fmt.Sprintf("%-3s %s", c.Emotion.Glyph(), wordwrap.String(c.Text, PopupWidth-4))
		meta := s.CommentMeta.Render(fmt.Sprintf("    %s · %s · %s", c.Author, timeutil.CommentDate(c.Date, now), action))
		if i == st.Selected {
			line = s.Selected.Render(line)
		}
		b.WriteString(s.Comment.Render(line) + "\n" + meta + "\n")
	}

	b.WriteString("\n" + p.newComment())
	if st.Aborting {
		b.WriteString("\n" + s.Error.Render("✕ request failed, try again"))
	}

	frame := s.Frame
	if st.Aborting {
		frame = s.Aborting
	}
	return frame.Width(PopupWidth + 6).Render(b.String())
}

func (p *Popup) controls() string {
	d := p.state.Movie.UserDetails
	s := styles.Popup
	item := func(key, label string, active bool) string {
		style := s.Control
		if active {
			style = s.ControlActive
		}
		return style.Render("[" + key + "] " + label)
	}
	return strings.Join([]string{
		item("w", "Add to watchlist", d.Watchlist),
		item("h", "Already watched", d.AlreadyWatched),
		item("f", "Add to favorites", d.Favorite),
	}, "  ")
}

func (p *Popup) newComment() string {
	st := p.state
	s := styles.Popup

	label := "   "
	if st.Emotion != "" {
		label = fmt.Sprintf("%-3s", st.Emotion.Glyph())
	}
	draft := st.Draft
	input := s.Input
	switch {
	case st.Saving:
		draft += " (saving...)"
	case st.Composing:
		input = s.InputActive
		draft += "▏"
	case draft == "":
		draft = "Select reaction below and write comment here"
	}

	var emojis []string
	for _, e := range movie.Emotions() {
		item := fmt.Sprintf("%s %s", e.Glyph(), e)
		if e == st.Emotion {
			item = s.Selected.Render(item)
		}
		emojis = append(emojis, item)
	}
	return label + " " + input.Render(wordwrap.String(draft, PopupWidth-4)) + "\n" +
		strings.Join(emojis, "  ") + "\n" +
		s.Hint.Render("[c] write  [tab] reaction  [ctrl+s] send  [↑/↓] select  [x] delete")
}
