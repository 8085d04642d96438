package teaui

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/presenter"
	"tableflip.dev/filmdeck/pkg/view"
)

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" || (key == "q" && !m.composing) {
		return m.quit()
	}
	if m.busy || m.films.Pending() > 0 {
		// A commit is on its way; the board must not change under it.
		return nil
	}
	if active := m.films.Active(); active != nil {
		return m.handlePopupKey(active, msg)
	}
	m.handleBoardKey(key)
	return nil
}

func (m *Model) handleBoardKey(key string) {
	switch key {
	case "j", "down":
		m.focus++
	case "k", "up":
		m.focus--
	case "g", "home":
		m.focus = 0
	case "G", "end":
		m.focus = len(m.cards()) - 1
	case "enter", "o":
		dispatch(m.focused(), view.EventClick, "", "")
	case "w":
		dispatch(m.focused(), view.EventClick, view.TargetWatchlist, "")
	case "h":
		dispatch(m.focused(), view.EventClick, view.TargetWatched, "")
	case "f":
		dispatch(m.focused(), view.EventClick, view.TargetFavorite, "")
	case "m":
		dispatch(m.board.Find("films-list__show-more"), view.EventClick, "", "")
	case "s":
		if dispatch(m.board.Find("sort"), view.EventClick, view.TargetSort, "") {
			m.focus = 0
		}
	case "1", "2", "3", "4":
		filters := movie.FilterTypes()
		f := filters[int(key[0]-'1')]
		if dispatch(m.header.Find("main-navigation"), view.EventClick, view.TargetFilter, string(f)) {
			m.focus = 0
		}
	}
}

func (m *Model) handlePopupKey(f *presenter.Film, msg tea.KeyPressMsg) tea.Cmd {
	popup := f.Popup()
	el := popup.Element()
	key := msg.String()

	if m.composing {
		switch key {
		case "esc", "tab", view.KeySubmit, "ctrl+s":
			keydown(el, key)
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != popup.State().Draft {
			dispatch(el, view.EventInput, view.TargetComment, v)
		}
		return cmd
	}

	switch key {
	case "esc":
		dispatch(el, view.EventClick, view.TargetClose, "")
	case "w":
		dispatch(el, view.EventClick, view.TargetWatchlist, "")
	case "h":
		dispatch(el, view.EventClick, view.TargetWatched, "")
	case "f":
		dispatch(el, view.EventClick, view.TargetFavorite, "")
	case "c", "i":
		dispatch(el, view.EventClick, view.TargetComment, "")
		m.composing = true
		m.input.SetValue(popup.State().Draft)
		m.input.CursorEnd()
		return m.input.Focus()
	case "1", "2", "3", "4":
		emotions := movie.Emotions()
		dispatch(el, view.EventClick, view.TargetEmotion, string(emotions[int(key[0]-'1')]))
	case "pgdown", "space":
		_, h := m.size()
		m.popupScroll += max(1, h/2)
	case "pgup":
		_, h := m.size()
		m.popupScroll = max(0, m.popupScroll-max(1, h/2))
	default:
		keydown(el, key)
	}
	return nil
}
