// Package teaui runs the catalog as a Bubble Tea program. The root model owns
// the document, the models and the presenters, routes key presses into the
// document as events and lays the document out for the terminal.
package teaui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/hashicorp/go-hclog"

	"tableflip.dev/filmdeck/pkg/gate"
	"tableflip.dev/filmdeck/pkg/model"
	"tableflip.dev/filmdeck/pkg/presenter"
	"tableflip.dev/filmdeck/pkg/render"
	"tableflip.dev/filmdeck/pkg/store"
	"tableflip.dev/filmdeck/pkg/tui/overlay"
	"tableflip.dev/filmdeck/pkg/tui/theme"
	"tableflip.dev/filmdeck/pkg/view"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	defaultShake  = 600 * time.Millisecond
)

// Watcher streams catalog changes made outside the UI.
type Watcher interface {
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// Config wires the UI to its data.
type Config struct {
	Backend  model.Backend
	Watcher  Watcher
	PageSize int
	Gate     gate.Options
	Shake    time.Duration
	Log      hclog.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	log    hclog.Logger
	theme  theme.Theme
	loop   *teaLoop

	doc    *render.Document
	header *render.Element
	board  *render.Element
	footer *render.Element

	movies  *model.MovieModel
	filters *model.FilterModel
	gate    *gate.Gate
	films   *presenter.Films
	filter  *presenter.Filter
	stats   *presenter.Stats

	spinner spinner.Model
	input   textinput.Model

	watcher     Watcher
	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	width, height int
	focus         int
	scroll        int
	popupScroll   int
	popupID       string
	composing     bool
	busy          bool
	status        string
}

// New builds the document and subscribes the presenters. The catalog is
// fetched once the program starts.
func New(cfg Config) *Model {
	log := cfg.Log
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if cfg.Gate == (gate.Options{}) {
		cfg.Gate = gate.DefaultOptions()
	}
	if cfg.Shake <= 0 {
		cfg.Shake = defaultShake
	}

	ctx, cancel := context.WithCancel(context.Background())
	l := newTeaLoop(ctx)

	doc := render.NewDocument()
	header := render.NewElement("header", "")
	board := render.NewElement("main", "")
	footer := render.NewElement("footer", "")
	for _, el := range []*render.Element{header, board, footer} {
		_ = render.Render(el, doc.Body, render.BeforeEnd)
	}

	movies := model.NewMovieModel(cfg.Backend, log)
	filters := model.NewFilterModel()
	g := gate.New(cfg.Gate, l)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Write a comment"
	ti.CharLimit = 512
	ti.VirtualCursor = true

	m := &Model{
		ctx:     ctx,
		cancel:  cancel,
		log:     log.Named("tui"),
		theme:   theme.Default(),
		loop:    l,
		doc:     doc,
		header:  header,
		board:   board,
		footer:  footer,
		movies:  movies,
		filters: filters,
		gate:    g,
		spinner: sp,
		input:   ti,
		watcher: cfg.Watcher,
	}
	// Navigation and counters redraw before the board on every model event.
	m.filter = presenter.NewFilter(header, filters, movies, log)
	m.stats = presenter.NewStats(header, footer, movies, log)
	m.films = presenter.NewFilms(doc, board, movies, filters, l, g, presenter.Options{
		PageSize: cfg.PageSize,
		Shake:    cfg.Shake,
		Log:      log,
	})
	g.OnChange(func(busy bool) { m.busy = busy })

	m.filter.Init()
	m.stats.Init()
	m.films.Init()
	return m
}

// Init loads the catalog and starts watching the store.
func (m *Model) Init() tea.Cmd {
	m.loop.Go(m.movies.Load(), nil)
	return tea.Batch(m.loop.drain(), m.spinner.Tick, startWatchCmd(m.ctx, m.watcher))
}

// Run starts the program on the alternate screen.
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, w Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := w.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) handleWatchEvent(ev store.Event) {
	m.log.Debug("store changed", "type", ev.Type, "movie", ev.MovieID)
	m.loop.Go(m.movies.Reload(), func(err error) {
		if err != nil {
			m.setStatus("ERR: reload " + err.Error())
		}
	})
}

// Update routes messages. Loop completions and timers run here so presenters
// and models are only ever touched from this goroutine.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case workDoneMsg:
		m.loop.finish(msg)
	case timerMsg:
		m.loop.fire(msg)
	case spinner.TickMsg:
		if m.movies.Loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	case watchStartedMsg:
		if msg.err != nil {
			m.setStatus("ERR: watch " + msg.err.Error())
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchEventMsg:
		m.handleWatchEvent(msg.event)
		cmds = append(cmds, m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
		if m.ctx.Err() == nil {
			cmds = append(cmds, startWatchCmd(m.ctx, m.watcher))
		}
	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKeyPress(msg))
	}

	m.syncCompose()
	m.clampFocus()
	cmds = append(cmds, m.loop.drain())
	return m, tea.Batch(cmds...)
}

func (m *Model) quit() tea.Cmd {
	m.stopWatch()
	m.cancel()
	return tea.Quit
}

func (m *Model) setStatus(s string) {
	m.status = s
}

// cards lists the rendered film cards in board order.
func (m *Model) cards() []*render.Element {
	return m.board.FindAll("film-card")
}

func (m *Model) focused() *render.Element {
	cards := m.cards()
	if m.focus < 0 || m.focus >= len(cards) {
		return nil
	}
	return cards[m.focus]
}

func (m *Model) clampFocus() {
	n := len(m.cards())
	m.focus = max(0, min(m.focus, n-1))
}

// syncCompose drops the text input once the popup stopped composing, which
// happens when a comment was saved or the popup closed.
func (m *Model) syncCompose() {
	active := m.films.Active()
	id := ""
	if active != nil {
		id = active.ID()
	}
	if id != m.popupID {
		m.popupID = id
		m.popupScroll = 0
	}
	if !m.composing {
		return
	}
	if active == nil || !active.Popup().State().Composing {
		m.composing = false
		m.input.Blur()
		m.input.Reset()
	}
}

func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// View lays out the header, the scrolled board and the footer, then draws the
// open popup on top.
func (m *Model) View() string {
	width, height := m.size()

	header := m.header.Layout(nil).Lines
	footer := m.footerLines(width)
	bodyHeight := max(1, height-len(header)-len(footer))

	board := m.board.Layout(m.decorate)
	m.follow(board, bodyHeight)

	lines := make([]string, 0, height)
	lines = append(lines, header...)
	end := min(len(board.Lines), m.scroll+bodyHeight)
	if m.scroll < end {
		lines = append(lines, board.Lines[m.scroll:end]...)
	}
	for len(lines) < len(header)+bodyHeight {
		lines = append(lines, "")
	}
	lines = append(lines, footer...)
	screen := strings.Join(lines, "\n")

	active := m.films.Active()
	if active == nil {
		return screen
	}
	popup := active.Popup().Element().String()
	m.popupScroll = max(0, min(m.popupScroll, strings.Count(popup, "\n")+1-height))
	return overlay.Compose(screen, width, height, popup, overlay.Placement{
		Horizontal: lipgloss.Center,
		Vertical:   lipgloss.Center,
		Offset:     m.popupScroll,
	})
}

// follow scrolls the board so the focused card stays visible. Scrolling is
// frozen while a popup holds the body.
func (m *Model) follow(l render.Layout, height int) {
	if !m.doc.Body.HasClass(render.ClassHideOverflow) {
		if m.focus == 0 {
			m.scroll = 0
		} else if card := m.focused(); card != nil {
			span := l.Spans[card]
			if span.Start < m.scroll {
				m.scroll = span.Start
			}
			if span.End > m.scroll+height {
				m.scroll = span.End - height
			}
		}
	}
	m.scroll = max(0, min(m.scroll, len(l.Lines)-height))
}

func (m *Model) decorate(e *render.Element, body string) string {
	switch e.Name() {
	case "film-card":
		marker := "  "
		if e == m.focused() {
			marker = m.theme.Card.Focused.Render("▌") + " "
		}
		lines := strings.Split(body, "\n")
		for i := range lines {
			lines[i] = marker + lines[i]
		}
		return strings.Join(lines, "\n")
	case "films-list__loading":
		return m.spinner.View() + " " + body
	}
	return body
}

func (m *Model) footerLines(width int) []string {
	th := m.theme.Footer
	left := strings.TrimSpace(m.footer.String())
	right := th.Status.Render(m.status)
	if m.busy {
		right = th.Busy.Render("● saving…")
	}
	gap := max(1, width-lipgloss.Width(left)-lipgloss.Width(right))
	status := left + strings.Repeat(" ", gap) + right

	help := th.Help.Render(m.helpText())
	if m.composing {
		help = th.Status.Render("Comment: ") + m.input.View() + "  " + help
	}
	return []string{status, help}
}

func (m *Model) helpText() string {
	switch {
	case m.composing:
		return "ctrl+s send · tab reaction · esc done"
	case m.films.Active() != nil:
		return "esc close · w/h/f toggle · c comment · ↑/↓ select · x delete · 1-4 reaction · pgup/pgdn scroll"
	default:
		return "j/k move · enter open · w/h/f toggle · m more · s sort · 1-4 filter · q quit"
	}
}

// dispatch sends an event to el and reports whether a view handled it.
func dispatch(el *render.Element, typ, target, value string) bool {
	if el == nil {
		return false
	}
	return el.Dispatch(&render.Event{Type: typ, Target: target, Value: value})
}

func keydown(el *render.Element, key string) bool {
	if el == nil {
		return false
	}
	return el.Dispatch(&render.Event{Type: view.EventKeydown, Key: key})
}
