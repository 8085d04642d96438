package teaui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/filmdeck/pkg/model"
	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/store"
	"tableflip.dev/filmdeck/pkg/tui/overlay"
)

var testNow = time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)

type dirConfig string

func (d dirConfig) BasePath() string { return string(d) }

func newTestStore(t *testing.T, n int) store.Persistence {
	t.Helper()
	p, err := store.Load(dirConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	if err := store.Seed(p, n, testNow); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return p
}

// newTestModel returns a loaded model whose timers never fire on their own.
func newTestModel(t *testing.T, p store.Persistence, pageSize int) *Model {
	t.Helper()
	seq := 0
	m := New(Config{
		Backend: &model.StoreBackend{
			Persistence: p,
			Now:         func() time.Time { return testNow },
			NewID: func() string {
				seq++
				return fmt.Sprintf("c%d", seq)
			},
			Author: "Tester",
		},
		PageSize: pageSize,
	})
	m.loop.now = func() time.Time { return testNow }
	m.loop.tick = func(time.Duration, tea.Msg) tea.Cmd { return nil }
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 90})
	drive(t, m, m.Init())
	return m
}

// drive runs commands until the loop settles, feeding loop messages back
// into Update. Anything else (spinner ticks, cursor blinks) is dropped.
func drive(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatalf("commands did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case workDoneMsg, timerMsg:
			_, c := m.Update(msg)
			queue = append(queue, c)
		}
	}
}

func press(t *testing.T, m *Model, key tea.KeyPressMsg) {
	t.Helper()
	_, cmd := m.Update(key)
	drive(t, m, cmd)
}

func char(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// typeText sends printable keys without running the input's cursor commands.
func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(char(r))
	}
}

func screen(m *Model) string {
	return overlay.Strip(m.View())
}

func stored(t *testing.T, p store.Persistence, id string) movie.Movie {
	t.Helper()
	mv, err := p.Movie(context.Background(), id)
	if err != nil {
		t.Fatalf("read %s: %v", id, err)
	}
	return mv
}

func TestViewShowsLoadingUntilCatalogArrives(t *testing.T) {
	p := newTestStore(t, 8)
	m := New(Config{Backend: &model.StoreBackend{Persistence: p}, PageSize: 3})
	m.loop.tick = func(time.Duration, tea.Msg) tea.Cmd { return nil }
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 90})

	if view := screen(m); !strings.Contains(view, "Loading...") {
		t.Fatalf("expected loading placeholder; view=%q", view)
	}

	drive(t, m, m.Init())
	view := screen(m)
	if strings.Contains(view, "Loading...") {
		t.Fatalf("loading placeholder left behind; view=%q", view)
	}
	for _, want := range []string{"The Dance of Life", "Sagebrush Trail", "8 movies inside", "[m] Show more", "Rank: Novice"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q; view=%q", want, view)
		}
	}
	if strings.Contains(view, "Santa Claus") {
		t.Fatalf("fourth movie rendered before load more; view=%q", view)
	}
}

func TestLoadMoreKeyRevealsNextPage(t *testing.T) {
	m := newTestModel(t, newTestStore(t, 5), 3)
	if got := len(m.cards()); got != 3 {
		t.Fatalf("expected 3 cards, got %d", got)
	}
	press(t, m, char('m'))
	if got := len(m.cards()); got != 5 {
		t.Fatalf("expected 5 cards after load more, got %d", got)
	}
	if strings.Contains(screen(m), "[m] Show more") {
		t.Fatalf("load more should disappear once everything is shown")
	}
}

func TestFocusScrollsBoard(t *testing.T) {
	m := newTestModel(t, newTestStore(t, 6), 6)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 16})

	if view := screen(m); strings.Contains(view, "Popeye the Sailor") {
		t.Fatalf("fifth card should be below the fold; view=%q", view)
	}
	for i := 0; i < 4; i++ {
		press(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if m.focus != 4 {
		t.Fatalf("expected focus 4, got %d", m.focus)
	}
	if view := screen(m); !strings.Contains(view, "Popeye the Sailor") {
		t.Fatalf("focused card not scrolled into view; view=%q", view)
	}
	press(t, m, char('G'))
	press(t, m, char('j'))
	if m.focus != 5 {
		t.Fatalf("focus should stop at the last card, got %d", m.focus)
	}
}

func TestToggleKeyUpdatesStoreAndCard(t *testing.T) {
	p := newTestStore(t, 4)
	m := newTestModel(t, p, 4)

	press(t, m, char('j'))
	before := m.focused()
	press(t, m, char('f'))

	if !stored(t, p, "1").UserDetails.Favorite {
		t.Fatalf("favorite not persisted")
	}
	if m.gate.InFlight() != 0 {
		t.Fatalf("gate still holds %d requests", m.gate.InFlight())
	}
	after := m.focused()
	if after == before {
		t.Fatalf("card element should be rebuilt after a patch")
	}
	if m.cards()[0] == after || len(m.cards()) != 4 {
		t.Fatalf("unexpected board after patch")
	}
}

func TestFilterKeysSwitchBoard(t *testing.T) {
	m := newTestModel(t, newTestStore(t, 8), 8)

	press(t, m, char('2'))
	if got := len(m.cards()); got != 3 {
		t.Fatalf("expected 3 watchlist cards, got %d", got)
	}
	if m.filters.Filter() != movie.FilterWatchlist {
		t.Fatalf("filter not applied: %s", m.filters.Filter())
	}
	press(t, m, char('4'))
	if got := len(m.cards()); got != 2 {
		t.Fatalf("expected 2 favorite cards, got %d", got)
	}
	press(t, m, char('1'))
	if got := len(m.cards()); got != 8 {
		t.Fatalf("expected full board, got %d", got)
	}
}

func TestSortKeyCyclesSort(t *testing.T) {
	m := newTestModel(t, newTestStore(t, 5), 5)
	press(t, m, char('j'))
	press(t, m, char('s'))
	if got := m.films.SortType(); got != movie.SortDate {
		t.Fatalf("expected date sort, got %s", got)
	}
	if m.focus != 0 {
		t.Fatalf("focus should return to the top, got %d", m.focus)
	}
}

func TestPopupCommentFlow(t *testing.T) {
	p := newTestStore(t, 3)
	m := newTestModel(t, p, 3)

	press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	active := m.films.Active()
	if active == nil || active.ID() != "0" {
		t.Fatalf("expected popup for movie 0")
	}
	if view := screen(m); !strings.Contains(view, "Original: The Dance of Life") {
		t.Fatalf("popup not drawn; view=%q", view)
	}

	m.Update(char('c'))
	if !m.composing {
		t.Fatalf("expected compose mode")
	}
	typeText(m, "great")
	if got := active.Popup().State().Draft; got != "great" {
		t.Fatalf("draft not forwarded to popup: %q", got)
	}
	press(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	press(t, m, tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})

	saved := stored(t, p, "0").Comments
	if len(saved) != 1 || saved[0].Text != "great" || saved[0].Emotion != movie.EmotionSmile {
		t.Fatalf("unexpected stored comments: %+v", saved)
	}
	if m.composing || m.input.Value() != "" {
		t.Fatalf("compose mode should end after saving")
	}
	if st := active.Popup().State(); st.Draft != "" || st.Saving {
		t.Fatalf("popup draft not cleared: %+v", st)
	}

	press(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.films.Active() != nil {
		t.Fatalf("popup should close on esc")
	}
	if strings.Contains(screen(m), "Original:") {
		t.Fatalf("popup still drawn after close")
	}
}

func TestPopupDeleteSelectedComment(t *testing.T) {
	p := newTestStore(t, 3)
	m := newTestModel(t, p, 3)

	press(t, m, char('j'))
	press(t, m, char('j'))
	press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	press(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	press(t, m, char('x'))

	if got := len(stored(t, p, "2").Comments); got != 1 {
		t.Fatalf("expected one comment left, got %d", got)
	}
}

func TestBusyGateIgnoresInputExceptQuit(t *testing.T) {
	m := newTestModel(t, newTestStore(t, 4), 4)
	m.busy = true

	press(t, m, char('j'))
	if m.focus != 0 {
		t.Fatalf("input should be ignored while busy")
	}
	if !strings.Contains(screen(m), "saving") {
		t.Fatalf("busy marker missing")
	}
	m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if m.ctx.Err() == nil {
		t.Fatalf("quit should cancel the model context")
	}
}

func TestKeysIgnoredWhileUpdateInFlight(t *testing.T) {
	p := newTestStore(t, 5)
	m := newTestModel(t, p, 5)

	_, cmd := m.Update(char('f'))
	if m.films.Pending() != 1 {
		t.Fatalf("expected the update in flight, got %d", m.films.Pending())
	}
	press(t, m, char('s'))
	if got := m.films.SortType(); got != movie.SortDefault {
		t.Fatalf("sort changed under a pending update: %s", got)
	}

	drive(t, m, cmd)
	if !stored(t, p, "0").UserDetails.Favorite {
		t.Fatalf("favorite not persisted")
	}
	if m.films.Pending() != 0 {
		t.Fatalf("request still pending")
	}
	press(t, m, char('s'))
	if got := m.films.SortType(); got != movie.SortDate {
		t.Fatalf("expected date sort once settled, got %s", got)
	}
}

func TestKeysIgnoredWhileCommentDeleteInFlight(t *testing.T) {
	p := newTestStore(t, 3)
	m := newTestModel(t, p, 3)

	press(t, m, char('j'))
	press(t, m, char('j'))
	press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	press(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := m.Update(char('x'))
	press(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	press(t, m, char('s'))
	if m.films.Active() == nil || m.films.SortType() != movie.SortDefault {
		t.Fatalf("popup or board changed under a pending delete")
	}

	drive(t, m, cmd)
	if got := len(stored(t, p, "2").Comments); got != 1 {
		t.Fatalf("expected one comment left, got %d", got)
	}
	press(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	press(t, m, char('s'))
	if m.films.Active() != nil || m.films.SortType() != movie.SortDate {
		t.Fatalf("expected input to resume after the delete")
	}
}

func TestWatchEventReloadsCatalog(t *testing.T) {
	p := newTestStore(t, 3)
	m := newTestModel(t, p, 5)

	extra := store.Sample(4, testNow)[3]
	if err := p.Store(extra); err != nil {
		t.Fatalf("store: %v", err)
	}
	_, cmd := m.Update(watchEventMsg{event: store.Event{Type: store.EventMovieChanged, MovieID: extra.ID}})
	drive(t, m, cmd)

	if got := len(m.cards()); got != 4 {
		t.Fatalf("expected reloaded board with 4 cards, got %d", got)
	}
	if !strings.Contains(screen(m), "4 movies inside") {
		t.Fatalf("footer not refreshed")
	}
}

type fakeWatcher struct {
	ch chan store.Event
}

func (f *fakeWatcher) Watch(ctx context.Context) (<-chan store.Event, error) {
	return f.ch, nil
}

func TestWatchStartedKeepsChannel(t *testing.T) {
	m := newTestModel(t, newTestStore(t, 1), 5)
	w := &fakeWatcher{ch: make(chan store.Event, 1)}

	msg := startWatchCmd(m.ctx, w)()
	m.Update(msg)
	if m.watchCh == nil || m.watchCancel == nil {
		t.Fatalf("watch channel not kept")
	}
	close(w.ch)
	if _, ok := m.waitForWatch()().(watchStoppedMsg); !ok {
		t.Fatalf("expected stop message for a closed channel")
	}
	m.stopWatch()
	if m.watchCh != nil {
		t.Fatalf("stopWatch should drop the channel")
	}
}
