package teaui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/filmdeck/pkg/loop"
)

var _ loop.Loop = (*teaLoop)(nil)

// teaLoop schedules loop work as Bubble Tea commands. Work runs inside the
// command goroutine; its commit and completion come back as messages so they
// run in Update, the only place model and presenter state is touched.
type teaLoop struct {
	ctx  context.Context
	now  func() time.Time
	tick func(d time.Duration, msg tea.Msg) tea.Cmd

	seq    int
	timers map[int]func()
	queue  []tea.Cmd
}

type workDoneMsg struct {
	commit func()
	err    error
	done   func(error)
}

type timerMsg struct {
	id int
}

func newTeaLoop(ctx context.Context) *teaLoop {
	return &teaLoop{
		ctx:    ctx,
		now:    time.Now,
		tick:   tickAfter,
		timers: make(map[int]func()),
	}
}

func tickAfter(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Go implements loop.Loop.
func (l *teaLoop) Go(work loop.Work, done func(error)) {
	ctx := l.ctx
	l.queue = append(l.queue, func() tea.Msg {
		commit, err := work(ctx)
		return workDoneMsg{commit: commit, err: err, done: done}
	})
}

// After implements loop.Loop.
func (l *teaLoop) After(d time.Duration, fn func()) func() {
	l.seq++
	id := l.seq
	l.timers[id] = fn
	if cmd := l.tick(d, timerMsg{id: id}); cmd != nil {
		l.queue = append(l.queue, cmd)
	}
	return func() {
		delete(l.timers, id)
	}
}

// Now implements loop.Loop.
func (l *teaLoop) Now() time.Time {
	return l.now()
}

// finish runs a completed work item on the loop.
func (l *teaLoop) finish(msg workDoneMsg) {
	if msg.err == nil && msg.commit != nil {
		msg.commit()
	}
	if msg.done != nil {
		msg.done(msg.err)
	}
}

// fire runs a due timer unless it was cancelled.
func (l *teaLoop) fire(msg timerMsg) {
	fn, ok := l.timers[msg.id]
	if !ok {
		return
	}
	delete(l.timers, msg.id)
	fn()
}

// drain hands the queued commands to the runtime.
func (l *teaLoop) drain() tea.Cmd {
	if len(l.queue) == 0 {
		return nil
	}
	cmds := l.queue
	l.queue = nil
	return tea.Batch(cmds...)
}
