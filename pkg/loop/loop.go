// Package loop describes the single UI loop that owns all presenter and model
// state. Blocking work is handed off through Go and its completion is delivered
// back onto the loop; timers fire on the loop as well.
package loop

import (
	"context"
	"sort"
	"time"
)

// Work is the blocking half of a mutation. It must not touch loop-owned state;
// the returned commit runs on the loop once the work succeeds.
type Work func(ctx context.Context) (commit func(), err error)

// Loop schedules work and timers relative to the UI loop.
type Loop interface {
	// Go runs work off the loop, then on the loop calls commit (on success)
	// followed by done.
	Go(work Work, done func(error))
	// After calls fn on the loop once d has elapsed. The returned cancel stops
	// a pending call.
	After(d time.Duration, fn func()) (cancel func())
	// Now reports the loop clock.
	Now() time.Time
}

// Manual is a deterministic Loop for tests and command line use: Go runs
// inline and timers fire only when the clock is advanced.
type Manual struct {
	Context context.Context

	now    time.Time
	seq    int
	timers map[int]*timer
	held   []pending
	hold   bool
}

type timer struct {
	at time.Time
	fn func()
}

type pending struct {
	work Work
	done func(error)
}

// NewManual returns a Manual loop whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start, timers: make(map[int]*timer)}
}

// Hold makes subsequent Go calls queue until Flush is called, which lets
// tests observe the in-flight state.
func (m *Manual) Hold(on bool) {
	m.hold = on
}

// Pending reports how many queued Go calls are waiting for Flush.
func (m *Manual) Pending() int {
	return len(m.held)
}

// Go implements Loop.
func (m *Manual) Go(work Work, done func(error)) {
	if m.hold {
		m.held = append(m.held, pending{work: work, done: done})
		return
	}
	m.run(work, done)
}

// Flush runs every held call in submission order.
func (m *Manual) Flush() {
	held := m.held
	m.held = nil
	for _, p := range held {
		m.run(p.work, p.done)
	}
}

func (m *Manual) run(work Work, done func(error)) {
	ctx := m.Context
	if ctx == nil {
		ctx = context.Background()
	}
	commit, err := work(ctx)
	if err == nil && commit != nil {
		commit()
	}
	if done != nil {
		done(err)
	}
}

// After implements Loop.
func (m *Manual) After(d time.Duration, fn func()) func() {
	m.seq++
	id := m.seq
	m.timers[id] = &timer{at: m.now.Add(d), fn: fn}
	return func() {
		delete(m.timers, id)
	}
}

// Now implements Loop.
func (m *Manual) Now() time.Time {
	return m.now
}

// Advance moves the clock forward and fires due timers in deadline order.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		id, t := m.nextDue(target)
		if t == nil {
			break
		}
		delete(m.timers, id)
		m.now = t.at
		t.fn()
	}
	m.now = target
}

func (m *Manual) nextDue(limit time.Time) (int, *timer) {
	ids := make([]int, 0, len(m.timers))
	for id, t := range m.timers {
		if !t.at.After(limit) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := m.timers[ids[i]], m.timers[ids[j]]
		if a.at.Equal(b.at) {
			return ids[i] < ids[j]
		}
		return a.at.Before(b.at)
	})
	return ids[0], m.timers[ids[0]]
}

// Timers reports the number of pending timers.
func (m *Manual) Timers() int {
	return len(m.timers)
}
