// Package gate bounds how many mutating requests may be in flight and drives
// the busy indicator shown while they run.
//
// The indicator appears only when a request outlives Lower, and once shown it
// stays up until Upper has elapsed since the request started so fast
// responses never flicker.
package gate

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/semaphore"

	"tableflip.dev/filmdeck/pkg/loop"
)

// ErrBusy is returned by Block when the in-flight limit is reached.
var ErrBusy = errors.New("gate: too many requests in flight")

// Options configures a Gate.
type Options struct {
	Lower   time.Duration
	Upper   time.Duration
	Limit   int64
	Timeout time.Duration
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Lower:   350 * time.Millisecond,
		Upper:   1000 * time.Millisecond,
		Limit:   1,
		Timeout: 10 * time.Second,
	}
}

// Gate admits at most Limit concurrent requests.
type Gate struct {
	opts Options
	loop loop.Loop
	sem  *semaphore.Weighted

	inFlight int
	started  time.Time
	busy     bool
	cancel   func()

	onChange []func(bool)
}

// New builds a gate scheduling its timers on l.
func New(opts Options, l loop.Loop) *Gate {
	if opts.Limit <= 0 {
		opts.Limit = 1
	}
	if opts.Upper < opts.Lower {
		opts.Upper = opts.Lower
	}
	return &Gate{
		opts: opts,
		loop: l,
		sem:  semaphore.NewWeighted(opts.Limit),
	}
}

// OnChange registers fn to be called whenever the busy state flips.
func (g *Gate) OnChange(fn func(busy bool)) {
	if fn != nil {
		g.onChange = append(g.onChange, fn)
	}
}

// Block admits one request or returns ErrBusy.
func (g *Gate) Block() error {
	if !g.sem.TryAcquire(1) {
		return ErrBusy
	}
	g.inFlight++
	if g.inFlight > 1 {
		return nil
	}
	g.stopTimer()
	if g.busy {
		// A previous burst is still inside its minimum display window.
		return nil
	}
	g.started = g.loop.Now()
	g.cancel = g.loop.After(g.opts.Lower, func() {
		g.cancel = nil
		g.setBusy(true)
	})
	return nil
}

// Unblock releases one admitted request.
func (g *Gate) Unblock() {
	if g.inFlight == 0 {
		return
	}
	g.inFlight--
	g.sem.Release(1)
	if g.inFlight > 0 {
		return
	}
	elapsed := g.loop.Now().Sub(g.started)
	if elapsed < g.opts.Lower && !g.busy {
		g.stopTimer()
		return
	}
	if elapsed >= g.opts.Upper {
		g.stopTimer()
		g.setBusy(false)
		return
	}
	g.stopTimer()
	g.cancel = g.loop.After(g.opts.Upper-elapsed, func() {
		g.cancel = nil
		if g.inFlight == 0 {
			g.setBusy(false)
		}
	})
}

// Busy reports whether the busy indicator should be shown.
func (g *Gate) Busy() bool {
	return g.busy
}

// InFlight reports the number of admitted requests.
func (g *Gate) InFlight() int {
	return g.inFlight
}

// Timeout is the maximum time a gated request may take.
func (g *Gate) Timeout() time.Duration {
	return g.opts.Timeout
}

// WithTimeout wraps work so it runs under the gate's deadline.
func (g *Gate) WithTimeout(work loop.Work) loop.Work {
	if g.opts.Timeout <= 0 {
		return work
	}
	return func(ctx context.Context) (func(), error) {
		ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
		return work(ctx)
	}
}

func (g *Gate) stopTimer() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

func (g *Gate) setBusy(busy bool) {
	if g.busy == busy {
		return
	}
	g.busy = busy
	for _, fn := range g.onChange {
		fn(busy)
	}
}
