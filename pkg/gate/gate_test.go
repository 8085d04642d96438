package gate

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/filmdeck/pkg/loop"
)

func newGate(limit int64) (*Gate, *loop.Manual, *[]bool) {
	l := loop.NewManual(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))
	g := New(Options{
		Lower:   100 * time.Millisecond,
		Upper:   500 * time.Millisecond,
		Limit:   limit,
		Timeout: time.Second,
	}, l)
	var changes []bool
	g.OnChange(func(b bool) { changes = append(changes, b) })
	return g, l, &changes
}

func TestFastRequestNeverShowsBusy(t *testing.T) {
	g, l, changes := newGate(1)
	if err := g.Block(); err != nil {
		t.Fatalf("block: %v", err)
	}
	l.Advance(50 * time.Millisecond)
	g.Unblock()
	l.Advance(time.Second)
	if len(*changes) != 0 {
		t.Fatalf("expected no busy flips, got %v", *changes)
	}
	if g.Busy() || g.InFlight() != 0 {
		t.Fatalf("gate should be idle")
	}
}

func TestSlowRequestKeepsBusyUntilUpper(t *testing.T) {
	g, l, changes := newGate(1)
	if err := g.Block(); err != nil {
		t.Fatalf("block: %v", err)
	}
	l.Advance(150 * time.Millisecond)
	if !g.Busy() {
		t.Fatalf("expected busy after lower limit")
	}
	g.Unblock()
	if !g.Busy() {
		t.Fatalf("busy dropped before upper limit")
	}
	l.Advance(300 * time.Millisecond)
	if !g.Busy() {
		t.Fatalf("busy dropped at 450ms")
	}
	l.Advance(60 * time.Millisecond)
	if g.Busy() {
		t.Fatalf("busy still shown after upper limit")
	}
	want := []bool{true, false}
	if len(*changes) != 2 || (*changes)[0] != want[0] || (*changes)[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, *changes)
	}
}

func TestVerySlowRequestClearsImmediately(t *testing.T) {
	g, l, _ := newGate(1)
	_ = g.Block()
	l.Advance(700 * time.Millisecond)
	g.Unblock()
	if g.Busy() {
		t.Fatalf("expected busy cleared once past upper limit")
	}
}

func TestLimitRejectsOverlappingRequests(t *testing.T) {
	g, _, _ := newGate(1)
	if err := g.Block(); err != nil {
		t.Fatalf("first block: %v", err)
	}
	if err := g.Block(); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	g.Unblock()
	if err := g.Block(); err != nil {
		t.Fatalf("block after release: %v", err)
	}
}

func TestLimitAllowsConfiguredConcurrency(t *testing.T) {
	g, l, _ := newGate(2)
	_ = g.Block()
	if err := g.Block(); err != nil {
		t.Fatalf("second block: %v", err)
	}
	if g.InFlight() != 2 {
		t.Fatalf("expected 2 in flight, got %d", g.InFlight())
	}
	l.Advance(200 * time.Millisecond)
	g.Unblock()
	if !g.Busy() {
		t.Fatalf("busy should persist while one request is in flight")
	}
	g.Unblock()
	l.Advance(400 * time.Millisecond)
	if g.Busy() {
		t.Fatalf("expected idle")
	}
}

func TestUnblockWithoutBlockIsNoop(t *testing.T) {
	g, _, _ := newGate(1)
	g.Unblock()
	if g.InFlight() != 0 {
		t.Fatalf("in flight went negative")
	}
}

func TestWithTimeoutAppliesDeadline(t *testing.T) {
	g, _, _ := newGate(1)
	var deadline time.Time
	var ok bool
	work := g.WithTimeout(func(ctx context.Context) (func(), error) {
		deadline, ok = ctx.Deadline()
		return nil, nil
	})
	if _, err := work(context.Background()); err != nil {
		t.Fatalf("work: %v", err)
	}
	if !ok || time.Until(deadline) > time.Second {
		t.Fatalf("expected deadline within a second, got %v (%v)", deadline, ok)
	}
}
