package loop

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManualGoCommitsBeforeDone(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	var order []string
	m.Go(func(context.Context) (func(), error) {
		order = append(order, "work")
		return func() { order = append(order, "commit") }, nil
	}, func(err error) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		order = append(order, "done")
	})
	if len(order) != 3 || order[0] != "work" || order[1] != "commit" || order[2] != "done" {
		t.Fatalf("unexpected order: %v", order)
	}
}

func TestManualGoSkipsCommitOnError(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	committed := false
	var got error
	m.Go(func(context.Context) (func(), error) {
		return func() { committed = true }, errors.New("boom")
	}, func(err error) { got = err })
	if committed {
		t.Fatalf("commit ran after failure")
	}
	if got == nil {
		t.Fatalf("expected error")
	}
}

func TestManualHoldAndFlush(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	m.Hold(true)
	ran := 0
	m.Go(func(context.Context) (func(), error) { ran++; return nil, nil }, nil)
	if ran != 0 || m.Pending() != 1 {
		t.Fatalf("expected held call, ran=%d pending=%d", ran, m.Pending())
	}
	m.Flush()
	if ran != 1 || m.Pending() != 0 {
		t.Fatalf("expected flushed call, ran=%d pending=%d", ran, m.Pending())
	}
}

func TestManualTimersFireInOrder(t *testing.T) {
	start := time.Unix(100, 0)
	m := NewManual(start)
	var fired []int
	m.After(30*time.Millisecond, func() { fired = append(fired, 30) })
	m.After(10*time.Millisecond, func() { fired = append(fired, 10) })
	cancel := m.After(20*time.Millisecond, func() { fired = append(fired, 20) })
	cancel()

	m.Advance(15 * time.Millisecond)
	if len(fired) != 1 || fired[0] != 10 {
		t.Fatalf("unexpected fired after 15ms: %v", fired)
	}
	m.Advance(15 * time.Millisecond)
	if len(fired) != 2 || fired[1] != 30 {
		t.Fatalf("unexpected fired after 30ms: %v", fired)
	}
	if got := m.Now(); !got.Equal(start.Add(30 * time.Millisecond)) {
		t.Fatalf("clock at %v", got)
	}
	if m.Timers() != 0 {
		t.Fatalf("expected no timers, got %d", m.Timers())
	}
}
