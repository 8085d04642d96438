package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/filmdeck/pkg/gate"
	"tableflip.dev/filmdeck/pkg/store"
	teaui "tableflip.dev/filmdeck/pkg/tui/app"
)

func TestDoPassesConfigToTheProgram(t *testing.T) {
	dir := t.TempDir()
	cfg := &store.FileConfig{
		Path:     filepath.Join(dir, "db"),
		PageSize: 7,
		Gate:     gate.Options{Lower: time.Millisecond, Upper: 2 * time.Millisecond, Limit: 2, Timeout: time.Second},
		LogFile:  filepath.Join(dir, "filmdeck.log"),
		LogLevel: "debug",
		Author:   "Viewer",
		Shake:    time.Second,
	}
	p, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var got teaui.Config
	u := &UI{Config: cfg, Persistence: p, run: func(c teaui.Config) error {
		got = c
		return nil
	}}
	if err := u.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if got.PageSize != 7 || got.Gate.Limit != 2 || got.Shake != time.Second {
		t.Fatalf("unexpected config: %+v", got)
	}
	if got.Backend == nil || got.Watcher == nil || got.Log == nil {
		t.Fatalf("backend, watcher and logger are required")
	}
}

func TestDoRequiresPersistence(t *testing.T) {
	if err := (&UI{}).Do(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
