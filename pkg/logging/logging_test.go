package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("filmdeck", "warn", &buf)
	log.Info("hidden")
	log.Warn("shown", "id", "7")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "filmdeck: shown") || !strings.Contains(out, "id=7") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNewUnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("x", "chatty", &buf)
	log.Debug("debug")
	log.Info("info")
	if out := buf.String(); strings.Contains(out, "debug") || !strings.Contains(out, "info") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "filmdeck.log")
	for _, msg := range []string{"first", "second"} {
		log, closeFn, err := OpenFile("ui", "info", path)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		log.Info(msg)
		if err := closeFn(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "first") || !strings.Contains(string(b), "second") {
		t.Fatalf("expected both lines, got %q", b)
	}
}

func TestOpenFileEmptyPathDiscards(t *testing.T) {
	log, closeFn, err := OpenFile("ui", "debug", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	log.Info("nothing")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
