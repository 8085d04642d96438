// Package logging builds the hclog loggers used across filmdeck.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// New returns a logger named name writing to w. Unknown levels fall back to
// info.
func New(name, level string, w io.Writer) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Output: w,
		Level:  lvl,
	})
}

// OpenFile returns a logger appending to path and the func that closes it.
// The UI owns the terminal, so it logs here instead of to stderr. An empty
// path discards everything.
func OpenFile(name, level, path string) (hclog.Logger, func() error, error) {
	if path == "" {
		return hclog.NewNullLogger(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	return New(name, level, f), f.Close, nil
}
