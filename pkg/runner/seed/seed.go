package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/filmdeck/pkg/store"
)

// Seed fills the catalog with a generated sample.
type Seed struct {
	Persistence store.Persistence
	Count       int

	Out io.Writer
	Now func() time.Time
}

func (s *Seed) Do(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("can not seed, no persistence")
	}
	if s.Count <= 0 {
		return fmt.Errorf("seed count must be positive, got %d", s.Count)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	if err := store.Seed(s.Persistence, s.Count, now); err != nil {
		return err
	}
	out := s.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintf(out, "seeded %d movies\n", s.Count)
	return nil
}
