package importer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/filmdeck/pkg/store"
)

type dirConfig string

func (d dirConfig) BasePath() string { return string(d) }

const catalog = `
- id: "m1"
  film_info:
    title: Made for Each Other
    total_rating: 5.8
    runtime: 92
- id: "m2"
  film_info:
    title: The Sky Is Red
`

func TestImportFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(path, []byte(catalog), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := store.Load(dirConfig(filepath.Join(dir, "db")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var out bytes.Buffer
	i := &Import{Persistence: p, Path: path, Out: &out}
	if err := i.Do(context.Background()); err != nil {
		t.Fatalf("import: %v", err)
	}
	m, err := p.Movie(context.Background(), "m1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if m.Info.Title != "Made for Each Other" || m.Info.Runtime != 92 {
		t.Fatalf("unexpected movie: %+v", m.Info)
	}
	if !strings.Contains(out.String(), "imported 2 movies") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestImportFromReader(t *testing.T) {
	p, _ := store.Load(dirConfig(t.TempDir()))
	i := &Import{Persistence: p, Path: "-", In: strings.NewReader(catalog), Out: &bytes.Buffer{}}
	if err := i.Do(context.Background()); err != nil {
		t.Fatalf("import: %v", err)
	}
	all, _ := p.Movies(context.Background())
	if len(all) != 2 || all[0].ID != "m1" || all[1].ID != "m2" {
		t.Fatalf("unexpected catalog: %+v", all)
	}
}

func TestImportMissingFile(t *testing.T) {
	p, _ := store.Load(dirConfig(t.TempDir()))
	i := &Import{Persistence: p, Path: filepath.Join(t.TempDir(), "nope.yaml")}
	if err := i.Do(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
