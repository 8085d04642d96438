package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/filmdeck/pkg/movie"
)

// ErrNotFound is returned when a movie id is not in the catalog.
var ErrNotFound = errors.New("store: movie not found")

// Persistence defines the persistence contract for the movie catalog.
type Persistence interface {
	Movies(ctx context.Context) ([]movie.Movie, error)
	Movie(ctx context.Context, id string) (movie.Movie, error)
	Store(m movie.Movie) error
	Delete(id string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		fc, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = fc
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// Other processes edit the catalog while the UI runs; reads must hit disk.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(id string) (movie.Movie, error) {
	val, err := p.d.Read(toKey(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return movie.Movie{}, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		return movie.Movie{}, err
	}
	m := movie.Movie{}
	if err := json.Unmarshal(val, &m); err != nil {
		return movie.Movie{}, fmt.Errorf("store: decode %q: %w", id, err)
	}
	m.ID = id
	return m, nil
}

// Movies returns the catalog in index order. Files without an index entry are
// appended in key order so hand-copied files still show up.
func (p *persistence) Movies(ctx context.Context) ([]movie.Movie, error) {
	order, err := p.loadIndex()
	if err != nil {
		return nil, fmt.Errorf("store: load catalog index: %w", err)
	}
	seen := make(map[string]struct{}, len(order))
	ids := make([]string, 0, len(order))
	for _, id := range order {
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	var extra []string
	for key := range p.d.Keys(ctx.Done()) {
		id := fromKey(key)
		if strings.HasPrefix(id, ".") {
			continue
		}
		if _, ok := seen[id]; !ok {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	ids = append(ids, extra...)

	out := make([]movie.Movie, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, err := p.read(id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", id, err)
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (p *persistence) Movie(ctx context.Context, id string) (movie.Movie, error) {
	if err := ctx.Err(); err != nil {
		return movie.Movie{}, err
	}
	return p.read(id)
}

func (p *persistence) Store(m movie.Movie) error {
	if m.ID == "" {
		return errors.New("store: movie id required")
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := p.d.Write(toKey(m.ID), data); err != nil {
		return err
	}
	order, err := p.loadIndex()
	if err != nil {
		return fmt.Errorf("store: load catalog index: %w", err)
	}
	for _, id := range order {
		if id == m.ID {
			return nil
		}
	}
	if err := p.saveIndex(append(order, m.ID)); err != nil {
		return fmt.Errorf("store: save catalog index: %w", err)
	}
	return nil
}

func (p *persistence) Delete(id string) error {
	if err := p.d.Erase(toKey(id)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		return err
	}
	order, err := p.loadIndex()
	if err != nil {
		return fmt.Errorf("store: load catalog index: %w", err)
	}
	kept := order[:0]
	for _, existing := range order {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	return p.saveIndex(kept)
}

const (
	catalogIndexFile = ".catalog.json"
	moviesDir        = "movies"
)

func (p *persistence) indexPath() string {
	return filepath.Join(p.basePath, catalogIndexFile)
}

func (p *persistence) loadIndex() ([]string, error) {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.indexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var order []string
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}
	return order, nil
}

func (p *persistence) saveIndex(order []string) error {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(order, "", "  ")
	if err != nil {
		return err
	}
	path := p.indexPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Movies live under movies/<id>; the key is the id itself.
func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{moviesDir},
		FileName: s,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}

func toKey(id string) string {
	return id
}

func fromKey(key string) string {
	return key
}
