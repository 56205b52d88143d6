package jsonstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/chrispappas/golang-generics-set/set"
	"github.com/pkg/errors"

	"github.com/idilsaglam/ohmyblood/internal/model"
	"github.com/idilsaglam/ohmyblood/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// Every mutation rewrites the whole file through a temp file + rename,
// so readers never see a half-written document.

const FileName = "readings.json"

type Backend struct {
	path string
}

// Open returns a backend storing readings in dir/readings.json.
// The directory is created if needed; the file appears on first write.
func Open(dir string) (*Backend, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "mkdir")
	}
	return &Backend{path: filepath.Join(dir, FileName)}, nil
}

func (b *Backend) Path() string { return b.path }

func (b *Backend) Insert(r model.Reading) error {
	rs, err := b.load()
	if err != nil {
		return err
	}
	return b.save(append(rs, r))
}

func (b *Backend) DeleteAll(ids []string) error {
	rs, err := b.load()
	if err != nil {
		return err
	}
	drop := set.FromSlice(ids)
	kept := rs[:0]
	for _, r := range rs {
		if drop.Has(r.ID) {
			continue
		}
		kept = append(kept, r)
	}
	return b.save(kept)
}

func (b *Backend) QueryAll(dir store.Direction) ([]model.Reading, error) {
	rs, err := b.load()
	if err != nil {
		return nil, err
	}
	store.SortByTime(rs, dir)
	return rs, nil
}

func (b *Backend) Close() error { return nil }

func (b *Backend) load() ([]model.Reading, error) {
	raw, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Reading{}, nil
		}
		return nil, errors.Wrap(err, "read file")
	}
	var rs []model.Reading
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, errors.Wrap(err, "json unmarshal")
	}
	return rs, nil
}

func (b *Backend) save(rs []model.Reading) error {
	raw, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return errors.Wrap(err, "json marshal")
	}
	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".readings-*.json")
	if err != nil {
		return errors.Wrap(err, "create temp")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "write temp")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp")
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return errors.Wrap(err, "rename")
	}
	return nil
}
