// Package store implements the gallery's persistent collections on top of a
// storage.Backend. Each collection is one key holding a JSON array.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"artpulse-app/internal/domain/works"
	"artpulse-app/internal/infra/storage"
)

const (
	ArtworksKey    = "artworks"
	ExhibitionsKey = "exhibitions"
)

type Store struct {
	backend storage.Backend
	seed    []works.Artwork
	log     *slog.Logger

	// serialises this process's read-modify-write cycles
	mu sync.Mutex
}

func New(backend storage.Backend, seed []works.Artwork, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if seed == nil {
		seed = []works.Artwork{}
	}
	return &Store{backend: backend, seed: slices.Clone(seed), log: logger}
}

// GetArtworks returns the stored artworks, writing the seed set first if the
// key has never been written.
func (s *Store) GetArtworks(ctx context.Context) ([]works.Artwork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, _, err := s.loadArtworks(ctx)
	return list, err
}

func (s *Store) loadArtworks(ctx context.Context) ([]works.Artwork, int64, error) {
	rec, err := s.backend.Get(ctx, ArtworksKey)
	if err != nil {
		return nil, 0, err
	}
	if rec.Exists() {
		var list []works.Artwork
		if err := decode(rec.Value, &list); err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", ArtworksKey, err)
		}
		return list, rec.Revision, nil
	}

	raw, err := json.Marshal(s.seed)
	if err != nil {
		return nil, 0, err
	}
	rev, err := s.backend.Put(ctx, ArtworksKey, raw, 0)
	if errors.Is(err, storage.ErrConflict) {
		// another process seeded first
		rec, err := s.backend.Get(ctx, ArtworksKey)
		if err != nil {
			return nil, 0, err
		}
		var list []works.Artwork
		if err := decode(rec.Value, &list); err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", ArtworksKey, err)
		}
		return list, rec.Revision, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("seed %s: %w", ArtworksKey, err)
	}
	s.log.Info("seeded artworks", "count", len(s.seed))
	return slices.Clone(s.seed), rev, nil
}

// AddArtwork prepends a. The caller supplies a unique id.
func (s *Store) AddArtwork(ctx context.Context, a works.Artwork) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, rev, err := s.loadArtworks(ctx)
	if err != nil {
		return err
	}
	updated := append([]works.Artwork{a}, list...)
	return s.put(ctx, ArtworksKey, updated, rev)
}

// GetExhibitions returns the stored exhibitions, or an empty list.
func (s *Store) GetExhibitions(ctx context.Context) ([]works.Exhibition, error) {
	list, _, err := s.LoadExhibitions(ctx)
	return list, err
}

// LoadExhibitions also returns the revision the list was read at, for use
// with ReplaceExhibitions.
func (s *Store) LoadExhibitions(ctx context.Context) ([]works.Exhibition, int64, error) {
	rec, err := s.backend.Get(ctx, ExhibitionsKey)
	if err != nil {
		return nil, 0, err
	}
	if !rec.Exists() {
		return []works.Exhibition{}, 0, nil
	}
	var list []works.Exhibition
	if err := decode(rec.Value, &list); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", ExhibitionsKey, err)
	}
	if list == nil {
		list = []works.Exhibition{}
	}
	return list, rec.Revision, nil
}

// SaveExhibitions replaces the whole list unconditionally.
func (s *Store) SaveExhibitions(ctx context.Context, list []works.Exhibition) error {
	return s.ReplaceExhibitions(ctx, list, storage.AnyRevision)
}

// ReplaceExhibitions replaces the whole list if it is still at revision
// expected; otherwise it returns storage.ErrConflict and writes nothing.
func (s *Store) ReplaceExhibitions(ctx context.Context, list []works.Exhibition, expected int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if list == nil {
		list = []works.Exhibition{}
	}
	return s.put(ctx, ExhibitionsKey, list, expected)
}

// AddExhibition prepends e.
func (s *Store) AddExhibition(ctx context.Context, e works.Exhibition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, rev, err := s.LoadExhibitions(ctx)
	if err != nil {
		return err
	}
	updated := append([]works.Exhibition{e}, list...)
	return s.put(ctx, ExhibitionsKey, updated, rev)
}

// UpdateExhibition swaps in e for the stored exhibition with the same id,
// keeping order. An unknown id leaves the stored value untouched.
func (s *Store) UpdateExhibition(ctx context.Context, e works.Exhibition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, rev, err := s.LoadExhibitions(ctx)
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(list, func(x works.Exhibition) bool { return x.ID == e.ID })
	if idx < 0 {
		s.log.Debug("update of unknown exhibition ignored", "id", e.ID)
		return nil
	}
	list[idx] = e
	return s.put(ctx, ExhibitionsKey, list, rev)
}

func (s *Store) put(ctx context.Context, key string, v interface{}, expected int64) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if _, err := s.backend.Put(ctx, key, raw, expected); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func decode(raw []byte, dst interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
