// Package gallery holds the application state: the last loaded snapshots of
// artworks and exhibitions, and the actions that mutate them.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"artpulse-app/internal/curation"
	"artpulse-app/internal/domain/media"
	"artpulse-app/internal/domain/works"
	"artpulse-app/internal/infra/storage"
)

// MinArtworksForCuration is the smallest collection the curator will group.
const MinArtworksForCuration = 3

// Repository is the persistence the gallery needs.
type Repository interface {
	GetArtworks(ctx context.Context) ([]works.Artwork, error)
	AddArtwork(ctx context.Context, a works.Artwork) error
	LoadExhibitions(ctx context.Context) ([]works.Exhibition, int64, error)
	UpdateExhibition(ctx context.Context, e works.Exhibition) error
	ReplaceExhibitions(ctx context.Context, list []works.Exhibition, expected int64) error
}

type Curator interface {
	CurateExhibitions(ctx context.Context, artworks []works.Artwork) ([]works.Exhibition, error)
}

type Snapshot struct {
	Artworks            []works.Artwork
	Exhibitions         []works.Exhibition
	ExhibitionsRevision int64
	LoadedAt            time.Time
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Artworks = slices.Clone(s.Artworks)
	out.Exhibitions = make([]works.Exhibition, len(s.Exhibitions))
	for i, e := range s.Exhibitions {
		e.ArtworkIDs = slices.Clone(e.ArtworkIDs)
		out.Exhibitions[i] = e
	}
	return out
}

type ArtworkInput struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type Options struct {
	MaxImageBytes int
}

type Gallery struct {
	repo    Repository
	curator Curator
	locker  Locker
	opts    Options
	log     *slog.Logger

	now         func() time.Time
	newID       func() string
	placeholder func() string

	mu   sync.RWMutex
	snap Snapshot

	curating atomic.Bool
}

func New(repo Repository, curator Curator, locker Locker, opts Options, logger *slog.Logger) *Gallery {
	if logger == nil {
		logger = slog.Default()
	}
	if locker == nil {
		locker = &LocalLocker{}
	}
	return &Gallery{
		repo:        repo,
		curator:     curator,
		locker:      locker,
		opts:        opts,
		log:         logger,
		now:         time.Now,
		newID:       works.NewID,
		placeholder: works.PlaceholderImageURL,
	}
}

// Reload re-reads both collections in full and replaces the snapshot.
func (g *Gallery) Reload(ctx context.Context) (Snapshot, error) {
	artworks, err := g.repo.GetArtworks(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load artworks: %w", err)
	}
	exhibitions, rev, err := g.repo.LoadExhibitions(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load exhibitions: %w", err)
	}

	snap := Snapshot{
		Artworks:            artworks,
		Exhibitions:         exhibitions,
		ExhibitionsRevision: rev,
		LoadedAt:            g.now(),
	}

	g.mu.Lock()
	g.snap = snap
	g.mu.Unlock()

	return snap.clone(), nil
}

// Snapshot returns a copy of the last loaded state.
func (g *Gallery) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snap.clone()
}

func (g *Gallery) SubmitArtwork(ctx context.Context, in ArtworkInput) (works.Artwork, works.View, error) {
	title := strings.TrimSpace(in.Title)
	artist := strings.TrimSpace(in.Artist)
	description := strings.TrimSpace(in.Description)

	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if artist == "" {
		missing = append(missing, "artist")
	}
	if description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return works.Artwork{}, works.ViewUpload, fmt.Errorf("%w: missing %s", ErrInvalidArtwork, strings.Join(missing, ", "))
	}

	imageURL := strings.TrimSpace(in.ImageURL)
	if _, err := media.ValidateImageURL(imageURL, g.opts.MaxImageBytes); err != nil {
		return works.Artwork{}, works.ViewUpload, fmt.Errorf("%w: %w", ErrInvalidArtwork, err)
	}
	if imageURL == "" {
		imageURL = g.placeholder()
	}

	a := works.Artwork{
		ID:          g.newID(),
		Title:       title,
		Artist:      artist,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   works.Millis(g.now()),
	}
	if err := g.repo.AddArtwork(ctx, a); err != nil {
		return works.Artwork{}, works.ViewUpload, err
	}
	g.log.Info("artwork submitted", "id", a.ID, "title", a.Title)

	if _, err := g.Reload(ctx); err != nil {
		return a, works.ViewHome, err
	}
	return a, works.ViewHome, nil
}

// Curate asks the curator for new draft exhibitions over the current
// artworks and stores them. Nothing is written unless the curator succeeds
// with at least one suggestion.
func (g *Gallery) Curate(ctx context.Context) ([]works.Exhibition, error) {
	artworks := g.Snapshot().Artworks
	if len(artworks) < MinArtworksForCuration {
		return nil, ErrNotEnoughArtworks
	}

	release, err := g.locker.TryLock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	g.curating.Store(true)
	defer g.curating.Store(false)

	if g.curator == nil {
		return nil, curation.ErrAPIKeyMissing
	}

	started := g.now()
	drafts, err := g.curator.CurateExhibitions(ctx, artworks)
	if err != nil {
		g.log.Error("curation failed", "artworks", len(artworks), "error", err)
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, ErrEmptySuggestions
	}

	if err := g.storeDrafts(ctx, drafts); err != nil {
		g.log.Error("failed to store curated drafts", "drafts", len(drafts), "error", err)
		return nil, err
	}
	g.log.Info("curation stored drafts", "drafts", len(drafts), "took", g.now().Sub(started))

	if _, err := g.Reload(ctx); err != nil {
		return drafts, err
	}
	return drafts, nil
}

// storeDrafts prepends every draft in a single conditional write, the last
// suggestion ending up first.
func (g *Gallery) storeDrafts(ctx context.Context, drafts []works.Exhibition) error {
	current, rev, err := g.repo.LoadExhibitions(ctx)
	if err != nil {
		return err
	}

	updated := make([]works.Exhibition, 0, len(drafts)+len(current))
	for i := len(drafts) - 1; i >= 0; i-- {
		updated = append(updated, drafts[i])
	}
	updated = append(updated, current...)
	return g.repo.ReplaceExhibitions(ctx, updated, rev)
}

// Curating reports whether this process is waiting on a curation run.
func (g *Gallery) Curating() bool {
	return g.curating.Load()
}

// Publish marks the exhibition published. Publishing twice is a no-op in
// effect.
func (g *Gallery) Publish(ctx context.Context, id string) (works.Exhibition, error) {
	ex, ok := works.FindExhibition(g.Snapshot().Exhibitions, id)
	if !ok {
		return works.Exhibition{}, ErrExhibitionNotFound
	}

	published := ex.Published()
	if err := g.repo.UpdateExhibition(ctx, published); err != nil {
		return works.Exhibition{}, err
	}
	g.log.Info("exhibition published", "id", id)

	if _, err := g.Reload(ctx); err != nil {
		return published, err
	}
	return published, nil
}

// Dismiss removes the exhibition from the list it was loaded with. The write
// fails with storage.ErrConflict if the stored list moved on since then.
func (g *Gallery) Dismiss(ctx context.Context, id string) error {
	snap := g.Snapshot()
	if _, ok := works.FindExhibition(snap.Exhibitions, id); !ok {
		return ErrExhibitionNotFound
	}

	remaining := slices.DeleteFunc(snap.Exhibitions, func(e works.Exhibition) bool { return e.ID == id })
	err := g.repo.ReplaceExhibitions(ctx, remaining, snap.ExhibitionsRevision)
	if errors.Is(err, storage.ErrConflict) {
		g.log.Warn("dismiss lost a race with another writer", "id", id, "revision", snap.ExhibitionsRevision)
		if _, rerr := g.Reload(ctx); rerr != nil {
			g.log.Error("reload after conflict failed", "error", rerr)
		}
		return err
	}
	if err != nil {
		return err
	}
	g.log.Info("exhibition dismissed", "id", id)

	_, err = g.Reload(ctx)
	return err
}
