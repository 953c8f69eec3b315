package gallery

import (
	"strings"
	"unicode/utf8"

	"artpulse-app/internal/domain/works"

	"github.com/agnivade/levenshtein"
)

// ExhibitionCard is an exhibition with its artworks resolved.
type ExhibitionCard struct {
	works.Exhibition
	Artworks []works.Artwork `json:"artworks"`
}

type ViewModel struct {
	View         works.View       `json:"view"`
	Artworks     []works.Artwork  `json:"artworks,omitempty"`
	Exhibitions  []ExhibitionCard `json:"exhibitions,omitempty"`
	Pending      []ExhibitionCard `json:"pending,omitempty"`
	Active       []ExhibitionCard `json:"active,omitempty"`
	ArtworkCount int              `json:"artworkCount"`
	CanCurate    bool             `json:"canCurate"`
}

// Pending lists draft exhibitions in stored order.
func (g *Gallery) Pending() []works.Exhibition {
	return works.FilterByStatus(g.Snapshot().Exhibitions, works.StatusDraft)
}

// Active lists published exhibitions in stored order.
func (g *Gallery) Active() []works.Exhibition {
	return works.FilterByStatus(g.Snapshot().Exhibitions, works.StatusPublished)
}

// ResolveArtworks maps the exhibition's ids onto known artworks, keeping
// order and skipping ids that do not resolve.
func (g *Gallery) ResolveArtworks(ex works.Exhibition) []works.Artwork {
	return resolve(g.Snapshot().Artworks, ex)
}

func resolve(artworks []works.Artwork, ex works.Exhibition) []works.Artwork {
	byID := make(map[string]works.Artwork, len(artworks))
	for _, a := range artworks {
		byID[a.ID] = a
	}
	out := make([]works.Artwork, 0, len(ex.ArtworkIDs))
	for _, id := range ex.ArtworkIDs {
		if a, ok := byID[id]; ok {
			out = append(out, a)
		}
	}
	return out
}

func cards(artworks []works.Artwork, list []works.Exhibition) []ExhibitionCard {
	out := make([]ExhibitionCard, 0, len(list))
	for _, ex := range list {
		out = append(out, ExhibitionCard{Exhibition: ex, Artworks: resolve(artworks, ex)})
	}
	return out
}

func (g *Gallery) ViewModel(view works.View) ViewModel {
	snap := g.Snapshot()
	vm := ViewModel{
		View:         view,
		ArtworkCount: len(snap.Artworks),
		CanCurate:    len(snap.Artworks) >= MinArtworksForCuration,
	}

	switch view {
	case works.ViewHome:
		vm.Artworks = snap.Artworks
	case works.ViewExhibitions:
		vm.Exhibitions = cards(snap.Artworks, works.FilterByStatus(snap.Exhibitions, works.StatusPublished))
	case works.ViewDashboard:
		vm.Pending = cards(snap.Artworks, works.FilterByStatus(snap.Exhibitions, works.StatusDraft))
		vm.Active = cards(snap.Artworks, works.FilterByStatus(snap.Exhibitions, works.StatusPublished))
	}
	return vm
}

// SearchArtworks matches q against title, artist and description, allowing
// a small number of typos per word of title or artist.
func (g *Gallery) SearchArtworks(q string) []works.Artwork {
	artworks := g.Snapshot().Artworks
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return artworks
	}

	out := make([]works.Artwork, 0)
	for _, a := range artworks {
		if matches(a, q) {
			out = append(out, a)
		}
	}
	return out
}

func matches(a works.Artwork, q string) bool {
	for _, field := range []string{a.Title, a.Artist, a.Description} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}

	limit := typoBudget(q)
	if limit == 0 {
		return false
	}
	for _, word := range strings.Fields(strings.ToLower(a.Title + " " + a.Artist)) {
		if levenshtein.ComputeDistance(word, q) <= limit {
			return true
		}
	}
	return false
}

func typoBudget(q string) int {
	switch n := utf8.RuneCountInString(q); {
	case n < 4:
		return 0
	case n < 8:
		return 1
	default:
		return 2
	}
}
